// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "ops-consumer-key", "  ck_abc123  \n")
				writeFile(t, dir, "ops-secret-key", "sk_xyz789")
				writeFile(t, dir, "baidu-app-id", "20250611000000001\n")
				return dir
			},
			want: map[string]string{
				"ops-consumer-key": "ck_abc123",
				"ops-secret-key":   "sk_xyz789",
				"baidu-app-id":     "20250611000000001",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files and dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "baidu-secret-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, ".gitkeep", "")
				return dir
			},
			want: map[string]string{
				"baidu-secret-key": "valid-key",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "ops-consumer-key", "ck_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"ops-consumer-key": "ck_123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue(t *testing.T) {
	loaded := map[string]string{"ops-consumer-key": "from-file"}

	assert.Equal(t, "override", Value(loaded, "ops-consumer-key", "override"))
	assert.Equal(t, "from-file", Value(loaded, "ops-consumer-key", ""))
	assert.Equal(t, "", Value(loaded, "missing-key", ""))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
