// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes every submission, with translations, as a YAML
// document stream to w.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	subs, err := s.List(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	for i := range subs {
		full, err := s.Get(ctx, subs[i].ID)
		if err != nil {
			return fmt.Errorf("loading submission %s: %w", subs[i].ID, err)
		}
		subs[i] = full
	}

	data, err := yaml.Marshal(subs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
