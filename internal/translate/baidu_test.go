// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/patent-intake/pkg/types"
)

func newTestBaidu(t *testing.T, handler http.HandlerFunc) *Baidu {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	saved := baiduAPIBase
	baiduAPIBase = server.URL
	t.Cleanup(func() { baiduAPIBase = saved })

	return NewBaidu(server.Client(), types.TranslateConfig{
		BaiduAppID:     "app-1",
		BaiduSecretKey: "secret-1",
	})
}

func TestBaiduTranslate_SignsAndJoinsSegments(t *testing.T) {
	engine := newTestBaidu(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "一种方法", q.Get("q"))
		assert.Equal(t, "zh", q.Get("from"))
		assert.Equal(t, "en", q.Get("to"))
		assert.Equal(t, "app-1", q.Get("appid"))

		salt := q.Get("salt")
		require.NotEmpty(t, salt)
		wantSign := fmt.Sprintf("%x", md5.Sum([]byte("app-1"+q.Get("q")+salt+"secret-1")))
		assert.Equal(t, wantSign, q.Get("sign"))

		fmt.Fprint(w, `{"trans_result":[{"dst":"A method"},{"dst":"second line"}]}`)
	})

	got, err := engine.Translate(context.Background(), "一种方法")
	require.NoError(t, err)
	assert.Equal(t, "A method\nsecond line", got)
}

func TestBaiduTranslate_MissingCredentialsDecline(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	saved := baiduAPIBase
	baiduAPIBase = server.URL
	defer func() { baiduAPIBase = saved }()

	engine := NewBaidu(server.Client(), types.TranslateConfig{})
	_, err := engine.Translate(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials not configured")
	assert.Zero(t, calls, "no request without credentials")
}

func TestBaiduTranslate_ErrorCode(t *testing.T) {
	engine := newTestBaidu(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error_code":"54001","error_msg":"Invalid Sign"}`)
	})

	_, err := engine.Translate(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "54001")
}

func TestBaiduTranslate_EmptyResultWithoutErrorCode(t *testing.T) {
	engine := newTestBaidu(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := engine.Translate(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing trans_result")
}

func TestBaiduTranslate_HTTPError(t *testing.T) {
	engine := newTestBaidu(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	_, err := engine.Translate(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestBaiduTranslate_LanguageOverrides(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "en", q.Get("from"))
		assert.Equal(t, "de", q.Get("to"))
		fmt.Fprint(w, `{"trans_result":[{"dst":"Ein Verfahren"}]}`)
	}))
	defer server.Close()

	saved := baiduAPIBase
	baiduAPIBase = server.URL
	defer func() { baiduAPIBase = saved }()

	engine := NewBaidu(server.Client(), types.TranslateConfig{
		BaiduAppID:     "app-1",
		BaiduSecretKey: "secret-1",
		From:           "en",
		To:             "de",
	})
	got, err := engine.Translate(context.Background(), "A method")
	require.NoError(t, err)
	assert.Equal(t, "Ein Verfahren", got)
}
