// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ops implements the patent office (EPO OPS) client: OAuth2
// client-credentials token management and authenticated bibliographic
// data retrieval.
package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/patent-intake/internal/apperr"
	"github.com/pdiddy/patent-intake/pkg/types"
)

// TokenRetryBaseDelay controls the base duration for exponential backoff
// between token exchange attempts. Tests override this to avoid real sleeps.
var TokenRetryBaseDelay = 2 * time.Second

const (
	// tokenSafetyMargin: a token is usable only while
	// now < expiresAt - margin.
	tokenSafetyMargin = 60 * time.Second

	tokenMaxAttempts    = 3
	tokenAttemptTimeout = 10 * time.Second

	// defaultExpiresIn is assumed when the token response omits
	// expires_in (the office issues 20-minute tokens).
	defaultExpiresIn = 1200
)

// AccessToken is the cached bearer credential for the office API.
type AccessToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenSource acquires, caches, and refreshes a bearer token via the
// client-credentials exchange. Exactly one token is cached at a time;
// acquiring a new one replaces the old. All cache access is serialized so
// concurrent callers cannot trigger redundant refreshes or observe a
// half-updated token.
type TokenSource struct {
	client *http.Client
	cfg    types.OPSConfig

	mu  sync.Mutex
	tok *AccessToken
}

// NewTokenSource creates a token source. Token sources are independent;
// tests instantiate as many as they need.
func NewTokenSource(client *http.Client, cfg types.OPSConfig) *TokenSource {
	return &TokenSource{client: client, cfg: cfg}
}

// Token returns a valid access token, performing the client-credentials
// exchange when no usable cached token exists or forceRefresh is set. The
// exchange is attempted up to three times with exponential backoff; on
// exhaustion the cache is cleared and an apperr.ErrAuth is returned naming
// the last underlying error.
func (t *TokenSource) Token(ctx context.Context, forceRefresh bool) (AccessToken, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !forceRefresh && t.usableLocked() {
		return *t.tok, nil
	}

	var lastErr error
	for attempt := 0; attempt < tokenMaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * TokenRetryBaseDelay
			select {
			case <-ctx.Done():
				t.tok = nil
				return AccessToken{}, fmt.Errorf("%w: token exchange: %v", apperr.ErrAuth, ctx.Err())
			case <-time.After(backoff):
			}
		}

		tok, err := t.exchange(ctx)
		if err == nil {
			t.tok = tok
			return *tok, nil
		}
		lastErr = err
	}

	t.tok = nil
	return AccessToken{}, fmt.Errorf("%w: token exchange failed after %d attempts: %v",
		apperr.ErrAuth, tokenMaxAttempts, lastErr)
}

// Invalidate clears the cached token unconditionally. Callers use it after
// an authorization-denied response from the data API, before retrying once.
func (t *TokenSource) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tok = nil
}

// usableLocked reports whether the cached token is still inside its
// validity window. Caller holds t.mu.
func (t *TokenSource) usableLocked() bool {
	return t.tok != nil && time.Now().Before(t.tok.ExpiresAt.Add(-tokenSafetyMargin))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`

	// The office encodes expires_in as a JSON string; tolerate a number
	// as well.
	ExpiresIn any `json:"expires_in"`
}

// expiresInSeconds coerces the expires_in field, falling back to the
// default 20-minute lifetime when absent or malformed.
func (tr tokenResponse) expiresInSeconds() int64 {
	switch v := tr.ExpiresIn.(type) {
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	case float64:
		if v > 0 {
			return int64(v)
		}
	}
	return defaultExpiresIn
}

// exchange performs one client-credentials POST against the token endpoint.
func (t *TokenSource) exchange(ctx context.Context) (*AccessToken, error) {
	ctx, cancel := context.WithTimeout(ctx, tokenAttemptTimeout)
	defer cancel()

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	req.SetBasicAuth(t.cfg.ConsumerKey, t.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if t.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", t.cfg.UserAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token endpoint request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned HTTP %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	now := time.Now()
	return &AccessToken{
		Value:     tr.AccessToken,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Duration(tr.expiresInSeconds()) * time.Second),
	}, nil
}
