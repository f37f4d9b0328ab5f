// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/patent-intake/internal/apperr"
	"github.com/pdiddy/patent-intake/internal/httputil"
	"github.com/pdiddy/patent-intake/internal/patnum"
	"github.com/pdiddy/patent-intake/pkg/types"
)

// DocType selects which published-data constituent to fetch.
type DocType string

const (
	DocTypeBiblio      DocType = "biblio"
	DocTypeAbstract    DocType = "abstract"
	DocTypeClaims      DocType = "claims"
	DocTypeDescription DocType = "description"
)

// ValidDocType reports whether s names a known document type.
func ValidDocType(s string) bool {
	switch DocType(s) {
	case DocTypeBiblio, DocTypeAbstract, DocTypeClaims, DocTypeDescription:
		return true
	}
	return false
}

// transportRetries is the number of extra attempts after a transport-level
// failure of a data request.
const transportRetries = 2

// Client issues authenticated bibliographic queries against the office API.
type Client struct {
	http   *http.Client
	tokens *TokenSource
	cfg    types.OPSConfig
}

// NewClient creates a client with its own token source.
func NewClient(httpClient *http.Client, cfg types.OPSConfig) *Client {
	return &Client{
		http:   httpClient,
		tokens: NewTokenSource(httpClient, cfg),
		cfg:    cfg,
	}
}

// Tokens exposes the client's token source (used by `serve` for the
// health endpoint and by tests).
func (c *Client) Tokens() *TokenSource { return c.tokens }

// Fetch retrieves and normalizes a published-data document. The number is
// validated and canonicalized before any network call; an invalid number
// fails with apperr.ErrInvalidNumber. An expired credential is invalidated
// and retried exactly once; a second denial surfaces as apperr.ErrAuth.
func (c *Client) Fetch(ctx context.Context, number string, docType DocType) (types.PatentRecord, error) {
	ok, normalized := patnum.Normalize(number)
	if !ok {
		return types.PatentRecord{}, fmt.Errorf("%w: %q", apperr.ErrInvalidNumber, number)
	}

	raw, err := c.fetchRaw(ctx, normalized, docType)
	if err != nil {
		return types.PatentRecord{}, err
	}

	if docType == DocTypeBiblio {
		return normalizeBiblio(raw, normalized), nil
	}

	// Non-biblio constituents carry a single text payload.
	rec := normalizeBiblio(raw, normalized)
	if text := textField(raw[string(docType)]); text != "" && rec.AbstractNative == "" {
		rec.AbstractNative = text
	}
	return rec, nil
}

// fetchRaw performs the authenticated GET, handling the single
// invalidate-and-retry on an authorization denial.
func (c *Client) fetchRaw(ctx context.Context, normalized string, docType DocType) (map[string]any, error) {
	authRetried := false

	for {
		tok, err := c.tokens.Token(ctx, false)
		if err != nil {
			return nil, err
		}

		reqURL := fmt.Sprintf("%s/published-data/publication/epodoc/%s/%s?format=json",
			strings.TrimSuffix(c.cfg.APIBase, "/"), normalized, docType)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok.Value)
		req.Header.Set("Accept", "application/json")
		if c.cfg.UserAgent != "" {
			req.Header.Set("User-Agent", c.cfg.UserAgent)
		}

		resp, err := httputil.Do(ctx, c.http, req, transportRetries)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", apperr.ErrUpstream, normalized, err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			resp.Body.Close()
			c.tokens.Invalidate()
			if !authRetried {
				authRetried = true
				continue
			}
			return nil, fmt.Errorf("%w: office API denied request for %s twice", apperr.ErrAuth, normalized)

		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s/%s", apperr.ErrNotFound, normalized, docType)

		case resp.StatusCode != http.StatusOK:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: office API returned HTTP %d for %s", apperr.ErrUpstream, resp.StatusCode, normalized)
		}

		var raw map[string]any
		err = json.NewDecoder(resp.Body).Decode(&raw)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: parsing office response for %s: %v", apperr.ErrUpstream, normalized, err)
		}
		return raw, nil
	}
}
