// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate implements the translation fallback chain: an
// authoritative office translation first, then a race between machine
// engines, then the original text unchanged.
package translate

import (
	"context"
	"net/http"

	"github.com/pdiddy/patent-intake/pkg/types"
)

// Engine is one machine-translation backend. An engine that cannot answer
// (missing credentials, network error, malformed response) returns an
// error; the chain treats that as the engine declining, never as a chain
// failure.
type Engine interface {
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

// Engines builds the configured engine set. Engines with missing
// credentials are still constructed; they decline per call, which keeps
// the chain's behavior uniform.
func Engines(client *http.Client, cfg types.TranslateConfig) []Engine {
	return []Engine{
		NewBaidu(client, cfg),
	}
}
