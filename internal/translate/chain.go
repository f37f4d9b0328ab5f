// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/patent-intake/internal/ops"
	"github.com/pdiddy/patent-intake/pkg/types"
)

const (
	defaultEngineTimeout = 5 * time.Second
	defaultMaxConcurrent = 3
)

// OfficialSource provides office records for authoritative translations.
// *ops.Client satisfies it.
type OfficialSource interface {
	Fetch(ctx context.Context, number string, docType ops.DocType) (types.PatentRecord, error)
}

// Chain runs the translation fallback order: official source, then a race
// between machine engines, then the original text. Translate never fails;
// the worst outcome is the input handed back with SourceOriginal.
type Chain struct {
	engines  []Engine
	official OfficialSource

	engineTimeout time.Duration
	maxConcurrent int64
}

// NewChain assembles the chain. official may be nil, in which case the
// authoritative rung is skipped.
func NewChain(engines []Engine, official OfficialSource, cfg types.TranslateConfig) *Chain {
	timeout := cfg.EngineTimeout
	if timeout <= 0 {
		timeout = defaultEngineTimeout
	}
	concurrent := int64(cfg.MaxConcurrentEngines)
	if concurrent <= 0 {
		concurrent = defaultMaxConcurrent
	}
	return &Chain{
		engines:       engines,
		official:      official,
		engineTimeout: timeout,
		maxConcurrent: concurrent,
	}
}

// Translate runs text through the fallback chain. patentNumber may be
// empty; preferOfficial selects whether the office record is consulted
// first when a number is available.
func (c *Chain) Translate(ctx context.Context, text, patentNumber string, preferOfficial bool) types.TranslationResult {
	if strings.TrimSpace(text) == "" {
		return result("", types.SourceNone)
	}

	if preferOfficial && patentNumber != "" && c.official != nil {
		if official, ok := c.tryOfficial(ctx, patentNumber); ok {
			return result(official, types.SourceOfficial)
		}
	}

	if translated, ok := c.race(ctx, text); ok {
		return result(translated, types.SourceMachine)
	}

	return result(text, types.SourceOriginal)
}

// TranslateBatch translates texts in order. numbers, when non-nil, must be
// the same length as texts.
func (c *Chain) TranslateBatch(ctx context.Context, texts, numbers []string, preferOfficial bool) ([]types.TranslationResult, error) {
	if numbers != nil && len(numbers) != len(texts) {
		return nil, fmt.Errorf("texts and patent numbers differ in length: %d vs %d", len(texts), len(numbers))
	}

	results := make([]types.TranslationResult, len(texts))
	for i, text := range texts {
		number := ""
		if numbers != nil {
			number = numbers[i]
		}
		results[i] = c.Translate(ctx, text, number, preferOfficial)
	}
	return results, nil
}

// tryOfficial fetches the office record and assembles title plus abstract.
// Any failure is logged and swallowed so it cannot abort the chain.
func (c *Chain) tryOfficial(ctx context.Context, patentNumber string) (string, bool) {
	rec, err := c.official.Fetch(ctx, patentNumber, ops.DocTypeBiblio)
	if err != nil {
		slog.Warn("official translation lookup failed",
			slog.String("patent_number", patentNumber),
			slog.String("error", err.Error()))
		return "", false
	}

	if rec.TitleNative == "" {
		return "", false
	}
	text := rec.TitleNative
	if rec.AbstractNative != "" {
		text += "\n\n" + rec.AbstractNative
	}
	return text, true
}

// race dispatches text to every engine concurrently, bounded by the worker
// pool, and takes the first completed non-empty result. Outstanding calls
// are cancelled once a winner is in; engines are idempotent so this is
// best-effort only.
func (c *Chain) race(ctx context.Context, text string) (string, bool) {
	if len(c.engines) == 0 {
		return "", false
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(c.maxConcurrent)
	results := make(chan string, len(c.engines))

	for _, eng := range c.engines {
		go func(eng Engine) {
			if err := sem.Acquire(ctx, 1); err != nil {
				results <- ""
				return
			}
			defer sem.Release(1)

			callCtx, callCancel := context.WithTimeout(ctx, c.engineTimeout)
			defer callCancel()

			out, err := eng.Translate(callCtx, text)
			if err != nil {
				// A failing engine has declined; it never propagates.
				slog.Debug("translation engine declined",
					slog.String("engine", eng.Name()),
					slog.String("error", err.Error()))
				results <- ""
				return
			}
			results <- out
		}(eng)
	}

	for range c.engines {
		if out := <-results; strings.TrimSpace(out) != "" {
			return out, true
		}
	}
	return "", false
}

func result(text string, source types.TranslationSource) types.TranslationResult {
	return types.TranslationResult{
		Text:    text,
		Source:  source,
		Quality: source.Quality(),
	}
}
