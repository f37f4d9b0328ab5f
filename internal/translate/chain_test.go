// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/patent-intake/internal/ops"
	"github.com/pdiddy/patent-intake/pkg/types"
)

// --- fakes ---

type fakeEngine struct {
	name  string
	out   string
	err   error
	delay time.Duration
	calls int32
}

func (f *fakeEngine) Name() string { return f.name }

func (f *fakeEngine) Translate(ctx context.Context, _ string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.out, f.err
}

type fakeOfficial struct {
	rec   types.PatentRecord
	err   error
	calls int32
}

func (f *fakeOfficial) Fetch(_ context.Context, _ string, _ ops.DocType) (types.PatentRecord, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.rec, f.err
}

func testChain(official OfficialSource, engines ...Engine) *Chain {
	return NewChain(engines, official, types.TranslateConfig{
		EngineTimeout:        200 * time.Millisecond,
		MaxConcurrentEngines: 3,
	})
}

// --- tests ---

func TestTranslate_EmptyInputShortCircuits(t *testing.T) {
	eng := &fakeEngine{name: "never", out: "x"}
	official := &fakeOfficial{}
	chain := testChain(official, eng)

	got := chain.Translate(context.Background(), "   \n\t", "CN109670517A", true)

	assert.Equal(t, "", got.Text)
	assert.Equal(t, types.SourceNone, got.Source)
	assert.Equal(t, 0.0, got.Quality)
	assert.Zero(t, atomic.LoadInt32(&eng.calls), "no engine call for blank input")
	assert.Zero(t, atomic.LoadInt32(&official.calls), "no official call for blank input")
}

func TestTranslate_AllEnginesFailReturnsOriginal(t *testing.T) {
	chain := testChain(nil,
		&fakeEngine{name: "a", err: fmt.Errorf("boom")},
		&fakeEngine{name: "b", err: fmt.Errorf("no credentials")},
	)

	got := chain.Translate(context.Background(), "foo", "", true)

	assert.Equal(t, "foo", got.Text)
	assert.Equal(t, types.SourceOriginal, got.Source)
	assert.Equal(t, 0.0, got.Quality)
}

func TestTranslate_FirstCompletedNonEmptyWins(t *testing.T) {
	slow := &fakeEngine{name: "slow", out: "slow result", delay: 150 * time.Millisecond}
	fast := &fakeEngine{name: "fast", out: "fast result"}
	chain := testChain(nil, slow, fast)

	got := chain.Translate(context.Background(), "原文", "", false)

	assert.Equal(t, "fast result", got.Text)
	assert.Equal(t, types.SourceMachine, got.Source)
	assert.Equal(t, 0.75, got.Quality)
}

func TestTranslate_EmptyEngineResultIsDecline(t *testing.T) {
	empty := &fakeEngine{name: "empty", out: ""}
	good := &fakeEngine{name: "good", out: "translated", delay: 20 * time.Millisecond}
	chain := testChain(nil, empty, good)

	got := chain.Translate(context.Background(), "原文", "", false)

	assert.Equal(t, "translated", got.Text)
	assert.Equal(t, types.SourceMachine, got.Source)
}

func TestTranslate_OfficialPreferred(t *testing.T) {
	official := &fakeOfficial{rec: types.PatentRecord{
		TitleNative:    "A patent text processing method",
		AbstractNative: "A method is disclosed.",
	}}
	eng := &fakeEngine{name: "machine", out: "machine output"}
	chain := testChain(official, eng)

	got := chain.Translate(context.Background(), "一种专利文本处理方法", "CN109670517A", true)

	assert.Equal(t, "A patent text processing method\n\nA method is disclosed.", got.Text)
	assert.Equal(t, types.SourceOfficial, got.Source)
	assert.Equal(t, 0.95, got.Quality)
	assert.Zero(t, atomic.LoadInt32(&eng.calls), "engines not raced when official answers")
}

func TestTranslate_OfficialFailureSwallowed(t *testing.T) {
	official := &fakeOfficial{err: fmt.Errorf("office unreachable")}
	eng := &fakeEngine{name: "machine", out: "machine output"}
	chain := testChain(official, eng)

	got := chain.Translate(context.Background(), "原文", "CN109670517A", true)

	assert.Equal(t, "machine output", got.Text)
	assert.Equal(t, types.SourceMachine, got.Source)
	assert.Equal(t, int32(1), atomic.LoadInt32(&official.calls))
}

func TestTranslate_OfficialMissWithoutTitleFallsThrough(t *testing.T) {
	official := &fakeOfficial{rec: types.PatentRecord{AbstractNative: "abstract only"}}
	eng := &fakeEngine{name: "machine", out: "machine output"}
	chain := testChain(official, eng)

	got := chain.Translate(context.Background(), "原文", "CN109670517A", true)
	assert.Equal(t, types.SourceMachine, got.Source)
}

func TestTranslate_PreferOfficialFalseSkipsLookup(t *testing.T) {
	official := &fakeOfficial{rec: types.PatentRecord{TitleNative: "title"}}
	eng := &fakeEngine{name: "machine", out: "machine output"}
	chain := testChain(official, eng)

	got := chain.Translate(context.Background(), "原文", "CN109670517A", false)

	assert.Equal(t, types.SourceMachine, got.Source)
	assert.Zero(t, atomic.LoadInt32(&official.calls))
}

func TestTranslate_NoEnginesAtAll(t *testing.T) {
	chain := testChain(nil)
	got := chain.Translate(context.Background(), "foo", "", false)
	assert.Equal(t, "foo", got.Text)
	assert.Equal(t, types.SourceOriginal, got.Source)
}

func TestTranslateBatch(t *testing.T) {
	eng := &fakeEngine{name: "machine", out: "out"}
	chain := testChain(nil, eng)

	results, err := chain.TranslateBatch(context.Background(),
		[]string{"第一段", "", "第三段"}, nil, false)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, types.SourceMachine, results[0].Source)
	assert.Equal(t, types.SourceNone, results[1].Source)
	assert.Equal(t, types.SourceMachine, results[2].Source)
}

func TestTranslateBatch_LengthMismatch(t *testing.T) {
	chain := testChain(nil)
	_, err := chain.TranslateBatch(context.Background(),
		[]string{"a", "b"}, []string{"CN109670517A"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "differ in length")
}
