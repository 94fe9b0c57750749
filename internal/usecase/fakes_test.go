//go:build !integration

package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"aura-assistant/internal/domain/model"
	"aura-assistant/internal/domain/ports/adapter"
	"aura-assistant/internal/infra/i18n"
)

// ---- Fakes ----

type aiCall struct {
	messages []adapter.Message
	opts     adapter.GenerationOptions
}

// scriptedAI answers calls in order from replies/errs; the last entry repeats.
type scriptedAI struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   []aiCall
}

func (f *scriptedAI) Name() string { return "scripted" }

func (f *scriptedAI) Generate(ctx context.Context, messages []adapter.Message, opts adapter.GenerationOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.calls)
	f.calls = append(f.calls, aiCall{messages: append([]adapter.Message(nil), messages...), opts: opts})
	var reply string
	var err error
	if len(f.replies) > 0 {
		reply = f.replies[min(i, len(f.replies)-1)]
	}
	if len(f.errs) > 0 {
		err = f.errs[min(i, len(f.errs)-1)]
	}
	return reply, err
}

func (f *scriptedAI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *scriptedAI) call(i int) aiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

type fakeWeather struct {
	report model.WeatherReport
	err    error
	cities []string
}

func (f *fakeWeather) Current(ctx context.Context, city string) (model.WeatherReport, error) {
	f.cities = append(f.cities, city)
	return f.report, f.err
}

type fakeMusic struct {
	tracks  []model.Track
	err     error
	queries []string
}

func (f *fakeMusic) SearchTracks(ctx context.Context, query string) ([]model.Track, error) {
	f.queries = append(f.queries, query)
	return f.tracks, f.err
}

type fakeResponder struct {
	reply string
	err   error
	calls int
}

func (f *fakeResponder) Respond(ctx context.Context, conv *model.Conversation) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fixedClassifier struct {
	intent model.Intent
	calls  int
}

func (f *fixedClassifier) Classify(ctx context.Context, message string) model.Intent {
	f.calls++
	return f.intent
}

// ---- Helpers ----

func testPhrases(t *testing.T) Phrasebook {
	t.Helper()
	tr, err := i18n.NewTranslator(i18n.LocalesFS, "en")
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	return tr
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
