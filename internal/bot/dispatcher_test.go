package bot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j0lvera/devocional/internal/ai"
	"github.com/j0lvera/devocional/internal/config"
	"github.com/j0lvera/devocional/internal/metrics"
	"github.com/j0lvera/devocional/internal/prompt"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeGenerator struct {
	mu       sync.Mutex
	requests []ai.GenerationRequest
	result   ai.Result
}

func (f *fakeGenerator) Generate(ctx context.Context, req ai.GenerationRequest) ai.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.result
}

type recordingReplier struct {
	messages []Message
	typing   int
	err      error
}

func (r *recordingReplier) Reply(ctx context.Context, msg Message) error {
	r.messages = append(r.messages, msg)
	return r.err
}

func (r *recordingReplier) Typing(ctx context.Context) error {
	r.typing++
	return nil
}

func (r *recordingReplier) texts() []string {
	out := make([]string, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m.Text)
	}
	return out
}

func newTestDispatcher(t *testing.T, gen Generator) *Dispatcher {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return NewDispatcher(gen, config.DefaultCatalog.Topics, &logger)
}

func run(t *testing.T, d *Dispatcher, text string) *recordingReplier {
	cmd, ok := ParseCommand(text)
	require.True(t, ok, "not a command: %q", text)
	r := &recordingReplier{}
	d.Handle(context.Background(), cmd, r)
	return r
}

// echoInvoker returns the prompt it was sent, standing in for a model.
type echoInvoker struct {
	calls int
}

func (e *echoInvoker) Invoke(ctx context.Context, p, model string) (string, error) {
	e.calls++
	return "RESPOSTA: " + p, nil
}

// ==========================
// Command Parsing
// ==========================

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		want Command
		ok   bool
	}{
		{text: "/start", want: Command{Name: "start"}, ok: true},
		{text: "/Devocional  Esperança ", want: Command{Name: "devocional", Args: "esperança"}, ok: true},
		{text: "/plano@DevocionalBot 3   Meses", want: Command{Name: "plano", Args: "3 meses"}, ok: true},
		{text: "/plano\n30 dias", want: Command{Name: "plano", Args: "30 dias"}, ok: true},
		{text: "olá", ok: false},
		{text: "/", ok: false},
		{text: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseCommand(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ==========================
// Static Commands
// ==========================

func TestDispatcher_Start(t *testing.T) {
	r := run(t, newTestDispatcher(t, &fakeGenerator{}), "/start")

	require.Len(t, r.messages, 1)
	assert.True(t, r.messages[0].Markdown)
	assert.Contains(t, r.messages[0].Text, "/devocional <tema>")
	assert.Contains(t, r.messages[0].Text, "/plano")
}

func TestDispatcher_Topics(t *testing.T) {
	for _, name := range []string{"/temas", "/topics"} {
		r := run(t, newTestDispatcher(t, &fakeGenerator{}), name)

		require.Len(t, r.messages, 1)
		text := r.messages[0].Text
		assert.Contains(t, text, "• Fé")
		assert.Contains(t, text, "• Esperança")
		assert.Equal(t, len(config.DefaultCatalog.Topics), strings.Count(text, "• "))
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	gen := &fakeGenerator{}
	r := run(t, newTestDispatcher(t, gen), "/abc")

	assert.Equal(t, []string{unknownCommand}, r.texts())
	assert.Empty(t, gen.requests)
}

// ==========================
// Devotional
// ==========================

func TestDispatcher_Devotional(t *testing.T) {
	gen := &fakeGenerator{result: ai.Result{Text: "Romanos 15:13 ...", Succeeded: true}}
	r := run(t, newTestDispatcher(t, gen), "/devocional esperan")

	require.Equal(t, []ai.GenerationRequest{ai.Devotional("esperança")}, gen.requests)
	assert.Equal(t, []string{
		devotionalProgress,
		"📖 *Devocional sobre Esperança*\n\nRomanos 15:13 ...",
	}, r.texts())
	assert.True(t, r.messages[1].Markdown)
	assert.Equal(t, 1, r.typing)
}

func TestDispatcher_DevotionalValidation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "missing argument", text: "/devocional", want: devotionalUsage},
		{name: "invalid topic", text: "/devocional tecnologia", want: invalidTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			r := run(t, newTestDispatcher(t, gen), tt.text)

			assert.Equal(t, []string{tt.want}, r.texts())
			assert.Empty(t, gen.requests, "validation failures never reach generation")
			assert.Zero(t, r.typing)
		})
	}
}

func TestDispatcher_DevotionalFailure(t *testing.T) {
	gen := &fakeGenerator{result: ai.Result{Text: ai.DevotionalFailure}}
	r := run(t, newTestDispatcher(t, gen), "/devotional fé")

	assert.Equal(t, []string{devotionalProgress, ai.DevotionalFailure}, r.texts())
	assert.False(t, r.messages[1].Markdown)
}

// ==========================
// Reading Plan
// ==========================

func TestDispatcher_Plan(t *testing.T) {
	tests := []struct {
		text string
		days int
	}{
		{text: "/plano 30 dias", days: 30},
		{text: "/plano 3 meses", days: 90},
		{text: "/plan 2 months", days: 60},
		{text: "/plano 1 dia", days: 1},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			gen := &fakeGenerator{result: ai.Result{Text: "Dia 1: Gênesis 1", Succeeded: true}}
			r := run(t, newTestDispatcher(t, gen), tt.text)

			require.Equal(t, []ai.GenerationRequest{ai.ReadingPlan(tt.days)}, gen.requests)
			assert.Equal(t, []string{
				"⏳ Montando plano bíblico para " + prompt.DayLabel(tt.days) + "...",
				"📘 *Plano Bíblico – " + prompt.DayLabel(tt.days) + "*\n\nDia 1: Gênesis 1",
			}, r.texts())
		})
	}
}

func TestDispatcher_PlanValidation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "missing argument", text: "/plano", want: planUsage},
		{name: "missing unit", text: "/plano 10", want: planMissingUnit},
		{name: "malformed", text: "/plano abc dias", want: planMalformed},
		{name: "zero", text: "/plano 0 dias", want: planMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			r := run(t, newTestDispatcher(t, gen), tt.text)

			assert.Equal(t, []string{tt.want}, r.texts())
			assert.Empty(t, gen.requests)
		})
	}
}

func TestDispatcher_PlanFailure(t *testing.T) {
	gen := &fakeGenerator{result: ai.Result{Text: ai.ReadingPlanFailure}}
	r := run(t, newTestDispatcher(t, gen), "/plano 7 dias")

	assert.Equal(t, []string{"⏳ Montando plano bíblico para 7 dias...", ai.ReadingPlanFailure}, r.texts())
}

func TestDispatcher_ReplyErrorsAreSwallowed(t *testing.T) {
	d := newTestDispatcher(t, &fakeGenerator{})
	cmd, _ := ParseCommand("/start")

	r := &recordingReplier{err: errors.New("telegram down")}
	assert.NotPanics(t, func() { d.Handle(context.Background(), cmd, r) })
	assert.Len(t, r.messages, 1)
}

// ==========================
// End-to-end with the real pipeline
// ==========================

func newPipeline(t *testing.T, inv ai.ModelInvoker) *ai.Generator {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	chain := ai.NewChain(inv, config.DefaultCatalog.Models, &logger)
	return ai.NewGenerator(chain, metrics.NewNop(), &logger)
}

func TestEndToEnd_DevotionalTypo(t *testing.T) {
	inv := &echoInvoker{}
	r := run(t, newTestDispatcher(t, newPipeline(t, inv)), "/devotional espernça")

	require.Len(t, r.messages, 2)
	final := r.messages[1].Text
	assert.True(t, strings.HasPrefix(final, "📖 *Devocional sobre Esperança*\n\nRESPOSTA: "))
	assert.Contains(t, final, "'esperança'")
	assert.Equal(t, 1, inv.calls, "first model succeeds, no fallback")
}

func TestEndToEnd_PlanMonths(t *testing.T) {
	inv := &echoInvoker{}
	r := run(t, newTestDispatcher(t, newPipeline(t, inv)), "/plan 2 months")

	require.Len(t, r.messages, 2)
	assert.Equal(t, "⏳ Montando plano bíblico para 60 dias...", r.messages[0].Text)
	assert.Contains(t, r.messages[1].Text, "📘 *Plano Bíblico – 60 dias*")
	assert.Contains(t, r.messages[1].Text, "PLANO BÍBLICO completo para 60 dias")
}

type failingInvoker struct{ calls int }

func (f *failingInvoker) Invoke(ctx context.Context, p, model string) (string, error) {
	f.calls++
	return "", &ai.ModelError{Model: model, Kind: ai.KindTransport, Err: errors.New("503")}
}

func TestEndToEnd_AllModelsFail(t *testing.T) {
	inv := &failingInvoker{}
	r := run(t, newTestDispatcher(t, newPipeline(t, inv)), "/devocional amor")

	assert.Equal(t, []string{devotionalProgress, ai.DevotionalFailure}, r.texts())
	assert.Equal(t, len(config.DefaultCatalog.Models), inv.calls)
}
