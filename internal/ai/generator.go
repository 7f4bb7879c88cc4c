package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/j0lvera/devocional/internal/metrics"
	"github.com/j0lvera/devocional/internal/prompt"
)

// Kind is the type of content a request asks for.
type Kind int

const (
	KindDevotional Kind = iota
	KindReadingPlan
)

func (k Kind) String() string {
	switch k {
	case KindDevotional:
		return "devotional"
	case KindReadingPlan:
		return "reading_plan"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Messages shown when every model fails.
const (
	DevotionalFailure  = "⚠️ Ocorreu um erro ao gerar o devocional."
	ReadingPlanFailure = "⚠️ Ocorreu um erro ao gerar o plano bíblico."
)

// GenerationRequest is one validated command, ready for generation.
type GenerationRequest struct {
	Kind  Kind
	Topic string // KindDevotional
	Days  int    // KindReadingPlan
}

// Devotional builds a devotional request.
func Devotional(topic string) GenerationRequest {
	return GenerationRequest{Kind: KindDevotional, Topic: topic}
}

// ReadingPlan builds a reading-plan request.
func ReadingPlan(days int) GenerationRequest {
	return GenerationRequest{Kind: KindReadingPlan, Days: days}
}

// Result is what the user gets back. On failure Text holds the fixed
// message for the request kind.
type Result struct {
	Text      string
	Succeeded bool
}

// Generator renders prompts and runs them through the fallback chain.
type Generator struct {
	chain   *Chain
	metrics *metrics.Metrics
	logger  *zerolog.Logger
}

// NewGenerator creates a new generator.
func NewGenerator(chain *Chain, m *metrics.Metrics, logger *zerolog.Logger) *Generator {
	return &Generator{
		chain:   chain,
		metrics: m,
		logger:  logger,
	}
}

// Generate never returns an error; failures are folded into Result.
func (g *Generator) Generate(ctx context.Context, req GenerationRequest) Result {
	var instruct, failure string

	switch req.Kind {
	case KindDevotional:
		instruct = prompt.Devotional(req.Topic)
		failure = DevotionalFailure
	case KindReadingPlan:
		instruct = prompt.ReadingPlan(req.Days)
		failure = ReadingPlanFailure
	default:
		g.logger.Error().Stringer("kind", req.Kind).Msg("Unknown generation kind")
		return Result{Text: DevotionalFailure}
	}

	text, model, err := g.chain.Generate(ctx, instruct)
	g.metrics.ObserveGeneration(req.Kind.String(), err == nil)
	if err != nil {
		g.logger.Error().
			Stringer("kind", req.Kind).
			Msg("Unable to generate content, all models failed")
		return Result{Text: failure}
	}

	g.logger.Info().
		Stringer("kind", req.Kind).
		Str("model", model).
		Int("response_length", len(text)).
		Msg("Content generated")

	return Result{Text: text, Succeeded: true}
}
