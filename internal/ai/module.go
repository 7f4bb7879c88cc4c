package ai

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/j0lvera/devocional/internal/config"
	"github.com/j0lvera/devocional/internal/metrics"
)

// Params for creating the generation pipeline
type Params struct {
	fx.In

	Config  *config.Config
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// Pipeline is the set of components the ai module provides
type Pipeline struct {
	fx.Out

	Completer Completer
	Chain     *Chain
	Generator *Generator
}

// New wires the completer, invoker and fallback chain from configuration
func New(p Params) (Pipeline, error) {
	completer, err := NewLangChainCompleter(p.Config.APIKey, p.Config.BaseURL)
	if err != nil {
		return Pipeline{}, err
	}

	logger := p.Logger.With().Str("component", "ai").Logger()

	invoker := NewInvoker(
		InvokerConfig{
			MaxTokens:   p.Config.MaxTokens,
			Temperature: p.Config.Temperature,
			Timeout:     p.Config.CallTimeout,
		},
		completer,
		p.Metrics,
		&logger,
	)
	chain := NewChain(invoker, p.Config.Catalog.Models, &logger)

	logger.Info().Strs("models", chain.Models()).Msg("generation pipeline ready")

	return Pipeline{
		Completer: completer,
		Chain:     chain,
		Generator: NewGenerator(chain, p.Metrics, &logger),
	}, nil
}

// Module provides the generation pipeline
func Module() fx.Option {
	return fx.Module(
		"ai",
		fx.Provide(
			New,
		),
	)
}
