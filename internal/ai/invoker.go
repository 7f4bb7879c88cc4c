package ai

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	"github.com/j0lvera/devocional/internal/metrics"
)

// ErrorKind classifies a per-model failure.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindNoContent ErrorKind = "no_content"
)

// ModelError is the failure of one model. The chain treats every kind the
// same and moves on to the next model.
type ModelError struct {
	Model string
	Kind  ErrorKind
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %s: %v", e.Model, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// ModelInvoker calls a single named model.
type ModelInvoker interface {
	Invoke(ctx context.Context, prompt, model string) (string, error)
}

// InvokerConfig holds the generation budget applied to every call.
type InvokerConfig struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration // per call, 0 = no deadline
}

// Invoker implements ModelInvoker on top of a Completer.
type Invoker struct {
	config    InvokerConfig
	completer Completer
	metrics   *metrics.Metrics
	logger    *zerolog.Logger
}

// NewInvoker creates a new model invoker.
func NewInvoker(
	config InvokerConfig,
	completer Completer,
	m *metrics.Metrics,
	logger *zerolog.Logger,
) *Invoker {
	return &Invoker{
		config:    config,
		completer: completer,
		metrics:   m,
		logger:    logger,
	}
}

// Invoke sends prompt to model and returns the trimmed reply text. Every
// failure, including a panic in the transport, comes back as a *ModelError.
func (i *Invoker) Invoke(ctx context.Context, prompt, model string) (text string, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			i.logger.Error().
				Str("model", model).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("Completion call panicked")
			text = ""
			err = &ModelError{Model: model, Kind: KindTransport, Err: fmt.Errorf("panic: %v", r)}
		}
		i.metrics.ObserveModelCall(model, err)
	}()

	if i.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.config.Timeout)
		defer cancel()
	}

	i.logger.Debug().
		Str("model", model).
		Int("prompt_length", len(prompt)).
		Msg("Querying model")

	reply, err := i.completer.Complete(ctx, Request{
		Model:       model,
		Prompt:      prompt,
		MaxTokens:   i.config.MaxTokens,
		Temperature: i.config.Temperature,
	})
	if err != nil {
		i.logger.Error().
			Err(err).
			Str("model", model).
			Dur("elapsed", time.Since(start)).
			Msg("Completion call failed")
		return "", &ModelError{Model: model, Kind: KindTransport, Err: err}
	}

	text, err = reply.Text()
	if err != nil {
		i.logger.Warn().
			Err(err).
			Str("model", model).
			Int("output_items", len(reply.Output)).
			Msg("Reply carried no text")
		return "", &ModelError{Model: model, Kind: KindNoContent, Err: err}
	}

	i.logger.Debug().
		Str("model", model).
		Int("response_length", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("Got response")

	return text, nil
}
