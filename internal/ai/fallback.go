package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrAllModelsFailed is returned when no model in the chain produced text.
var ErrAllModelsFailed = errors.New("all models failed")

// Chain tries models in priority order and stops at the first success.
type Chain struct {
	invoker ModelInvoker
	models  []string
	logger  *zerolog.Logger
}

// NewChain creates a fallback chain over models. The slice is copied.
func NewChain(invoker ModelInvoker, models []string, logger *zerolog.Logger) *Chain {
	return &Chain{
		invoker: invoker,
		models:  append([]string(nil), models...),
		logger:  logger,
	}
}

// Models returns the models in the order they are tried.
func (c *Chain) Models() []string {
	return append([]string(nil), c.models...)
}

// Generate runs prompt through the chain, one model at a time. It returns
// the text and the model that produced it, or an error wrapping
// ErrAllModelsFailed together with every model error.
func (c *Chain) Generate(ctx context.Context, prompt string) (string, string, error) {
	errs := make([]error, 0, len(c.models))

	for idx, model := range c.models {
		text, err := c.invoker.Invoke(ctx, prompt, model)
		if err == nil {
			if idx > 0 {
				c.logger.Info().
					Str("model", model).
					Int("attempt", idx+1).
					Msg("Fallback model succeeded")
			}
			return text, model, nil
		}

		c.logger.Warn().
			Str("model", model).
			Int("attempt", idx+1).
			Int("remaining", len(c.models)-idx-1).
			Msg("Model failed, trying next")
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return "", "", fmt.Errorf("%w: no models configured", ErrAllModelsFailed)
	}

	return "", "", errors.Join(append([]error{ErrAllModelsFailed}, errs...)...)
}
