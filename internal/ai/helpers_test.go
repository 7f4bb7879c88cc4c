package ai

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogger(t *testing.T) *zerolog.Logger {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return &logger
}

// stubCompleter replies per model; models without an entry fail with err.
type stubCompleter struct {
	mu       sync.Mutex
	replies  map[string]Reply
	errs     map[string]error
	panicOn  string
	requests []Request
}

func (s *stubCompleter) Complete(ctx context.Context, req Request) (Reply, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if req.Model == s.panicOn {
		panic("transport exploded")
	}
	if err, ok := s.errs[req.Model]; ok {
		return Reply{}, err
	}
	return s.replies[req.Model], nil
}

// stubInvoker returns canned results and records the models it was asked for.
type stubInvoker struct {
	results map[string]string
	errs    map[string]error
	calls   []string
}

func (s *stubInvoker) Invoke(ctx context.Context, prompt, model string) (string, error) {
	s.calls = append(s.calls, model)
	if err, ok := s.errs[model]; ok {
		return "", err
	}
	return s.results[model], nil
}
