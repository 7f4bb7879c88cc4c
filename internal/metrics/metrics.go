package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/j0lvera/devocional/internal/config"
)

const namespace = "devocional"

// Outcome labels shared by every counter.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the counters recorded by the generation pipeline.
type Metrics struct {
	registry *prometheus.Registry

	ModelCalls  *prometheus.CounterVec
	Generations *prometheus.CounterVec
}

// New registers the pipeline counters on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		ModelCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "model_calls_total",
				Help:      "Completion calls per model and outcome.",
			},
			[]string{"model", "outcome"},
		),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Generation requests per content kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
	}

	reg.MustRegister(m.ModelCalls, m.Generations)

	return m
}

// NewNop returns counters bound to a private registry, for tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveModelCall records one completion attempt.
func (m *Metrics) ObserveModelCall(model string, err error) {
	if m == nil {
		return
	}
	m.ModelCalls.WithLabelValues(model, outcome(err == nil)).Inc()
}

// ObserveGeneration records one finished request.
func (m *Metrics) ObserveGeneration(kind string, succeeded bool) {
	if m == nil {
		return
	}
	m.Generations.WithLabelValues(kind, outcome(succeeded)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

type Params struct {
	fx.In

	Config *config.Config
	Logger zerolog.Logger
}

func NewFx(lc fx.Lifecycle, p Params) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := New(reg)

	if p.Config.MetricsAddr == "" {
		return m
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              p.Config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				p.Logger.Info().Str("addr", srv.Addr).Msg("starting metrics server...")
				ln, err := net.Listen("tcp", srv.Addr)
				if err != nil {
					return fmt.Errorf("unable to listen on %s: %w", srv.Addr, err)
				}
				go func() {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						p.Logger.Error().Err(err).Msg("metrics server stopped")
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				p.Logger.Info().Msg("stopping metrics server...")
				return srv.Shutdown(ctx)
			},
		},
	)

	return m
}

func Module() fx.Option {
	return fx.Module(
		"metrics",
		fx.Provide(
			NewFx,
		),
	)
}
