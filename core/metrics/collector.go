package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hajimekit/hajime/core/dispatcher"
	"github.com/hajimekit/hajime/core/session"
)

const (
	DefaultNamespace = "hajime"
	DefaultPath      = "/metrics"
)

// Registerer is the subset of prometheus.Registerer the collector needs.
type Registerer = prometheus.Registerer

// Option configures a Collector.
type Option func(*Collector)

// WithNamespace prefixes every metric name.
func WithNamespace(ns string) Option {
	return func(c *Collector) {
		c.namespace = ns
	}
}

// WithBuckets overrides the latency histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Collector) {
		if len(buckets) > 0 {
			c.buckets = buckets
		}
	}
}

// Collector records dispatch outcomes and latencies.
// It implements dispatcher.Observer.
type Collector struct {
	namespace string
	buckets   []float64
	reg       Registerer

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the dispatch collectors and registers them on reg.
// Every outcome label is pre-initialized so series exist from the start.
func New(reg Registerer, opts ...Option) (*Collector, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}

	c := &Collector{
		namespace: DefaultNamespace,
		buckets:   prometheus.DefBuckets,
		reg:       reg,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.namespace,
		Subsystem: "dispatch",
		Name:      "requests_total",
		Help:      "Dispatched requests by terminal outcome.",
	}, []string{"outcome"})

	c.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.namespace,
		Subsystem: "dispatch",
		Name:      "request_duration_seconds",
		Help:      "Time spent dispatching a request, by terminal outcome.",
		Buckets:   c.buckets,
	}, []string{"outcome"})

	if err := register(reg, c.requests, c.duration); err != nil {
		return nil, err
	}

	for _, o := range dispatcher.Outcomes {
		c.requests.WithLabelValues(string(o))
		c.duration.WithLabelValues(string(o))
	}

	return c, nil
}

// ObserveDispatch implements dispatcher.Observer.
func (c *Collector) ObserveDispatch(outcome dispatcher.Outcome, elapsed time.Duration) {
	c.requests.WithLabelValues(string(outcome)).Inc()
	c.duration.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
}

// WatchSessions registers gauges and counters reading live values from store.
func (c *Collector) WatchSessions(store *session.MemoryStore) error {
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace: c.namespace,
			Subsystem: "session_store",
			Name:      name,
			Help:      help,
		}
	}

	return register(c.reg,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts(opts("sessions", "Live sessions held by the store.")),
			func() float64 { return float64(store.Len()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts(opts("created_total", "Sessions minted.")),
			func() float64 { return float64(store.Stats().Created) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts(opts("expired_total", "Sessions removed after idling past the TTL.")),
			func() float64 { return float64(store.Stats().Expired) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts(opts("evicted_total", "Sessions removed to respect the capacity bound.")),
			func() float64 { return float64(store.Stats().Evicted) }),
	)
}

func register(reg Registerer, cs ...prometheus.Collector) error {
	var errs []error
	for _, col := range cs {
		if err := reg.Register(col); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrRegister, errors.Join(errs...))
	}
	return nil
}
