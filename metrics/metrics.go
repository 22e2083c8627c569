// Package metrics exports the progress of an attack as prometheus metrics.
package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/antoonpurnal/clangover/attack"
)

const (
	MetricsNamespace = "clangover"

	shutdownTimeout = time.Second * 15
)

// Collector is an attack.Observer that maintains the metrics of a run.
type Collector struct {
	truth []int16

	samples      prometheus.Counter
	discarded    prometheus.Counter
	coefficients *prometheus.CounterVec
	confidence   prometheus.Gauge
	coefficient  prometheus.Gauge
	iterations   prometheus.Histogram

	index         int
	lastIteration int
	lastDiscarded uint64
}

// NewCollector creates the metrics of a run and registers them on registerer.
// truth may be nil, in which case the outcome of a coefficient is only "known"
// or "unknown".
func NewCollector(registerer prometheus.Registerer, truth []int16) (*Collector, error) {

	c := &Collector{
		truth: truth,
		index: -1,
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "samples_total",
			Help:      "Number of timing measurements",
		}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "discarded_samples_total",
			Help:      "Number of timing measurements rejected as outliers",
		}),
		coefficients: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "coefficients_total",
			Help:      "Number of finalized coefficients by stopping state and outcome",
		}, []string{"state", "outcome"}),
		confidence: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "confidence",
			Help:      "Confidence in the guess of the coefficient under attack",
		}),
		coefficient: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "coefficient",
			Help:      "Index of the coefficient under attack",
		}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "iterations_per_coefficient",
			Help:      "Number of measurements spent on a coefficient",
			Buckets:   prometheus.ExponentialBuckets(512, 2, 16),
		}),
	}

	for _, collector := range []prometheus.Collector{
		c.samples,
		c.discarded,
		c.coefficients,
		c.confidence,
		c.coefficient,
		c.iterations,
	} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// counts the measurements of coefficient index up to iteration.
func (c *Collector) advance(index, iteration int, discarded uint64) {
	if index != c.index {
		c.index = index
		c.lastIteration = 0
		c.lastDiscarded = 0
		c.coefficient.Set(float64(index))
	}
	c.samples.Add(float64(iteration - c.lastIteration))
	c.discarded.Add(float64(discarded - c.lastDiscarded))
	c.lastIteration, c.lastDiscarded = iteration, discarded
}

// Epoch implements attack.Observer. The measurement taken on the evaluation
// iteration is counted when the next epoch or the result arrives.
func (c *Collector) Epoch(s attack.Snapshot) {
	c.advance(s.Index, s.Iteration, s.Discarded)
	c.confidence.Set(float64(s.Confidence))
}

// Finalized implements attack.Observer.
func (c *Collector) Finalized(r attack.Result) {
	c.advance(r.Index, r.Iterations, r.Discarded)
	c.confidence.Set(float64(r.Confidence))
	c.iterations.Observe(float64(r.Iterations))
	c.coefficients.WithLabelValues(r.State.String(), c.outcome(r)).Inc()
}

func (c *Collector) outcome(r attack.Result) string {
	switch {
	case !r.Guess.Known:
		return "unknown"
	case c.truth == nil:
		return "known"
	case r.Guess.Matches(c.truth[r.Index]):
		return "correct"
	default:
		return "wrong"
	}
}

// CreateMetricsListener listens on the TCP address addr.
func CreateMetricsListener(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

// ServeMetrics serves the metrics of gatherer on /metrics until shutdownC is closed.
func ServeMetrics(l net.Listener, gatherer prometheus.Gatherer, shutdownC <-chan struct{}, log *zerolog.Logger) error {

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		errC <- server.Serve(l)
	}()
	log.Info().Str("addr", l.Addr().String()).Msg("Starting metrics server")

	var err error
	select {
	case err = <-errC:
	case <-shutdownC:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		_ = server.Shutdown(ctx)
		cancel()
		err = <-errC
	}

	if err == http.ErrServerClosed {
		log.Info().Msg("Metrics server stopped")
		return nil
	}
	log.Error().Err(err).Msg("Metrics server quit with error")
	return err
}
