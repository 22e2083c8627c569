package metrics_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antoonpurnal/clangover/attack"
	"github.com/antoonpurnal/clangover/metrics"
)

func TestCollector(t *testing.T) {

	registry := prometheus.NewRegistry()
	truth := []int16{0, 1, -1, 2}

	c, err := metrics.NewCollector(registry, truth)
	require.NoError(t, err)

	// registering twice fails
	_, err = metrics.NewCollector(registry, truth)
	require.Error(t, err)

	c.Epoch(attack.Snapshot{Index: 0, Iteration: 0})
	c.Epoch(attack.Snapshot{Index: 0, Iteration: 512, Discarded: 2, Confidence: 1})
	c.Finalized(attack.Result{Index: 0, Guess: attack.Known(0), State: attack.Converged, Iterations: 8193, Discarded: 5, Confidence: 15})

	c.Epoch(attack.Snapshot{Index: 1, Iteration: 0})
	c.Epoch(attack.Snapshot{Index: 1, Iteration: 512, Discarded: 1})
	c.Finalized(attack.Result{Index: 1, Guess: attack.Known(-1), State: attack.Exhausted, Iterations: 1000, Discarded: 1, Confidence: 3})

	c.Finalized(attack.Result{Index: 2, Guess: attack.Unknown, State: attack.Exhausted, Iterations: 2000, Extended: true})

	families, err := registry.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil && len(m.GetLabel()) == 0:
				values[mf.GetName()] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				values[mf.GetName()+"/count"] = float64(m.GetHistogram().GetSampleCount())
				values[mf.GetName()+"/sum"] = m.GetHistogram().GetSampleSum()
			}
		}
	}

	assert.Equal(t, float64(8193+1000+2000), values["clangover_samples_total"])
	assert.Equal(t, float64(6), values["clangover_discarded_samples_total"])
	assert.Equal(t, float64(2), values["clangover_coefficient"])
	assert.Equal(t, float64(0), values["clangover_confidence"])
	assert.Equal(t, float64(3), values["clangover_iterations_per_coefficient/count"])
	assert.Equal(t, float64(11193), values["clangover_iterations_per_coefficient/sum"])

	// labels are exposed sorted by name
	expected := `
# HELP clangover_coefficients_total Number of finalized coefficients by stopping state and outcome
# TYPE clangover_coefficients_total counter
clangover_coefficients_total{outcome="correct",state="converged"} 1
clangover_coefficients_total{outcome="unknown",state="exhausted"} 1
clangover_coefficients_total{outcome="wrong",state="exhausted"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "clangover_coefficients_total"))
}

func TestCollectorWithoutTruth(t *testing.T) {

	registry := prometheus.NewRegistry()
	c, err := metrics.NewCollector(registry, nil)
	require.NoError(t, err)

	c.Finalized(attack.Result{Index: 7, Guess: attack.Known(2), State: attack.Converged, Iterations: 600})

	n, err := testutil.GatherAndCount(registry, "clangover_coefficients_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	expected := `
# HELP clangover_samples_total Number of timing measurements
# TYPE clangover_samples_total counter
clangover_samples_total 600
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "clangover_samples_total"))
}

func TestServeMetrics(t *testing.T) {

	registry := prometheus.NewRegistry()
	_, err := metrics.NewCollector(registry, nil)
	require.NoError(t, err)

	l, err := metrics.CreateMetricsListener("127.0.0.1:0")
	require.NoError(t, err)

	log := zerolog.Nop()
	shutdownC := make(chan struct{})
	errC := make(chan error, 1)
	go func() {
		errC <- metrics.ServeMetrics(l, registry, shutdownC, &log)
	}()

	resp, err := http.Get("http://" + l.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "clangover_samples_total 0")

	close(shutdownC)
	require.NoError(t, <-errC)
}
