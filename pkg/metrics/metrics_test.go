package metrics_test

import (
	"testing"
	"time"

	"checker/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestCheckerStatsCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := metrics.NewCheckerStats(reg)

	s.ObserveOutcome("Valid")
	s.ObserveOutcome("Valid")
	s.ObserveOutcome("Unauthorized")
	s.ObserveBatch(3, 2*time.Second)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]float64{}
	for _, fam := range families {
		if fam.GetName() != "checker_credentials_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" {
					byName[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}

	require.InDelta(t, 2.0, byName["Valid"], 0.001)
	require.InDelta(t, 1.0, byName["Unauthorized"], 0.001)
}

func TestCheckerStatsDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewCheckerStats(reg)

	require.Panics(t, func() {
		metrics.NewCheckerStats(reg)
	})
}
