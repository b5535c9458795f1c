package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/rafhaeldeandrade/south-american-universities/pkg/metrics"
)

func TestCounters(t *testing.T) {
	m := metrics.New()
	m.IncAccountsCreated()
	m.IncAccountsCreated()
	m.IncUniversityMutation("delete")

	require.Equal(t, 2.0, testutil.ToFloat64(m.AccountsCreated))
	require.Equal(t, 1.0, testutil.ToFloat64(m.UniversityMutations.WithLabelValues("delete")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.UniversityMutations.WithLabelValues("create")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.IncAccountsCreated()
		m.IncPasswordsChanged()
		m.IncUniversityMutation("create")
		m.IncNotificationsFailed()
	})
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	require.NotPanics(t, func() {
		metrics.New()
		metrics.New()
	})
}
