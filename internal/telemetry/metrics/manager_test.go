package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	promcl "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	require.NotNil(t, m)

	m.CounterDashboardLoads.WithLabelValues(ResultOK).Inc()
	m.CounterMutations.WithLabelValues("record_weight", ResultFailed).Inc()
	m.CounterStaleDiscards.Inc()
	m.GaugeActiveSessions.Set(3)
	m.HistogramGatewayCallDuration.WithLabelValues("get_plans").Observe(0.1)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterDashboardLoads.WithLabelValues(ResultOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterMutations.WithLabelValues("record_weight", ResultFailed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterStaleDiscards))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.GaugeActiveSessions))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	var gatewayDurations *promcl.MetricFamily
	for _, f := range families {
		names[f.GetName()] = true
		if f.GetName() == "backend_test_server_gateway_call_duration_seconds" {
			gatewayDurations = f
		}
	}
	assert.True(t, names["backend_test_server_dashboard_loads"])
	assert.True(t, names["backend_test_server_dashboard_stale_discards"])
	assert.True(t, names["backend_test_server_gateway_call_duration_seconds"])

	require.NotNil(t, gatewayDurations)
	assert.Equal(t, promcl.MetricType_HISTOGRAM, gatewayDurations.GetType())
	require.Len(t, gatewayDurations.GetMetric(), 1)
	histogram := gatewayDurations.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(1), histogram.GetSampleCount())
	assert.InDelta(t, 0.1, histogram.GetSampleSum(), 1e-9)
}

func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus()
	require.NotNil(t, reg)
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
