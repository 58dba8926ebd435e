package metrics

import (
	"testing"

	metrictestutil "github.com/almanac-cloud/almanac/internal/metrics/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

type MetricsSuite struct {
	suite.Suite
	registry *prometheus.Registry
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsSuite))
}

func (s *MetricsSuite) SetupTest() {
	s.registry = prometheus.NewRegistry()
	s.registry.MustRegister(
		AutomationMutationsTotal,
		RunsRecordedTotal,
		CacheRequestsTotal,
		CacheInvalidationsTotal,
		BulkActionsTotal,
	)
}

func (s *MetricsSuite) TestAutomationMutationsTotalIncrements() {
	AutomationMutationsTotal.WithLabelValues("create", "success").Inc()
	AutomationMutationsTotal.WithLabelValues("update", "error").Inc()
	AutomationMutationsTotal.WithLabelValues("update", "error").Inc()

	val := metrictestutil.CounterValue(s.T(), AutomationMutationsTotal, "create", "success")
	s.GreaterOrEqual(val, float64(1))

	val = metrictestutil.CounterValue(s.T(), AutomationMutationsTotal, "update", "error")
	s.GreaterOrEqual(val, float64(2))
}

func (s *MetricsSuite) TestRunsRecordedTotalIncrements() {
	RunsRecordedTotal.WithLabelValues("completed").Inc()

	val := metrictestutil.CounterValue(s.T(), RunsRecordedTotal, "completed")
	s.GreaterOrEqual(val, float64(1))
}

func (s *MetricsSuite) TestCacheCountersIncrement() {
	CacheRequestsTotal.WithLabelValues("list", "hit").Inc()
	CacheRequestsTotal.WithLabelValues("list", "miss").Inc()
	CacheInvalidationsTotal.WithLabelValues("detail").Add(3)

	s.GreaterOrEqual(metrictestutil.CounterValue(s.T(), CacheRequestsTotal, "list", "hit"), float64(1))
	s.GreaterOrEqual(metrictestutil.CounterValue(s.T(), CacheRequestsTotal, "list", "miss"), float64(1))
	s.GreaterOrEqual(metrictestutil.CounterValue(s.T(), CacheInvalidationsTotal, "detail"), float64(3))
}

func (s *MetricsSuite) TestBulkActionsTotalIncrements() {
	BulkActionsTotal.WithLabelValues("enable", "partial_failure").Inc()

	val := metrictestutil.CounterValue(s.T(), BulkActionsTotal, "enable", "partial_failure")
	s.GreaterOrEqual(val, float64(1))
}
