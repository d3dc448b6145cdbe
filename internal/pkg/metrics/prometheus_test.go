package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lss-foundry/internal/pkg/metrics"
)

type ManagerTestSuite struct {
	suite.Suite
	registry *prometheus.Registry
	manager  *metrics.Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	s.registry = prometheus.NewRegistry()
	s.manager = metrics.NewManager(
		metrics.WithNamespace("test"),
		metrics.WithRegistry(s.registry),
	)
}

func (s *ManagerTestSuite) TestRecordsConversions() {
	s.manager.ConversionFinished(metrics.OutcomeSuccess, 2*time.Millisecond)
	s.manager.ConversionFinished(metrics.OutcomeSuccess, 3*time.Millisecond)
	s.manager.ConversionFinished(metrics.OutcomeInvalidInput, time.Millisecond)
	s.manager.SourceDegraded()
	s.manager.VisionResolved("darkvision", "race")

	count, err := testutil.GatherAndCount(s.registry,
		"test_converter_degraded_sources_total",
		"test_converter_vision_resolved_total",
		"test_converter_conversion_duration_seconds")
	s.Require().NoError(err)
	s.Equal(3, count)

	count, err = testutil.GatherAndCount(s.registry, "test_converter_conversions_total")
	s.Require().NoError(err)
	s.Equal(2, count, "one series per outcome")
}

func (s *ManagerTestSuite) TestHandlerServesRegistry() {
	s.manager.SourceDegraded()

	rec := httptest.NewRecorder()
	s.manager.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	s.Equal(http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "test_converter_degraded_sources_total 1")
}

func (s *ManagerTestSuite) TestDiscardIsSafe() {
	s.NotPanics(func() {
		metrics.Discard.ConversionFinished(metrics.OutcomeError, time.Second)
		metrics.Discard.SourceDegraded()
		metrics.Discard.VisionResolved("normal", "race")
	})
}
