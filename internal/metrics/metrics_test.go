package metrics_test

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/5w1tchy/vitallife-forms/internal/metrics"
)

func TestObserve(t *testing.T) {
	m := metrics.New()

	m.ObserveAssessment("WEAK")
	m.ObserveAssessment("WEAK")
	m.ObserveRutFormat(true)
	m.ObservePhotoPreview("empty")
	m.ObserveRequest("GET", 200, 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Assessments.WithLabelValues("WEAK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RutFormats.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PhotoPreviews.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "200")))
}

func TestObserveRequest_BoundedMethodLabels(t *testing.T) {
	m := metrics.New()

	for i := range 500 {
		m.ObserveRequest(fmt.Sprintf("X%d", i), 405, 0.001)
	}
	m.ObserveRequest("GET", 200, 0.001)
	m.ObserveRequest("OPTIONS", 204, 0.001)

	assert.Equal(t, 3, testutil.CollectAndCount(m.Requests))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.Requests.WithLabelValues("other", "405")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.Latency))
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.ObserveAssessment("STRONG")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `forms_password_assessments_total{tier="STRONG"} 1`)
}
