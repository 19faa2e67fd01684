package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCodeIssued("verification")
	c.RecordCodeIssued("verification")
	c.RecordCodeIssued("reset")
	c.RecordCodeRejected("reset")
	c.RecordDeliveryFailure("verification")
	c.RecordLogin("success")
	c.RecordHTTPStatus(http.StatusBadRequest)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.codesIssued.WithLabelValues("verification")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.codesIssued.WithLabelValues("reset")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.codesRejected.WithLabelValues("reset")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.deliveryFailures.WithLabelValues("verification")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.logins.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpStatus.WithLabelValues("400")))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin("invalid_credentials")

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `auth_logins_total{outcome="invalid_credentials"} 1`)
}
