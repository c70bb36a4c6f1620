package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStatusTransition(t *testing.T) {
	before := testutil.ToFloat64(statusTransitionsTotal.WithLabelValues("ACTIVE", "ON_LEAVE"))

	RecordStatusTransition("ACTIVE", "ON_LEAVE")
	RecordStatusTransition("ACTIVE", "ON_LEAVE")

	assert.Equal(t, before+2, testutil.ToFloat64(statusTransitionsTotal.WithLabelValues("ACTIVE", "ON_LEAVE")))
}

func TestRecordRetirement_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(retirementsTotal.WithLabelValues("AUTOMATIC"))

	RecordRetirement("AUTOMATIC", 0)
	RecordRetirement("AUTOMATIC", 3)

	assert.Equal(t, before+3, testutil.ToFloat64(retirementsTotal.WithLabelValues("AUTOMATIC")))
}

func TestHandler_ExposesCounters(t *testing.T) {
	RecordLeaveDecision("APPROVED")
	RecordAPIRequest("GET", "/api/v1/employees", 200, 0.01)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(body, `personnel_leave_decisions_total{status="APPROVED"}`))
	assert.True(t, strings.Contains(body, `personnel_http_requests_total{method="GET",path="/api/v1/employees",status="200"}`))
}
