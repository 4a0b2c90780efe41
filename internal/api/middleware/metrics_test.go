package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Get("/loans/{loanID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/loans/1", "/loans/2", "/missing"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.NotEqual(t, http.StatusInternalServerError, rec.Code)
	}

	// Requests to the same route pattern share one series, keyed by the
	// numeric status code.
	expectedTotal := `
		# HELP credit_approval_http_requests_total Total number of HTTP requests.
		# TYPE credit_approval_http_requests_total counter
		credit_approval_http_requests_total{method="GET",path="/loans/{loanID}",status_code="200"} 2
		credit_approval_http_requests_total{method="GET",path="/missing",status_code="404"} 1
	`
	require.NoError(t, testutil.CollectAndCompare(httpRequestsTotal, strings.NewReader(expectedTotal)))
}
