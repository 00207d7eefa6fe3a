package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-msgform/pkg/metrics"
)

func TestObserveSubmission(t *testing.T) {
	m := metrics.New()
	m.ObserveSubmission("send", "stored")
	m.ObserveSubmission("send", "stored")
	m.ObserveSubmission("retrieve", "not_found")

	if got := testutil.ToFloat64(m.Submissions.WithLabelValues("send", "stored")); got != 2 {
		t.Fatalf("send/stored = %v", got)
	}
	if got := testutil.ToFloat64(m.Submissions.WithLabelValues("retrieve", "not_found")); got != 1 {
		t.Fatalf("retrieve/not_found = %v", got)
	}
}

func TestObserveRequest(t *testing.T) {
	m := metrics.New()
	m.ObserveRequest("createMessage", 200, 20*time.Millisecond)
	m.ObserveRequest("createMessage", 0, time.Second)

	if got := testutil.ToFloat64(m.BackendStatus.WithLabelValues("createMessage", "0")); got != 1 {
		t.Fatalf("transport failures = %v", got)
	}
	if n := testutil.CollectAndCount(m.BackendDuration); n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := metrics.New()
	m.ObserveSubmission("retrieve", "retrieved")
	m.ObserveHTTP("GET", "/", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`msgform_submissions_total{form="retrieve",outcome="retrieved"} 1`,
		`msgform_http_requests_total{method="GET",route="/",status="200"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q:\n%s", want, body)
		}
	}
}
