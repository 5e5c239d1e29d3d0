package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounters(t *testing.T) {
	c, err := NewCollector()
	if err != nil {
		t.Fatalf("NewCollector() error = %v", err)
	}

	c.PostProcessed("ru", "ai")
	c.PostProcessed("ru", "ai")
	c.PostProcessed("en", "dropped")
	c.EventsSaved("ru", 3)
	c.AIRequest("malformed")
	c.TranslationFailed("location")
	c.GroupFailed("closed")

	if got := testutil.ToFloat64(c.postsProcessed.WithLabelValues("ru", "ai")); got != 2 {
		t.Errorf("posts ru/ai = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.eventsSaved.WithLabelValues("ru")); got != 3 {
		t.Errorf("events saved ru = %v, want 3", got)
	}
	if got := testutil.ToFloat64(c.groupsFailed.WithLabelValues("closed")); got != 1 {
		t.Errorf("group failures = %v, want 1", got)
	}
}

func TestCollectorHandler(t *testing.T) {
	c, err := NewCollector()
	if err != nil {
		t.Fatal(err)
	}
	c.ObserveRequest(http.MethodGet, "/v1/events", http.StatusOK, 15*time.Millisecond)
	c.AIRequest("accepted")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`eventbot_http_requests_total{method="GET",path="/v1/events",status="200"} 1`,
		`eventbot_ai_requests_total{outcome="accepted"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
