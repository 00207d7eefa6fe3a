package web_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-msgform/internal/backendtest"
	"github.com/goliatone/go-msgform/pkg/client"
	"github.com/goliatone/go-msgform/pkg/formclient"
	"github.com/goliatone/go-msgform/pkg/metrics"
	"github.com/goliatone/go-msgform/pkg/testsupport"
	"github.com/goliatone/go-msgform/pkg/web"
)

type fixture struct {
	backend *backendtest.Backend
	server  *web.Server
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, options ...web.Option) fixture {
	t.Helper()
	backend, srv := backendtest.NewServer(t)
	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	fc, err := formclient.New(c)
	if err != nil {
		t.Fatalf("form client: %v", err)
	}
	logger, _ := testsupport.NewLogger()
	m := metrics.New()
	options = append([]web.Option{web.WithLogger(logger), web.WithMetrics(m), web.WithHTMXSource("")}, options...)
	server, err := web.New(fc, options...)
	if err != nil {
		t.Fatalf("web server: %v", err)
	}
	return fixture{backend: backend, server: server, metrics: m}
}

func (f fixture) do(t *testing.T, method, target string, form url.Values, htmx bool) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	res := rec.Result()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, string(raw)
}

func TestIndexServesBothForms(t *testing.T) {
	f := newFixture(t)
	res, body := f.do(t, http.MethodGet, "/", nil, false)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	for _, want := range []string{`id="send-form"`, `id="retrieve-form"`, `id="display-region"`, `data-kind="idle"`, "--accent:"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "<script") {
		t.Fatalf("htmx script should be omitted when no source is configured")
	}
}

func TestIndexUnknownVariantUsesBaseTheme(t *testing.T) {
	f := newFixture(t, web.WithTitle("Message Desk"))
	res, body := f.do(t, http.MethodGet, "/?variant=nope", nil, false)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d:\n%s", res.StatusCode, body)
	}
	for _, want := range []string{"--surface: #ffffff;", "<title>Message Desk</title>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q:\n%s", want, body)
		}
	}
}

func TestSendReturnsFragmentForHTMX(t *testing.T) {
	f := newFixture(t)
	res, body := f.do(t, http.MethodPost, "/forms/send", url.Values{"name": {"alice"}, "message": {"hi"}}, true)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("htmx request should get a fragment, got:\n%s", body)
	}
	if !strings.Contains(body, `data-kind="stored"`) || !strings.Contains(body, "alice") {
		t.Fatalf("unexpected fragment:\n%s", body)
	}
	if calls := f.backend.CallsFor("createMessage"); len(calls) != 1 {
		t.Fatalf("expected one backend POST, got %d", len(calls))
	}
}

func TestSendWithoutHTMXKeepsSubmittedValues(t *testing.T) {
	f := newFixture(t)
	_, body := f.do(t, http.MethodPost, "/forms/send", url.Values{"name": {"bob"}, "message": {"a <b> c"}}, false)

	for _, want := range []string{
		`<html`,
		`id="send-name" name="name" type="text" value="bob"`,
		`a &lt;b&gt; c</textarea>`,
		`id="retrieve-name" name="name" type="text" value=""`,
		`data-kind="stored"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q:\n%s", want, body)
		}
	}
}

func TestRetrieveNotFound(t *testing.T) {
	f := newFixture(t)
	_, body := f.do(t, http.MethodPost, "/forms/retrieve", url.Values{"name": {"ghost"}}, true)

	if !strings.Contains(body, "not found for ghost") {
		t.Fatalf("expected not found message:\n%s", body)
	}
}

func TestValidationSkipsBackend(t *testing.T) {
	f := newFixture(t)
	_, body := f.do(t, http.MethodPost, "/forms/send", url.Values{"name": {"  "}, "message": {"x"}}, true)

	if !strings.Contains(body, `data-kind="validation"`) {
		t.Fatalf("expected validation region:\n%s", body)
	}
	if calls := f.backend.Calls(); len(calls) != 0 {
		t.Fatalf("expected no backend calls, got %d", len(calls))
	}
}

func TestBackendMarkupIsEscaped(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/forms/send", url.Values{"name": {"x"}, "message": {`<script>alert(1)</script>`}}, true)
	_, body := f.do(t, http.MethodPost, "/forms/retrieve", url.Values{"name": {"x"}}, true)

	if strings.Contains(body, "<script") {
		t.Fatalf("fragment contains raw markup:\n%s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup:\n%s", body)
	}
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	res, body := f.do(t, http.MethodGet, "/healthz", nil, false)
	if res.StatusCode != http.StatusOK || !strings.Contains(body, `"ok"`) {
		t.Fatalf("healthz = %d %s", res.StatusCode, body)
	}

	down := newFixture(t, web.WithHealthCheck(func(context.Context) error { return errors.New("backend down") }))
	res, body = down.do(t, http.MethodGet, "/healthz", nil, false)
	if res.StatusCode != http.StatusServiceUnavailable || !strings.Contains(body, "backend down") {
		t.Fatalf("healthz = %d %s", res.StatusCode, body)
	}
}

func TestMetricsUseRoutePatterns(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/forms/retrieve", url.Values{"name": {"ghost"}}, true)
	_, body := f.do(t, http.MethodGet, "/metrics", nil, false)

	if !strings.Contains(body, `msgform_http_requests_total{method="POST",route="/forms/retrieve",status="200"} 1`) {
		t.Fatalf("metrics missing request counter:\n%s", body)
	}
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, web.WithCORSOrigins("https://example.test"))
	req := httptest.NewRequest(http.MethodOptions, "/forms/send", nil)
	req.Header.Set("Origin", "https://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.test" {
		t.Fatalf("allow origin = %q", got)
	}
}

func TestNewRequiresFormClient(t *testing.T) {
	if _, err := web.New(nil); err == nil {
		t.Fatalf("expected error")
	}
}
