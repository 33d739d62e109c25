package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/prometheus/client_golang/prometheus"

	"samvidhan/internal/answer"
	"samvidhan/internal/config"
	"samvidhan/internal/handlers"
	"samvidhan/internal/handlers/api"
	"samvidhan/internal/history"
	"samvidhan/internal/metrics"
	"samvidhan/internal/testutil"
	"samvidhan/internal/topic"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:           "development",
		BaseURL:       "http://localhost:8501",
		SessionSecret: "test-secret-that-is-long-enough-for-production",
		SiteTitle:     "Samvidhan Sathi",
		SiteTagline:   "Indian Constitution Chatbot",
		SiteFooter:    "footer",
	}
}

func newTestServer(t *testing.T, gen answer.Generator, checks map[string]handlers.ReadyFunc) *Server {
	t.Helper()

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)

	s := New(testConfig(), nil)
	s.RegisterRoutes(Deps{
		Answers:     answer.NewService(topic.Default(), gen, answer.WithObserver(rec.Observe)),
		Page:        handlers.NewPageData(nil),
		Gatherer:    reg,
		ReadyChecks: checks,
	})
	return s
}

// TestEncryptCookieSessionRoundTrip verifies that the encryptcookie +
// session middleware stack does not panic when a client replays encrypted
// session cookies across multiple requests.
func TestEncryptCookieSessionRoundTrip(t *testing.T) {
	encryptionKey := deriveEncryptionKey("test-secret-that-is-long-enough-for-production")

	app := fiber.New()
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: encryptionKey,
	}))
	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	app.Post("/session-set", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sess.Set("history", "value")
		return c.SendString("ok")
	})
	app.Get("/session-get", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		val, _ := sess.Get("history").(string)
		return c.SendString(val)
	})

	req, _ := http.NewRequest("POST", "/session-set", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request 1 failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("request 1: expected 200, got %d: %s", resp.StatusCode, testutil.ReadBody(t, resp))
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("request 1: no cookies returned")
	}

	req2, _ := http.NewRequest("GET", "/session-get", nil)
	resp2, err := app.Test(testutil.WithCookies(req2, cookies))
	if err != nil {
		t.Fatalf("request 2 failed (possible encryptcookie panic): %v", err)
	}
	if body := testutil.ReadBody(t, resp2); body != "value" {
		t.Errorf("request 2: expected session value 'value', got %q", body)
	}
}

func TestChatPage_AskAndHistory(t *testing.T) {
	gen := &testutil.FakeGenerator{Text: "Part III lists the **Fundamental Rights**."}
	s := newTestServer(t, gen, nil)

	resp, err := s.App.Test(testutil.FormRequest(t, "/ask", "question=What+are+Fundamental+Rights%3F"))
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	cookies := resp.Cookies()
	body := testutil.ReadBody(t, resp)
	if resp.StatusCode != 200 {
		t.Fatalf("ask: expected 200, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "<strong>Fundamental Rights</strong>") {
		t.Errorf("answer not rendered as markdown: %s", body)
	}
	if !strings.Contains(body, "<h1>Samvidhan Sathi - Indian Constitution Chatbot</h1>") {
		t.Errorf("page header missing: %s", body)
	}
	if strings.Contains(body, "<h3>Chat History</h3>") {
		t.Error("history rendered without the toggle")
	}

	req, _ := http.NewRequest("GET", "/?history=on", nil)
	resp, err = s.App.Test(testutil.WithCookies(req, cookies))
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	body = testutil.ReadBody(t, resp)
	if !strings.Contains(body, "<h3>Chat History</h3>") {
		t.Errorf("history section missing: %s", body)
	}
	if !strings.Contains(body, "You: What are Fundamental Rights?") {
		t.Errorf("question missing from history: %s", body)
	}
	if gen.Calls() != 1 {
		t.Errorf("provider called %d times, want 1 (rendering must not call it)", gen.Calls())
	}
}

func TestChatPage_EmptySubmissionDoesNothing(t *testing.T) {
	gen := &testutil.FakeGenerator{Text: "x"}
	s := newTestServer(t, gen, nil)

	resp, err := s.App.Test(testutil.FormRequest(t, "/ask", "question="))
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gen.Calls() != 0 {
		t.Errorf("provider called %d times, want 0", gen.Calls())
	}
}

func TestAPI_HistoryAlternatesInSubmissionOrder(t *testing.T) {
	gen := &testutil.FakeGenerator{Text: "model answer"}
	s := newTestServer(t, gen, nil)

	questions := []string{
		"What are Fundamental Rights?",
		"What's the weather today?",
		"Who appoints the President?",
	}

	var cookies []*http.Cookie
	for _, q := range questions {
		body := fmt.Sprintf(`{"question":%q}`, q)
		resp, err := s.App.Test(testutil.WithCookies(testutil.JSONRequest(t, "/api/ask", body), cookies))
		if err != nil {
			t.Fatalf("api ask failed: %v", err)
		}
		if c := resp.Cookies(); len(c) > 0 {
			cookies = c
		}
		var env api.Envelope[api.AskResponse]
		if err := json.Unmarshal([]byte(testutil.ReadBody(t, resp)), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env.Status != "ok" || env.Data.Question != q {
			t.Errorf("unexpected envelope %+v", env)
		}
	}

	req, _ := http.NewRequest("GET", "/api/history", nil)
	resp, err := s.App.Test(testutil.WithCookies(req, cookies))
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	var env api.Envelope[api.HistoryResponse]
	if err := json.Unmarshal([]byte(testutil.ReadBody(t, resp)), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}

	entries := env.Data.Entries
	if len(entries) != 2*len(questions) {
		t.Fatalf("history has %d entries, want %d", len(entries), 2*len(questions))
	}
	for i, q := range questions {
		if entries[2*i] != history.UserEntry(q) {
			t.Errorf("entries[%d] = %q, want %q", 2*i, entries[2*i], history.UserEntry(q))
		}
		if !strings.HasPrefix(string(entries[2*i+1]), history.BotPrefix) {
			t.Errorf("entries[%d] = %q, want Bot line", 2*i+1, entries[2*i+1])
		}
	}
	if entries[3] != history.BotEntry(answer.RefusalMessage) {
		t.Errorf("off-topic answer = %q, want refusal", entries[3])
	}
	if gen.Calls() != 2 {
		t.Errorf("provider called %d times, want 2", gen.Calls())
	}
}

func TestAPI_SessionsDoNotLeak(t *testing.T) {
	s := newTestServer(t, &testutil.FakeGenerator{Text: "a"}, nil)

	resp, err := s.App.Test(testutil.JSONRequest(t, "/api/ask", `{"question":"What is the Preamble?"}`))
	if err != nil {
		t.Fatalf("api ask failed: %v", err)
	}
	resp.Body.Close()

	req, _ := http.NewRequest("GET", "/api/history", nil)
	resp, err = s.App.Test(req)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	var env api.Envelope[api.HistoryResponse]
	if err := json.Unmarshal([]byte(testutil.ReadBody(t, resp)), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data.Entries) != 0 {
		t.Errorf("fresh session sees %d entries, want 0", len(env.Data.Entries))
	}
}

func TestAPI_ProviderErrorIsAnAnswer(t *testing.T) {
	s := newTestServer(t, &testutil.FakeGenerator{Err: errors.New("API key not valid")}, nil)

	resp, err := s.App.Test(testutil.JSONRequest(t, "/api/ask", `{"question":"Explain the Constitution"}`))
	if err != nil {
		t.Fatalf("api ask failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var env api.Envelope[api.AskResponse]
	if err := json.Unmarshal([]byte(testutil.ReadBody(t, resp)), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Answer != "Error: API key not valid" || env.Data.Outcome != string(answer.OutcomeError) {
		t.Errorf("unexpected answer %+v", env.Data)
	}
}

func TestAPI_BadRequests(t *testing.T) {
	s := newTestServer(t, &testutil.FakeGenerator{}, nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty question", `{"question":""}`},
		{"malformed json", `{"question":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.App.Test(testutil.JSONRequest(t, "/api/ask", tt.body))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			resp.Body.Close()
		})
	}
}

func TestProbes(t *testing.T) {
	failing := map[string]handlers.ReadyFunc{
		"session storage": func(ctx context.Context) error { return errors.New("down") },
	}

	tests := []struct {
		name   string
		checks map[string]handlers.ReadyFunc
		path   string
		status int
	}{
		{"liveness", failing, "/healthz", 200},
		{"readiness ok", nil, "/readyz", 200},
		{"readiness failing", failing, "/readyz", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &testutil.FakeGenerator{}, tt.checks)
			req, _ := http.NewRequest("GET", tt.path, nil)
			resp, err := s.App.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, &testutil.FakeGenerator{Text: "a"}, nil)

	resp, err := s.App.Test(testutil.JSONRequest(t, "/api/ask", `{"question":"hello there"}`))
	if err != nil {
		t.Fatalf("api ask failed: %v", err)
	}
	resp.Body.Close()

	req, _ := http.NewRequest("GET", "/metrics", nil)
	resp, err = s.App.Test(req)
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	body := testutil.ReadBody(t, resp)
	if !strings.Contains(body, `samvidhan_answers_total{outcome="rejected"} 1`) {
		t.Errorf("rejected counter missing from metrics output:\n%s", body)
	}
}
