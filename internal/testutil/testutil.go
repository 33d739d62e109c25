// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// FakeGenerator is a scripted text-generation provider that records its prompts.
type FakeGenerator struct {
	Text  string
	Err   error
	Panic any

	mu      sync.Mutex
	prompts []string
}

// Generate records the prompt and returns the scripted result.
func (f *FakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.Panic != nil {
		panic(f.Panic)
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

// Prompts returns every prompt received so far, in call order.
func (f *FakeGenerator) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}

// Calls returns the number of Generate calls.
func (f *FakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// FormRequest builds a url-encoded POST request.
func FormRequest(t *testing.T, target, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// JSONRequest builds a JSON POST request.
func JSONRequest(t *testing.T, target, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithCookies copies cookies onto a request, returning it for chaining.
func WithCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// ReadBody reads and closes a response body.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(body)
}
