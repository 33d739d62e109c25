// Package answer mediates between the topic gate and the text-generation provider.
package answer

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// User-visible messages for the three non-answer branches.
const (
	RefusalMessage       = "⚠️ This chatbot only answers **Constitution of India** related questions. Please ask a relevant question."
	EmptyResponseMessage = "No response received."
	ErrorPrefix          = "Error: "
)

// Outcome is the terminal state of a single Answer call.
type Outcome string

// Outcome constants
const (
	OutcomeAnswered Outcome = "answered"
	OutcomeRejected Outcome = "rejected"
	OutcomeEmpty    Outcome = "empty"
	OutcomeError    Outcome = "error"
)

// Accepted reports whether the question passed the gate and reached the provider.
func (o Outcome) Accepted() bool {
	return o != OutcomeRejected
}

// Gate decides whether a question may be forwarded to the provider.
type Gate interface {
	IsRelevant(question string) bool
}

// Generator is the external text-generation provider.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result describes one handled question.
type Result struct {
	Question string
	Answer   string
	Outcome  Outcome
	// Duration is the time spent in the provider call; zero when rejected.
	Duration time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithObserver registers a callback invoked after every handled question.
func WithObserver(fn func(Result)) Option {
	return func(s *Service) {
		s.observers = append(s.observers, fn)
	}
}

// Service answers questions that pass the gate and refuses the rest.
type Service struct {
	gate      Gate
	generator Generator
	observers []func(Result)
}

// NewService creates a new answer service.
func NewService(gate Gate, generator Generator, opts ...Option) *Service {
	s := &Service{gate: gate, generator: generator}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer returns the text to show the user. It never fails: provider errors
// and panics come back as "Error: ..." strings.
func (s *Service) Answer(ctx context.Context, question string) string {
	return s.Ask(ctx, question).Answer
}

// Ask handles a question and reports which branch produced the answer.
func (s *Service) Ask(ctx context.Context, question string) Result {
	res := Result{Question: question}

	if !s.gate.IsRelevant(question) {
		res.Answer = RefusalMessage
		res.Outcome = OutcomeRejected
		s.notify(res)
		return res
	}

	start := time.Now()
	text, err := s.generate(ctx, question)
	res.Duration = time.Since(start)

	switch {
	case err != nil:
		slog.Warn("provider call failed", "error", err, "duration", res.Duration)
		res.Answer = ErrorPrefix + err.Error()
		res.Outcome = OutcomeError
	case text == "":
		res.Answer = EmptyResponseMessage
		res.Outcome = OutcomeEmpty
	default:
		res.Answer = text
		res.Outcome = OutcomeAnswered
	}

	s.notify(res)
	return res
}

// generate makes the single provider call, turning a panic into an error.
func (s *Service) generate(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()

	if s.generator == nil {
		return "", fmt.Errorf("no text generation provider configured")
	}
	return s.generator.Generate(ctx, prompt)
}

func (s *Service) notify(res Result) {
	for _, fn := range s.observers {
		fn(res)
	}
}
