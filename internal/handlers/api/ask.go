package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"samvidhan/internal/answer"
	"samvidhan/internal/history"
	"samvidhan/internal/middleware"
)

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse contains the answer to one question.
type AskResponse struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Outcome  string    `json:"outcome"`
}

// HistoryResponse lists the session's history entries in order.
type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
}

// AskHandler answers questions via JSON API.
type AskHandler struct {
	answers *answer.Service
}

// NewAskHandler creates a new API ask handler.
func NewAskHandler(answers *answer.Service) *AskHandler {
	return &AskHandler{answers: answers}
}

// Ask answers a question and appends the exchange to the session history.
func (h *AskHandler) Ask(c fiber.Ctx) error {
	var req AskRequest
	if err := c.Bind().JSON(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Question == "" {
		return jsonError(c, fiber.StatusBadRequest, "question is required")
	}

	res := h.answers.Ask(c.Context(), req.Question)
	middleware.History(c).Append(req.Question, res.Answer)

	return jsonSuccess(c, AskResponse{
		ID:       uuid.New(),
		Question: res.Question,
		Answer:   res.Answer,
		Outcome:  string(res.Outcome),
	})
}

// History returns the session's chat history.
func (h *AskHandler) History(c fiber.Ctx) error {
	return jsonSuccess(c, HistoryResponse{
		Entries: middleware.History(c).Entries(),
	})
}
