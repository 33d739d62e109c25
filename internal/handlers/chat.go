package handlers

import (
	"github.com/gofiber/fiber/v3"

	"samvidhan/internal/answer"
	"samvidhan/internal/config"
	"samvidhan/internal/middleware"
)

// ChatHandler serves the chat page.
type ChatHandler struct {
	answers *answer.Service
	cfg     *config.Config
	page    PageData
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(answers *answer.Service, cfg *config.Config, page PageData) *ChatHandler {
	return &ChatHandler{answers: answers, cfg: cfg, page: page}
}

// Index renders the page without asking anything. Re-rendering never
// reaches the provider.
func (h *ChatHandler) Index(c fiber.Ctx) error {
	return c.Render("index", h.pageData(c, fiber.Map{}))
}

// Ask answers the submitted question, records the exchange in the session
// history and renders the answer. An empty submission only re-renders.
func (h *ChatHandler) Ask(c fiber.Ctx) error {
	question := c.FormValue("question")
	if question == "" {
		return c.Render("index", h.pageData(c, fiber.Map{}))
	}

	res := h.answers.Ask(c.Context(), question)
	middleware.History(c).Append(question, res.Answer)

	return c.Render("index", h.pageData(c, fiber.Map{
		"Question": question,
		"Answer":   res.Answer,
		"Outcome":  string(res.Outcome),
	}))
}

func (h *ChatHandler) pageData(c fiber.Ctx, data fiber.Map) fiber.Map {
	show := showHistory(c)
	data["ShowHistory"] = show
	if show {
		data["History"] = middleware.History(c).Entries()
	}
	data["Intro"] = h.page.Intro
	data["Examples"] = h.page.Examples
	return MergeBranding(data, h.cfg)
}
