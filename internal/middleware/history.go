package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"samvidhan/internal/history"
)

const (
	// HistoryLocal is the fiber Locals key holding the session's *history.Log.
	HistoryLocal = "history"

	historySessionKey = "history"
)

// LoadHistory loads the session's chat log into c.Locals before the handler
// runs and writes it back afterwards if the handler appended to it. A session
// without a log starts with an empty one.
func LoadHistory(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	chatLog := history.New()
	if raw, ok := sess.Get(historySessionKey).(string); ok && raw != "" {
		decoded, err := history.Decode([]byte(raw))
		if err != nil {
			slog.Warn("discarding unreadable session history", "error", err)
		} else {
			chatLog = decoded
		}
	}
	before := chatLog.Len()

	c.Locals(HistoryLocal, chatLog)
	err := c.Next()

	if chatLog.Len() != before {
		data, encErr := chatLog.Encode()
		if encErr != nil {
			slog.Error("failed to save session history", "error", encErr)
		} else {
			sess.Set(historySessionKey, string(data))
		}
	}

	return err
}

// History returns the log placed in c.Locals by LoadHistory. Outside that
// middleware it returns a fresh log that is not persisted.
func History(c fiber.Ctx) *history.Log {
	if chatLog, ok := c.Locals(HistoryLocal).(*history.Log); ok {
		return chatLog
	}
	return history.New()
}
