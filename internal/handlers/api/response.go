package api

import (
	"github.com/gofiber/fiber/v3"
)

// Envelope is the shape of every JSON API response.
type Envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

func jsonSuccess[T any](c fiber.Ctx, data T) error {
	return c.JSON(Envelope[T]{Status: "ok", Data: data})
}

func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope[any]{Status: "error", Error: message})
}
