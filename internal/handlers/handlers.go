package handlers

import (
	"github.com/gofiber/fiber/v3"

	"samvidhan/internal/config"
)

// PageData carries the non-branding fields the chat page renders.
type PageData struct {
	Intro    string
	Examples []string
}

// NewPageData builds page content from the optional YAML config.
func NewPageData(yc *config.YAMLConfig) PageData {
	return PageData{
		Intro:    yc.Intro(),
		Examples: yc.Examples(),
	}
}

// MergeBranding adds the site title, header and footer to a template map.
// The header drops the separator when no tagline is configured.
func MergeBranding(data fiber.Map, cfg *config.Config) fiber.Map {
	heading := cfg.SiteTitle
	if cfg.SiteTagline != "" {
		heading += " - " + cfg.SiteTagline
	}
	data["SiteTitle"] = cfg.SiteTitle
	data["Heading"] = heading
	data["SiteFooter"] = cfg.SiteFooter
	return data
}

// showHistory reports whether the history checkbox is ticked. The toggle
// travels as a query parameter on GET and a form field on POST.
func showHistory(c fiber.Ctx) bool {
	if c.Query("history") == "on" {
		return true
	}
	return c.FormValue("history") == "on"
}
