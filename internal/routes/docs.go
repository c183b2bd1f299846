package routes

import (
	_ "embed"
	"errors"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/config"
	"github.com/gofiber/fiber/v2"
)

const openAPIPath = "/docs/openapi.yaml"

//go:embed openapi.yaml
var openAPIDocument []byte

// registerDocsRoutes mounts the API description in development only.
// /docs points at the document; the document itself is served as YAML.
func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}
	if len(openAPIDocument) == 0 {
		return errors.New("embedded openapi document is empty")
	}

	index := func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.JSON(fiber.Map{
			"success": true,
			"title":   "Gym Trainer API",
			"openapi": openAPIPath,
		})
	}
	app.Get("/docs", index)
	app.Get("/docs/", index)

	app.Get(openAPIPath, func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/yaml; charset=utf-8")
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		return c.Send(openAPIDocument)
	})

	return nil
}
