package ai

import (
	"github.com/gofiber/fiber/v2"

	"onepercent-backend/internal/web"
)

// Handler serves the AI rewrite endpoint.
type Handler struct {
	provider *Provider
}

func NewHandler(provider *Provider) *Handler {
	return &Handler{provider: provider}
}

// Generate handles POST /api/ai/generate: a stateless pass-through to the
// completion provider.
func (h *Handler) Generate(c *fiber.Ctx) error {
	var body struct {
		CurrentContent string `json:"currentContent"`
		Instruction    string `json:"instruction"`
		FieldLabel     string `json:"fieldLabel"`
	}
	if err := c.BodyParser(&body); err != nil {
		return web.NewAppError("INVALID_PAYLOAD", 400, "Invalid request body")
	}

	content, err := h.provider.Rewrite(c.Context(), body.CurrentContent, body.Instruction, body.FieldLabel)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"content": content})
}

// RegisterRoutes wires the AI endpoint.
func RegisterRoutes(app *fiber.App, h *Handler) {
	app.Post("/api/ai/generate", h.Generate)
}
