package content

import (
	"github.com/gofiber/fiber/v2"

	"onepercent-backend/internal/web"
)

// Handler serves the content endpoints.
type Handler struct {
	repo   *Repository
	writer *Writer
}

func NewHandler(repo *Repository, writer *Writer) *Handler {
	return &Handler{repo: repo, writer: writer}
}

// Get handles GET /api/content: the aggregate document for page rendering
// and the admin dashboard.
func (h *Handler) Get(c *fiber.Ctx) error {
	doc, err := h.repo.Get(c.Context())
	if err != nil {
		return web.StorageError("Failed to fetch content")
	}
	return c.JSON(doc)
}

// Save handles POST /api/content with a {section, data} body.
func (h *Handler) Save(c *fiber.Ctx) error {
	var body struct {
		Section string         `json:"section"`
		Data    map[string]any `json:"data"`
	}
	if err := c.BodyParser(&body); err != nil {
		return web.NewAppError("INVALID_PAYLOAD", 400, "Invalid request body")
	}

	saved, err := h.writer.SaveSection(c.Context(), body.Section, body.Data)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": saved})
}

// DeleteItem handles DELETE /api/content/:section/:id for collection rows.
func (h *Handler) DeleteItem(c *fiber.Ctx) error {
	if err := h.writer.DeleteItem(c.Context(), c.Params("section"), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ThemeCSSHandler handles GET /api/theme.css: the generated stylesheet for
// the configured theme.
func (h *Handler) ThemeCSSHandler(c *fiber.Ctx) error {
	theme, err := h.repo.Theme(c.Context())
	if err != nil {
		return web.StorageError("Failed to fetch theme")
	}
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	return c.SendString(ThemeCSS(theme))
}

// RegisterRoutes wires the content endpoints. Content mutations require an
// authenticated operator.
func RegisterRoutes(app *fiber.App, h *Handler, authMW fiber.Handler) {
	app.Get("/api/content", h.Get)
	app.Post("/api/content", authMW, h.Save)
	app.Delete("/api/content/:section/:id", authMW, h.DeleteItem)
	app.Get("/api/theme.css", h.ThemeCSSHandler)
}
