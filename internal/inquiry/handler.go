package inquiry

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"onepercent-backend/internal/web"
)

// Handler serves the inquiry endpoints: public lead capture plus the
// authenticated admin operations.
type Handler struct {
	store    *Store
	notifier *Notifier
}

func NewHandler(store *Store, notifier *Notifier) *Handler {
	return &Handler{store: store, notifier: notifier}
}

// Create handles POST /api/inquiries (public).
func (h *Handler) Create(c *fiber.Ctx) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Goal    string `json:"goal"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return web.NewAppError("INVALID_PAYLOAD", 400, "Invalid request body")
	}
	if body.Name == "" || body.Email == "" {
		return web.ValidationError([]web.ErrorDetail{
			{Field: "name", Message: "Name and email are required"},
		})
	}

	row, err := h.store.Create(c.Context(), body.Name, body.Email, body.Goal, body.Message)
	if err != nil {
		return web.StorageError("Failed to submit inquiry")
	}

	// Notification failure is logged and never fails the create.
	go func(name, email, goal, message string) {
		if err := h.notifier.NotifyNewInquiry(name, email, goal, message); err != nil {
			log.Printf("WARN: inquiry notification failed: %v", err)
		}
	}(body.Name, body.Email, body.Goal, body.Message)

	return c.JSON(fiber.Map{"success": true, "data": toResponse(row)})
}

// List handles GET /api/inquiries (admin).
func (h *Handler) List(c *fiber.Ctx) error {
	rows, err := h.store.List(c.Context())
	if err != nil {
		return web.StorageError("Failed to fetch inquiries")
	}
	inquiries := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		inquiries = append(inquiries, toResponse(row))
	}
	return c.JSON(fiber.Map{"inquiries": inquiries})
}

// SetRead handles PATCH /api/inquiries (admin).
func (h *Handler) SetRead(c *fiber.Ctx) error {
	var body struct {
		ID   string `json:"id"`
		Read *bool  `json:"read"`
	}
	if err := c.BodyParser(&body); err != nil {
		return web.NewAppError("INVALID_PAYLOAD", 400, "Invalid request body")
	}
	if body.ID == "" || body.Read == nil {
		return web.ValidationError([]web.ErrorDetail{
			{Field: "id", Message: "ID and read status are required"},
		})
	}

	row, err := h.store.SetRead(c.Context(), body.ID, *body.Read)
	if err != nil {
		if IsNotFound(err) {
			return web.NotFoundError("inquiry", body.ID)
		}
		return web.StorageError("Failed to update inquiry")
	}
	return c.JSON(fiber.Map{"success": true, "data": toResponse(row)})
}

// Delete handles DELETE /api/inquiries?id= (admin).
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return web.ValidationError([]web.ErrorDetail{{Field: "id", Message: "ID is required"}})
	}

	if err := h.store.Delete(c.Context(), id); err != nil {
		if IsNotFound(err) {
			return web.NotFoundError("inquiry", id)
		}
		return web.StorageError("Failed to delete inquiry")
	}
	return c.JSON(fiber.Map{"success": true})
}

// RegisterRoutes wires the inquiry endpoints. Create is public; the admin
// operations require authentication.
func RegisterRoutes(app *fiber.App, h *Handler, authMW fiber.Handler) {
	app.Post("/api/inquiries", h.Create)
	app.Get("/api/inquiries", authMW, h.List)
	app.Patch("/api/inquiries", authMW, h.SetRead)
	app.Delete("/api/inquiries", authMW, h.Delete)
}

// toResponse maps a storage row to the camelCase response shape.
func toResponse(row map[string]any) map[string]any {
	createdAt := row["created_at"]
	if t, ok := createdAt.(time.Time); ok {
		createdAt = t.UTC().Format(time.RFC3339)
	}
	return map[string]any{
		"id":        row["id"],
		"name":      row["name"],
		"email":     row["email"],
		"goal":      row["goal"],
		"message":   row["message"],
		"read":      row["read"],
		"createdAt": createdAt,
	}
}
