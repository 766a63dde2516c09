package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/services"
)

// TemplateHandler is the administrative surface of the template catalog.
type TemplateHandler struct {
	templates *services.TemplateService
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// Upsert handles PUT /templates/:category. The body's item list fully
// replaces the template's items; surveys snapshotted earlier keep their
// frozen copies.
func (h *TemplateHandler) Upsert(c *fiber.Ctx) error {
	var req models.UpsertTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body")
	}

	view, err := h.templates.Upsert(c.Context(), c.Params("category"), req)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Deactivate handles DELETE /templates/:category. The template stops being
// snapshotted into new surveys; existing surveys keep their frozen items.
func (h *TemplateHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.templates.Deactivate(c.Context(), c.Params("category")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get handles GET /templates/:category, returning the active template with
// its ordered active items.
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	view, err := h.templates.GetByCategory(c.Context(), c.Params("category"))
	if err != nil {
		return err
	}
	if view.Items == nil {
		view.Items = []models.ChecklistTemplateItem{}
	}
	return c.JSON(view)
}
