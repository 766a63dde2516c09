package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/services"
)

// InsurerHandler exposes the read side of insurers: who they are and which
// vessel categories they cover.
type InsurerHandler struct {
	insurers *services.InsurerService
}

// NewInsurerHandler creates an InsurerHandler.
func NewInsurerHandler(insurers *services.InsurerService) *InsurerHandler {
	return &InsurerHandler{insurers: insurers}
}

// Get handles GET /insurers/:id, returning the insurer with its permitted
// category codes.
func (h *InsurerHandler) Get(c *fiber.Ctx) error {
	insurerID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Validation("invalid insurer id")
	}

	view, err := h.insurers.Get(c.Context(), insurerID)
	if err != nil {
		return err
	}
	return c.JSON(view)
}
