package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/services"
)

// ChecklistHandler exposes the checklist-item state machine and the survey
// checklist listings.
type ChecklistHandler struct {
	checklist *services.ChecklistService
}

// NewChecklistHandler creates a ChecklistHandler.
func NewChecklistHandler(checklist *services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklist: checklist}
}

// UpdateStatus handles PATCH /checklist-items/:id/status with body
// {"status": "COMPLETED"|"PENDING", "photo_id": n?}.
func (h *ChecklistHandler) UpdateStatus(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Validation("invalid checklist item id")
	}

	var req models.UpdateItemStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body")
	}

	status, err := models.ParseItemStatus(req.Status)
	if err != nil {
		return apperr.Validation("%v", err)
	}

	item, err := h.checklist.UpdateStatus(c.Context(), itemID, status, req.PhotoID)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// ListBySurvey handles GET /surveys/:id/checklist[?status=PENDING|COMPLETED].
// Without the filter it returns the full snapshot in template order; with it,
// one side of the pending/completed partition.
func (h *ChecklistHandler) ListBySurvey(c *fiber.Ctx) error {
	surveyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Validation("invalid survey id")
	}

	var status *models.ItemStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := models.ParseItemStatus(raw)
		if err != nil {
			return apperr.Validation("%v", err)
		}
		status = &parsed
	}

	items, err := h.checklist.ListBySurvey(c.Context(), surveyID, status)
	if err != nil {
		return err
	}
	if items == nil {
		items = []models.SurveyChecklistItem{}
	}
	return c.JSON(fiber.Map{"items": items})
}
