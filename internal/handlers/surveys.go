package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/services"
)

// SurveyHandler exposes survey creation (eligibility-gated, snapshotting)
// and retrieval.
type SurveyHandler struct {
	surveys *services.SurveyService
}

// NewSurveyHandler creates a SurveyHandler.
func NewSurveyHandler(surveys *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveys: surveys}
}

// Create handles POST /surveys. Responds 201 with the survey and the number
// of checklist items snapshotted, 422 when the insurer does not cover the
// vessel's category.
func (h *SurveyHandler) Create(c *fiber.Ctx) error {
	var req models.CreateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body")
	}

	view, err := h.surveys.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Get handles GET /surveys/:id.
func (h *SurveyHandler) Get(c *fiber.Ctx) error {
	surveyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Validation("invalid survey id")
	}

	survey, err := h.surveys.Get(c.Context(), surveyID)
	if err != nil {
		return err
	}
	return c.JSON(survey)
}

// UpdateStatus handles PATCH /surveys/:id/status. Responds 204; an unknown
// status value is a 400, an unknown survey a 404.
func (h *SurveyHandler) UpdateStatus(c *fiber.Ctx) error {
	surveyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Validation("invalid survey id")
	}

	var req models.UpdateSurveyStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body")
	}

	if err := h.surveys.UpdateStatus(c.Context(), surveyID, models.SurveyStatus(req.Status)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
