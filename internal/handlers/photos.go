// Package handlers implements the HTTP layer of the vessel-inspection
// service. Handlers parse and validate transport concerns, delegate to the
// services, and return JSON; error-to-status mapping lives in the shared
// Fiber error handler (apperr.Handler).
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/services"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/storage"
)

// PhotoHandler handles photo upload, viewing and deletion.
type PhotoHandler struct {
	photos *services.PhotoService
}

// NewPhotoHandler creates a PhotoHandler.
func NewPhotoHandler(photos *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Upload handles POST /photos (multipart).
//
// Form fields: survey_id (required), photo_type_id (required),
// checklist_item_id (optional), note (optional), file field "photo"
// (exactly one). Responds 201 with the created photo including its resolved
// storage key.
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	surveyID, err := strconv.Atoi(c.FormValue("survey_id"))
	if err != nil || surveyID <= 0 {
		return apperr.Validation("survey_id is required")
	}
	photoTypeID, err := strconv.Atoi(c.FormValue("photo_type_id"))
	if err != nil || photoTypeID <= 0 {
		return apperr.Validation("photo_type_id is required")
	}

	var checklistItemID *int
	if raw := c.FormValue("checklist_item_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return apperr.Validation("invalid checklist_item_id %q", raw)
		}
		checklistItemID = &id
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperr.Validation("expected a multipart upload")
	}
	files := form.File["photo"]
	if len(files) == 0 {
		return apperr.Validation("file field 'photo' is required")
	}
	if len(files) > 1 {
		return apperr.Validation("exactly one file per upload, got %d", len(files))
	}
	header := files[0]

	file, err := header.Open()
	if err != nil {
		return apperr.Validation("could not read uploaded file")
	}
	defer file.Close()

	photo, err := h.photos.Upload(c.Context(), services.UploadPhotoInput{
		SurveyID:        surveyID,
		PhotoTypeID:     photoTypeID,
		ChecklistItemID: checklistItemID,
		Note:            c.FormValue("note"),
		File:            file,
		Filename:        header.Filename,
		ContentType:     header.Header.Get("Content-Type"),
		SizeBytes:       header.Size,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}

// Image handles GET /photos/:id/image. Local files are streamed directly,
// object-store photos redirect to a short-lived presigned URL.
func (h *PhotoHandler) Image(c *fiber.Ctx) error {
	photoID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Validation("invalid photo id")
	}

	resolved, err := h.photos.ResolveViewableURL(c.Context(), photoID)
	if err != nil {
		return err
	}

	switch resolved.Mode {
	case storage.ModeFile:
		return c.SendFile(resolved.Location)
	case storage.ModeRedirect:
		return c.Redirect(resolved.Location, fiber.StatusFound)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "unknown resolution mode")
	}
}

// Get handles GET /photos/:id, returning the photo row.
func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	photoID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Validation("invalid photo id")
	}

	photo, err := h.photos.Get(c.Context(), photoID)
	if err != nil {
		return err
	}
	return c.JSON(photo)
}

// ListBySurvey handles GET /surveys/:id/photos, returning the survey's
// photos in upload order.
func (h *PhotoHandler) ListBySurvey(c *fiber.Ctx) error {
	surveyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Validation("invalid survey id")
	}

	photos, err := h.photos.ListBySurvey(c.Context(), surveyID)
	if err != nil {
		return err
	}
	if photos == nil {
		photos = []models.Photo{}
	}
	return c.JSON(photos)
}

// ListTypes handles GET /photo-types, so upload clients can discover the
// valid photo_type_id values.
func (h *PhotoHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.photos.ListTypes(c.Context())
	if err != nil {
		return err
	}
	if types == nil {
		types = []models.PhotoType{}
	}
	return c.JSON(types)
}

// Delete handles DELETE /photos/:id. Removes row and file; checklist items
// referencing the photo are left alone (revert them first if that matters).
func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	photoID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Validation("invalid photo id")
	}

	if err := h.photos.Delete(c.Context(), photoID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
