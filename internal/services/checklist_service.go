package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/repository"
)

// ChecklistService drives the checklist-item state machine between PENDING
// and COMPLETED.
//
// Completing is allowed with or without a photo and regardless of the
// mandatory flag; mandatory-ness gates final survey approval elsewhere, not
// this transition. Reverting is unconditional and clears timestamp and photo
// reference without deleting the photo row.
//
// Two concurrent completions of the same item are not serialized:
// last-writer-wins, a documented and accepted race.
type ChecklistService struct {
	db     database.DB
	logger *logging.Logger
}

// NewChecklistService creates a ChecklistService using the given pool.
func NewChecklistService(db database.DB, logger *logging.Logger) *ChecklistService {
	return &ChecklistService{db: db, logger: logger}
}

// UpdateStatus applies a manual state transition to the item. photoID is only
// meaningful when completing; it must reference an existing photo of the same
// survey. Runs in one transaction so the photo check and the item update
// commit together.
func (s *ChecklistService) UpdateStatus(ctx context.Context, itemID int, status models.ItemStatus, photoID *int) (*models.SurveyChecklistItem, error) {
	if !status.Valid() {
		return nil, apperr.Validation("invalid item status %q", status)
	}

	var updated *models.SurveyChecklistItem
	err := database.InTx(ctx, s.db, func(tx pgx.Tx) error {
		checklistRepo := repository.NewChecklistRepository(tx)

		item, err := checklistRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}

		switch status {
		case models.ItemStatusCompleted:
			if photoID != nil {
				photo, err := repository.NewPhotoRepository(tx).GetByID(ctx, *photoID)
				if err != nil {
					return err
				}
				if photo.SurveyID != item.SurveyID {
					return apperr.Validation("photo %d belongs to survey %d, not survey %d",
						photo.ID, photo.SurveyID, item.SurveyID)
				}
			}
			updated, err = checklistRepo.Complete(ctx, itemID, photoID)
			return err
		case models.ItemStatusPending:
			updated, err = checklistRepo.Revert(ctx, itemID)
			return err
		default:
			return apperr.Validation("invalid item status %q", status)
		}
	})
	if err != nil {
		return nil, err
	}

	s.logger.Event("checklist item "+string(status), "survey_checklist_item", itemID, map[string]any{
		"survey_id": updated.SurveyID,
	})
	return updated, nil
}

// ListBySurvey returns the survey's checklist items, optionally filtered by
// status. The unfiltered list is the exact union of the PENDING and COMPLETED
// partitions.
func (s *ChecklistService) ListBySurvey(ctx context.Context, surveyID int, status *models.ItemStatus) ([]models.SurveyChecklistItem, error) {
	exists, err := repository.NewSurveyRepository(s.db).Exists(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("survey", surveyID)
	}

	checklistRepo := repository.NewChecklistRepository(s.db)
	if status != nil {
		return checklistRepo.ListBySurveyAndStatus(ctx, surveyID, *status)
	}
	return checklistRepo.ListBySurvey(ctx, surveyID)
}
