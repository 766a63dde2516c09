// Package services implements the engine's use cases on top of the
// repository layer: survey creation with checklist snapshotting, the
// checklist-item state machine, and photo binding. Every multi-write use case
// runs in a single database transaction.
package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/repository"
)

// SurveyService creates surveys. Creation is gated by insurer eligibility and
// atomically snapshots the vessel category's active checklist template into
// survey-owned items, so a survey is never visible without its checklist.
type SurveyService struct {
	db     database.DB
	logger *logging.Logger
}

// NewSurveyService creates a SurveyService using the given pool.
func NewSurveyService(db database.DB, logger *logging.Logger) *SurveyService {
	return &SurveyService{db: db, logger: logger}
}

// Create validates the request, checks that the vessel's insurer covers the
// vessel's category, inserts the survey and snapshots the checklist, all in
// one transaction.
//
// A vessel category without an active template yields a survey with an empty
// checklist and a warning log line, not an error: the tolerant default. An
// insurer that does not cover the category aborts with an EligibilityError.
func (s *SurveyService) Create(ctx context.Context, req models.CreateSurveyRequest) (*models.SurveyView, error) {
	if req.VesselID <= 0 {
		return nil, apperr.Validation("vessel_id is required")
	}
	if req.LocationID <= 0 {
		return nil, apperr.Validation("location_id is required")
	}
	if req.SurveyorID <= 0 {
		return nil, apperr.Validation("surveyor_id is required")
	}
	if req.AdminID <= 0 {
		return nil, apperr.Validation("admin_id is required")
	}

	var view models.SurveyView
	err := database.InTx(ctx, s.db, func(tx pgx.Tx) error {
		vessel, err := repository.NewVesselRepository(tx).GetByID(ctx, req.VesselID)
		if err != nil {
			return err
		}

		allowed, err := repository.NewInsurerRepository(tx).IsAllowed(ctx, vessel.InsurerID, vessel.CategoryCode)
		if err != nil {
			return err
		}
		if !allowed {
			return &apperr.EligibilityError{InsurerID: vessel.InsurerID, CategoryCode: vessel.CategoryCode}
		}

		survey := models.Survey{
			VesselID:    req.VesselID,
			LocationID:  req.LocationID,
			SurveyorID:  req.SurveyorID,
			AdminID:     req.AdminID,
			ScheduledAt: req.ScheduledAt,
		}
		if err := repository.NewSurveyRepository(tx).Create(ctx, &survey); err != nil {
			return err
		}

		count, err := s.snapshotChecklist(ctx, tx, survey.ID, vessel.CategoryCode)
		if err != nil {
			return err
		}

		view = models.SurveyView{Survey: survey, ChecklistItemsCreated: count}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Event("survey created", "survey", view.ID, map[string]any{
		"vessel_id":       view.VesselID,
		"checklist_items": view.ChecklistItemsCreated,
	})
	return &view, nil
}

// snapshotChecklist freezes the active template for categoryCode into
// survey-owned items. Runs inside the survey-creation transaction and only
// there; there is no duplicate guard by design.
func (s *SurveyService) snapshotChecklist(ctx context.Context, tx pgx.Tx, surveyID int, categoryCode string) (int, error) {
	_, items, err := repository.NewTemplateRepository(tx).GetActiveByCategory(ctx, categoryCode)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			s.logger.Warn("no active checklist template for category " + categoryCode + ", survey created with empty checklist")
			return 0, nil
		}
		return 0, err
	}

	return repository.NewChecklistRepository(tx).Snapshot(ctx, surveyID, items)
}

// Get returns a survey by id.
func (s *SurveyService) Get(ctx context.Context, id int) (*models.Survey, error) {
	return repository.NewSurveyRepository(s.db).GetByID(ctx, id)
}

// UpdateStatus moves the survey to a new lifecycle status. Transition order
// is not enforced here; the scheduling and approval flows own that.
func (s *SurveyService) UpdateStatus(ctx context.Context, id int, status models.SurveyStatus) error {
	if err := repository.NewSurveyRepository(s.db).UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Event("survey status changed", "survey", id, map[string]any{
		"status": string(status),
	})
	return nil
}
