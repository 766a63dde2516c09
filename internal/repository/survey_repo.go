package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
)

// SurveyRepository manages survey records. Creation always starts a survey
// in PENDING; status transitions go through UpdateStatus.
type SurveyRepository struct {
	db database.Querier
}

// NewSurveyRepository creates a SurveyRepository bound to q.
func NewSurveyRepository(q database.Querier) *SurveyRepository {
	return &SurveyRepository{db: q}
}

// Create inserts a PENDING survey and fills in id, status and created_at.
func (r *SurveyRepository) Create(ctx context.Context, s *models.Survey) error {
	return r.db.QueryRow(ctx, `
        INSERT INTO surveys (vessel_id, location_id, surveyor_id, admin_id, status, scheduled_at)
        VALUES ($1, $2, $3, $4, 'PENDING', $5)
        RETURNING id, status, created_at`,
		s.VesselID, s.LocationID, s.SurveyorID, s.AdminID, s.ScheduledAt,
	).Scan(&s.ID, &s.Status, &s.CreatedAt)
}

// GetByID returns the survey with the given id, or a NotFoundError.
func (r *SurveyRepository) GetByID(ctx context.Context, id int) (*models.Survey, error) {
	s := models.Survey{}
	err := r.db.QueryRow(ctx, `
        SELECT id, vessel_id, location_id, surveyor_id, admin_id, status, scheduled_at, created_at
        FROM surveys
        WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.VesselID, &s.LocationID, &s.SurveyorID, &s.AdminID, &s.Status, &s.ScheduledAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("survey", id)
		}
		return nil, err
	}
	return &s, nil
}

// Exists reports whether a survey with the given id exists.
func (r *SurveyRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS(SELECT 1 FROM surveys WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus moves the survey to the given status.
func (r *SurveyRepository) UpdateStatus(ctx context.Context, id int, status models.SurveyStatus) error {
	if !status.Valid() {
		return apperr.Validation("invalid survey status %q", status)
	}
	tag, err := r.db.Exec(ctx, `
        UPDATE surveys SET status = $2
        WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("survey", id)
	}
	return nil
}
