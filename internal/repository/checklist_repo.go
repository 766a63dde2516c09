package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
)

const itemColumns = `id, survey_id, template_item_id, order_index, name, description,
            mandatory, video_allowed, status, completed_at, photo_id`

// ChecklistRepository manages the per-survey checklist rows frozen at
// survey-creation time. Rows never change shape after the snapshot; only
// status, completed_at and photo_id move.
type ChecklistRepository struct {
	db database.Querier
}

// NewChecklistRepository creates a ChecklistRepository bound to q.
func NewChecklistRepository(q database.Querier) *ChecklistRepository {
	return &ChecklistRepository{db: q}
}

// Snapshot copies the template items into survey_checklist_items for the
// given survey, all PENDING. Returns the number of rows created. Must run
// inside the survey-creation transaction so a survey never exists with a
// half-written checklist.
func (r *ChecklistRepository) Snapshot(ctx context.Context, surveyID int, items []models.ChecklistTemplateItem) (int, error) {
	count := 0
	for _, item := range items {
		_, err := r.db.Exec(ctx, `
            INSERT INTO survey_checklist_items
                (survey_id, template_item_id, order_index, name, description, mandatory, video_allowed, status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, 'PENDING')`,
			surveyID, item.ID, item.OrderIndex, item.Name, item.Description, item.Mandatory, item.VideoAllowed,
		)
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// GetByID returns the checklist item with the given id, or a NotFoundError.
func (r *ChecklistRepository) GetByID(ctx context.Context, id int) (*models.SurveyChecklistItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `
        SELECT `+itemColumns+`
        FROM survey_checklist_items
        WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("checklist item", id)
		}
		return nil, err
	}
	return item, nil
}

// Complete marks the item COMPLETED, stamps completed_at and attaches the
// optional proof photo in a single statement, so the status/completed_at
// pairing can never be observed half-applied.
func (r *ChecklistRepository) Complete(ctx context.Context, id int, photoID *int) (*models.SurveyChecklistItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `
        UPDATE survey_checklist_items
        SET status = 'COMPLETED', completed_at = now(), photo_id = $2
        WHERE id = $1
        RETURNING `+itemColumns,
		id, photoID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("checklist item", id)
		}
		return nil, err
	}
	return item, nil
}

// Revert returns the item to PENDING, clearing completed_at and the photo
// binding together. The photo row itself is untouched.
func (r *ChecklistRepository) Revert(ctx context.Context, id int) (*models.SurveyChecklistItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `
        UPDATE survey_checklist_items
        SET status = 'PENDING', completed_at = NULL, photo_id = NULL
        WHERE id = $1
        RETURNING `+itemColumns,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("checklist item", id)
		}
		return nil, err
	}
	return item, nil
}

// ListBySurvey returns all checklist items of a survey in snapshot order.
func (r *ChecklistRepository) ListBySurvey(ctx context.Context, surveyID int) ([]models.SurveyChecklistItem, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+itemColumns+`
        FROM survey_checklist_items
        WHERE survey_id = $1
        ORDER BY order_index ASC`,
		surveyID,
	)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

// ListBySurveyAndStatus returns the survey's items filtered to one status,
// in snapshot order.
func (r *ChecklistRepository) ListBySurveyAndStatus(ctx context.Context, surveyID int, status models.ItemStatus) ([]models.SurveyChecklistItem, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+itemColumns+`
        FROM survey_checklist_items
        WHERE survey_id = $1 AND status = $2
        ORDER BY order_index ASC`,
		surveyID, status,
	)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func scanItem(row pgx.Row) (*models.SurveyChecklistItem, error) {
	item := models.SurveyChecklistItem{}
	err := row.Scan(
		&item.ID, &item.SurveyID, &item.TemplateItemID, &item.OrderIndex,
		&item.Name, &item.Description, &item.Mandatory, &item.VideoAllowed,
		&item.Status, &item.CompletedAt, &item.PhotoID,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func collectItems(rows pgx.Rows) ([]models.SurveyChecklistItem, error) {
	defer rows.Close()

	var items []models.SurveyChecklistItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
