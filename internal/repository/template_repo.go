// Package repository provides the data access layer for the vessel-inspection
// service. Every repository takes its query surface (pool or transaction) by
// constructor injection, so the same code runs standalone, inside a pgx.Tx,
// or against a pgxmock pool in tests.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
)

// TemplateRepository handles checklist templates and their item definitions.
// It is the catalog the snapshotter reads from at survey-creation time.
type TemplateRepository struct {
	db database.Querier
}

// NewTemplateRepository creates a TemplateRepository bound to q.
func NewTemplateRepository(q database.Querier) *TemplateRepository {
	return &TemplateRepository{db: q}
}

// GetActiveByCategory returns the active template for categoryCode together
// with its active items ordered by order_index ascending.
//
// Returns a NotFoundError when no active template exists for the category;
// the snapshotter treats that as "empty checklist", administrative callers
// surface it as 404.
func (r *TemplateRepository) GetActiveByCategory(ctx context.Context, categoryCode string) (*models.ChecklistTemplate, []models.ChecklistTemplateItem, error) {
	tpl := models.ChecklistTemplate{}
	err := r.db.QueryRow(ctx, `
        SELECT id, category_code, name, description, active, created_at, updated_at
        FROM checklist_templates
        WHERE category_code = $1 AND active = TRUE`,
		categoryCode,
	).Scan(&tpl.ID, &tpl.CategoryCode, &tpl.Name, &tpl.Description, &tpl.Active, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperr.NotFound("checklist template", categoryCode)
		}
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
        SELECT id, template_id, order_index, name, description, mandatory, video_allowed, active
        FROM checklist_template_items
        WHERE template_id = $1 AND active = TRUE
        ORDER BY order_index ASC`,
		tpl.ID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []models.ChecklistTemplateItem
	for rows.Next() {
		item := models.ChecklistTemplateItem{}
		if err := rows.Scan(
			&item.ID, &item.TemplateID, &item.OrderIndex, &item.Name,
			&item.Description, &item.Mandatory, &item.VideoAllowed, &item.Active,
		); err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return &tpl, items, nil
}

// Upsert creates or replaces the template for the given category and fully
// replaces its item list. The incoming list order is authoritative: item i
// gets order_index i+1. Existing snapshots are untouched by design; only the
// catalog changes.
//
// Must be called on a repository constructed over a transaction so the
// delete-then-recreate of items is never partially applied.
func (r *TemplateRepository) Upsert(ctx context.Context, categoryCode string, req models.UpsertTemplateRequest) (*models.ChecklistTemplate, error) {
	tpl := models.ChecklistTemplate{}
	err := r.db.QueryRow(ctx, `
        INSERT INTO checklist_templates (category_code, name, description, active)
        VALUES ($1, $2, $3, TRUE)
        ON CONFLICT (category_code) DO UPDATE
        SET name = EXCLUDED.name,
            description = EXCLUDED.description,
            active = TRUE,
            updated_at = now()
        RETURNING id, category_code, name, description, active, created_at, updated_at`,
		categoryCode, req.Name, req.Description,
	).Scan(&tpl.ID, &tpl.CategoryCode, &tpl.Name, &tpl.Description, &tpl.Active, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// Full replacement: delete all items, recreate from the request list.
	_, err = r.db.Exec(ctx, `
        DELETE FROM checklist_template_items
        WHERE template_id = $1`,
		tpl.ID,
	)
	if err != nil {
		return nil, err
	}

	for i, item := range req.Items {
		_, err = r.db.Exec(ctx, `
            INSERT INTO checklist_template_items
                (template_id, order_index, name, description, mandatory, video_allowed, active)
            VALUES ($1, $2, $3, $4, $5, $6, TRUE)`,
			tpl.ID, i+1, item.Name, item.Description, item.Mandatory, item.VideoAllowed,
		)
		if err != nil {
			return nil, err
		}
	}

	return &tpl, nil
}

// Deactivate clears the active flag of the template for categoryCode.
// Snapshots already taken keep their frozen items.
func (r *TemplateRepository) Deactivate(ctx context.Context, categoryCode string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE checklist_templates SET active = FALSE, updated_at = now()
        WHERE category_code = $1`,
		categoryCode,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("checklist template", categoryCode)
	}
	return nil
}
