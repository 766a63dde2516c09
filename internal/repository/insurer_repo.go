package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
)

// InsurerRepository answers eligibility questions: which vessel categories an
// insurer has agreed to cover. Used as a precondition gate before a survey
// (or vessel) tied to an insurer is written.
type InsurerRepository struct {
	db database.Querier
}

// NewInsurerRepository creates an InsurerRepository bound to q.
func NewInsurerRepository(q database.Querier) *InsurerRepository {
	return &InsurerRepository{db: q}
}

// GetByID returns the insurer with the given id, or a NotFoundError.
func (r *InsurerRepository) GetByID(ctx context.Context, id int) (*models.Insurer, error) {
	ins := models.Insurer{}
	err := r.db.QueryRow(ctx, `
        SELECT id, name, created_at
        FROM insurers
        WHERE id = $1`,
		id,
	).Scan(&ins.ID, &ins.Name, &ins.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("insurer", id)
		}
		return nil, err
	}
	return &ins, nil
}

// IsAllowed reports whether an insurer_allowed_categories row exists for the
// (insurerID, categoryCode) pair.
func (r *InsurerRepository) IsAllowed(ctx context.Context, insurerID int, categoryCode string) (bool, error) {
	var allowed bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM insurer_allowed_categories
            WHERE insurer_id = $1 AND category_code = $2
        )`,
		insurerID, categoryCode,
	).Scan(&allowed)
	if err != nil {
		return false, err
	}
	return allowed, nil
}

// ListAllowedCategories returns the category codes the insurer covers,
// alphabetically. Used by administrative tooling to render the permitted set.
func (r *InsurerRepository) ListAllowedCategories(ctx context.Context, insurerID int) ([]string, error) {
	rows, err := r.db.Query(ctx, `
        SELECT category_code FROM insurer_allowed_categories
        WHERE insurer_id = $1
        ORDER BY category_code ASC`,
		insurerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
