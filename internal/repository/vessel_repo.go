package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
)

// VesselRepository reads vessel records. Vessel CRUD itself lives in the
// administrative layer; the engine only needs category and insurer lookups.
type VesselRepository struct {
	db database.Querier
}

// NewVesselRepository creates a VesselRepository bound to q.
func NewVesselRepository(q database.Querier) *VesselRepository {
	return &VesselRepository{db: q}
}

// GetByID returns the vessel with the given id, or a NotFoundError.
func (r *VesselRepository) GetByID(ctx context.Context, id int) (*models.Vessel, error) {
	v := models.Vessel{}
	err := r.db.QueryRow(ctx, `
        SELECT id, insurer_id, client_id, name, category_code, registration, created_at
        FROM vessels
        WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.InsurerID, &v.ClientID, &v.Name, &v.CategoryCode, &v.Registration, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("vessel", id)
		}
		return nil, err
	}
	return &v, nil
}
