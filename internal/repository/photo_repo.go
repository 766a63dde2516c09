package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
)

// PhotoRepository manages photo metadata rows. The bytes themselves live
// behind the storage adapter; the row records where (storage_key) and what
// (type, size, content type) was stored.
type PhotoRepository struct {
	db database.Querier
}

// NewPhotoRepository creates a PhotoRepository bound to q.
func NewPhotoRepository(q database.Querier) *PhotoRepository {
	return &PhotoRepository{db: q}
}

// Create inserts the photo row and fills in the generated id and created_at.
func (r *PhotoRepository) Create(ctx context.Context, p *models.Photo) error {
	return r.db.QueryRow(ctx, `
        INSERT INTO photos
            (survey_id, photo_type_id, storage_key, original_filename, content_type, size_bytes, note)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`,
		p.SurveyID, p.PhotoTypeID, p.StorageKey, p.OriginalFilename, p.ContentType, p.SizeBytes, p.Note,
	).Scan(&p.ID, &p.CreatedAt)
}

// GetByID returns the photo with the given id, or a NotFoundError.
func (r *PhotoRepository) GetByID(ctx context.Context, id int) (*models.Photo, error) {
	p := models.Photo{}
	err := r.db.QueryRow(ctx, `
        SELECT id, survey_id, photo_type_id, storage_key, original_filename, content_type, size_bytes, note, created_at
        FROM photos
        WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.SurveyID, &p.PhotoTypeID, &p.StorageKey, &p.OriginalFilename, &p.ContentType, &p.SizeBytes, &p.Note, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("photo", id)
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes the photo row. Checklist items pointing at it are detached
// by the photo_id ON DELETE SET NULL constraint.
func (r *PhotoRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `
        DELETE FROM photos
        WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("photo", id)
	}
	return nil
}

// TypeExists reports whether the given photo type is registered.
func (r *PhotoRepository) TypeExists(ctx context.Context, typeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS(SELECT 1 FROM photo_types WHERE id = $1)`,
		typeID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListTypes returns the registered photo types in id order, so upload
// clients can discover the valid photo_type_id values.
func (r *PhotoRepository) ListTypes(ctx context.Context) ([]models.PhotoType, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, name
        FROM photo_types
        ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.PhotoType
	for rows.Next() {
		pt := models.PhotoType{}
		if err := rows.Scan(&pt.ID, &pt.Name); err != nil {
			return nil, err
		}
		types = append(types, pt)
	}
	return types, rows.Err()
}

// ListBySurvey returns the survey's photos in upload order.
func (r *PhotoRepository) ListBySurvey(ctx context.Context, surveyID int) ([]models.Photo, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, survey_id, photo_type_id, storage_key, original_filename, content_type, size_bytes, note, created_at
        FROM photos
        WHERE survey_id = $1
        ORDER BY created_at ASC, id ASC`,
		surveyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		p := models.Photo{}
		if err := rows.Scan(
			&p.ID, &p.SurveyID, &p.PhotoTypeID, &p.StorageKey, &p.OriginalFilename,
			&p.ContentType, &p.SizeBytes, &p.Note, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
