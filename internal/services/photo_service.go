package services

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/repository"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/storage"
)

// UploadPhotoInput carries one multipart upload into the service.
type UploadPhotoInput struct {
	SurveyID        int
	PhotoTypeID     int
	ChecklistItemID *int
	Note            string
	File            io.Reader
	Filename        string
	ContentType     string
	SizeBytes       int64
}

// PhotoService uploads, resolves and deletes photos, and is the only path by
// which an upload automatically completes a checklist item.
//
// Rebinding an item to a new photo supersedes the old binding but never
// deletes the old photo row or its file; auditability wins over storage
// economy. Orphans are removed only by an explicit Delete.
type PhotoService struct {
	db      database.DB
	adapter storage.Adapter
	logger  *logging.Logger
}

// NewPhotoService creates a PhotoService on the given pool and storage
// adapter.
func NewPhotoService(db database.DB, adapter storage.Adapter, logger *logging.Logger) *PhotoService {
	return &PhotoService{db: db, adapter: adapter, logger: logger}
}

// Upload validates the referenced entities, stores the file, creates the
// photo row and, when a checklist item id is given, completes that item bound
// to the new photo. The database writes share one transaction; if it fails
// after the file was written, the file is best-effort removed so storage does
// not accumulate rows the database never saw.
func (s *PhotoService) Upload(ctx context.Context, in UploadPhotoInput) (*models.Photo, error) {
	if in.SurveyID <= 0 {
		return nil, apperr.Validation("survey_id is required")
	}
	if in.PhotoTypeID <= 0 {
		return nil, apperr.Validation("photo_type_id is required")
	}

	// Reference checks run before the file is stored, so a typoed id can
	// never leave an orphan file behind.
	exists, err := repository.NewSurveyRepository(s.db).Exists(ctx, in.SurveyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("survey", in.SurveyID)
	}

	typeOK, err := repository.NewPhotoRepository(s.db).TypeExists(ctx, in.PhotoTypeID)
	if err != nil {
		return nil, err
	}
	if !typeOK {
		return nil, apperr.NotFound("photo type", in.PhotoTypeID)
	}

	key, err := s.adapter.Store(ctx, in.File, storage.UploadMeta{
		SurveyID:         in.SurveyID,
		ChecklistItemID:  in.ChecklistItemID,
		OriginalFilename: in.Filename,
		ContentType:      in.ContentType,
		SizeBytes:        in.SizeBytes,
	})
	if err != nil {
		return nil, err
	}

	photo := models.Photo{
		SurveyID:         in.SurveyID,
		PhotoTypeID:      in.PhotoTypeID,
		StorageKey:       key,
		OriginalFilename: in.Filename,
		ContentType:      in.ContentType,
		SizeBytes:        in.SizeBytes,
		Note:             in.Note,
	}

	err = database.InTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := repository.NewPhotoRepository(tx).Create(ctx, &photo); err != nil {
			return err
		}

		if in.ChecklistItemID != nil {
			checklistRepo := repository.NewChecklistRepository(tx)
			item, err := checklistRepo.GetByID(ctx, *in.ChecklistItemID)
			if err != nil {
				return err
			}
			if item.SurveyID != in.SurveyID {
				return apperr.Validation("checklist item %d belongs to survey %d, not survey %d",
					item.ID, item.SurveyID, in.SurveyID)
			}
			if _, err := checklistRepo.Complete(ctx, item.ID, &photo.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The database never saw this file; remove it again.
		if delErr := s.adapter.Delete(ctx, key); delErr != nil {
			s.logger.Error(fmt.Sprintf("could not clean up stored file %q after failed upload", key), delErr)
		}
		return nil, err
	}

	s.logger.Event("photo uploaded", "photo", photo.ID, map[string]any{
		"survey_id":   photo.SurveyID,
		"storage_key": photo.StorageKey,
	})
	return &photo, nil
}

// ResolveViewableURL turns a photo id into something the HTTP layer can
// serve: a local file path to stream, or a presigned URL to redirect to.
func (s *PhotoService) ResolveViewableURL(ctx context.Context, photoID int) (storage.ResolvedURL, error) {
	photo, err := repository.NewPhotoRepository(s.db).GetByID(ctx, photoID)
	if err != nil {
		return storage.ResolvedURL{}, err
	}
	return s.adapter.ResolveURL(ctx, photo.StorageKey)
}

// Get returns the photo row.
func (s *PhotoService) Get(ctx context.Context, photoID int) (*models.Photo, error) {
	return repository.NewPhotoRepository(s.db).GetByID(ctx, photoID)
}

// ListBySurvey returns the survey's photos in upload order, or a
// NotFoundError for an unknown survey.
func (s *PhotoService) ListBySurvey(ctx context.Context, surveyID int) ([]models.Photo, error) {
	exists, err := repository.NewSurveyRepository(s.db).Exists(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("survey", surveyID)
	}
	return repository.NewPhotoRepository(s.db).ListBySurvey(ctx, surveyID)
}

// ListTypes returns the registered photo types.
func (s *PhotoService) ListTypes(ctx context.Context) ([]models.PhotoType, error) {
	return repository.NewPhotoRepository(s.db).ListTypes(ctx)
}

// Delete removes the photo row and its stored file. The storage delete runs
// before the transaction commits, so a backend failure rolls the row delete
// back and the caller can retry; a file already gone counts as success.
// Checklist items still referencing the photo keep their COMPLETED state with
// photo_id set NULL by the schema; callers wanting the item reverted must do
// so explicitly first.
func (s *PhotoService) Delete(ctx context.Context, photoID int) error {
	err := database.InTx(ctx, s.db, func(tx pgx.Tx) error {
		photoRepo := repository.NewPhotoRepository(tx)
		photo, err := photoRepo.GetByID(ctx, photoID)
		if err != nil {
			return err
		}
		if err := photoRepo.Delete(ctx, photoID); err != nil {
			return err
		}
		return s.adapter.Delete(ctx, photo.StorageKey)
	})
	if err != nil {
		return err
	}

	s.logger.Event("photo deleted", "photo", photoID, nil)
	return nil
}
