package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/services"
)

var itemTestColumns = []string{
	"id", "survey_id", "template_item_id", "order_index", "name", "description",
	"mandatory", "video_allowed", "status", "completed_at", "photo_id",
}

// expectItemLookup queues the read-before-write that opens every state
// transition transaction.
func expectItemLookup(mock pgxmock.PgxPoolIface, itemID, surveyID int, status models.ItemStatus) {
	var (
		completedAt *time.Time
		photoID     *int
	)
	if status == models.ItemStatusCompleted {
		completedAt = timePtr(time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC))
		photoID = intPtr(7)
	}
	rows := pgxmock.NewRows(itemTestColumns).
		AddRow(itemID, surveyID, intPtr(10), 1, "Hull overview", "", true, false, status, completedAt, photoID)
	mock.ExpectQuery("SELECT .+ FROM survey_checklist_items").
		WithArgs(itemID).
		WillReturnRows(rows)
}

// TestChecklistService_UpdateStatus_CompleteWithPhoto verifies the manual
// completion path with a photo binding: the photo must exist and belong to
// the item's survey, and the UPDATE carries status, timestamp and photo id
// together.
//
// Related:
//   - PATCH /checklist-items/:id/status
//   - checklist_service.go:UpdateStatus()
func TestChecklistService_UpdateStatus_CompleteWithPhoto(t *testing.T) {
	completedAt := time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	expectItemLookup(mock, 42, 5, models.ItemStatusPending)

	// Photo reference check: same survey
	photoRows := pgxmock.NewRows([]string{"id", "survey_id", "photo_type_id", "storage_key", "original_filename", "content_type", "size_bytes", "note", "created_at"}).
		AddRow(7, 5, 2, "uploads/photos/survey-5/a.jpg", "a.jpg", "image/jpeg", int64(1000), "", completedAt)
	mock.ExpectQuery("SELECT id, survey_id, photo_type_id, storage_key").
		WithArgs(7).
		WillReturnRows(photoRows)

	updatedRows := pgxmock.NewRows(itemTestColumns).
		AddRow(42, 5, intPtr(10), 1, "Hull overview", "", true, false,
			models.ItemStatusCompleted, timePtr(completedAt), intPtr(7))
	mock.ExpectQuery("UPDATE survey_checklist_items").
		WithArgs(42, pgxmock.AnyArg()).
		WillReturnRows(updatedRows)
	mock.ExpectCommit()

	svc := services.NewChecklistService(mock, testLogger())
	item, err := svc.UpdateStatus(context.Background(), 42, models.ItemStatusCompleted, intPtr(7))

	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusCompleted, item.Status)
	require.NotNil(t, item.CompletedAt)
	require.NotNil(t, item.PhotoID)
	assert.Equal(t, 7, *item.PhotoID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestChecklistService_UpdateStatus_CompleteWithoutPhoto verifies that
// completion without evidence is allowed; mandatory-ness gates survey
// approval elsewhere, not this transition.
func TestChecklistService_UpdateStatus_CompleteWithoutPhoto(t *testing.T) {
	completedAt := time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	expectItemLookup(mock, 42, 5, models.ItemStatusPending)
	updatedRows := pgxmock.NewRows(itemTestColumns).
		AddRow(42, 5, intPtr(10), 1, "Hull overview", "", true, false,
			models.ItemStatusCompleted, timePtr(completedAt), (*int)(nil))
	mock.ExpectQuery("UPDATE survey_checklist_items").
		WithArgs(42, pgxmock.AnyArg()).
		WillReturnRows(updatedRows)
	mock.ExpectCommit()

	svc := services.NewChecklistService(mock, testLogger())
	item, err := svc.UpdateStatus(context.Background(), 42, models.ItemStatusCompleted, nil)

	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusCompleted, item.Status)
	assert.NotNil(t, item.CompletedAt)
	assert.Nil(t, item.PhotoID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestChecklistService_UpdateStatus_PhotoFromOtherSurvey verifies the
// cross-survey guard: binding a photo of survey 4 to an item of survey 5
// rolls back with a ValidationError.
func TestChecklistService_UpdateStatus_PhotoFromOtherSurvey(t *testing.T) {
	testTime := time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	expectItemLookup(mock, 42, 5, models.ItemStatusPending)
	photoRows := pgxmock.NewRows([]string{"id", "survey_id", "photo_type_id", "storage_key", "original_filename", "content_type", "size_bytes", "note", "created_at"}).
		AddRow(8, 4, 2, "uploads/photos/survey-4/b.jpg", "b.jpg", "image/jpeg", int64(1000), "", testTime)
	mock.ExpectQuery("SELECT id, survey_id, photo_type_id, storage_key").
		WithArgs(8).
		WillReturnRows(photoRows)
	mock.ExpectRollback()

	svc := services.NewChecklistService(mock, testLogger())
	item, err := svc.UpdateStatus(context.Background(), 42, models.ItemStatusCompleted, intPtr(8))

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestChecklistService_UpdateStatus_Revert verifies the return to PENDING:
// timestamp and photo binding cleared together, photo row untouched.
func TestChecklistService_UpdateStatus_Revert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	expectItemLookup(mock, 42, 5, models.ItemStatusCompleted)
	revertedRows := pgxmock.NewRows(itemTestColumns).
		AddRow(42, 5, intPtr(10), 1, "Hull overview", "", true, false,
			models.ItemStatusPending, (*time.Time)(nil), (*int)(nil))
	mock.ExpectQuery("UPDATE survey_checklist_items").
		WithArgs(42).
		WillReturnRows(revertedRows)
	mock.ExpectCommit()

	svc := services.NewChecklistService(mock, testLogger())
	item, err := svc.UpdateStatus(context.Background(), 42, models.ItemStatusPending, nil)

	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusPending, item.Status)
	assert.Nil(t, item.CompletedAt)
	assert.Nil(t, item.PhotoID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestChecklistService_UpdateStatus_InvalidStatus verifies the closed-enum
// guard fires before any database work.
func TestChecklistService_UpdateStatus_InvalidStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	svc := services.NewChecklistService(mock, testLogger())
	item, err := svc.UpdateStatus(context.Background(), 42, models.ItemStatus("DONE"), nil)

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestChecklistService_ListBySurvey verifies the listing endpoints: unknown
// surveys yield 404 rather than an empty list, and the status filter is
// passed through to the repository.
func TestChecklistService_ListBySurvey(t *testing.T) {
	t.Run("unknown survey", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(999).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		svc := services.NewChecklistService(mock, testLogger())
		items, err := svc.ListBySurvey(context.Background(), 999, nil)

		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Nil(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filtered by status", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(5).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		rows := pgxmock.NewRows(itemTestColumns).
			AddRow(42, 5, intPtr(10), 1, "Hull overview", "", true, false,
				models.ItemStatusPending, (*time.Time)(nil), (*int)(nil))
		mock.ExpectQuery("SELECT .+ FROM survey_checklist_items").
			WithArgs(5, models.ItemStatusPending).
			WillReturnRows(rows)

		svc := services.NewChecklistService(mock, testLogger())
		status := models.ItemStatusPending
		items, err := svc.ListBySurvey(context.Background(), 5, &status)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, models.ItemStatusPending, items[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
