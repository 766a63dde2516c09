package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
)

// TestParseItemStatus verifies that only the two members of the closed
// PENDING/COMPLETED set are accepted; everything else, including lowercase
// variants, is rejected before it can reach the database.
func TestParseItemStatus(t *testing.T) {
	tests := []struct {
		raw         string
		expected    models.ItemStatus
		expectError bool
	}{
		{raw: "PENDING", expected: models.ItemStatusPending},
		{raw: "COMPLETED", expected: models.ItemStatusCompleted},
		{raw: "pending", expectError: true},
		{raw: "DONE", expectError: true},
		{raw: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.raw, func(t *testing.T) {
			status, err := models.ParseItemStatus(tt.raw)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, status)
			}
		})
	}
}

func TestSurveyStatusValid(t *testing.T) {
	for _, status := range []models.SurveyStatus{
		models.SurveyStatusPending,
		models.SurveyStatusInProgress,
		models.SurveyStatusCompleted,
		models.SurveyStatusApproved,
		models.SurveyStatusRejected,
		models.SurveyStatusCancelled,
	} {
		assert.True(t, status.Valid(), "%s must be valid", status)
	}

	assert.False(t, models.SurveyStatus("ARCHIVED").Valid())
	assert.False(t, models.SurveyStatus("").Valid())
}
