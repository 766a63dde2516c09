package handlers_test

import (
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/handlers"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/services"
)

// newChecklistApp wires a Fiber app with the checklist routes, the shared
// error handler and a pgxmock-backed service, mirroring the wiring in
// cmd/server.
func newChecklistApp(t *testing.T) (*fiber.App, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := logging.NewLoggerTo(log.New(io.Discard, "", 0))
	handler := handlers.NewChecklistHandler(services.NewChecklistService(mock, logger))

	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler})
	app.Patch("/checklist-items/:id/status", handler.UpdateStatus)
	app.Get("/surveys/:id/checklist", handler.ListBySurvey)
	return app, mock
}

// TestChecklistHandler_UpdateStatus_BadInput verifies the 400 mapping for
// malformed ids, bodies and statuses outside the closed set. None of these
// may reach the database.
func TestChecklistHandler_UpdateStatus_BadInput(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "non-numeric item id", path: "/checklist-items/abc/status", body: `{"status":"COMPLETED"}`},
		{name: "malformed body", path: "/checklist-items/42/status", body: `{"status":`},
		{name: "status outside the closed set", path: "/checklist-items/42/status", body: `{"status":"DONE"}`},
		{name: "lowercase status", path: "/checklist-items/42/status", body: `{"status":"completed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mock := newChecklistApp(t)

			req := httptest.NewRequest("PATCH", tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestChecklistHandler_ListBySurvey_UnknownSurvey verifies the 404 for a
// checklist listing against a survey that does not exist.
func TestChecklistHandler_ListBySurvey_UnknownSurvey(t *testing.T) {
	app, mock := newChecklistApp(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(999).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	resp, err := app.Test(httptest.NewRequest("GET", "/surveys/999/checklist", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestChecklistHandler_ListBySurvey_BadStatusFilter verifies the 400 for a
// status query parameter outside the closed set.
func TestChecklistHandler_ListBySurvey_BadStatusFilter(t *testing.T) {
	app, mock := newChecklistApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/surveys/5/checklist?status=DONE", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
