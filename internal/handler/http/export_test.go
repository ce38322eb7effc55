package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportNotes(t *testing.T) {
	export := &mockExportService{
		exportFn: func(_ context.Context, userID int64) ([]byte, error) {
			assert.Equal(t, int64(7), userID)
			return []byte("xlsx-bytes"), nil
		},
	}
	handler := newTestHandler(parseTokenAs(7, models.RoleUser), nil, nil, export)
	router := handler.Init()

	req := authedRequest(http.MethodGet, "/api/export/excel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "notes.xlsx")
	assert.Equal(t, "xlsx-bytes", rec.Body.String())
}

func TestExportNotes_ServiceError(t *testing.T) {
	export := &mockExportService{
		exportFn: func(_ context.Context, _ int64) ([]byte, error) {
			return nil, assert.AnError
		},
	}
	handler := newTestHandler(parseTokenAs(7, models.RoleUser), nil, nil, export)
	router := handler.Init()

	req := authedRequest(http.MethodGet, "/api/export/excel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
