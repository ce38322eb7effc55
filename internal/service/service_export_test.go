package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportNotes(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

	repo := &mockNoteRepository{
		listNotesByUserFunc: func(_ context.Context, _ int64) ([]models.Note, error) {
			return []models.Note{
				{NoteID: 1, Title: "groceries", Content: "milk", CreatedDate: created, Completed: true, ImagePath: "img.png"},
				{NoteID: 2, Title: "dentist", CreatedDate: created, Reminder: &due},
			}, nil
		},
	}
	svc := NewExportService(repo, logger.Nop())

	data, err := svc.ExportNotes(context.Background(), 7)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, []string{"1", "groceries", "milk", "2025-06-01", "Done", "", "img.png"}, rows[1])
	assert.Equal(t, []string{"2", "dentist", "", "2025-06-01", "In progress", "2025-06-02 09:30"}, rows[2])
}

func TestExportService_ExportNotes_Empty(t *testing.T) {
	repo := &mockNoteRepository{
		listNotesByUserFunc: func(_ context.Context, _ int64) ([]models.Note, error) {
			return nil, nil
		},
	}
	svc := NewExportService(repo, logger.Nop())

	data, err := svc.ExportNotes(context.Background(), 7)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1, "only the header row is expected")
}

func TestExportService_ExportNotes_RepositoryError(t *testing.T) {
	repo := &mockNoteRepository{
		listNotesByUserFunc: func(_ context.Context, _ int64) ([]models.Note, error) {
			return nil, assert.AnError
		},
	}
	svc := NewExportService(repo, logger.Nop())

	_, err := svc.ExportNotes(context.Background(), 7)
	assert.ErrorIs(t, err, assert.AnError)
}
