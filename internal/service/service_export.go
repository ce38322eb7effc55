package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheetName      = "Notes"
	exportDateFormat     = "2006-01-02"
	exportDateTimeFormat = "2006-01-02 15:04"
)

var exportHeader = []string{"ID", "Title", "Content", "Created", "Status", "Reminder", "Image"}

// exportService renders a user's full note list as an XLSX workbook.
type exportService struct {
	noteRepository store.NoteRepository
	logger         *logger.Logger
}

func NewExportService(noteRepository store.NoteRepository, logger *logger.Logger) ExportService {
	return &exportService{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

// ExportNotes builds the workbook for every note of the given user and
// returns it as raw XLSX bytes. One sheet, a bold header row, one row per
// note, notes ordered by id.
func (s *exportService) ExportNotes(ctx context.Context, userID int64) ([]byte, error) {
	log := logger.FromContext(ctx)

	notes, err := s.noteRepository.ListNotesByUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error listing notes for export")
		return nil, fmt.Errorf("note listing ended with error: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("building workbook: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("building workbook: %w", err)
	}

	if err := f.SetSheetRow(exportSheetName, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("building workbook: %w", err)
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err := f.SetCellStyle(exportSheetName, "A1", lastHeaderCell, headerStyle); err != nil {
		return nil, fmt.Errorf("building workbook: %w", err)
	}

	for i, note := range notes {
		status := "In progress"
		if note.Completed {
			status = "Done"
		}

		reminder := ""
		if note.Reminder != nil {
			reminder = note.Reminder.Format(exportDateTimeFormat)
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			note.NoteID,
			note.Title,
			note.Content,
			note.CreatedDate.Format(exportDateFormat),
			status,
			reminder,
			note.ImagePath,
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("building workbook: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return buf.Bytes(), nil
}
