package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

const (
	maxTitleLength   = 255
	maxContentLength = 2000

	reminderTimeFormat = "2006-01-02 15:04"
)

// noteService is the concrete implementation of NoteService.
//
// It owns the note lifecycle: validation, image persistence and the
// immediate notification emitted when a reminder is attached. Mutations go
// through an ownership check first so one user can never touch another
// user's notes.
type noteService struct {
	noteRepository store.NoteRepository
	fileStorage    store.FileStorage
	publisher      NotificationPublisher
	logger         *logger.Logger
}

func NewNoteService(noteRepository store.NoteRepository, fileStorage store.FileStorage, publisher NotificationPublisher, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		fileStorage:    fileStorage,
		publisher:      publisher,
		logger:         logger,
	}
}

// Create validates the input, stores the attached image when present,
// persists the note and, when a reminder is set, immediately publishes a
// notification announcing it.
//
// A failed publish does not fail the create; the notification channel is
// best effort while the note itself is not.
func (s *noteService) Create(ctx context.Context, input CreateNoteInput) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := validateNoteFields(input.Title, input.Content); err != nil {
		log.Error().Str("title", input.Title).Msg("invalid note data provided")
		return models.Note{}, err
	}

	note := models.Note{
		UserID:      input.UserID,
		Title:       input.Title,
		Content:     input.Content,
		CreatedDate: time.Now(),
		Reminder:    input.Reminder,
	}

	if input.Image != nil {
		name, err := s.fileStorage.Save(input.ImageName, input.Image)
		if err != nil {
			log.Err(err).Msg("error storing note image")
			return models.Note{}, fmt.Errorf("storing note image: %w", err)
		}
		note.ImagePath = name
	}

	created, err := s.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	if created.Reminder != nil {
		s.announceReminder(ctx, created)
	}

	return created, nil
}

// Get returns one of the caller's notes.
func (s *noteService) Get(ctx context.Context, noteID int64, userID int64) (models.Note, error) {
	note, err := s.noteRepository.GetNote(ctx, noteID, userID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note lookup ended with error: %w", err)
	}

	return note, nil
}

// List returns one page of the caller's notes per opts.
func (s *noteService) List(ctx context.Context, opts store.ListNotesOptions) (models.NotePage, error) {
	page, err := s.noteRepository.ListNotes(ctx, opts)
	if err != nil {
		return models.NotePage{}, fmt.Errorf("note listing ended with error: %w", err)
	}

	return page, nil
}

// Update replaces the note's mutable fields after an ownership check.
// A nil Reminder keeps the stored reminder; a non-nil one replaces it and
// triggers an immediate notification. A nil Image keeps the stored image.
func (s *noteService) Update(ctx context.Context, input UpdateNoteInput) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := validateNoteFields(input.Title, input.Content); err != nil {
		log.Error().Str("title", input.Title).Msg("invalid note data provided")
		return models.Note{}, err
	}

	existing, err := s.noteRepository.GetNote(ctx, input.NoteID, input.UserID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note lookup ended with error: %w", err)
	}

	existing.Title = input.Title
	existing.Content = input.Content
	existing.Completed = input.Completed

	if input.Image != nil {
		name, err := s.fileStorage.Save(input.ImageName, input.Image)
		if err != nil {
			log.Err(err).Msg("error storing note image")
			return models.Note{}, fmt.Errorf("storing note image: %w", err)
		}
		existing.ImagePath = name
	}

	remind := false
	if input.Reminder != nil {
		existing.Reminder = input.Reminder
		remind = true
	}

	updated, err := s.noteRepository.UpdateNote(ctx, existing)
	if err != nil {
		log.Err(err).Int64("note_id", input.NoteID).Msg("note update ended with error")
		return models.Note{}, fmt.Errorf("note update ended with error: %w", err)
	}

	if remind {
		s.announceReminder(ctx, updated)
	}

	return updated, nil
}

// Delete removes one of the caller's notes after an ownership check.
func (s *noteService) Delete(ctx context.Context, noteID int64, userID int64) error {
	if _, err := s.noteRepository.GetNote(ctx, noteID, userID); err != nil {
		return fmt.Errorf("note lookup ended with error: %w", err)
	}

	if err := s.noteRepository.DeleteNote(ctx, noteID); err != nil {
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	return nil
}

// ToggleCompletion flips the completed flag of one of the caller's notes
// after an ownership check.
func (s *noteService) ToggleCompletion(ctx context.Context, noteID int64, userID int64) error {
	if _, err := s.noteRepository.GetNote(ctx, noteID, userID); err != nil {
		return fmt.Errorf("note lookup ended with error: %w", err)
	}

	if err := s.noteRepository.ToggleCompletion(ctx, noteID); err != nil {
		return fmt.Errorf("note completion toggle ended with error: %w", err)
	}

	return nil
}

// announceReminder publishes the "reminder set" notification. Failures are
// logged, never propagated.
func (s *noteService) announceReminder(ctx context.Context, note models.Note) {
	log := logger.FromContext(ctx)

	text := fmt.Sprintf("Reminder: %s at %s", note.Title, note.Reminder.Format(reminderTimeFormat))
	if err := s.publisher.Publish(ctx, text); err != nil {
		log.Err(err).Int64("note_id", note.NoteID).Msg("error publishing reminder notification")
	}
}

// validateNoteFields checks the shared constraints of create and update.
// Lengths count characters, not bytes, matching the VARCHAR limits of the
// notes table.
func validateNoteFields(title string, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrValidation, maxTitleLength)
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return fmt.Errorf("%w: content must be at most %d characters", ErrValidation, maxContentLength)
	}

	return nil
}
