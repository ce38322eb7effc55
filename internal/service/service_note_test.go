package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_Create_ValidatesTitle(t *testing.T) {
	svc := NewNoteService(&mockNoteRepository{}, &mockFileStorage{}, &spyPublisher{}, logger.Nop())

	_, err := svc.Create(context.Background(), CreateNoteInput{UserID: 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), CreateNoteInput{UserID: 1, Title: strings.Repeat("x", 256)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), CreateNoteInput{UserID: 1, Title: "ok", Content: strings.Repeat("x", 2001)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), CreateNoteInput{UserID: 1, Title: "   \t"})
	assert.ErrorIs(t, err, ErrValidation, "whitespace-only title is blank")
}

func TestNoteService_Create_TitleLengthCountsCharacters(t *testing.T) {
	repo := &mockNoteRepository{
		createNoteFunc: func(_ context.Context, note models.Note) (models.Note, error) {
			note.NoteID = 11
			return note, nil
		},
	}
	svc := NewNoteService(repo, &mockFileStorage{}, &spyPublisher{}, logger.Nop())

	// 200 Cyrillic characters occupy 400 bytes; the limit is on characters.
	_, err := svc.Create(context.Background(), CreateNoteInput{UserID: 1, Title: strings.Repeat("я", 200)})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateNoteInput{UserID: 1, Title: strings.Repeat("я", 256)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), CreateNoteInput{UserID: 1, Title: "ok", Content: strings.Repeat("я", 2000)})
	require.NoError(t, err)
}

func TestNoteService_Create_WithoutReminder(t *testing.T) {
	repo := &mockNoteRepository{
		createNoteFunc: func(_ context.Context, note models.Note) (models.Note, error) {
			note.NoteID = 11
			return note, nil
		},
	}
	publisher := &spyPublisher{}
	svc := NewNoteService(repo, &mockFileStorage{}, publisher, logger.Nop())

	created, err := svc.Create(context.Background(), CreateNoteInput{UserID: 1, Title: "groceries"})
	require.NoError(t, err)

	assert.Equal(t, int64(11), created.NoteID)
	assert.Empty(t, publisher.messages(), "no reminder means no notification")
}

func TestNoteService_Create_WithReminderPublishes(t *testing.T) {
	due := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	repo := &mockNoteRepository{
		createNoteFunc: func(_ context.Context, note models.Note) (models.Note, error) {
			note.NoteID = 11
			return note, nil
		},
	}
	publisher := &spyPublisher{}
	svc := NewNoteService(repo, &mockFileStorage{}, publisher, logger.Nop())

	_, err := svc.Create(context.Background(), CreateNoteInput{UserID: 1, Title: "dentist", Reminder: &due})
	require.NoError(t, err)

	messages := publisher.messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "Reminder: dentist at 2025-06-02 09:30", messages[0])
}

func TestNoteService_Create_PublishFailureDoesNotFailCreate(t *testing.T) {
	due := time.Now().Add(time.Hour)
	repo := &mockNoteRepository{
		createNoteFunc: func(_ context.Context, note models.Note) (models.Note, error) {
			note.NoteID = 11
			return note, nil
		},
	}
	publisher := &spyPublisher{err: assert.AnError}
	svc := NewNoteService(repo, &mockFileStorage{}, publisher, logger.Nop())

	created, err := svc.Create(context.Background(), CreateNoteInput{UserID: 1, Title: "dentist", Reminder: &due})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.NoteID)
}

func TestNoteService_Create_StoresImage(t *testing.T) {
	var savedName string
	fs := &mockFileStorage{
		saveFunc: func(originalName string, r io.Reader) (string, error) {
			savedName = originalName
			return "generated.png", nil
		},
	}
	repo := &mockNoteRepository{
		createNoteFunc: func(_ context.Context, note models.Note) (models.Note, error) {
			return note, nil
		},
	}
	svc := NewNoteService(repo, fs, &spyPublisher{}, logger.Nop())

	created, err := svc.Create(context.Background(), CreateNoteInput{
		UserID:    1,
		Title:     "photo note",
		ImageName: "cat.png",
		Image:     strings.NewReader("bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, "cat.png", savedName)
	assert.Equal(t, "generated.png", created.ImagePath)
}

func TestNoteService_Update_KeepsReminderWhenAbsent(t *testing.T) {
	existingDue := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	repo := &mockNoteRepository{
		getNoteFunc: func(_ context.Context, noteID int64, userID int64) (models.Note, error) {
			return models.Note{NoteID: noteID, UserID: userID, Title: "old", Reminder: &existingDue, ImagePath: "old.png"}, nil
		},
		updateNoteFunc: func(_ context.Context, note models.Note) (models.Note, error) {
			return note, nil
		},
	}
	publisher := &spyPublisher{}
	svc := NewNoteService(repo, &mockFileStorage{}, publisher, logger.Nop())

	updated, err := svc.Update(context.Background(), UpdateNoteInput{NoteID: 11, UserID: 1, Title: "new", Completed: true})
	require.NoError(t, err)

	require.NotNil(t, updated.Reminder)
	assert.True(t, updated.Reminder.Equal(existingDue))
	assert.Equal(t, "old.png", updated.ImagePath)
	assert.True(t, updated.Completed)
	assert.Empty(t, publisher.messages(), "an untouched reminder must not re-announce")
}

func TestNoteService_Update_NewReminderPublishes(t *testing.T) {
	due := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockNoteRepository{
		getNoteFunc: func(_ context.Context, noteID int64, userID int64) (models.Note, error) {
			return models.Note{NoteID: noteID, UserID: userID, Title: "old"}, nil
		},
		updateNoteFunc: func(_ context.Context, note models.Note) (models.Note, error) {
			return note, nil
		},
	}
	publisher := &spyPublisher{}
	svc := NewNoteService(repo, &mockFileStorage{}, publisher, logger.Nop())

	_, err := svc.Update(context.Background(), UpdateNoteInput{NoteID: 11, UserID: 1, Title: "meeting", Reminder: &due})
	require.NoError(t, err)

	messages := publisher.messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "Reminder: meeting at 2025-07-01 12:00", messages[0])
}

func TestNoteService_Update_ForeignNote(t *testing.T) {
	repo := &mockNoteRepository{
		getNoteFunc: func(_ context.Context, _ int64, _ int64) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}
	svc := NewNoteService(repo, &mockFileStorage{}, &spyPublisher{}, logger.Nop())

	_, err := svc.Update(context.Background(), UpdateNoteInput{NoteID: 11, UserID: 2, Title: "x"})
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestNoteService_Delete_ChecksOwnershipFirst(t *testing.T) {
	deleted := false
	repo := &mockNoteRepository{
		getNoteFunc: func(_ context.Context, _ int64, _ int64) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
		deleteNoteFunc: func(_ context.Context, _ int64) error {
			deleted = true
			return nil
		},
	}
	svc := NewNoteService(repo, &mockFileStorage{}, &spyPublisher{}, logger.Nop())

	err := svc.Delete(context.Background(), 11, 2)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
	assert.False(t, deleted, "a foreign note must not be deleted")
}

func TestNoteService_ToggleCompletion(t *testing.T) {
	var toggledID int64
	repo := &mockNoteRepository{
		getNoteFunc: func(_ context.Context, noteID int64, userID int64) (models.Note, error) {
			return models.Note{NoteID: noteID, UserID: userID}, nil
		},
		toggleCompletionFunc: func(_ context.Context, noteID int64) error {
			toggledID = noteID
			return nil
		},
	}
	svc := NewNoteService(repo, &mockFileStorage{}, &spyPublisher{}, logger.Nop())

	require.NoError(t, svc.ToggleCompletion(context.Background(), 11, 1))
	assert.Equal(t, int64(11), toggledID)
}
