package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

type AuthService interface {
	Register(ctx context.Context, username string, password string) (models.User, error)
	Login(ctx context.Context, username string, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// CreateNoteInput carries the caller-supplied fields of a new note.
// Image is optional; when nil no file is stored.
type CreateNoteInput struct {
	UserID    int64
	Title     string
	Content   string
	Reminder  *time.Time
	ImageName string
	Image     io.Reader
}

// UpdateNoteInput carries the caller-supplied fields of a note update.
// A nil Reminder leaves the stored reminder untouched; a nil Image keeps the
// stored image.
type UpdateNoteInput struct {
	NoteID    int64
	UserID    int64
	Title     string
	Content   string
	Completed bool
	Reminder  *time.Time
	ImageName string
	Image     io.Reader
}

type NoteService interface {
	Create(ctx context.Context, input CreateNoteInput) (models.Note, error)
	Get(ctx context.Context, noteID int64, userID int64) (models.Note, error)
	List(ctx context.Context, opts store.ListNotesOptions) (models.NotePage, error)
	Update(ctx context.Context, input UpdateNoteInput) (models.Note, error)
	Delete(ctx context.Context, noteID int64, userID int64) error
	ToggleCompletion(ctx context.Context, noteID int64, userID int64) error
}

type AdminService interface {
	ListUsers(ctx context.Context, query string, page int, pageSize int) (models.UserPage, error)
	ToggleStatus(ctx context.Context, userID int64) (models.User, error)
	ChangeRole(ctx context.Context, userID int64, role models.Role) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type ExportService interface {
	ExportNotes(ctx context.Context, userID int64) ([]byte, error)
}

// NotificationPublisher is the outbound boundary of reminder notifications.
// Satisfied by *notify.Publisher.
type NotificationPublisher interface {
	Publish(ctx context.Context, text string) error
}

// ReminderJob is the background scanner that turns elapsed reminders into
// notifications.
type ReminderJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
