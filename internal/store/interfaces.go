package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-note-keeper/models"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implemented by [PostgresErrorClassifier].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository is the persistence boundary for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context, query string, page int, pageSize int) (models.UserPage, error)
	UpdateActive(ctx context.Context, userID int64, active bool) error
	UpdateRole(ctx context.Context, userID int64, role models.Role) error
	DeleteUser(ctx context.Context, userID int64) error
}

// NoteRepository is the persistence boundary for notes.
//
// Owner-scoped methods (GetNote, ListNotes) never return another user's
// note; unscoped methods (DeleteNote, ToggleCompletion, ClearReminder)
// trust the caller to have established ownership beforehand.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, noteID int64, userID int64) (models.Note, error)
	ListNotes(ctx context.Context, opts ListNotesOptions) (models.NotePage, error)
	ListNotesByUser(ctx context.Context, userID int64) ([]models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, noteID int64) error
	ToggleCompletion(ctx context.Context, noteID int64) error
	ListPendingReminders(ctx context.Context) ([]models.Note, error)
	ClearReminder(ctx context.Context, noteID int64) error
}

// FileStorage persists uploaded note images outside the relational store and
// hands back the generated name used as the durable reference on the note.
type FileStorage interface {
	Save(originalName string, r io.Reader) (string, error)
}

// defaultPageSize is the page size of all paginated listings.
const defaultPageSize = 10

// ListNotesOptions carries the filter, ordering and pagination parameters of
// a note listing.
type ListNotesOptions struct {
	UserID    int64
	Query     string
	Page      int
	PageSize  int
	SortField string
	SortDesc  bool
}
