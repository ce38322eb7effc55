package service

import (
	"context"
	"io"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// mockUserRepository implements store.UserRepository with overridable
// function fields. Unset methods panic so tests only exercise what they
// declare.
type mockUserRepository struct {
	createUserFunc         func(ctx context.Context, user models.User) (models.User, error)
	findUserByUsernameFunc func(ctx context.Context, username string) (models.User, error)
	findUserByIDFunc       func(ctx context.Context, userID int64) (models.User, error)
	listUsersFunc          func(ctx context.Context, query string, page int, pageSize int) (models.UserPage, error)
	updateActiveFunc       func(ctx context.Context, userID int64, active bool) error
	updateRoleFunc         func(ctx context.Context, userID int64, role models.Role) error
	deleteUserFunc         func(ctx context.Context, userID int64) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUserFunc(ctx, user)
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return m.findUserByUsernameFunc(ctx, username)
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return m.findUserByIDFunc(ctx, userID)
}

func (m *mockUserRepository) ListUsers(ctx context.Context, query string, page int, pageSize int) (models.UserPage, error) {
	return m.listUsersFunc(ctx, query, page, pageSize)
}

func (m *mockUserRepository) UpdateActive(ctx context.Context, userID int64, active bool) error {
	return m.updateActiveFunc(ctx, userID, active)
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, userID int64, role models.Role) error {
	return m.updateRoleFunc(ctx, userID, role)
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	return m.deleteUserFunc(ctx, userID)
}

// mockNoteRepository implements store.NoteRepository with overridable
// function fields.
type mockNoteRepository struct {
	createNoteFunc           func(ctx context.Context, note models.Note) (models.Note, error)
	getNoteFunc              func(ctx context.Context, noteID int64, userID int64) (models.Note, error)
	listNotesFunc            func(ctx context.Context, opts store.ListNotesOptions) (models.NotePage, error)
	listNotesByUserFunc      func(ctx context.Context, userID int64) ([]models.Note, error)
	updateNoteFunc           func(ctx context.Context, note models.Note) (models.Note, error)
	deleteNoteFunc           func(ctx context.Context, noteID int64) error
	toggleCompletionFunc     func(ctx context.Context, noteID int64) error
	listPendingRemindersFunc func(ctx context.Context) ([]models.Note, error)
	clearReminderFunc        func(ctx context.Context, noteID int64) error
}

func (m *mockNoteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	return m.createNoteFunc(ctx, note)
}

func (m *mockNoteRepository) GetNote(ctx context.Context, noteID int64, userID int64) (models.Note, error) {
	return m.getNoteFunc(ctx, noteID, userID)
}

func (m *mockNoteRepository) ListNotes(ctx context.Context, opts store.ListNotesOptions) (models.NotePage, error) {
	return m.listNotesFunc(ctx, opts)
}

func (m *mockNoteRepository) ListNotesByUser(ctx context.Context, userID int64) ([]models.Note, error) {
	return m.listNotesByUserFunc(ctx, userID)
}

func (m *mockNoteRepository) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	return m.updateNoteFunc(ctx, note)
}

func (m *mockNoteRepository) DeleteNote(ctx context.Context, noteID int64) error {
	return m.deleteNoteFunc(ctx, noteID)
}

func (m *mockNoteRepository) ToggleCompletion(ctx context.Context, noteID int64) error {
	return m.toggleCompletionFunc(ctx, noteID)
}

func (m *mockNoteRepository) ListPendingReminders(ctx context.Context) ([]models.Note, error) {
	return m.listPendingRemindersFunc(ctx)
}

func (m *mockNoteRepository) ClearReminder(ctx context.Context, noteID int64) error {
	return m.clearReminderFunc(ctx, noteID)
}

// mockFileStorage implements store.FileStorage.
type mockFileStorage struct {
	saveFunc func(originalName string, r io.Reader) (string, error)
}

func (m *mockFileStorage) Save(originalName string, r io.Reader) (string, error) {
	return m.saveFunc(originalName, r)
}

// spyPublisher records published texts and is safe for concurrent use.
type spyPublisher struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (p *spyPublisher) Publish(_ context.Context, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, text)
	return p.err
}

func (p *spyPublisher) messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.published...)
}
