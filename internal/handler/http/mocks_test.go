package http

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn    func(ctx context.Context, username string, password string) (models.User, error)
	loginFn       func(ctx context.Context, username string, password string) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, username string, password string) (models.User, error) {
	return m.registerFn(ctx, username, password)
}

func (m *mockAuthService) Login(ctx context.Context, username string, password string) (models.User, error) {
	return m.loginFn(ctx, username, password)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockNoteService implements service.NoteService for unit tests.
type mockNoteService struct {
	createFn func(ctx context.Context, input service.CreateNoteInput) (models.Note, error)
	getFn    func(ctx context.Context, noteID int64, userID int64) (models.Note, error)
	listFn   func(ctx context.Context, opts store.ListNotesOptions) (models.NotePage, error)
	updateFn func(ctx context.Context, input service.UpdateNoteInput) (models.Note, error)
	deleteFn func(ctx context.Context, noteID int64, userID int64) error
	toggleFn func(ctx context.Context, noteID int64, userID int64) error
}

func (m *mockNoteService) Create(ctx context.Context, input service.CreateNoteInput) (models.Note, error) {
	return m.createFn(ctx, input)
}

func (m *mockNoteService) Get(ctx context.Context, noteID int64, userID int64) (models.Note, error) {
	return m.getFn(ctx, noteID, userID)
}

func (m *mockNoteService) List(ctx context.Context, opts store.ListNotesOptions) (models.NotePage, error) {
	return m.listFn(ctx, opts)
}

func (m *mockNoteService) Update(ctx context.Context, input service.UpdateNoteInput) (models.Note, error) {
	return m.updateFn(ctx, input)
}

func (m *mockNoteService) Delete(ctx context.Context, noteID int64, userID int64) error {
	return m.deleteFn(ctx, noteID, userID)
}

func (m *mockNoteService) ToggleCompletion(ctx context.Context, noteID int64, userID int64) error {
	return m.toggleFn(ctx, noteID, userID)
}

// mockAdminService implements service.AdminService for unit tests.
type mockAdminService struct {
	listUsersFn    func(ctx context.Context, query string, page int, pageSize int) (models.UserPage, error)
	toggleStatusFn func(ctx context.Context, userID int64) (models.User, error)
	changeRoleFn   func(ctx context.Context, userID int64, role models.Role) (models.User, error)
	deleteUserFn   func(ctx context.Context, userID int64) error
}

func (m *mockAdminService) ListUsers(ctx context.Context, query string, page int, pageSize int) (models.UserPage, error) {
	return m.listUsersFn(ctx, query, page, pageSize)
}

func (m *mockAdminService) ToggleStatus(ctx context.Context, userID int64) (models.User, error) {
	return m.toggleStatusFn(ctx, userID)
}

func (m *mockAdminService) ChangeRole(ctx context.Context, userID int64, role models.Role) (models.User, error) {
	return m.changeRoleFn(ctx, userID, role)
}

func (m *mockAdminService) DeleteUser(ctx context.Context, userID int64) error {
	return m.deleteUserFn(ctx, userID)
}

// mockExportService implements service.ExportService for unit tests.
type mockExportService struct {
	exportFn func(ctx context.Context, userID int64) ([]byte, error)
}

func (m *mockExportService) ExportNotes(ctx context.Context, userID int64) ([]byte, error) {
	return m.exportFn(ctx, userID)
}

// newTestHandler builds a Handler over the given service mocks. Nil mocks
// are fine for routes the test never hits.
func newTestHandler(auth service.AuthService, notes service.NoteService, admin service.AdminService, export service.ExportService) *Handler {
	return NewHandler(&service.Services{
		AuthService:   auth,
		NoteService:   notes,
		AdminService:  admin,
		ExportService: export,
	}, logger.Nop())
}

// parseTokenAs returns a mockAuthService whose ParseToken always yields a
// token of the given identity, for driving the auth middleware in tests.
func parseTokenAs(userID int64, role models.Role) *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{UserID: userID, Role: role}, nil
		},
	}
}
