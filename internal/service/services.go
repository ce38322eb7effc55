package service

import (
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

type Services struct {
	AuthService   AuthService
	NoteService   NoteService
	AdminService  AdminService
	ExportService ExportService
	ReminderJob   ReminderJob
}

func NewServices(repositories *store.Repositories, fileStorage store.FileStorage, publisher NotificationPublisher, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(repositories.UserRepository, cfg.Auth, logger),
		NoteService:   NewNoteService(repositories.NoteRepository, fileStorage, publisher, logger),
		AdminService:  NewAdminService(repositories.UserRepository, logger),
		ExportService: NewExportService(repositories.NoteRepository, logger),
		ReminderJob:   NewReminderJob(repositories.NoteRepository, publisher, logger),
	}
}
