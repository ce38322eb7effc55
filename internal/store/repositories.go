package store

import (
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// Repositories bundles all database-backed repositories behind their
// interfaces.
type Repositories struct {
	UserRepository
	NoteRepository
}

func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db, logger),
		NoteRepository: NewNoteRepository(db, logger),
	}
}
