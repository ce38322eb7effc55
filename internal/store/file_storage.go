package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
)

// diskFileStorage stores uploaded note images on the local filesystem under
// a single upload directory. Stored names are generated UUIDs with the
// original extension preserved, so caller-supplied names never touch the
// filesystem.
type diskFileStorage struct {
	logger    *logger.Logger
	uuid      *utils.UUIDGenerator
	uploadDir string
}

// NewDiskFileStorage creates the upload directory if missing and returns a
// [FileStorage] writing into it.
func NewDiskFileStorage(cfg config.Files, logger *logger.Logger) (FileStorage, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	logger.Debug().Str("dir", cfg.UploadDir).Msg("creating file storage")

	return &diskFileStorage{
		uploadDir: cfg.UploadDir,
		uuid:      utils.NewUUIDGenerator(),
		logger:    logger,
	}, nil
}

// Save writes the reader's contents to a new file and returns the generated
// file name. The name keeps the extension of originalName when it has one.
func (s *diskFileStorage) Save(originalName string, r io.Reader) (string, error) {
	name := s.uuid.Generate()
	if strings.Contains(originalName, ".") {
		name += filepath.Ext(originalName)
	}

	path := filepath.Join(s.uploadDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return name, nil
}
