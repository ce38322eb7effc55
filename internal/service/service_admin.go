package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// adminService is the concrete implementation of AdminService.
// All operations assume the caller's ADMIN role has already been verified
// by the transport layer.
type adminService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

func NewAdminService(userRepository store.UserRepository, logger *logger.Logger) AdminService {
	return &adminService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// ListUsers returns one page of accounts, optionally filtered by a
// case-insensitive substring of the username.
func (s *adminService) ListUsers(ctx context.Context, query string, page int, pageSize int) (models.UserPage, error) {
	users, err := s.userRepository.ListUsers(ctx, query, page, pageSize)
	if err != nil {
		return models.UserPage{}, fmt.Errorf("user listing ended with error: %w", err)
	}

	return users, nil
}

// ToggleStatus flips the active flag of the given account and returns the
// updated record. A deactivated account cannot log in; its already issued
// tokens are not revoked.
func (s *adminService) ToggleStatus(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	user.Active = !user.Active
	if err := s.userRepository.UpdateActive(ctx, userID, user.Active); err != nil {
		log.Err(err).Int64("id", userID).Msg("error toggling user status")
		return models.User{}, fmt.Errorf("user status toggle ended with error: %w", err)
	}

	log.Info().Int64("id", userID).Bool("active", user.Active).Msg("user status toggled")
	return user, nil
}

// ChangeRole assigns a new role to the given account and returns the
// updated record. Only roles listed in models are accepted.
func (s *adminService) ChangeRole(ctx context.Context, userID int64, role models.Role) (models.User, error) {
	log := logger.FromContext(ctx)

	if !role.Valid() {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	user.Role = role
	if err := s.userRepository.UpdateRole(ctx, userID, role); err != nil {
		log.Err(err).Int64("id", userID).Msg("error changing user role")
		return models.User{}, fmt.Errorf("user role change ended with error: %w", err)
	}

	log.Info().Int64("id", userID).Str("role", string(role)).Msg("user role changed")
	return user, nil
}

// DeleteUser removes the account together with all of its notes.
func (s *adminService) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	log.Info().Int64("id", userID).Msg("user deleted")
	return nil
}
