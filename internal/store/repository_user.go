package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, listing and administrative mutations
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, Active, Role, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.PasswordHash)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	var created models.User
	if err := row.Scan(&created.UserID, &created.Username, &created.PasswordHash, &created.Active, &created.Role, &created.CreatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrUsernameAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return created, nil
}

// FindUserByUsername retrieves a user record whose Username matches the
// provided value.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, findUserByUsername, username)

	if err := row.Scan(&found.UserID, &found.Username, &found.PasswordHash, &found.Active, &found.Role, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindUserByID retrieves a user record by its internal identifier.
//
// Error handling mirrors [userRepository.FindUserByUsername].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	if err := row.Scan(&found.UserID, &found.Username, &found.PasswordHash, &found.Active, &found.Role, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// ListUsers returns one page of users ordered by user_id, optionally filtered
// by a case-insensitive substring match on username.
//
// The paged query and its companion COUNT query are built dynamically with
// squirrel so the filter clause appears only when a query string is present.
func (r *userRepository) ListUsers(ctx context.Context, query string, page int, pageSize int) (models.UserPage, error) {
	log := logger.FromContext(ctx)

	if page < 0 {
		page = 0
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	selectBuilder := builder.
		Select("user_id", "username", "password_hash", "active", "role", "created_at").
		From("users").
		OrderBy("user_id").
		Limit(uint64(pageSize)).
		Offset(uint64(page * pageSize))

	countBuilder := builder.Select("COUNT(*)").From("users")

	if query != "" {
		filter := squirrel.ILike{"username": "%" + query + "%"}
		selectBuilder = selectBuilder.Where(filter)
		countBuilder = countBuilder.Where(filter)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error building count query")
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error counting users")
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	selectSQL, selectArgs, err := selectBuilder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error building select query")
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, selectSQL, selectArgs...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, pageSize)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.Active, &u.Role, &u.CreatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning user row")
			return models.UserPage{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return models.UserPage{
		Users:      users,
		Page:       page,
		TotalPages: totalPages(total, pageSize),
		Total:      total,
	}, nil
}

// UpdateActive sets the active flag of the given user.
// Returns [ErrUserNotFound] when the id does not resolve.
func (r *userRepository) UpdateActive(ctx context.Context, userID int64, active bool) error {
	return r.execOnUser(ctx, updateUserActive, "*userRepository.UpdateActive", userID, active)
}

// UpdateRole sets the role of the given user.
// Returns [ErrUserNotFound] when the id does not resolve.
func (r *userRepository) UpdateRole(ctx context.Context, userID int64, role models.Role) error {
	return r.execOnUser(ctx, updateUserRole, "*userRepository.UpdateRole", userID, string(role))
}

// DeleteUser removes the user and all of their notes in a single
// transaction. The notes are deleted by an explicit statement rather than a
// cascading constraint so the coupling stays visible at this layer.
//
// Returns [ErrUserNotFound] when the id does not resolve (no rows deleted
// from the users table).
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteNotesByUser, userID); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting user notes")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	res, err := tx.ExecContext(ctx, deleteUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting user")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// execOnUser runs a single-user UPDATE statement and converts a zero
// rows-affected result into [ErrUserNotFound].
func (r *userRepository) execOnUser(ctx context.Context, query string, funcName string, userID int64, arg any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, userID, arg)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// totalPages derives the page count of a listing from the total row count.
func totalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
