package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/Masterminds/squirrel"
)

// sortableNoteColumns maps the externally visible sort field names of a note
// listing to the columns they order by. Unknown fields fall back to
// created_date.
var sortableNoteColumns = map[string]string{
	"created_date": "created_date",
	"title":        "title",
	"reminder":     "reminder",
	"completed":    "completed",
}

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
//
// Owner-scoped reads carry the user_id in the WHERE clause so a foreign
// note id behaves exactly like a missing one.
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// CreateNote persists a new note and returns the fully populated
// [models.Note] with the server-assigned NoteID.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createNote,
		note.UserID, note.Title, note.Content, note.CreatedDate, note.Completed, note.Reminder, nullableString(note.ImagePath))

	created, err := scanNote(row)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error creating note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetNote retrieves a note by id scoped to its owner.
// Returns [ErrNoteNotFound] when the id does not exist or belongs to a
// different user.
func (r *noteRepository) GetNote(ctx context.Context, noteID int64, userID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getNote, noteID, userID)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "*noteRepository.GetNote").Msg("error scanning note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return note, nil
}

// ListNotes returns one page of the owner's notes per opts.
//
// The paged query and its companion COUNT query are built with squirrel:
// the substring filter (title OR content, case-insensitive) appears only
// when a query string is present, and the ORDER BY column is resolved
// through [sortableNoteColumns].
func (r *noteRepository) ListNotes(ctx context.Context, opts ListNotesOptions) (models.NotePage, error) {
	log := logger.FromContext(ctx)

	if opts.Page < 0 {
		opts.Page = 0
	}
	if opts.PageSize < 1 {
		opts.PageSize = defaultPageSize
	}

	column, ok := sortableNoteColumns[opts.SortField]
	if !ok {
		column = "created_date"
	}
	direction := "ASC"
	if opts.SortDesc {
		direction = "DESC"
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	selectBuilder := builder.
		Select("note_id", "user_id", "title", "COALESCE(content, '')", "created_date", "completed", "reminder", "COALESCE(image_path, '')").
		From("notes").
		Where(squirrel.Eq{"user_id": opts.UserID}).
		OrderBy(column + " " + direction).
		Limit(uint64(opts.PageSize)).
		Offset(uint64(opts.Page * opts.PageSize))

	countBuilder := builder.
		Select("COUNT(*)").
		From("notes").
		Where(squirrel.Eq{"user_id": opts.UserID})

	if opts.Query != "" {
		pattern := "%" + opts.Query + "%"
		filter := squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
		}
		selectBuilder = selectBuilder.Where(filter)
		countBuilder = countBuilder.Where(filter)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error building count query")
		return models.NotePage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error counting notes")
		return models.NotePage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	selectSQL, selectArgs, err := selectBuilder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error building select query")
		return models.NotePage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, selectSQL, selectArgs...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error listing notes")
		return models.NotePage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes, err := scanNotes(rows)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error scanning note rows")
		return models.NotePage{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return models.NotePage{
		Notes:      notes,
		Page:       opts.Page,
		TotalPages: totalPages(total, opts.PageSize),
		Total:      total,
	}, nil
}

// ListNotesByUser returns all notes of one owner ordered by note_id.
// Used by the spreadsheet export, which is not paginated.
func (r *noteRepository) ListNotesByUser(ctx context.Context, userID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listNotesByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotesByUser").Msg("error listing notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes, err := scanNotes(rows)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotesByUser").Msg("error scanning note rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// UpdateNote replaces the mutable fields of a note (title, content,
// completed, reminder, image_path) and returns the stored row.
// Returns [ErrNoteNotFound] when the id does not resolve.
func (r *noteRepository) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateNote,
		note.NoteID, note.Title, note.Content, note.Completed, note.Reminder, nullableString(note.ImagePath))

	updated, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error updating note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeleteNote removes a note unconditionally. Ownership must have been
// established by the caller. Returns [ErrNoteNotFound] when nothing was
// deleted.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID int64) error {
	return r.execOnNote(ctx, deleteNote, "*noteRepository.DeleteNote", noteID)
}

// ToggleCompletion flips the completed flag in a single statement.
// Returns [ErrNoteNotFound] when the id does not resolve.
func (r *noteRepository) ToggleCompletion(ctx context.Context, noteID int64) error {
	return r.execOnNote(ctx, toggleNoteCompletion, "*noteRepository.ToggleCompletion", noteID)
}

// ListPendingReminders returns every note, regardless of owner, that still
// carries a reminder and is not completed. Consumed only by the reminder
// scanner; the query is retried on transient failures so one dropped
// connection does not silence a whole tick.
func (r *noteRepository) ListPendingReminders(ctx context.Context) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	var notes []models.Note
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, listPendingReminders)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		notes, err = scanNotes(rows)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListPendingReminders").Msg("error listing pending reminders")
		return nil, err
	}

	return notes, nil
}

// ClearReminder resets the reminder column to NULL so the note drops out of
// the pending set. Returns [ErrNoteNotFound] when the id does not resolve.
func (r *noteRepository) ClearReminder(ctx context.Context, noteID int64) error {
	return r.execOnNote(ctx, clearNoteReminder, "*noteRepository.ClearReminder", noteID)
}

// execOnNote runs a single-note statement and converts a zero rows-affected
// result into [ErrNoteNotFound]. Transient failures (dropped connection,
// deadlock rollback) are retried via the classifier.
func (r *noteRepository) execOnNote(ctx context.Context, query string, funcName string, noteID int64) error {
	log := logger.FromContext(ctx)

	var res sql.Result
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		var execErr error
		res, execErr = r.db.ExecContext(ctx, query, noteID)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanNote reads one note row in [noteColumns] order, converting the
// nullable reminder column into the model's *time.Time field.
func scanNote(row rowScanner) (models.Note, error) {
	var note models.Note
	var reminder sql.NullTime

	if err := row.Scan(&note.NoteID, &note.UserID, &note.Title, &note.Content,
		&note.CreatedDate, &note.Completed, &reminder, &note.ImagePath); err != nil {
		return models.Note{}, err
	}

	if reminder.Valid {
		t := reminder.Time
		note.Reminder = &t
	}

	return note, nil
}

// scanNotes drains rows through scanNote.
func scanNotes(rows *sql.Rows) ([]models.Note, error) {
	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// nullableString maps an empty string to NULL so optional text columns stay
// NULL instead of accumulating empty strings.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
