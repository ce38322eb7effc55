package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

// maxUploadSize bounds the in-memory part of a multipart note request.
const maxUploadSize = 32 << 20

// reminderFormats are the accepted layouts of the multipart "reminder"
// field. The second one matches HTML datetime-local inputs.
var reminderFormats = []string{time.RFC3339, "2006-01-02T15:04"}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	sortField := r.URL.Query().Get("sort")
	if sortField == "" {
		sortField = "created_date"
	}

	opts := store.ListNotesOptions{
		UserID:    userID,
		Query:     r.URL.Query().Get("query"),
		Page:      page,
		SortField: sortField,
		SortDesc:  r.URL.Query().Get("direction") != "asc",
	}

	notes, err := h.services.NoteService.List(ctx, opts)
	if err != nil {
		log.Err(err).Msg("error listing notes")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	reminder, err := parseReminder(r.FormValue("reminder"))
	if err != nil {
		log.Err(err).Msg("invalid reminder value")
		http.Error(w, "invalid reminder value", http.StatusBadRequest)
		return
	}

	input := service.CreateNoteInput{
		UserID:   userID,
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Reminder: reminder,
	}

	file, header, err := imageFromForm(r)
	if err != nil {
		log.Err(err).Msg("error reading image from form")
		http.Error(w, "error reading image from form", http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
		input.Image = file
		input.ImageName = header.Filename
	}

	created, err := h.services.NoteService.Create(ctx, input)
	if err != nil {
		log.Err(err).Msg("error creating note")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := noteIDFromRequest(r)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.Get(ctx, noteID, userID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("error fetching note")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := noteIDFromRequest(r)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	reminder, err := parseReminder(r.FormValue("reminder"))
	if err != nil {
		log.Err(err).Msg("invalid reminder value")
		http.Error(w, "invalid reminder value", http.StatusBadRequest)
		return
	}

	input := service.UpdateNoteInput{
		NoteID:    noteID,
		UserID:    userID,
		Title:     r.FormValue("title"),
		Content:   r.FormValue("content"),
		Completed: r.FormValue("completed") == "true",
		Reminder:  reminder,
	}

	file, header, err := imageFromForm(r)
	if err != nil {
		log.Err(err).Msg("error reading image from form")
		http.Error(w, "error reading image from form", http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
		input.Image = file
		input.ImageName = header.Filename
	}

	updated, err := h.services.NoteService.Update(ctx, input)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("error updating note")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := noteIDFromRequest(r)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.Delete(ctx, noteID, userID); err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("error deleting note")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toggleNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := noteIDFromRequest(r)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.ToggleCompletion(ctx, noteID, userID); err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("error toggling note completion")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func noteIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
}

// parseReminder converts the raw form value into a timestamp. An empty
// value means "no reminder" and yields nil without error.
func parseReminder(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	var lastErr error
	for _, format := range reminderFormats {
		t, err := time.Parse(format, raw)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// imageFromForm extracts the optional "image" part. A missing part is not
// an error; both return values are nil in that case.
func imageFromForm(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	return file, header, nil
}
