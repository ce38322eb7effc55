package models

import "time"

// Note represents a single user-owned note with an optional attached image
// and an optional reminder timestamp.
//
// A note belongs to exactly one user for its whole lifetime; UserID is set at
// creation and never changes. Reminder is either nil or a concrete instant;
// once a notification has been published for it the field is reset to nil,
// so each set reminder value notifies at most once.
type Note struct {
	// NoteID is the internal unique identifier of the note.
	NoteID int64 `json:"id"`

	// UserID references the owning user. Immutable after creation.
	UserID int64 `json:"-"`

	// Title is required and limited to 255 characters.
	Title string `json:"title"`

	// Content is optional free text limited to 2000 characters.
	Content string `json:"content"`

	// CreatedDate is the calendar date the note was created. Set once.
	CreatedDate time.Time `json:"created_date"`

	// Completed marks the note as done. Independent of Reminder.
	Completed bool `json:"completed"`

	// Reminder is the optional notification instant. Nil means no pending
	// notification obligation.
	Reminder *time.Time `json:"reminder,omitempty"`

	// ImagePath is the stored name of the attached image, empty when the
	// note has no image. The name is server-generated, never the original
	// upload filename.
	ImagePath string `json:"image_path,omitempty"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// NotePage is one page of a paginated note listing.
type NotePage struct {
	Notes      []Note `json:"notes"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int64  `json:"total"`
}
