package domain

import (
	"encoding/json"
	"time"
)

// Tag is one of the fixed color labels a note can carry.
type Tag string

const (
	TagRed    Tag = "red"
	TagOrange Tag = "orange"
	TagYellow Tag = "yellow"
	TagGreen  Tag = "green"
	TagBlue   Tag = "blue"
	TagPurple Tag = "purple"
	TagPink   Tag = "pink"
)

const DefaultNoteTitle = "New Note"

type Note struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	UserID string `json:"user_id"`

	Title    string  `json:"title"`
	Content  string  `json:"content"`
	FolderID *string `json:"folder_id"`

	IsPinned  bool       `json:"is_pinned"`
	IsLocked  bool       `json:"is_locked"`
	IsTrashed bool       `json:"is_trashed"`
	TrashedAt *time.Time `json:"trashed_at"`

	Tags []Tag `json:"tags"`

	IsShared   bool    `json:"is_shared"`
	ShareToken *string `json:"share_token"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OptionalString distinguishes an absent JSON field from an explicit null,
// so updates can clear a reference without clobbering it when unsupplied.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Valid = false
		return nil
	}
	o.Valid = true
	return json.Unmarshal(b, &o.Value)
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

type CreateNoteRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	FolderID *string `json:"folder_id"`
}

// UpdateNoteRequest applies only the fields present in the request body.
// Nil pointers mean "not supplied"; FolderID additionally supports an
// explicit null to move a note out of its folder.
type UpdateNoteRequest struct {
	Title    *string        `json:"title"`
	Content  *string        `json:"content"`
	FolderID OptionalString `json:"folder_id"`
	IsPinned *bool          `json:"is_pinned"`
	IsLocked *bool          `json:"is_locked"`
	Tags     *[]Tag         `json:"tags" validate:"omitempty,dive,oneof=red orange yellow green blue purple pink"`
}

type ListNotesFilter struct {
	FolderID string
	Search   string
	Trashed  bool
}

// NoteListItem is a note row in listings, carrying a plain-text preview of
// the content instead of forcing clients to strip markup themselves.
type NoteListItem struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Preview    string     `json:"preview"`
	FolderID   *string    `json:"folder_id"`
	IsPinned   bool       `json:"is_pinned"`
	IsLocked   bool       `json:"is_locked"`
	IsTrashed  bool       `json:"is_trashed"`
	TrashedAt  *time.Time `json:"trashed_at"`
	Tags       []Tag      `json:"tags"`
	IsShared   bool       `json:"is_shared"`
	ShareToken *string    `json:"share_token"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SharedNoteResponse is the anonymous-read projection: no owner, no flags.
type SharedNoteResponse struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
