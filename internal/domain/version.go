package domain

import "time"

// Version is an immutable snapshot of a note's title and content.
// VersionNumber values for one note form a gapless 1,2,3,... sequence in
// creation order.
type Version struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	NoteID        string    `json:"note_id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	VersionNumber int64     `json:"version_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// VersionSummary omits the content payload for listing efficiency.
type VersionSummary struct {
	ID            string    `json:"id"`
	VersionNumber int64     `json:"version_number"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
}
