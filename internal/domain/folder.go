package domain

import "time"

const (
	DefaultFolderName = "New Folder"
	DefaultFolderIcon = "📁"
)

type Folder struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateFolderRequest struct {
	Name string `json:"name" validate:"max=100"`
	Icon string `json:"icon"`
}

type UpdateFolderRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon *string `json:"icon"`
}

type FolderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	NoteCount int64     `json:"note_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
