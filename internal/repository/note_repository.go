package repository

import (
	"context"
	"fmt"

	"inkwell-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

const KindNote = "note"

type NoteRepository interface {
	Create(note *domain.Note) error
	// FindByOwner returns ErrNotFound both for missing notes and for notes
	// owned by someone else, so callers cannot probe foreign ids.
	FindByOwner(userID, noteID string) (*domain.Note, error)
	FindByShareToken(token string) (*domain.Note, error)
	List(userID string, trashed bool, folderID string) ([]*domain.Note, error)
	Update(note *domain.Note) error
	Delete(id string) error
	CountByFolder(folderID string) (int64, error)
	UnlinkFolder(userID, folderID string) error
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

func noteDocID(id string) string {
	return fmt.Sprintf("note:%s", id)
}

func (r *noteRepository) Create(note *domain.Note) error {
	db := r.client.DB(r.dbName)

	note.Kind = KindNote
	_, err := db.Put(context.Background(), noteDocID(note.ID), note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByOwner(userID, noteID string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), noteDocID(noteID))

	var note domain.Note
	if err := row.ScanDoc(&note); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	if note.UserID != userID {
		return nil, ErrNotFound
	}

	return &note, nil
}

func (r *noteRepository) FindByShareToken(token string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"kind":        KindNote,
			"share_token": token,
			"is_shared":   true,
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query note by share token: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrNotFound
	}

	var note domain.Note
	if err := rows.ScanDoc(&note); err != nil {
		return nil, fmt.Errorf("failed to scan note: %w", err)
	}

	return &note, nil
}

func (r *noteRepository) List(userID string, trashed bool, folderID string) ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	selector := map[string]interface{}{
		"kind":       KindNote,
		"user_id":    userID,
		"is_trashed": trashed,
	}
	if folderID != "" {
		selector["folder_id"] = folderID
	}

	rows := db.Find(context.Background(), map[string]interface{}{
		"selector": selector,
	})
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.ScanDoc(&note); err != nil {
			continue
		}
		notes = append(notes, &note)
	}

	return notes, nil
}

func (r *noteRepository) Update(note *domain.Note) error {
	db := r.client.DB(r.dbName)
	docID := noteDocID(note.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch existing note for update: %w", err)
	}

	existingDoc["title"] = note.Title
	existingDoc["content"] = note.Content
	existingDoc["is_pinned"] = note.IsPinned
	existingDoc["is_locked"] = note.IsLocked
	existingDoc["is_trashed"] = note.IsTrashed
	existingDoc["tags"] = note.Tags
	existingDoc["is_shared"] = note.IsShared
	existingDoc["updated_at"] = note.UpdatedAt

	if note.FolderID != nil {
		existingDoc["folder_id"] = *note.FolderID
	} else {
		existingDoc["folder_id"] = nil
	}
	if note.TrashedAt != nil {
		existingDoc["trashed_at"] = *note.TrashedAt
	} else {
		existingDoc["trashed_at"] = nil
	}
	if note.ShareToken != nil {
		existingDoc["share_token"] = *note.ShareToken
	} else {
		existingDoc["share_token"] = nil
	}

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

func (r *noteRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := noteDocID(id)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch note for deletion: %w", err)
	}

	rev, _ := existingDoc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

func (r *noteRepository) CountByFolder(folderID string) (int64, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"kind":      KindNote,
			"folder_id": folderID,
		},
		"fields": []string{"_id"},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to count notes in folder: %w", err)
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		count++
	}

	return count, nil
}

func (r *noteRepository) UnlinkFolder(userID, folderID string) error {
	notes, err := r.List(userID, false, folderID)
	if err != nil {
		return err
	}
	trashedNotes, err := r.List(userID, true, folderID)
	if err != nil {
		return err
	}
	notes = append(notes, trashedNotes...)

	for _, note := range notes {
		note.FolderID = nil
		if err := r.Update(note); err != nil {
			return fmt.Errorf("failed to unlink note %s: %w", note.ID, err)
		}
	}

	return nil
}
