package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"inkwell-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

const KindFolder = "folder"

type FolderRepository interface {
	Create(folder *domain.Folder) error
	FindByOwner(userID, folderID string) (*domain.Folder, error)
	// List returns the owner's folders sorted by name.
	List(userID string) ([]*domain.Folder, error)
	Update(folder *domain.Folder) error
	Delete(id string) error
}

type folderRepository struct {
	client *kivik.Client
	dbName string
}

func NewFolderRepository(client *kivik.Client, dbName string) FolderRepository {
	return &folderRepository{
		client: client,
		dbName: dbName,
	}
}

func folderDocID(id string) string {
	return fmt.Sprintf("folder:%s", id)
}

func (r *folderRepository) Create(folder *domain.Folder) error {
	db := r.client.DB(r.dbName)

	folder.Kind = KindFolder
	_, err := db.Put(context.Background(), folderDocID(folder.ID), folder)
	if err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	return nil
}

func (r *folderRepository) FindByOwner(userID, folderID string) (*domain.Folder, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), folderDocID(folderID))

	var folder domain.Folder
	if err := row.ScanDoc(&folder); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find folder: %w", err)
	}

	if folder.UserID != userID {
		return nil, ErrNotFound
	}

	return &folder, nil
}

func (r *folderRepository) List(userID string) ([]*domain.Folder, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"kind":    KindFolder,
			"user_id": userID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []*domain.Folder
	for rows.Next() {
		var folder domain.Folder
		if err := rows.ScanDoc(&folder); err != nil {
			continue
		}
		folders = append(folders, &folder)
	}

	sort.Slice(folders, func(i, j int) bool {
		return strings.ToLower(folders[i].Name) < strings.ToLower(folders[j].Name)
	})

	return folders, nil
}

func (r *folderRepository) Update(folder *domain.Folder) error {
	db := r.client.DB(r.dbName)
	docID := folderDocID(folder.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch existing folder for update: %w", err)
	}

	existingDoc["name"] = folder.Name
	existingDoc["icon"] = folder.Icon
	existingDoc["updated_at"] = folder.UpdatedAt

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update folder: %w", err)
	}

	return nil
}

func (r *folderRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := folderDocID(id)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch folder for deletion: %w", err)
	}

	rev, _ := existingDoc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	return nil
}
