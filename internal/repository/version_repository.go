package repository

import (
	"context"
	"fmt"
	"sort"

	"inkwell-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

const KindVersion = "version"

// VersionRepository stores immutable note snapshots. Callers are responsible
// for serializing LatestNumber/Create pairs per note (see VersionService).
type VersionRepository interface {
	Create(version *domain.Version) error
	FindByID(versionID string) (*domain.Version, error)
	// ListByNote returns all versions of a note, highest number first.
	ListByNote(noteID string) ([]*domain.Version, error)
	// LatestNumber returns the highest version number for a note, 0 if the
	// note has no versions yet.
	LatestNumber(noteID string) (int64, error)
	DeleteAllForNote(noteID string) error
}

type versionRepository struct {
	client *kivik.Client
	dbName string
}

func NewVersionRepository(client *kivik.Client, dbName string) VersionRepository {
	return &versionRepository{
		client: client,
		dbName: dbName,
	}
}

func versionDocID(id string) string {
	return fmt.Sprintf("version:%s", id)
}

func (r *versionRepository) Create(version *domain.Version) error {
	db := r.client.DB(r.dbName)

	version.Kind = KindVersion
	_, err := db.Put(context.Background(), versionDocID(version.ID), version)
	if err != nil {
		return fmt.Errorf("failed to create version: %w", err)
	}

	return nil
}

func (r *versionRepository) FindByID(versionID string) (*domain.Version, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), versionDocID(versionID))

	var version domain.Version
	if err := row.ScanDoc(&version); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find version: %w", err)
	}

	return &version, nil
}

func (r *versionRepository) ListByNote(noteID string) ([]*domain.Version, error) {
	versions, err := r.findByNote(noteID)
	if err != nil {
		return nil, err
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].VersionNumber > versions[j].VersionNumber
	})

	return versions, nil
}

func (r *versionRepository) LatestNumber(noteID string) (int64, error) {
	versions, err := r.findByNote(noteID)
	if err != nil {
		return 0, err
	}

	var latest int64
	for _, v := range versions {
		if v.VersionNumber > latest {
			latest = v.VersionNumber
		}
	}

	return latest, nil
}

func (r *versionRepository) DeleteAllForNote(noteID string) error {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"kind":    KindVersion,
			"note_id": noteID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to query versions for deletion: %w", err)
	}
	defer rows.Close()

	type docRef struct {
		id  string
		rev string
	}
	var refs []docRef

	for rows.Next() {
		var doc map[string]interface{}
		if err := rows.ScanDoc(&doc); err != nil {
			continue
		}
		id, _ := doc["_id"].(string)
		rev, _ := doc["_rev"].(string)
		refs = append(refs, docRef{id: id, rev: rev})
	}

	for _, ref := range refs {
		if _, err := db.Delete(context.Background(), ref.id, ref.rev); err != nil {
			return fmt.Errorf("failed to delete version %s: %w", ref.id, err)
		}
	}

	return nil
}

func (r *versionRepository) findByNote(noteID string) ([]*domain.Version, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"kind":    KindVersion,
			"note_id": noteID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.Version
	for rows.Next() {
		var version domain.Version
		if err := rows.ScanDoc(&version); err != nil {
			continue
		}
		versions = append(versions, &version)
	}

	return versions, nil
}
