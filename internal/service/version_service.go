package service

import (
	"errors"
	"time"

	"inkwell-server/internal/domain"
	"inkwell-server/internal/repository"

	"github.com/google/uuid"
)

// VersionService owns the snapshot and restore protocol. All appends for a
// note run under that note's lock, which keeps version numbers gapless and
// makes snapshot-before-restore a single uninterrupted sequence.
type VersionService struct {
	noteRepo    repository.NoteRepository
	versionRepo repository.VersionRepository
	locks       *noteLocks
}

func NewVersionService(noteRepo repository.NoteRepository, versionRepo repository.VersionRepository) *VersionService {
	return &VersionService{
		noteRepo:    noteRepo,
		versionRepo: versionRepo,
		locks:       newNoteLocks(),
	}
}

// SaveSnapshot appends the note's current title and content as a new
// version. It never mutates the note and is safe to call repeatedly.
func (s *VersionService) SaveSnapshot(userID, noteID string) (*domain.Version, error) {
	note, err := s.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(note.ID)
	lock.Lock()
	defer lock.Unlock()

	return s.appendSnapshot(note)
}

func (s *VersionService) List(userID, noteID string) ([]*domain.VersionSummary, error) {
	note, err := s.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}

	versions, err := s.versionRepo.ListByNote(note.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.VersionSummary, 0, len(versions))
	for _, v := range versions {
		summaries = append(summaries, &domain.VersionSummary{
			ID:            v.ID,
			VersionNumber: v.VersionNumber,
			Title:         v.Title,
			CreatedAt:     v.CreatedAt,
		})
	}

	return summaries, nil
}

func (s *VersionService) Get(userID, noteID, versionID string) (*domain.Version, error) {
	note, err := s.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}

	return s.findVersionOfNote(note.ID, versionID)
}

// Restore overwrites the note's title and content with those of the target
// version. The note's current state is snapshotted first, so a restore never
// loses history; if that snapshot fails the restore does not proceed.
func (s *VersionService) Restore(userID, noteID, versionID string) (*domain.Note, error) {
	note, err := s.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}

	target, err := s.findVersionOfNote(note.ID, versionID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(note.ID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.appendSnapshot(note); err != nil {
		return nil, err
	}

	note.Title = target.Title
	note.Content = target.Content
	note.UpdatedAt = time.Now()

	if err := s.noteRepo.Update(note); err != nil {
		return nil, err
	}

	return note, nil
}

// appendSnapshot computes the next version number and inserts the snapshot.
// Callers must hold the note's lock.
func (s *VersionService) appendSnapshot(note *domain.Note) (*domain.Version, error) {
	latest, err := s.versionRepo.LatestNumber(note.ID)
	if err != nil {
		return nil, err
	}

	version := &domain.Version{
		ID:            uuid.New().String(),
		NoteID:        note.ID,
		UserID:        note.UserID,
		Title:         note.Title,
		Content:       note.Content,
		VersionNumber: latest + 1,
		CreatedAt:     time.Now(),
	}

	if err := s.versionRepo.Create(version); err != nil {
		return nil, err
	}

	return version, nil
}

// findVersionOfNote treats a version belonging to a different note the same
// as a missing one.
func (s *VersionService) findVersionOfNote(noteID, versionID string) (*domain.Version, error) {
	version, err := s.versionRepo.FindByID(versionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}

	if version.NoteID != noteID {
		return nil, ErrVersionNotFound
	}

	return version, nil
}

func (s *VersionService) findOwned(userID, noteID string) (*domain.Note, error) {
	note, err := s.noteRepo.FindByOwner(userID, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}
