package service

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"inkwell-server/internal/domain"
	"inkwell-server/internal/repository"

	"github.com/google/uuid"
)

const previewLength = 120

var markupPattern = regexp.MustCompile(`<[^>]*>`)

type NoteService struct {
	repo        repository.NoteRepository
	versionRepo repository.VersionRepository
}

func NewNoteService(repo repository.NoteRepository, versionRepo repository.VersionRepository) *NoteService {
	return &NoteService{
		repo:        repo,
		versionRepo: versionRepo,
	}
}

func (s *NoteService) Create(userID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	now := time.Now()

	title := req.Title
	if title == "" {
		title = domain.DefaultNoteTitle
	}

	note := &domain.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   req.Content,
		FolderID:  req.FolderID,
		Tags:      []domain.Tag{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *NoteService) Get(userID, noteID string) (*domain.Note, error) {
	return s.findOwned(userID, noteID)
}

func (s *NoteService) Update(userID, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.FolderID.Set {
		if req.FolderID.Valid {
			folderID := req.FolderID.Value
			note.FolderID = &folderID
		} else {
			note.FolderID = nil
		}
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if req.IsLocked != nil {
		note.IsLocked = *req.IsLocked
	}
	if req.Tags != nil {
		note.Tags = dedupeTags(*req.Tags)
	}

	note.UpdatedAt = time.Now()

	if err := s.repo.Update(note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *NoteService) List(userID string, filter *domain.ListNotesFilter) ([]*domain.NoteListItem, error) {
	notes, err := s.repo.List(userID, filter.Trashed, filter.FolderID)
	if err != nil {
		return nil, err
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		matched := notes[:0]
		for _, n := range notes {
			if strings.Contains(strings.ToLower(n.Title), needle) ||
				strings.Contains(strings.ToLower(n.Content), needle) {
				matched = append(matched, n)
			}
		}
		notes = matched
	}

	// Pinned notes first, then most recently updated.
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	items := make([]*domain.NoteListItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, &domain.NoteListItem{
			ID:         n.ID,
			Title:      n.Title,
			Content:    n.Content,
			Preview:    Preview(n.Content),
			FolderID:   n.FolderID,
			IsPinned:   n.IsPinned,
			IsLocked:   n.IsLocked,
			IsTrashed:  n.IsTrashed,
			TrashedAt:  n.TrashedAt,
			Tags:       n.Tags,
			IsShared:   n.IsShared,
			ShareToken: n.ShareToken,
			CreatedAt:  n.CreatedAt,
			UpdatedAt:  n.UpdatedAt,
		})
	}

	return items, nil
}

func (s *NoteService) Trash(userID, noteID string) (*domain.Note, error) {
	note, err := s.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note.IsTrashed = true
	note.TrashedAt = &now
	note.UpdatedAt = now

	if err := s.repo.Update(note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *NoteService) RestoreFromTrash(userID, noteID string) (*domain.Note, error) {
	note, err := s.findOwned(userID, noteID)
	if err != nil {
		return nil, err
	}

	note.IsTrashed = false
	note.TrashedAt = nil
	note.UpdatedAt = time.Now()

	if err := s.repo.Update(note); err != nil {
		return nil, err
	}

	return note, nil
}

// DeletePermanently removes the note and every version it ever had.
func (s *NoteService) DeletePermanently(userID, noteID string) error {
	note, err := s.findOwned(userID, noteID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(note.ID); err != nil {
		return err
	}

	return s.versionRepo.DeleteAllForNote(note.ID)
}

func (s *NoteService) findOwned(userID, noteID string) (*domain.Note, error) {
	note, err := s.repo.FindByOwner(userID, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

// Preview strips markup from content and truncates to the listing length.
func Preview(content string) string {
	plain := markupPattern.ReplaceAllString(content, "")
	runes := []rune(plain)
	if len(runes) > previewLength {
		return string(runes[:previewLength])
	}
	return plain
}

func dedupeTags(tags []domain.Tag) []domain.Tag {
	seen := make(map[domain.Tag]bool, len(tags))
	out := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
