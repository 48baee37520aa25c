package service

import (
	"errors"
	"fmt"
	"time"

	"inkwell-server/internal/domain"
	"inkwell-server/internal/repository"
	"inkwell-server/pkg/token"
)

// maxTokenAttempts bounds the retry loop on the (vanishingly unlikely)
// collision of a freshly generated token with a currently shared note.
const maxTokenAttempts = 5

type ShareService struct {
	noteRepo repository.NoteRepository
	tokens   token.Generator
}

func NewShareService(noteRepo repository.NoteRepository, tokens token.Generator) *ShareService {
	return &ShareService{
		noteRepo: noteRepo,
		tokens:   tokens,
	}
}

// Toggle flips sharing for the note. Enabling always mints a fresh token;
// a previously revoked token is never brought back.
func (s *ShareService) Toggle(userID, noteID string) (*domain.Note, error) {
	note, err := s.noteRepo.FindByOwner(userID, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if note.IsShared {
		note.IsShared = false
		note.ShareToken = nil
	} else {
		t, err := s.mintToken()
		if err != nil {
			return nil, err
		}
		note.IsShared = true
		note.ShareToken = &t
	}

	note.UpdatedAt = time.Now()

	if err := s.noteRepo.Update(note); err != nil {
		return nil, err
	}

	return note, nil
}

// Resolve is the only unauthenticated read path. The sharing and trash
// flags are rechecked on every call: a token goes dark the moment sharing
// is disabled or the note is trashed.
func (s *ShareService) Resolve(shareToken string) (*domain.SharedNoteResponse, error) {
	if shareToken == "" {
		return nil, ErrSharedNoteNotFound
	}

	note, err := s.noteRepo.FindByShareToken(shareToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSharedNoteNotFound
		}
		return nil, err
	}

	if !note.IsShared || note.IsTrashed {
		return nil, ErrSharedNoteNotFound
	}

	return &domain.SharedNoteResponse{
		Title:     note.Title,
		Content:   note.Content,
		Tags:      note.Tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}, nil
}

func (s *ShareService) mintToken() (string, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		t, err := s.tokens.Generate()
		if err != nil {
			return "", err
		}

		_, err = s.noteRepo.FindByShareToken(t)
		if errors.Is(err, repository.ErrNotFound) {
			return t, nil
		}
		if err != nil {
			return "", err
		}
		// Token already in use by a shared note; try again.
	}

	return "", fmt.Errorf("failed to generate a unique share token")
}
