package service

import (
	"errors"
	"time"

	"inkwell-server/internal/domain"
	"inkwell-server/internal/repository"

	"github.com/google/uuid"
)

type FolderService struct {
	repo     repository.FolderRepository
	noteRepo repository.NoteRepository
}

func NewFolderService(repo repository.FolderRepository, noteRepo repository.NoteRepository) *FolderService {
	return &FolderService{
		repo:     repo,
		noteRepo: noteRepo,
	}
}

func (s *FolderService) Create(userID string, req *domain.CreateFolderRequest) (*domain.Folder, error) {
	now := time.Now()

	name := req.Name
	if name == "" {
		name = domain.DefaultFolderName
	}
	icon := req.Icon
	if icon == "" {
		icon = domain.DefaultFolderIcon
	}

	folder := &domain.Folder{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(folder); err != nil {
		return nil, err
	}

	return folder, nil
}

func (s *FolderService) List(userID string) ([]*domain.FolderResponse, error) {
	folders, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.FolderResponse, 0, len(folders))
	for _, f := range folders {
		count, err := s.noteRepo.CountByFolder(f.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, &domain.FolderResponse{
			ID:        f.ID,
			Name:      f.Name,
			Icon:      f.Icon,
			NoteCount: count,
			CreatedAt: f.CreatedAt,
			UpdatedAt: f.UpdatedAt,
		})
	}

	return responses, nil
}

func (s *FolderService) Update(userID, folderID string, req *domain.UpdateFolderRequest) (*domain.Folder, error) {
	folder, err := s.findOwned(userID, folderID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = *req.Name
	}
	if req.Icon != nil {
		folder.Icon = *req.Icon
	}

	folder.UpdatedAt = time.Now()

	if err := s.repo.Update(folder); err != nil {
		return nil, err
	}

	return folder, nil
}

// Delete removes the folder and moves its notes back to the root.
func (s *FolderService) Delete(userID, folderID string) error {
	folder, err := s.findOwned(userID, folderID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(folder.ID); err != nil {
		return err
	}

	return s.noteRepo.UnlinkFolder(userID, folder.ID)
}

func (s *FolderService) findOwned(userID, folderID string) (*domain.Folder, error) {
	folder, err := s.repo.FindByOwner(userID, folderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return folder, nil
}
