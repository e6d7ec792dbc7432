package services

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/yukikurage/document-management-api/internal/models"
	"github.com/yukikurage/document-management-api/internal/repository"
)

// FolderService manages the folder tree.
type FolderService struct {
	folderRepo repository.FolderRepository
}

// NewFolderService creates a new FolderService.
func NewFolderService(folderRepo repository.FolderRepository) *FolderService {
	return &FolderService{folderRepo: folderRepo}
}

// CreateFolderInput represents a new folder.
type CreateFolderInput struct {
	Name      string  `json:"name"`
	ParentID  *uint64 `json:"parent_id"`
	CreatedBy uint64  `json:"created_by"`
}

func (in CreateFolderInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&in.CreatedBy, validation.Required),
	)
}

// List returns the children of parentID, or the root folders when nil.
func (s *FolderService) List(parentID *uint64) ([]models.Folder, error) {
	folders, err := s.folderRepo.List(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// Create creates a folder under an existing parent or at the root.
func (s *FolderService) Create(input CreateFolderInput) (*models.Folder, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := input.Validate(); err != nil {
		return nil, validationError(err)
	}

	if input.ParentID != nil {
		if _, err := s.folderRepo.FindByID(*input.ParentID); err != nil {
			if isNotFound(err) {
				return nil, ErrParentFolderNotFound
			}
			return nil, fmt.Errorf("failed to find parent folder: %w", err)
		}
	}

	folder := &models.Folder{
		Name:      input.Name,
		ParentID:  input.ParentID,
		CreatedBy: input.CreatedBy,
	}
	if err := s.folderRepo.Create(folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}
