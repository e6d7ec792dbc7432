package services

import (
	"fmt"
	"strings"

	apierrors "github.com/yukikurage/document-management-api/internal/errors"
	"github.com/yukikurage/document-management-api/internal/models"
	"github.com/yukikurage/document-management-api/internal/repository"
)

// TaxonomyService manages one taxonomy (document types or IT job types).
type TaxonomyService struct {
	repo repository.TaxonomyRepository
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(repo repository.TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{repo: repo}
}

func (s *TaxonomyService) Kind() models.TaxonomyKind {
	return s.repo.Kind()
}

func (s *TaxonomyService) notFound() error {
	return apierrors.WithKind(apierrors.ErrKindNotFound, s.repo.Kind().Label()+" not found")
}

func (s *TaxonomyService) conflict() error {
	return apierrors.WithKind(apierrors.ErrKindConflict, s.repo.Kind().Label()+" name already exists")
}

// CreateTaxonomyInput represents a new entry. IsActive defaults to true.
type CreateTaxonomyInput struct {
	Name      string
	IsActive  *bool
	CreatedBy uint64
}

// UpdateTaxonomyInput carries optional changes.
type UpdateTaxonomyInput struct {
	Name      *string
	IsActive  *bool
	UpdatedBy uint64
}

// List returns live entries, including inactive ones when requested.
func (s *TaxonomyService) List(includeInactive bool) ([]models.TaxonomyEntry, error) {
	entries, err := s.repo.List(includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.repo.Kind().Table(), err)
	}
	return entries, nil
}

// Create adds an entry. Names are unique among live entries.
func (s *TaxonomyService) Create(input CreateTaxonomyInput) (*models.TaxonomyEntry, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apierrors.WithKind(apierrors.ErrKindInvalidInput, "name is required")
	}

	taken, err := s.repo.NameTaken(name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check name: %w", err)
	}
	if taken {
		return nil, s.conflict()
	}

	entry := &models.TaxonomyEntry{
		Name:     name,
		IsActive: input.IsActive == nil || *input.IsActive,
	}
	if input.CreatedBy != 0 {
		createdBy := input.CreatedBy
		entry.CreatedBy = &createdBy
		entry.UpdatedBy = &createdBy
	}

	if err := s.repo.Create(entry); err != nil {
		if isDuplicate(err) {
			return nil, s.conflict()
		}
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

// Update renames and/or toggles an entry.
func (s *TaxonomyService) Update(id uint64, input UpdateTaxonomyInput) (*models.TaxonomyEntry, error) {
	if input.Name == nil && input.IsActive == nil {
		return nil, ErrTaxonomyEmptyUpdate
	}

	changes := repository.TaxonomyChanges{IsActive: input.IsActive}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apierrors.WithKind(apierrors.ErrKindInvalidInput, "name must not be empty")
		}
		changes.Name = &name
	}
	if input.UpdatedBy != 0 {
		updatedBy := input.UpdatedBy
		changes.UpdatedBy = &updatedBy
	}

	if _, err := s.repo.FindByID(id); err != nil {
		if isNotFound(err) {
			return nil, s.notFound()
		}
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}

	if changes.Name != nil {
		taken, err := s.repo.NameTaken(*changes.Name, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check name: %w", err)
		}
		if taken {
			return nil, s.conflict()
		}
	}

	if err := s.repo.Update(id, changes); err != nil {
		switch {
		case isNotFound(err):
			return nil, s.notFound()
		case isDuplicate(err):
			return nil, s.conflict()
		}
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	entry, err := s.repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, s.notFound()
		}
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	return entry, nil
}

// Delete soft deletes an entry.
func (s *TaxonomyService) Delete(id uint64) error {
	if err := s.repo.Delete(id); err != nil {
		if isNotFound(err) {
			return s.notFound()
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
