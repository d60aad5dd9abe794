package service

import (
	"fmt"

	"github.com/pguia/registry/internal/domain"
	"github.com/pguia/registry/internal/repository"
	"github.com/rs/zerolog/log"
)

// OrganizationService implements organization and membership management.
type OrganizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo, userRepo: userRepo}
}

// Create adds an organization after checking the name is free.
func (s *OrganizationService) Create(name, description string) (*domain.Organization, error) {
	existing, err := s.orgRepo.GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check organization name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: organization %q already exists", domain.ErrConflict, name)
	}

	org := &domain.Organization{Name: name, Description: description}
	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return org, nil
}

// Get resolves an organization by id or name.
func (s *OrganizationService) Get(ref domain.Identifier) (*domain.Organization, error) {
	org, err := s.orgRepo.Resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		return nil, fmt.Errorf("%w: organization %s", domain.ErrNotFound, ref)
	}
	return org, nil
}

// List returns organizations with pagination.
func (s *OrganizationService) List(limit, offset int) ([]domain.Organization, error) {
	return s.orgRepo.List(limit, offset)
}

// Update applies the given fields to an organization. A name change is
// checked for conflicts like a create.
func (s *OrganizationService) Update(ref domain.Identifier, name, description *string) (*domain.Organization, error) {
	org, err := s.Get(ref)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != org.Name {
		existing, err := s.orgRepo.GetByName(*name)
		if err != nil {
			return nil, fmt.Errorf("failed to check organization name: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: organization %q already exists", domain.ErrConflict, *name)
		}
		org.Name = *name
	}
	if description != nil {
		org.Description = *description
	}

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

// Delete removes an organization.
func (s *OrganizationService) Delete(ref domain.Identifier) error {
	org, err := s.Get(ref)
	if err != nil {
		return err
	}
	if err := s.orgRepo.Delete(org.ID); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return nil
}

// AddMember attaches a user to an organization. Adding an existing member
// is a conflict.
func (s *OrganizationService) AddMember(ref domain.Identifier, identifier string) error {
	org, err := s.Get(ref)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %q", domain.ErrNotFound, identifier)
	}

	isMember, err := s.orgRepo.IsMember(org.ID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return fmt.Errorf("%w: user %q is already a member", domain.ErrConflict, identifier)
	}

	if err := s.orgRepo.AddMember(org.ID, user.ID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember detaches a user from an organization. Removing a non-member
// is a not found.
func (s *OrganizationService) RemoveMember(ref domain.Identifier, identifier string) error {
	org, err := s.Get(ref)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %q", domain.ErrNotFound, identifier)
	}

	isMember, err := s.orgRepo.IsMember(org.ID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return fmt.Errorf("%w: user %q is not a member", domain.ErrNotFound, identifier)
	}

	if err := s.orgRepo.RemoveMember(org.ID, user.ID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// ListMembers returns an organization's members with pagination.
func (s *OrganizationService) ListMembers(ref domain.Identifier, limit, offset int) ([]domain.User, error) {
	org, err := s.Get(ref)
	if err != nil {
		return nil, err
	}
	return s.orgRepo.ListMembers(org.ID, limit, offset)
}

// BatchAddMembers attaches users addressed by username or email, collecting
// per-item failures instead of aborting the batch.
func (s *OrganizationService) BatchAddMembers(ref domain.Identifier, identifiers []string) (*domain.BatchResult, error) {
	org, err := s.Get(ref)
	if err != nil {
		return nil, err
	}

	result := domain.NewBatchResult()
	for _, identifier := range identifiers {
		user, err := s.userRepo.GetByIdentifier(identifier)
		if err != nil {
			result.AddFailure(identifier, reasonFor(err))
			continue
		}
		if user == nil {
			result.AddFailure(identifier, "User not found")
			continue
		}

		isMember, err := s.orgRepo.IsMember(org.ID, user.ID)
		if err != nil {
			result.AddFailure(identifier, reasonFor(err))
			continue
		}
		if isMember {
			result.AddFailure(identifier, "User is already a member")
			continue
		}

		if err := s.orgRepo.AddMember(org.ID, user.ID); err != nil {
			result.AddFailure(identifier, reasonFor(err))
			continue
		}
		result.AddSuccess(identifier)
	}

	log.Info().
		Str("organization", org.Name).
		Int("successful", result.SuccessfulCount).
		Int("failed", result.FailedCount).
		Msg("Batch member add finished")
	return result, nil
}

// BatchRemoveMembers detaches users addressed by username or email.
func (s *OrganizationService) BatchRemoveMembers(ref domain.Identifier, identifiers []string) (*domain.BatchResult, error) {
	org, err := s.Get(ref)
	if err != nil {
		return nil, err
	}

	result := domain.NewBatchResult()
	for _, identifier := range identifiers {
		user, err := s.userRepo.GetByIdentifier(identifier)
		if err != nil {
			result.AddFailure(identifier, reasonFor(err))
			continue
		}
		if user == nil {
			result.AddFailure(identifier, "User not found")
			continue
		}

		isMember, err := s.orgRepo.IsMember(org.ID, user.ID)
		if err != nil {
			result.AddFailure(identifier, reasonFor(err))
			continue
		}
		if !isMember {
			result.AddFailure(identifier, "User is not a member")
			continue
		}

		if err := s.orgRepo.RemoveMember(org.ID, user.ID); err != nil {
			result.AddFailure(identifier, reasonFor(err))
			continue
		}
		result.AddSuccess(identifier)
	}
	return result, nil
}
