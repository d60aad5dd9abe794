package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pguia/registry/internal/auth"
	"github.com/pguia/registry/internal/config"
	"github.com/pguia/registry/internal/domain"
	"github.com/pguia/registry/internal/repository"
	"github.com/rs/zerolog/log"
)

// CreateUserInput carries the fields for user creation.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	RoleID   *uuid.UUID
}

// UpdateUserInput carries the optional fields of a user update. A nil
// field is left untouched.
type UpdateUserInput struct {
	Email    *string
	Password *string
	FullName *string
	IsActive *bool
	RoleID   *uuid.UUID
}

// BatchUserUpdate pairs a user identifier (username or email) with the
// update to apply to it.
type BatchUserUpdate struct {
	Identifier string
	Update     UpdateUserInput
}

// Profile aggregates everything a user sees about their own account.
type Profile struct {
	User          *domain.User          `json:"user"`
	Role          *domain.Role          `json:"role,omitempty"`
	Permissions   []string              `json:"permissions"`
	Organizations []domain.Organization `json:"organizations"`
	Teams         []domain.Team         `json:"teams"`
}

// UserService implements user account management.
type UserService struct {
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
	orgRepo   repository.OrganizationRepository
	teamRepo  repository.TeamRepository
	bootstrap *config.BootstrapConfig
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	orgRepo repository.OrganizationRepository,
	teamRepo repository.TeamRepository,
	bootstrap *config.BootstrapConfig,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		orgRepo:   orgRepo,
		teamRepo:  teamRepo,
		bootstrap: bootstrap,
	}
}

// Create adds a user after checking username and email are free and the
// role, if given, exists.
func (s *UserService) Create(in CreateUserInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q already taken", domain.ErrConflict, in.Username)
	}

	existing, err = s.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %q already registered", domain.ErrConflict, in.Email)
	}

	if in.RoleID != nil {
		role, err := s.roleRepo.GetByID(*in.RoleID)
		if err != nil {
			return nil, fmt.Errorf("failed to load role: %w", err)
		}
		if role == nil {
			return nil, fmt.Errorf("%w: role %s", domain.ErrNotFound, *in.RoleID)
		}
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hashed,
		FullName:       in.FullName,
		IsActive:       true,
		RoleID:         in.RoleID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Get returns a user by id.
func (s *UserService) Get(id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return user, nil
}

// GetByIdentifier resolves a user by username or email.
func (s *UserService) GetByIdentifier(identifier string) (*domain.User, error) {
	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, identifier)
	}
	return user, nil
}

// List returns users optionally filtered by role and active state.
func (s *UserService) List(roleID *uuid.UUID, isActive *bool, limit, offset int) ([]domain.User, error) {
	return s.userRepo.List(roleID, isActive, limit, offset)
}

// ListRoles returns the role catalog with assigned permissions.
func (s *UserService) ListRoles(limit, offset int) ([]domain.Role, error) {
	return s.roleRepo.List(limit, offset)
}

// Update applies the given fields to a user.
func (s *UserService) Update(id uuid.UUID, in UpdateUserInput) (*domain.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.applyUpdate(user, in); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) applyUpdate(user *domain.User, in UpdateUserInput) error {
	if in.Email != nil && *in.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(*in.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("%w: email %q already registered", domain.ErrConflict, *in.Email)
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hashed, err := auth.HashPassword(*in.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.RoleID != nil {
		role, err := s.roleRepo.GetByID(*in.RoleID)
		if err != nil {
			return fmt.Errorf("failed to load role: %w", err)
		}
		if role == nil {
			return fmt.Errorf("%w: role %s", domain.ErrNotFound, *in.RoleID)
		}
		user.RoleID = in.RoleID
	}
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a user. A user can never delete their own account, and
// the bootstrap superuser account cannot be deleted at all.
func (s *UserService) Delete(principal *domain.Principal, id uuid.UUID) error {
	if principal.UserID == id {
		return fmt.Errorf("%w: cannot delete own account", domain.ErrForbidden)
	}

	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if user.Username == s.bootstrap.SuperuserUsername {
		return fmt.Errorf("%w: the bootstrap superuser cannot be deleted", domain.ErrForbidden)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ChangePassword rotates a user's password after verifying the current one.
func (s *UserService) ChangePassword(id uuid.UUID, current, next string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(current, user.HashedPassword) {
		return fmt.Errorf("%w: current password does not match", domain.ErrInvalidCredentials)
	}

	hashed, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// GetProfile aggregates a user's account, role, permissions and memberships.
func (s *UserService) GetProfile(id uuid.UUID) (*Profile, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	orgs, err := s.orgRepo.ListForUser(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	teams, err := s.teamRepo.ListForUser(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	permissions := []string{}
	if user.Role != nil {
		permissions = user.Role.PermissionNames()
	}

	return &Profile{
		User:          user,
		Role:          user.Role,
		Permissions:   permissions,
		Organizations: orgs,
		Teams:         teams,
	}, nil
}

// BatchCreate creates users one by one, collecting per-item failures
// instead of aborting the batch.
func (s *UserService) BatchCreate(inputs []CreateUserInput) *domain.BatchResult {
	result := domain.NewBatchResult()
	for _, in := range inputs {
		if _, err := s.Create(in); err != nil {
			result.AddFailure(in.Username, reasonFor(err))
			continue
		}
		result.AddSuccess(in.Username)
	}
	return result
}

// BatchUpdate applies per-user updates addressed by username or email.
func (s *UserService) BatchUpdate(updates []BatchUserUpdate) *domain.BatchResult {
	result := domain.NewBatchResult()
	for _, item := range updates {
		user, err := s.userRepo.GetByIdentifier(item.Identifier)
		if err != nil {
			result.AddFailure(item.Identifier, reasonFor(err))
			continue
		}
		if user == nil {
			result.AddFailure(item.Identifier, "User not found")
			continue
		}
		if err := s.applyUpdate(user, item.Update); err != nil {
			result.AddFailure(item.Identifier, reasonFor(err))
			continue
		}
		result.AddSuccess(item.Identifier)
	}
	return result
}

// BatchDelete removes users addressed by username or email. The same
// self-delete and superuser guards apply per item.
func (s *UserService) BatchDelete(principal *domain.Principal, identifiers []string) *domain.BatchResult {
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
		if err := s.Delete(principal, user.ID); err != nil {
			result.AddFailure(identifier, reasonFor(err))
			continue
		}
		result.AddSuccess(identifier)
		log.Info().Str("username", user.Username).Msg("Deleted user in batch")
	}
	return result
}
