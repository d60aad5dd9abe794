package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pguia/registry/internal/domain"
	"github.com/pguia/registry/internal/repository"
	"github.com/rs/zerolog/log"
)

// CreateTeamInput carries the fields for team creation. A zero MaxBuilds
// falls back to the default cap.
type CreateTeamInput struct {
	Name           string
	Description    string
	OrganizationID *uuid.UUID
	MaxBuilds      int
}

// UpdateTeamInput carries the optional fields of a team update.
type UpdateTeamInput struct {
	Name        *string
	Description *string
	MaxBuilds   *int
}

// TeamMemberInput addresses one membership change: the user by username or
// email, plus the owner flag for additions.
type TeamMemberInput struct {
	Identifier string
	IsOwner    bool
}

// TeamService implements team and membership management. Membership
// changes are gated on team ownership or the team wildcard, and members
// must already belong to the team's organization.
type TeamService struct {
	teamRepo repository.TeamRepository
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewTeamService creates a new team service
func NewTeamService(
	teamRepo repository.TeamRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
) *TeamService {
	return &TeamService{teamRepo: teamRepo, orgRepo: orgRepo, userRepo: userRepo}
}

// Create adds a team, checking the organization exists when one is given.
// The creator becomes the team's first owner.
func (s *TeamService) Create(principal *domain.Principal, in CreateTeamInput) (*domain.Team, error) {
	if in.OrganizationID != nil {
		org, err := s.orgRepo.GetByID(*in.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("failed to load organization: %w", err)
		}
		if org == nil {
			return nil, fmt.Errorf("%w: organization %s", domain.ErrNotFound, *in.OrganizationID)
		}
	}

	team := &domain.Team{
		Name:           in.Name,
		Description:    in.Description,
		OrganizationID: in.OrganizationID,
		MaxBuilds:      in.MaxBuilds,
	}
	if err := s.teamRepo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	member := &domain.TeamMember{TeamID: team.ID, UserID: principal.UserID, IsOwner: true}
	if err := s.teamRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add creator as owner: %w", err)
	}
	return team, nil
}

// Get returns a team by id.
func (s *TeamService) Get(id uuid.UUID) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	if team == nil {
		return nil, fmt.Errorf("%w: team %s", domain.ErrNotFound, id)
	}
	return team, nil
}

// List returns teams, optionally scoped to one organization.
func (s *TeamService) List(orgID *uuid.UUID, limit, offset int) ([]domain.Team, error) {
	return s.teamRepo.List(orgID, limit, offset)
}

// Update applies the given fields to a team.
func (s *TeamService) Update(id uuid.UUID, in UpdateTeamInput) (*domain.Team, error) {
	team, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		team.Name = *in.Name
	}
	if in.Description != nil {
		team.Description = *in.Description
	}
	if in.MaxBuilds != nil {
		team.MaxBuilds = *in.MaxBuilds
	}

	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return team, nil
}

// Delete removes a team.
func (s *TeamService) Delete(id uuid.UUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.teamRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

// AddMember attaches a user to a team. The caller must be a team owner or
// hold the team wildcard, and the user must belong to the team's
// organization when the team has one.
func (s *TeamService) AddMember(principal *domain.Principal, teamID uuid.UUID, in TeamMemberInput) error {
	team, err := s.Get(teamID)
	if err != nil {
		return err
	}
	if err := s.requireOwnership(principal, teamID); err != nil {
		return err
	}

	user, err := s.resolveCandidate(team, in.Identifier)
	if err != nil {
		return err
	}

	isMember, err := s.teamRepo.IsMember(teamID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return fmt.Errorf("%w: user %q is already a member", domain.ErrConflict, in.Identifier)
	}

	member := &domain.TeamMember{TeamID: teamID, UserID: user.ID, IsOwner: in.IsOwner}
	if err := s.teamRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember detaches a user from a team. A team never loses its last
// owner; removing them is forbidden until another owner exists.
func (s *TeamService) RemoveMember(principal *domain.Principal, teamID uuid.UUID, identifier string) error {
	if _, err := s.Get(teamID); err != nil {
		return err
	}
	if err := s.requireOwnership(principal, teamID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %q", domain.ErrNotFound, identifier)
	}

	member, err := s.teamRepo.GetMember(teamID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load membership: %w", err)
	}
	if member == nil {
		return fmt.Errorf("%w: user %q is not a member", domain.ErrNotFound, identifier)
	}

	if member.IsOwner {
		owners, err := s.teamRepo.CountOwners(teamID)
		if err != nil {
			return fmt.Errorf("failed to count owners: %w", err)
		}
		if owners <= 1 {
			return fmt.Errorf("%w: cannot remove the last team owner", domain.ErrForbidden)
		}
	}

	if err := s.teamRepo.RemoveMember(teamID, user.ID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// ListMembers returns a team's members with pagination.
func (s *TeamService) ListMembers(teamID uuid.UUID, limit, offset int) ([]domain.User, error) {
	if _, err := s.Get(teamID); err != nil {
		return nil, err
	}
	return s.teamRepo.ListMembers(teamID, limit, offset)
}

// BatchCreate creates teams one by one, collecting per-item failures.
func (s *TeamService) BatchCreate(principal *domain.Principal, inputs []CreateTeamInput) *domain.BatchResult {
	result := domain.NewBatchResult()
	for _, in := range inputs {
		if _, err := s.Create(principal, in); err != nil {
			result.AddFailure(in.Name, reasonFor(err))
			continue
		}
		result.AddSuccess(in.Name)
	}
	return result
}

// BatchAddMembers attaches users addressed by username or email. The
// ownership gate is checked once for the whole batch; the organization
// precondition applies per item.
func (s *TeamService) BatchAddMembers(principal *domain.Principal, teamID uuid.UUID, inputs []TeamMemberInput) (*domain.BatchResult, error) {
	team, err := s.Get(teamID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnership(principal, teamID); err != nil {
		return nil, err
	}

	result := domain.NewBatchResult()
	for _, in := range inputs {
		user, err := s.resolveCandidate(team, in.Identifier)
		if err != nil {
			result.AddFailure(in.Identifier, reasonFor(err))
			continue
		}

		isMember, err := s.teamRepo.IsMember(teamID, user.ID)
		if err != nil {
			result.AddFailure(in.Identifier, reasonFor(err))
			continue
		}
		if isMember {
			result.AddFailure(in.Identifier, "User is already a member")
			continue
		}

		member := &domain.TeamMember{TeamID: teamID, UserID: user.ID, IsOwner: in.IsOwner}
		if err := s.teamRepo.AddMember(member); err != nil {
			result.AddFailure(in.Identifier, reasonFor(err))
			continue
		}
		result.AddSuccess(in.Identifier)
	}

	log.Info().
		Str("team", team.Name).
		Int("successful", result.SuccessfulCount).
		Int("failed", result.FailedCount).
		Msg("Batch member add finished")
	return result, nil
}

// BatchRemoveMembers detaches users addressed by username or email. The
// last-owner guard applies per item.
func (s *TeamService) BatchRemoveMembers(principal *domain.Principal, teamID uuid.UUID, identifiers []string) (*domain.BatchResult, error) {
	if _, err := s.Get(teamID); err != nil {
		return nil, err
	}
	if err := s.requireOwnership(principal, teamID); err != nil {
		return nil, err
	}

	result := domain.NewBatchResult()
	for _, identifier := range identifiers {
		if err := s.removeResolvedMember(teamID, identifier); err != nil {
			result.AddFailure(identifier, reasonFor(err))
			continue
		}
		result.AddSuccess(identifier)
	}
	return result, nil
}

func (s *TeamService) removeResolvedMember(teamID uuid.UUID, identifier string) error {
	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}

	member, err := s.teamRepo.GetMember(teamID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load membership: %w", err)
	}
	if member == nil {
		return fmt.Errorf("%w: user is not a member", domain.ErrNotFound)
	}

	if member.IsOwner {
		owners, err := s.teamRepo.CountOwners(teamID)
		if err != nil {
			return fmt.Errorf("failed to count owners: %w", err)
		}
		if owners <= 1 {
			return fmt.Errorf("%w: cannot remove the last team owner", domain.ErrForbidden)
		}
	}

	return s.teamRepo.RemoveMember(teamID, user.ID)
}

// resolveCandidate loads a prospective member and enforces the
// organization precondition.
func (s *TeamService) resolveCandidate(team *domain.Team, identifier string) (*domain.User, error) {
	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, identifier)
	}

	if team.OrganizationID != nil {
		inOrg, err := s.orgRepo.IsMember(*team.OrganizationID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check organization membership: %w", err)
		}
		if !inOrg {
			return nil, fmt.Errorf("%w: user %q is not in the team's organization", domain.ErrForbidden, identifier)
		}
	}
	return user, nil
}

// requireOwnership admits team owners and holders of the team wildcard.
func (s *TeamService) requireOwnership(principal *domain.Principal, teamID uuid.UUID) error {
	if principal.HasPermission(domain.PermTeamSuperadmin) {
		return nil
	}

	isOwner, err := s.teamRepo.IsOwner(teamID, principal.UserID)
	if err != nil {
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if !isOwner {
		return fmt.Errorf("%w: only team owners can manage membership", domain.ErrForbidden)
	}
	return nil
}
