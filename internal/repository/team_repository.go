package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pguia/registry/internal/domain"
	"gorm.io/gorm"
)

// TeamRepository handles team and team membership data operations
type TeamRepository interface {
	Create(team *domain.Team) error
	GetByID(id uuid.UUID) (*domain.Team, error)
	Update(team *domain.Team) error
	Delete(id uuid.UUID) error
	List(orgID *uuid.UUID, limit, offset int) ([]domain.Team, error)
	AddMember(member *domain.TeamMember) error
	RemoveMember(teamID, userID uuid.UUID) error
	GetMember(teamID, userID uuid.UUID) (*domain.TeamMember, error)
	IsMember(teamID, userID uuid.UUID) (bool, error)
	IsOwner(teamID, userID uuid.UUID) (bool, error)
	CountOwners(teamID uuid.UUID) (int64, error)
	ListMembers(teamID uuid.UUID, limit, offset int) ([]domain.User, error)
	ListForUser(userID uuid.UUID) ([]domain.Team, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(team *domain.Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) GetByID(id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) Update(team *domain.Team) error {
	return r.db.Save(team).Error
}

func (r *teamRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&domain.Team{}, id).Error
}

func (r *teamRepository) List(orgID *uuid.UUID, limit, offset int) ([]domain.Team, error) {
	var teams []domain.Team
	query := r.db.Model(&domain.Team{})

	if orgID != nil {
		query = query.Where("organization_id = ?", *orgID)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&teams).Error
	return teams, err
}

func (r *teamRepository) AddMember(member *domain.TeamMember) error {
	return r.db.Create(member).Error
}

func (r *teamRepository) RemoveMember(teamID, userID uuid.UUID) error {
	return r.db.
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&domain.TeamMember{}).Error
}

func (r *teamRepository) GetMember(teamID, userID uuid.UUID) (*domain.TeamMember, error) {
	var member domain.TeamMember
	err := r.db.
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) IsMember(teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) IsOwner(teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.TeamMember{}).
		Where("team_id = ? AND user_id = ? AND is_owner = ?", teamID, userID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) CountOwners(teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&domain.TeamMember{}).
		Where("team_id = ? AND is_owner = ?", teamID, true).
		Count(&count).Error
	return count, err
}

func (r *teamRepository) ListMembers(teamID uuid.UUID, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	query := r.db.Model(&domain.User{}).
		Joins("JOIN team_members ON team_members.user_id = users.id").
		Where("team_members.team_id = ?", teamID)

	if limit > 0 {
		query = query.Limit(limit)
	}

	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&users).Error
	return users, err
}

func (r *teamRepository) ListForUser(userID uuid.UUID) ([]domain.Team, error) {
	var teams []domain.Team
	err := r.db.Model(&domain.Team{}).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Find(&teams).Error
	return teams, err
}
