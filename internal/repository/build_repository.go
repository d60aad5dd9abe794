package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pguia/registry/internal/domain"
	"gorm.io/gorm"
)

// BuildRepository handles build data operations
type BuildRepository interface {
	Create(build *domain.Build) error
	GetByID(id uuid.UUID) (*domain.Build, error)
	GetByShortID(shortID string) (*domain.Build, error)
	ShortIDExists(shortID string) (bool, error)
	Update(build *domain.Build) error
	Delete(id uuid.UUID) error
	CountByTeam(teamID uuid.UUID) (int64, error)
	// OldestByTeam returns the team's oldest build by creation time, or nil
	// when the team has none.
	OldestByTeam(teamID uuid.UUID) (*domain.Build, error)
	List(teamID, createdBy *uuid.UUID, limit, offset int) ([]domain.Build, error)
}

type buildRepository struct {
	db *gorm.DB
}

// NewBuildRepository creates a new build repository
func NewBuildRepository(db *gorm.DB) BuildRepository {
	return &buildRepository{db: db}
}

func (r *buildRepository) Create(build *domain.Build) error {
	return r.db.Create(build).Error
}

func (r *buildRepository) GetByID(id uuid.UUID) (*domain.Build, error) {
	var build domain.Build
	err := r.db.First(&build, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &build, nil
}

func (r *buildRepository) GetByShortID(shortID string) (*domain.Build, error) {
	var build domain.Build
	err := r.db.Where("short_id = ?", shortID).First(&build).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &build, nil
}

func (r *buildRepository) ShortIDExists(shortID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Build{}).
		Where("short_id = ?", shortID).
		Count(&count).Error
	return count > 0, err
}

func (r *buildRepository) Update(build *domain.Build) error {
	return r.db.Save(build).Error
}

func (r *buildRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&domain.Build{}, id).Error
}

func (r *buildRepository) CountByTeam(teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Build{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

func (r *buildRepository) OldestByTeam(teamID uuid.UUID) (*domain.Build, error) {
	var build domain.Build
	err := r.db.
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		First(&build).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &build, nil
}

func (r *buildRepository) List(teamID, createdBy *uuid.UUID, limit, offset int) ([]domain.Build, error) {
	var builds []domain.Build
	query := r.db.Model(&domain.Build{}).Order("created_at DESC")

	if teamID != nil {
		query = query.Where("team_id = ?", *teamID)
	}

	if createdBy != nil {
		query = query.Where("created_by = ?", *createdBy)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&builds).Error
	return builds, err
}

// IsUniqueViolation reports whether err is a uniqueness-constraint
// violation. It is the last-resort conflict detector behind the optimistic
// check-then-insert sequences.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value")
}
