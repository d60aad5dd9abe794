package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pguia/registry/internal/domain"
	"gorm.io/gorm"
)

// OrganizationRepository handles organization data operations
type OrganizationRepository interface {
	Create(org *domain.Organization) error
	GetByID(id uuid.UUID) (*domain.Organization, error)
	GetByName(name string) (*domain.Organization, error)
	// Resolve looks an organization up by a pre-parsed identifier (UUID or
	// name).
	Resolve(ref domain.Identifier) (*domain.Organization, error)
	Update(org *domain.Organization) error
	Delete(id uuid.UUID) error
	List(limit, offset int) ([]domain.Organization, error)
	AddMember(orgID, userID uuid.UUID) error
	RemoveMember(orgID, userID uuid.UUID) error
	IsMember(orgID, userID uuid.UUID) (bool, error)
	ListMembers(orgID uuid.UUID, limit, offset int) ([]domain.User, error)
	ListForUser(userID uuid.UUID) ([]domain.Organization, error)
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(org *domain.Organization) error {
	return r.db.Create(org).Error
}

func (r *organizationRepository) GetByID(id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.First(&org, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetByName(name string) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.Where("name = ?", name).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) Resolve(ref domain.Identifier) (*domain.Organization, error) {
	if ref.IsID() {
		return r.GetByID(ref.ID)
	}
	return r.GetByName(ref.Name)
}

func (r *organizationRepository) Update(org *domain.Organization) error {
	return r.db.Save(org).Error
}

func (r *organizationRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&domain.Organization{}, id).Error
}

func (r *organizationRepository) List(limit, offset int) ([]domain.Organization, error) {
	var orgs []domain.Organization
	query := r.db.Model(&domain.Organization{})

	if limit > 0 {
		query = query.Limit(limit)
	}

	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&orgs).Error
	return orgs, err
}

func (r *organizationRepository) AddMember(orgID, userID uuid.UUID) error {
	member := domain.OrganizationMember{OrganizationID: orgID, UserID: userID}
	return r.db.Create(&member).Error
}

func (r *organizationRepository) RemoveMember(orgID, userID uuid.UUID) error {
	return r.db.
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&domain.OrganizationMember{}).Error
}

func (r *organizationRepository) IsMember(orgID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *organizationRepository) ListMembers(orgID uuid.UUID, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	query := r.db.Model(&domain.User{}).
		Joins("JOIN organization_members ON organization_members.user_id = users.id").
		Where("organization_members.organization_id = ?", orgID)

	if limit > 0 {
		query = query.Limit(limit)
	}

	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&users).Error
	return users, err
}

func (r *organizationRepository) ListForUser(userID uuid.UUID) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.db.Model(&domain.Organization{}).
		Joins("JOIN organization_members ON organization_members.organization_id = organizations.id").
		Where("organization_members.user_id = ?", userID).
		Find(&orgs).Error
	return orgs, err
}
