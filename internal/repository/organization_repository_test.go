package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pguia/registry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizationRepository_CreateAndResolve(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)

	org := &domain.Organization{Name: "acme", Description: "Acme Corp"}
	require.NoError(t, repo.Create(org))
	assert.NotEqual(t, uuid.Nil, org.ID)

	byName, err := repo.Resolve(domain.ParseIdentifier("acme"))
	require.NoError(t, err)
	assert.Equal(t, org.ID, byName.ID)

	byID, err := repo.Resolve(domain.ParseIdentifier(org.ID.String()))
	require.NoError(t, err)
	assert.Equal(t, org.ID, byID.ID)

	missing, err := repo.Resolve(domain.ParseIdentifier("ghost"))
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrganizationRepository_Membership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)

	org := &domain.Organization{Name: "acme"}
	require.NoError(t, repo.Create(org))
	user := createTestUser(t, db, "alice", nil)

	isMember, err := repo.IsMember(org.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, isMember)

	require.NoError(t, repo.AddMember(org.ID, user.ID))

	isMember, err = repo.IsMember(org.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	members, err := repo.ListMembers(org.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "alice", members[0].Username)

	orgs, err := repo.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "acme", orgs[0].Name)

	require.NoError(t, repo.RemoveMember(org.ID, user.ID))
	isMember, err = repo.IsMember(org.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestOrganizationRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)

	require.NoError(t, repo.Create(&domain.Organization{Name: "acme"}))
	require.NoError(t, repo.Create(&domain.Organization{Name: "globex"}))

	orgs, err := repo.List(10, 0)
	require.NoError(t, err)
	assert.Len(t, orgs, 2)

	page, err := repo.List(1, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestOrganizationRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)

	org := &domain.Organization{Name: "acme"}
	require.NoError(t, repo.Create(org))

	org.Description = "updated"
	require.NoError(t, repo.Update(org))

	loaded, err := repo.GetByID(org.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", loaded.Description)
}
