package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pguia/registry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionRepository(db)

	perm := &domain.Permission{Name: "build.create", Description: "Create builds"}
	require.NoError(t, repo.Create(perm))
	assert.NotEqual(t, uuid.Nil, perm.ID)

	byName, err := repo.GetByName("build.create")
	require.NoError(t, err)
	assert.Equal(t, perm.ID, byName.ID)

	missing, err := repo.GetByName("nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPermissionRepository_GetByNames(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionRepository(db)

	for _, name := range []string{"build.create", "build.list", "build.delete"} {
		require.NoError(t, repo.Create(&domain.Permission{Name: name}))
	}

	perms, err := repo.GetByNames([]string{"build.create", "build.list"})
	require.NoError(t, err)
	assert.Len(t, perms, 2)
}

func TestPermissionRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionRepository(db)

	for _, name := range []string{"user.create", "user.list"} {
		require.NoError(t, repo.Create(&domain.Permission{Name: name}))
	}

	perms, err := repo.List(10, 0)
	require.NoError(t, err)
	assert.Len(t, perms, 2)
}
