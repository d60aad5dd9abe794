package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pguia/registry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildRepository(db)

	build := &domain.Build{
		Name:      "api",
		Version:   "1.2.0",
		Path:      "builds/team_x/api_1.2.0",
		ShortID:   "x7Ym2a",
		CreatedBy: uuid.New(),
		TeamID:    uuid.New(),
	}
	require.NoError(t, repo.Create(build))
	assert.NotEqual(t, uuid.Nil, build.ID)

	byID, err := repo.GetByID(build.ID)
	require.NoError(t, err)
	assert.Equal(t, "api", byID.Name)
	assert.Equal(t, int64(0), byID.Size)

	byShort, err := repo.GetByShortID("x7Ym2a")
	require.NoError(t, err)
	assert.Equal(t, build.ID, byShort.ID)

	missing, err := repo.GetByShortID("nosuch")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBuildRepository_ShortIDExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildRepository(db)

	build := &domain.Build{
		Name: "api", Version: "1.0.0", Path: "p",
		ShortID: "abc123", CreatedBy: uuid.New(), TeamID: uuid.New(),
	}
	require.NoError(t, repo.Create(build))

	exists, err := repo.ShortIDExists("abc123")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ShortIDExists("zzz999")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBuildRepository_ShortIDUniqueConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildRepository(db)

	first := &domain.Build{
		Name: "api", Version: "1.0.0", Path: "p1",
		ShortID: "dup111", CreatedBy: uuid.New(), TeamID: uuid.New(),
	}
	require.NoError(t, repo.Create(first))

	second := &domain.Build{
		Name: "api", Version: "1.0.1", Path: "p2",
		ShortID: "dup111", CreatedBy: uuid.New(), TeamID: uuid.New(),
	}
	err := repo.Create(second)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}

func TestBuildRepository_CountAndOldest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildRepository(db)

	teamID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)

	for i, shortID := range []string{"aaa111", "bbb222", "ccc333"} {
		build := &domain.Build{
			Name: "api", Version: "1.0.0", Path: "p",
			ShortID: shortID, CreatedBy: uuid.New(), TeamID: teamID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(build))
	}

	count, err := repo.CountByTeam(teamID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	oldest, err := repo.OldestByTeam(teamID)
	require.NoError(t, err)
	require.NotNil(t, oldest)
	assert.Equal(t, "aaa111", oldest.ShortID)

	none, err := repo.OldestByTeam(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestBuildRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildRepository(db)

	teamA := uuid.New()
	teamB := uuid.New()
	creator := uuid.New()

	builds := []*domain.Build{
		{Name: "api", Version: "1", Path: "p1", ShortID: "lst001", CreatedBy: creator, TeamID: teamA},
		{Name: "api", Version: "2", Path: "p2", ShortID: "lst002", CreatedBy: uuid.New(), TeamID: teamA},
		{Name: "web", Version: "1", Path: "p3", ShortID: "lst003", CreatedBy: creator, TeamID: teamB},
	}
	for _, b := range builds {
		require.NoError(t, repo.Create(b))
	}

	byTeam, err := repo.List(&teamA, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byTeam, 2)

	byCreator, err := repo.List(nil, &creator, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byCreator, 2)

	both, err := repo.List(&teamA, &creator, 10, 0)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "lst001", both[0].ShortID)
}

func TestBuildRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBuildRepository(db)

	build := &domain.Build{
		Name: "api", Version: "1.0.0", Path: "p",
		ShortID: "del001", CreatedBy: uuid.New(), TeamID: uuid.New(),
	}
	require.NoError(t, repo.Create(build))
	require.NoError(t, repo.Delete(build.ID))

	gone, err := repo.GetByID(build.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}
