package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pguia/registry/internal/config"
	"github.com/pguia/registry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bootstrapConfig() *config.BootstrapConfig {
	return &config.BootstrapConfig{SuperuserUsername: "superuser", SuperuserPassword: "superuser"}
}

func TestSeeder_Seed_FirstBoot(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	permRepo := new(MockPermissionRepository)
	userRepo := new(MockUserRepository)
	seeder := NewSeeder(roleRepo, permRepo, userRepo, bootstrapConfig())

	roleRepo.On("Count").Return(int64(0), nil)
	permRepo.On("Create", mock.AnythingOfType("*domain.Permission")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Permission).ID = uuid.New()
	})
	roleRepo.On("Create", mock.AnythingOfType("*domain.Role")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Role).ID = uuid.New()
	})
	roleRepo.On("AddPermissions", mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("[]uuid.UUID")).Return(nil)
	userRepo.On("GetByUsername", "superuser").Return(nil, nil)
	userRepo.On("Create", mock.AnythingOfType("*domain.User")).Return(nil)

	require.NoError(t, seeder.Seed())

	permRepo.AssertNumberOfCalls(t, "Create", len(domain.PermissionCatalog))
	roleRepo.AssertNumberOfCalls(t, "Create", len(domain.RoleCatalog))
	userRepo.AssertCalled(t, "Create", mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "superuser" && u.IsActive && u.RoleID != nil
	}))
}

func TestSeeder_Seed_SkipsWhenRolesExist(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	permRepo := new(MockPermissionRepository)
	userRepo := new(MockUserRepository)
	seeder := NewSeeder(roleRepo, permRepo, userRepo, bootstrapConfig())

	roleRepo.On("Count").Return(int64(6), nil)

	require.NoError(t, seeder.Seed())
	permRepo.AssertNotCalled(t, "Create", mock.Anything)
	roleRepo.AssertNotCalled(t, "Create", mock.Anything)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSeeder_Seed_ExistingSuperuserKept(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	permRepo := new(MockPermissionRepository)
	userRepo := new(MockUserRepository)
	seeder := NewSeeder(roleRepo, permRepo, userRepo, bootstrapConfig())

	roleRepo.On("Count").Return(int64(0), nil)
	permRepo.On("Create", mock.AnythingOfType("*domain.Permission")).Return(nil)
	roleRepo.On("Create", mock.AnythingOfType("*domain.Role")).Return(nil)
	roleRepo.On("AddPermissions", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("GetByUsername", "superuser").Return(&domain.User{ID: uuid.New(), Username: "superuser"}, nil)

	require.NoError(t, seeder.Seed())
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRoleCatalog_CoversEveryScope(t *testing.T) {
	superuser := domain.RoleCatalog[0]
	assert.Equal(t, "superuser", superuser.Name)
	assert.ElementsMatch(t, []string{
		domain.PermUserSuperadmin,
		domain.PermOrganizationSuperadmin,
		domain.PermTeamSuperadmin,
		domain.PermBuildSuperadmin,
	}, superuser.Permissions)

	names := make(map[string]bool)
	for _, p := range domain.PermissionCatalog {
		names[p.Name] = true
	}
	for _, role := range domain.RoleCatalog {
		for _, p := range role.Permissions {
			assert.True(t, names[p], "role %s references unknown permission %s", role.Name, p)
		}
	}
}
