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

// Seeder populates the fixed permission and role catalogs and the bootstrap
// superuser on first startup. Seeding is idempotent: it is skipped entirely
// when any role row already exists.
type Seeder struct {
	roleRepo repository.RoleRepository
	permRepo repository.PermissionRepository
	userRepo repository.UserRepository
	cfg      *config.BootstrapConfig
}

// NewSeeder creates a new seeder
func NewSeeder(
	roleRepo repository.RoleRepository,
	permRepo repository.PermissionRepository,
	userRepo repository.UserRepository,
	cfg *config.BootstrapConfig,
) *Seeder {
	return &Seeder{roleRepo: roleRepo, permRepo: permRepo, userRepo: userRepo, cfg: cfg}
}

// Seed runs the first-boot initialization.
func (s *Seeder) Seed() error {
	count, err := s.roleRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to check existing roles: %w", err)
	}
	if count > 0 {
		log.Info().Msg("Roles already present, skipping bootstrap seeding")
		return nil
	}

	log.Info().Msg("Seeding permissions, roles and superuser")

	permsByName := make(map[string]*domain.Permission, len(domain.PermissionCatalog))
	for _, seed := range domain.PermissionCatalog {
		perm := &domain.Permission{Name: seed.Name, Description: seed.Description}
		if err := s.permRepo.Create(perm); err != nil {
			return fmt.Errorf("failed to create permission %s: %w", seed.Name, err)
		}
		permsByName[perm.Name] = perm
	}

	rolesByName := make(map[string]*domain.Role, len(domain.RoleCatalog))
	for _, seed := range domain.RoleCatalog {
		role := &domain.Role{Name: seed.Name, Description: seed.Description}
		if err := s.roleRepo.Create(role); err != nil {
			return fmt.Errorf("failed to create role %s: %w", seed.Name, err)
		}

		permIDs := make([]uuid.UUID, 0, len(seed.Permissions))
		for _, name := range seed.Permissions {
			if perm, ok := permsByName[name]; ok {
				permIDs = append(permIDs, perm.ID)
			}
		}
		if err := s.roleRepo.AddPermissions(role.ID, permIDs); err != nil {
			return fmt.Errorf("failed to assign permissions to role %s: %w", seed.Name, err)
		}
		rolesByName[role.Name] = role
	}

	return s.seedSuperuser(rolesByName["superuser"])
}

func (s *Seeder) seedSuperuser(superuserRole *domain.Role) error {
	existing, err := s.userRepo.GetByUsername(s.cfg.SuperuserUsername)
	if err != nil {
		return fmt.Errorf("failed to check existing superuser: %w", err)
	}
	if existing != nil {
		log.Info().Str("username", s.cfg.SuperuserUsername).Msg("Superuser already exists")
		return nil
	}

	hashed, err := auth.HashPassword(s.cfg.SuperuserPassword)
	if err != nil {
		return fmt.Errorf("failed to hash superuser password: %w", err)
	}

	superuser := &domain.User{
		Username:       s.cfg.SuperuserUsername,
		Email:          fmt.Sprintf("%s@system.local", s.cfg.SuperuserUsername),
		HashedPassword: hashed,
		FullName:       "System Superuser",
		IsActive:       true,
		RoleID:         &superuserRole.ID,
	}
	if err := s.userRepo.Create(superuser); err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	log.Info().Str("username", superuser.Username).
		Msg("Created superuser with the configured default password; change it after first login")
	return nil
}
