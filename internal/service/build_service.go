package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pguia/registry/internal/domain"
	"github.com/pguia/registry/internal/repository"
	"github.com/pguia/registry/internal/storage"
	"github.com/rs/zerolog/log"
)

// storageCallTimeout bounds every object-storage round trip; the SDK
// imposes no deadline of its own.
const storageCallTimeout = 30 * time.Second

// shortIDInsertRetries bounds re-allocation when the unique constraint
// trips under a concurrent insert of the same short id.
const shortIDInsertRetries = 3

// CreateBuildInput carries the parameters for a build creation.
type CreateBuildInput struct {
	TeamID        uuid.UUID
	Name          string
	Version       string
	OverrideQuota bool
}

// UpdateBuildInput carries the optional fields of a build update. Size is
// reported out-of-band by the uploader once the object is written.
type UpdateBuildInput struct {
	Name    *string
	Version *string
	Size    *int64
}

// BuildGrant pairs a freshly created build with its upload grant and the
// stable public download reference.
type BuildGrant struct {
	Build            *domain.Build `json:"build"`
	UploadURL        string        `json:"upload_url"`
	ShortDownloadRef string        `json:"short_download_url"`
}

// DownloadGrant is a time-limited download URL plus the build metadata a
// consumer needs to present it.
type DownloadGrant struct {
	DownloadURL      string    `json:"download_url"`
	ExpiresInSeconds int       `json:"expires_in"`
	BuildID          uuid.UUID `json:"build_id"`
	ShortID          string    `json:"short_id"`
	Name             string    `json:"name"`
	Version          string    `json:"version"`
	Size             int64     `json:"size"`
}

// BuildService implements the build lifecycle: creation under a per-team
// quota with deterministic eviction, short-id issuance, time-limited
// storage grants and deletion.
type BuildService struct {
	buildRepo repository.BuildRepository
	teamRepo  repository.TeamRepository
	store     storage.ObjectStore
	allocator *ShortIDAllocator
	cache     CacheService
}

// NewBuildService creates a new build service
func NewBuildService(
	buildRepo repository.BuildRepository,
	teamRepo repository.TeamRepository,
	store storage.ObjectStore,
	allocator *ShortIDAllocator,
	cache CacheService,
) *BuildService {
	return &BuildService{
		buildRepo: buildRepo,
		teamRepo:  teamRepo,
		store:     store,
		allocator: allocator,
		cache:     cache,
	}
}

// Create makes a new build row (size 0) and returns it with an upload
// grant. When the team is at its cap the call fails with
// QuotaExceededError unless the override is set, in which case the single
// oldest build is evicted first. Eviction deletes the storage object before
// the row; a storage failure there aborts the whole create, since the
// override is not safe to honor without freeing real storage.
//
// The quota check and the insert are two round trips with no row locking;
// a concurrent create for the same team can race past the check. That
// weak consistency is accepted.
func (s *BuildService) Create(ctx context.Context, principal *domain.Principal, in CreateBuildInput) (*BuildGrant, error) {
	team, err := s.teamRepo.GetByID(in.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	if team == nil {
		return nil, fmt.Errorf("%w: team %s", domain.ErrNotFound, in.TeamID)
	}

	if err := s.requireTeamAccess(principal, in.TeamID); err != nil {
		return nil, err
	}

	count, err := s.buildRepo.CountByTeam(in.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count builds: %w", err)
	}

	if count >= int64(team.MaxBuilds) {
		if !in.OverrideQuota {
			return nil, &domain.QuotaExceededError{
				CurrentBuilds: int(count),
				MaxBuilds:     team.MaxBuilds,
			}
		}
		if err := s.evictOldest(ctx, in.TeamID); err != nil {
			return nil, err
		}
	}

	path := buildStoragePath(in.TeamID, in.Name, in.Version)

	build, err := s.insertWithShortID(&domain.Build{
		Name:      in.Name,
		Version:   in.Version,
		Path:      path,
		Size:      0,
		CreatedBy: principal.UserID,
		TeamID:    in.TeamID,
	})
	if err != nil {
		return nil, err
	}

	storageCtx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()
	uploadURL, err := s.store.PresignUpload(storageCtx, path)
	if err != nil {
		return nil, err
	}

	return &BuildGrant{
		Build:            build,
		UploadURL:        uploadURL,
		ShortDownloadRef: shortDownloadRef(build.ShortID),
	}, nil
}

// evictOldest removes the team's oldest build to make room under an
// overridden quota. Storage first, row second; storage failure is fatal
// and leaves the row in place.
func (s *BuildService) evictOldest(ctx context.Context, teamID uuid.UUID) error {
	oldest, err := s.buildRepo.OldestByTeam(teamID)
	if err != nil {
		return fmt.Errorf("failed to find oldest build: %w", err)
	}
	if oldest == nil {
		return nil
	}

	storageCtx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()
	if err := s.store.DeleteObject(storageCtx, oldest.Path); err != nil {
		return fmt.Errorf("cannot evict build %s: %w", oldest.ID, err)
	}

	if err := s.buildRepo.Delete(oldest.ID); err != nil {
		return fmt.Errorf("failed to delete evicted build row: %w", err)
	}

	s.cache.Delete(ShortLinkCacheKey(oldest.ShortID))
	log.Info().
		Str("build_id", oldest.ID.String()).
		Str("team_id", teamID.String()).
		Msg("Evicted oldest build to honor quota override")
	return nil
}

// insertWithShortID allocates a short id and inserts the row, retrying the
// pair when the unique constraint detects a concurrent allocation of the
// same value.
func (s *BuildService) insertWithShortID(build *domain.Build) (*domain.Build, error) {
	for attempt := 0; attempt < shortIDInsertRetries; attempt++ {
		shortID, err := s.allocator.Allocate()
		if err != nil {
			return nil, err
		}

		build.ShortID = shortID
		err = s.buildRepo.Create(build)
		if err == nil {
			return build, nil
		}
		if !repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("failed to insert build: %w", err)
		}

		log.Warn().Str("short_id", shortID).Msg("Short id collided on insert, reallocating")
		build.ID = uuid.Nil
	}
	return nil, domain.ErrAllocationExhausted
}

// Delete removes a build. The storage object is deleted best-effort: a
// storage failure here is only a warning and the row is removed regardless.
func (s *BuildService) Delete(ctx context.Context, principal *domain.Principal, buildID uuid.UUID) error {
	build, err := s.buildRepo.GetByID(buildID)
	if err != nil {
		return fmt.Errorf("failed to load build: %w", err)
	}
	if build == nil {
		return fmt.Errorf("%w: build %s", domain.ErrNotFound, buildID)
	}

	if err := s.requireTeamAccess(principal, build.TeamID); err != nil {
		return err
	}

	storageCtx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()
	if err := s.store.DeleteObject(storageCtx, build.Path); err != nil {
		log.Warn().Err(err).
			Str("path", build.Path).
			Msg("Failed to delete storage object, removing row anyway")
	}

	if err := s.buildRepo.Delete(build.ID); err != nil {
		return fmt.Errorf("failed to delete build row: %w", err)
	}

	s.cache.Delete(ShortLinkCacheKey(build.ShortID))
	return nil
}

// Get returns a build visible to the principal.
func (s *BuildService) Get(principal *domain.Principal, buildID uuid.UUID) (*domain.Build, error) {
	build, err := s.buildRepo.GetByID(buildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load build: %w", err)
	}
	if build == nil {
		return nil, fmt.Errorf("%w: build %s", domain.ErrNotFound, buildID)
	}

	if err := s.requireTeamAccess(principal, build.TeamID); err != nil {
		return nil, err
	}
	return build, nil
}

// Update applies the given fields to a build.
func (s *BuildService) Update(principal *domain.Principal, buildID uuid.UUID, in UpdateBuildInput) (*domain.Build, error) {
	build, err := s.buildRepo.GetByID(buildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load build: %w", err)
	}
	if build == nil {
		return nil, fmt.Errorf("%w: build %s", domain.ErrNotFound, buildID)
	}

	if err := s.requireTeamAccess(principal, build.TeamID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		build.Name = *in.Name
	}
	if in.Version != nil {
		build.Version = *in.Version
	}
	if in.Size != nil {
		build.Size = *in.Size
	}

	if err := s.buildRepo.Update(build); err != nil {
		return nil, fmt.Errorf("failed to update build: %w", err)
	}

	s.cache.Delete(ShortLinkCacheKey(build.ShortID))
	return build, nil
}

// List returns builds, optionally filtered by team or creator. Team-scoped
// listings require team access; creator-scoped listings are limited to the
// requester unless it holds the build wildcard.
func (s *BuildService) List(principal *domain.Principal, teamID, createdBy *uuid.UUID, limit, offset int) ([]domain.Build, error) {
	if teamID != nil {
		team, err := s.teamRepo.GetByID(*teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to load team: %w", err)
		}
		if team == nil {
			return nil, fmt.Errorf("%w: team %s", domain.ErrNotFound, *teamID)
		}
		if err := s.requireTeamAccess(principal, *teamID); err != nil {
			return nil, err
		}
	}

	if createdBy != nil && *createdBy != principal.UserID &&
		!principal.HasPermission(domain.PermBuildSuperadmin) {
		return nil, fmt.Errorf("%w: can only list own builds", domain.ErrForbidden)
	}

	return s.buildRepo.List(teamID, createdBy, limit, offset)
}

// DownloadURL issues a fresh download grant for a build the principal can
// access.
func (s *BuildService) DownloadURL(ctx context.Context, principal *domain.Principal, buildID uuid.UUID) (*DownloadGrant, error) {
	build, err := s.Get(principal, buildID)
	if err != nil {
		return nil, err
	}
	return s.grantFor(ctx, build)
}

// ResolveShortLink resolves a public short id to a fresh download grant
// plus build metadata. This path backs shareable links, so it is
// unauthenticated and consults no access gate. Only the row lookup is
// cacheable; the URL is signed anew on every call.
func (s *BuildService) ResolveShortLink(ctx context.Context, shortID string) (*DownloadGrant, error) {
	key := ShortLinkCacheKey(shortID)
	build, ok := s.cache.Get(key)
	if !ok {
		build, err := s.buildRepo.GetByShortID(shortID)
		if err != nil {
			return nil, fmt.Errorf("failed to load build: %w", err)
		}
		if build == nil {
			return nil, fmt.Errorf("%w: build %s", domain.ErrNotFound, shortID)
		}
		s.cache.Set(key, build)
		return s.grantFor(ctx, build)
	}
	return s.grantFor(ctx, build)
}

func (s *BuildService) grantFor(ctx context.Context, build *domain.Build) (*DownloadGrant, error) {
	storageCtx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()
	url, err := s.store.PresignDownload(storageCtx, build.Path)
	if err != nil {
		return nil, err
	}

	return &DownloadGrant{
		DownloadURL:      url,
		ExpiresInSeconds: int(storage.URLExpiry / time.Second),
		BuildID:          build.ID,
		ShortID:          build.ShortID,
		Name:             build.Name,
		Version:          build.Version,
		Size:             build.Size,
	}, nil
}

// requireTeamAccess admits team members and holders of the build wildcard.
func (s *BuildService) requireTeamAccess(principal *domain.Principal, teamID uuid.UUID) error {
	if principal.HasPermission(domain.PermBuildSuperadmin) {
		return nil
	}

	isMember, err := s.teamRepo.IsMember(teamID, principal.UserID)
	if err != nil {
		return fmt.Errorf("failed to check team membership: %w", err)
	}
	if !isMember {
		return fmt.Errorf("%w: not a member of the team", domain.ErrForbidden)
	}
	return nil
}

// buildStoragePath produces a per-request unique object key: team scope,
// name, version, timestamp and a random suffix, so no uniqueness probe
// against storage is needed.
func buildStoragePath(teamID uuid.UUID, name, version string) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("builds/team_%s/%s_%s_%s_%s", teamID, name, version, timestamp, suffix)
}

func shortDownloadRef(shortID string) string {
	return "/builds/download/" + shortID
}
