package service

import (
	"fmt"

	"github.com/pguia/registry/internal/auth"
	"github.com/pguia/registry/internal/domain"
	"github.com/pguia/registry/internal/repository"
)

// Authorizer resolves authenticated subjects into principals and gates
// operations on their permission sets. Resolution happens on every request;
// results are never cached across requests, since role assignments can
// change between them.
type Authorizer struct {
	userRepo repository.UserRepository
	codec    *auth.TokenCodec
}

// NewAuthorizer creates a new authorizer
func NewAuthorizer(userRepo repository.UserRepository, codec *auth.TokenCodec) *Authorizer {
	return &Authorizer{userRepo: userRepo, codec: codec}
}

// Resolve loads the user by username and builds a Principal carrying the
// permission set reachable through the user's role. A user with no role
// resolves to an empty permission set, not an error.
func (a *Authorizer) Resolve(username string) (*domain.Principal, error) {
	user, err := a.userRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, username)
	}

	permissions := []string{}
	if user.Role != nil {
		permissions = user.Role.PermissionNames()
	}

	return &domain.Principal{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		Disabled:    !user.IsActive,
		Permissions: permissions,
	}, nil
}

// Authenticate verifies a username/password pair and returns the resolved
// principal. Unknown users and wrong passwords produce the same
// ErrInvalidCredentials; nothing leaks which it was.
func (a *Authorizer) Authenticate(username, password string) (*domain.Principal, error) {
	user, err := a.userRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !auth.CheckPassword(password, user.HashedPassword) {
		return nil, domain.ErrInvalidCredentials
	}

	return a.Resolve(username)
}

// Login authenticates and issues a bearer token for the subject.
func (a *Authorizer) Login(username, password string) (string, error) {
	principal, err := a.Authenticate(username, password)
	if err != nil {
		return "", err
	}
	if principal.Disabled {
		return "", fmt.Errorf("%w: account disabled", domain.ErrForbidden)
	}

	return a.codec.Issue(principal.Username)
}

// ResolveToken validates a bearer token and resolves its subject to a
// principal.
func (a *Authorizer) ResolveToken(token string) (*domain.Principal, error) {
	subject, err := a.codec.Validate(token)
	if err != nil {
		return nil, err
	}
	return a.Resolve(subject)
}

// Authorize allows the principal when it holds at least one of the required
// permissions (OR semantics). Disabled principals are always denied. The
// returned error never reveals which permission was missing.
func (a *Authorizer) Authorize(principal *domain.Principal, required ...string) error {
	if principal.Disabled {
		return fmt.Errorf("%w: account disabled", domain.ErrForbidden)
	}
	if !principal.HasAny(required...) {
		return fmt.Errorf("%w: operation not permitted", domain.ErrForbidden)
	}
	return nil
}

// AuthorizeOp is Authorize against the static required-permission table.
func (a *Authorizer) AuthorizeOp(principal *domain.Principal, op domain.Operation) error {
	return a.Authorize(principal, domain.RequiredPermissions[op]...)
}
