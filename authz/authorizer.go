package authz

import (
	"context"
	"fmt"
	"slices"

	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/common/logx"
	lru "github.com/hashicorp/golang-lru/v2"
)

// GrantSource supplies the grants of a principal. realm.CredentialStore
// satisfies it.
type GrantSource interface {
	GrantsFor(ctx context.Context, id common.SubjectID) (common.Grants, error)
}

type grantSet struct {
	roles       []string
	permissions []Permission
}

// Authorizer evaluates queries against the grants of a principal. Queries
// never fail: anything that prevents a positive answer is a false.
type Authorizer struct {
	source GrantSource
	cache  *lru.Cache[common.SubjectID, *grantSet]
}

// NewAuthorizer returns an authorizer caching the grants of up to cacheSize
// principals. A cacheSize of 0 disables caching.
func NewAuthorizer(source GrantSource, cacheSize int) (*Authorizer, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: nil grant source", common.ErrInvalidInput)
	}
	a := &Authorizer{source: source}
	if cacheSize > 0 {
		cache, err := lru.New[common.SubjectID, *grantSet](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("could not create grant cache: %w", err)
		}
		a.cache = cache
	}
	return a, nil
}

func (a *Authorizer) HasRole(ctx context.Context, principal common.Principal, role string) bool {
	grants, ok := a.grants(ctx, principal)
	if !ok {
		return false
	}
	return slices.Contains(grants.roles, role)
}

// HasAllRoles is false for an empty role list.
func (a *Authorizer) HasAllRoles(ctx context.Context, principal common.Principal, roles ...string) bool {
	if len(roles) == 0 {
		return false
	}
	grants, ok := a.grants(ctx, principal)
	if !ok {
		return false
	}
	for _, role := range roles {
		if !slices.Contains(grants.roles, role) {
			return false
		}
	}
	return true
}

func (a *Authorizer) IsPermitted(ctx context.Context, principal common.Principal, permission string) bool {
	requested, err := ParsePermission(permission)
	if err != nil {
		logx.L().Debug("could not parse requested permission", "permission", permission, "error", err)
		return false
	}
	grants, ok := a.grants(ctx, principal)
	if !ok {
		return false
	}
	return grants.implies(requested)
}

// IsPermittedAll is false for an empty permission list.
func (a *Authorizer) IsPermittedAll(ctx context.Context, principal common.Principal, permissions ...string) bool {
	if len(permissions) == 0 {
		return false
	}
	for _, p := range permissions {
		if !a.IsPermitted(ctx, principal, p) {
			return false
		}
	}
	return true
}

// CheckPermission is IsPermitted for callers that want an error to return.
func (a *Authorizer) CheckPermission(ctx context.Context, principal common.Principal, permission string) error {
	if a.IsPermitted(ctx, principal, permission) {
		return nil
	}
	return fmt.Errorf("%w: %s lacks %q", common.ErrUnauthorized, principal.Subject, permission)
}

// Forget drops the cached grants of subject.
func (a *Authorizer) Forget(subject common.SubjectID) {
	if a.cache != nil {
		a.cache.Remove(subject)
	}
}

func (a *Authorizer) grants(ctx context.Context, principal common.Principal) (*grantSet, bool) {
	if principal.IsZero() {
		return nil, false
	}
	if a.cache != nil {
		if gs, ok := a.cache.Get(principal.Subject); ok {
			return gs, true
		}
	}
	raw, err := a.source.GrantsFor(ctx, principal.Subject)
	if err != nil {
		logx.L().Warn("could not load grants", "subject", principal.Subject, "error", err)
		return nil, false
	}
	gs := &grantSet{roles: slices.Clone(raw.Roles)}
	for _, s := range raw.Permissions {
		p, err := ParsePermission(s)
		if err != nil {
			logx.L().Warn("skipping malformed granted permission", "subject", principal.Subject, "permission", s, "error", err)
			continue
		}
		gs.permissions = append(gs.permissions, p)
	}
	if a.cache != nil {
		a.cache.Add(principal.Subject, gs)
	}
	return gs, true
}

func (gs *grantSet) implies(requested Permission) bool {
	for _, p := range gs.permissions {
		if p.Implies(requested) {
			return true
		}
	}
	return false
}
