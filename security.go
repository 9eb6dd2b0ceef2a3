// Package security composes authentication, sessions and authorization behind
// a per-caller Subject. A SecurityManager is built once and passed explicitly;
// each logical caller obtains its own Subject from it.
package security

import (
	"fmt"
	"time"

	"github.com/axent-pl/security/authc"
	"github.com/axent-pl/security/authz"
	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/rememberme"
	"github.com/axent-pl/security/session"
	"github.com/axent-pl/security/userpassword"
	"github.com/google/uuid"
)

const DefaultGrantCacheSize = 128

type SecurityManager struct {
	authenticator *authc.Authenticator
	authorizer    *authz.Authorizer
	sessions      *session.Manager
	remember      *rememberme.Manager

	grantCacheSize int
}

type Option func(*SecurityManager)

func WithSessionManager(m *session.Manager) Option {
	return func(sm *SecurityManager) { sm.sessions = m }
}

// WithRememberMe enables remember-me tokens for logins that ask for them.
func WithRememberMe(m *rememberme.Manager) Option {
	return func(sm *SecurityManager) { sm.remember = m }
}

func WithAuthenticationTimeout(d time.Duration) Option {
	return func(sm *SecurityManager) { sm.authenticator.Timeout = d }
}

// WithGrantCacheSize sets how many principals' grants are cached. Zero disables the cache.
func WithGrantCacheSize(n int) Option {
	return func(sm *SecurityManager) { sm.grantCacheSize = n }
}

// WithVerifier registers an additional credentials verifier.
func WithVerifier(v common.Verifier) Option {
	return func(sm *SecurityManager) { sm.authenticator.Verifiers[v.Kind()] = v }
}

// NewSecurityManager builds a manager authenticating username/password
// credentials against provider and authorizing against grants.
func NewSecurityManager(provider authc.SchemeProvider, grants authz.GrantSource, opts ...Option) (*SecurityManager, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: nil scheme provider", common.ErrInvalidInput)
	}
	sm := &SecurityManager{
		authenticator: &authc.Authenticator{
			Provider: provider,
			Verifiers: map[common.Kind]common.Verifier{
				common.Password: &userpassword.UserPasswordVerifier{},
			},
		},
		grantCacheSize: DefaultGrantCacheSize,
	}
	for _, opt := range opts {
		opt(sm)
	}
	authorizer, err := authz.NewAuthorizer(grants, sm.grantCacheSize)
	if err != nil {
		return nil, err
	}
	sm.authorizer = authorizer
	if sm.sessions == nil {
		sm.sessions = session.NewManager()
	}
	return sm, nil
}

// NewSubject returns an anonymous subject for a new caller.
func (sm *SecurityManager) NewSubject() *Subject {
	return &Subject{
		owner: uuid.NewString(),
		sm:    sm,
	}
}

// RecallSubject returns an anonymous subject carrying the identity remembered
// by token. The subject still has to log in to become authenticated.
func (sm *SecurityManager) RecallSubject(token string) (*Subject, error) {
	if sm.remember == nil {
		return nil, fmt.Errorf("%w: remember-me is not enabled", rememberme.ErrInvalidToken)
	}
	id, err := sm.remember.Recall(token)
	if err != nil {
		return nil, err
	}
	s := sm.NewSubject()
	s.remembered = id
	return s, nil
}

func (sm *SecurityManager) Sessions() *session.Manager { return sm.sessions }
