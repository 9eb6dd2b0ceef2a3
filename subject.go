package security

import (
	"context"
	"fmt"

	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/common/logx"
	"github.com/axent-pl/security/session"
)

// Subject is the security view of one caller: Anonymous until a successful
// Login, Authenticated until Logout. A Subject is not safe for concurrent use.
type Subject struct {
	owner string
	sm    *SecurityManager

	session       *session.Handle
	principal     common.Principal
	authenticated bool
	rememberMe    bool
	rememberToken string
	remembered    common.SubjectID
}

func (s *Subject) String() string {
	if s.authenticated {
		return fmt.Sprintf("Subject{%s authenticated}", s.principal.Subject)
	}
	if s.remembered != "" {
		return fmt.Sprintf("Subject{%s remembered}", s.remembered)
	}
	return "Subject{anonymous}"
}

// Session returns the subject's session, creating it on first use and again
// after Logout.
func (s *Subject) Session() *session.Handle {
	s.session = s.sm.sessions.GetOrCreate(s.owner)
	return s.session
}

// Login authenticates creds. It is only valid for an anonymous subject. On
// failure the subject stays anonymous and the *common.AuthError is returned.
func (s *Subject) Login(ctx context.Context, creds common.Credentials) error {
	if s.authenticated {
		return fmt.Errorf("%w: %s", common.ErrAlreadyAuthenticated, s.principal.Subject)
	}
	principal, err := s.sm.authenticator.Authenticate(ctx, creds)
	if err != nil {
		if common.FailureOf(err) == common.FailureAuthentication {
			logx.L().Warn("unexpected authentication failure", "error", err)
		} else {
			logx.L().Debug("authentication failed", "error", err)
		}
		return err
	}

	s.principal = principal
	s.authenticated = true
	s.remembered = ""
	if aware, ok := creds.(common.RememberMeAware); ok {
		s.rememberMe = aware.IsRememberMe()
	}
	if s.rememberMe && s.sm.remember != nil {
		token, err := s.sm.remember.Issue(principal)
		if err != nil {
			logx.L().Warn("could not issue remember-me token", "subject", principal.Subject, "error", err)
		} else {
			s.rememberToken = token
		}
	}
	logx.L().Debug("subject logged in", "subject", principal.Subject, "remember_me", s.rememberMe)
	return nil
}

// Logout returns the subject to the anonymous state and invalidates its
// session. Calling it again changes nothing.
func (s *Subject) Logout() {
	if s.session != nil {
		s.session.Invalidate()
		s.session = nil
	}
	if s.authenticated {
		s.sm.authorizer.Forget(s.principal.Subject)
		logx.L().Debug("subject logged out", "subject", s.principal.Subject)
	}
	s.principal = common.Principal{}
	s.authenticated = false
	s.rememberMe = false
	s.rememberToken = ""
	s.remembered = ""
}

func (s *Subject) IsAuthenticated() bool { return s.authenticated }

// IsRemembered reports whether the subject carries an identity recalled
// from a remember-me token without having logged in.
func (s *Subject) IsRemembered() bool { return !s.authenticated && s.remembered != "" }

func (s *Subject) RememberedIdentity() (common.SubjectID, bool) {
	return s.remembered, s.IsRemembered()
}

// IsRememberMe reports whether the current login asked to be remembered.
func (s *Subject) IsRememberMe() bool { return s.rememberMe }

func (s *Subject) RememberMeToken() (string, bool) {
	return s.rememberToken, s.rememberToken != ""
}

// Principal returns the authenticated principal.
func (s *Subject) Principal() (common.Principal, bool) {
	return s.principal, s.authenticated
}

func (s *Subject) HasRole(ctx context.Context, role string) bool {
	return s.sm.authorizer.HasRole(ctx, s.current(), role)
}

func (s *Subject) HasAllRoles(ctx context.Context, roles ...string) bool {
	return s.sm.authorizer.HasAllRoles(ctx, s.current(), roles...)
}

func (s *Subject) IsPermitted(ctx context.Context, permission string) bool {
	return s.sm.authorizer.IsPermitted(ctx, s.current(), permission)
}

func (s *Subject) IsPermittedAll(ctx context.Context, permissions ...string) bool {
	return s.sm.authorizer.IsPermittedAll(ctx, s.current(), permissions...)
}

func (s *Subject) CheckPermission(ctx context.Context, permission string) error {
	return s.sm.authorizer.CheckPermission(ctx, s.current(), permission)
}

// current is the principal authorization runs against: zero unless authenticated.
func (s *Subject) current() common.Principal {
	if !s.authenticated {
		return common.Principal{}
	}
	return s.principal
}
