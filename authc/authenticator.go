// Package authc verifies submitted credentials against stored schemes and
// classifies every failure into the common.FailureKind taxonomy.
package authc

import (
	"context"
	"fmt"
	"time"

	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/common/logx"
)

// SchemeProvider returns the stored schemes for the identity claimed by in.
// An unknown identity yields an empty slice, not an error.
type SchemeProvider interface {
	Schemes(ctx context.Context, in common.Credentials) ([]common.Scheme, error)
}

type Authenticator struct {
	Provider  SchemeProvider
	Verifiers map[common.Kind]common.Verifier
	// Timeout bounds the provider lookup. Zero means no bound.
	Timeout time.Duration
}

// Authenticate returns the verified principal or a *common.AuthError.
func (a *Authenticator) Authenticate(ctx context.Context, in common.Credentials) (common.Principal, error) {
	if in == nil {
		return common.Principal{}, common.NewAuthError(common.FailureAuthentication, "", common.ErrInvalidInput)
	}
	claimed := claimedSubject(in)
	kind := in.Kind()

	verifier, ok := a.Verifiers[kind]
	if !ok {
		logx.L().Debug("no verifier for credentials kind", "kind", kind)
		return common.Principal{}, common.NewAuthError(common.FailureAuthentication, claimed, fmt.Errorf("%w: unsupported credentials kind %s", common.ErrInvalidInput, kind))
	}
	if a.Provider == nil {
		return common.Principal{}, common.NewAuthError(common.FailureAuthentication, claimed, fmt.Errorf("no scheme provider"))
	}

	lookupCtx := ctx
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	schemes, err := a.Provider.Schemes(lookupCtx, in)
	if err != nil {
		logx.L().Debug("could not query stored schemes", "subject", claimed, "error", err)
		return common.Principal{}, common.NewAuthError(common.FailureAuthentication, claimed, err)
	}

	principal, err := verifier.Verify(ctx, in, schemes)
	if err != nil {
		return common.Principal{}, common.NewAuthError(common.FailureOf(err), claimed, err)
	}

	return principal, nil
}

type usernamer interface {
	GetUsername() string
}

func claimedSubject(in common.Credentials) common.SubjectID {
	if u, ok := in.(usernamer); ok {
		return common.SubjectID(u.GetUsername())
	}
	return ""
}
