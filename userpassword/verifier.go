package userpassword

import (
	"context"
	"errors"
	"fmt"

	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/common/logx"
	"golang.org/x/crypto/bcrypt"
)

type UserPasswordVerifier struct{}

var _ common.Verifier = &UserPasswordVerifier{}

func (v *UserPasswordVerifier) Kind() common.Kind { return common.Password }

// Verify classifies the attempt: no scheme for the username is an unknown
// account, a hash mismatch is incorrect credentials, and a matching but locked
// scheme is a locked account.
func (v *UserPasswordVerifier) Verify(ctx context.Context, in common.Credentials, schemes []common.Scheme) (common.Principal, error) {
	userPasswordInput, ok := in.(UserPasswordCredentials)
	if !ok {
		logx.L().Debug("could not cast Credentials to UserPasswordCredentials", "context", ctx)
		return common.Principal{}, fmt.Errorf("%w: %w", common.ErrAuthentication, common.ErrInvalidInput)
	}
	if userPasswordInput.Username == "" {
		logx.L().Debug("empty username", "context", ctx)
		return common.Principal{}, fmt.Errorf("%w: empty username", common.ErrUnknownAccount)
	}

	found := false
	for _, s := range schemes {
		userPasswordScheme, ok := s.(UserPasswordScheme)
		if !ok || userPasswordScheme.Username != userPasswordInput.Username {
			continue
		}
		found = true
		err := userPasswordScheme.ComparePassword(userPasswordInput.Password)
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			continue
		}
		if err != nil {
			logx.L().Debug("could not compare password hash", "context", ctx, "subject", userPasswordInput.Username, "error", err)
			return common.Principal{}, fmt.Errorf("%w: %w", common.ErrAuthentication, err)
		}
		if userPasswordScheme.Locked {
			logx.L().Debug("account is locked", "context", ctx, "subject", userPasswordInput.Username)
			return common.Principal{}, fmt.Errorf("%w: %s", common.ErrLockedAccount, userPasswordInput.Username)
		}

		return common.Principal{Subject: common.SubjectID(userPasswordScheme.Username)}, nil
	}
	if !found {
		logx.L().Debug("no scheme for username", "context", ctx, "subject", userPasswordInput.Username)
		return common.Principal{}, fmt.Errorf("%w: %s", common.ErrUnknownAccount, userPasswordInput.Username)
	}
	return common.Principal{}, fmt.Errorf("%w: %s", common.ErrIncorrectCredentials, userPasswordInput.Username)
}
