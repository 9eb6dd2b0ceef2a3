package realm

import (
	"context"
	"errors"

	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/userpassword"
)

// UserPasswordProvider turns a CredentialStore account into the stored scheme
// checked by userpassword.UserPasswordVerifier.
type UserPasswordProvider struct {
	Store CredentialStore
}

// Schemes returns no schemes (and no error) for an unknown account so that the
// verifier can classify it. Any other store failure is returned as is.
func (p *UserPasswordProvider) Schemes(ctx context.Context, in common.Credentials) ([]common.Scheme, error) {
	creds, ok := in.(userpassword.UserPasswordCredentials)
	if !ok {
		return []common.Scheme{}, nil
	}
	acc, err := p.Store.FindAccount(ctx, common.SubjectID(creds.Username))
	if errors.Is(err, ErrAccountNotFound) {
		return []common.Scheme{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []common.Scheme{
		userpassword.UserPasswordScheme{
			Username:     string(acc.Principal),
			PasswordHash: acc.PasswordHash,
			Locked:       acc.Locked,
		},
	}, nil
}
