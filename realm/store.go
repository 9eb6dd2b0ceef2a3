// Package realm holds the credential store contract consumed by the
// authenticator and authorizer, plus an in-memory store used by tests and the
// quickstart program.
package realm

import (
	"context"
	"errors"

	"github.com/axent-pl/security/common"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrStoreUnavailable = errors.New("credential store unavailable")

// Account is the stored side of a username/password principal.
type Account struct {
	Principal    common.SubjectID
	PasswordHash []byte
	Locked       bool
}

// CredentialStore is a read-mostly lookup service. Implementations must be
// safe for concurrent reads.
type CredentialStore interface {
	// FindAccount returns ErrAccountNotFound when id is unknown.
	FindAccount(ctx context.Context, id common.SubjectID) (Account, error)
	GrantsFor(ctx context.Context, id common.SubjectID) (common.Grants, error)
}
