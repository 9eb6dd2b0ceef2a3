package realm

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/userpassword"
	"golang.org/x/crypto/bcrypt"
)

type memoryAccount struct {
	Account
	roles []string
}

// MemoryStore is a CredentialStore kept entirely in RAM.
type MemoryStore struct {
	mu          sync.RWMutex
	cost        int
	accounts    map[common.SubjectID]memoryAccount
	roles       map[string][]string
	unavailable bool
}

// NewMemoryStore returns an empty store hashing passwords with the given bcrypt
// cost. A cost of 0 selects bcrypt.DefaultCost.
func NewMemoryStore(cost int) *MemoryStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &MemoryStore{
		cost:     cost,
		accounts: make(map[common.SubjectID]memoryAccount),
		roles:    make(map[string][]string),
	}
}

// AddAccount registers or replaces an account with the given password and roles.
func (s *MemoryStore) AddAccount(id common.SubjectID, password string, roles ...string) error {
	if id == "" {
		return fmt.Errorf("%w: empty account id", common.ErrInvalidInput)
	}
	hash, err := userpassword.HashPassword(password, s.cost)
	if err != nil {
		return fmt.Errorf("could not hash password for %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[id] = memoryAccount{
		Account: Account{Principal: id, PasswordHash: hash},
		roles:   slices.Clone(roles),
	}
	return nil
}

// DefineRole sets the permission strings implied by role.
func (s *MemoryStore) DefineRole(role string, permissions ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[role] = slices.Clone(permissions)
}

func (s *MemoryStore) SetLocked(id common.SubjectID, locked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	acc.Locked = locked
	s.accounts[id] = acc
	return nil
}

// SetAvailable toggles a simulated outage: while unavailable every lookup
// fails with ErrStoreUnavailable.
func (s *MemoryStore) SetAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = !available
}

func (s *MemoryStore) FindAccount(ctx context.Context, id common.SubjectID) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return Account{}, ErrStoreUnavailable
	}
	acc, ok := s.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	out := acc.Account
	out.PasswordHash = slices.Clone(acc.PasswordHash)
	return out, nil
}

// GrantsFor returns the account's roles and the union of the permissions of
// those roles. Roles without a definition contribute no permissions.
func (s *MemoryStore) GrantsFor(ctx context.Context, id common.SubjectID) (common.Grants, error) {
	if err := ctx.Err(); err != nil {
		return common.Grants{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return common.Grants{}, ErrStoreUnavailable
	}
	acc, ok := s.accounts[id]
	if !ok {
		return common.Grants{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	grants := common.Grants{Roles: slices.Clone(acc.roles)}
	for _, role := range acc.roles {
		for _, p := range s.roles[role] {
			if !slices.Contains(grants.Permissions, p) {
				grants.Permissions = append(grants.Permissions, p)
			}
		}
	}
	return grants, nil
}

var _ CredentialStore = &MemoryStore{}
