package quickstart

import (
	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/realm"
)

type demoAccount struct {
	id       common.SubjectID
	password string
	roles    []string
}

var demoAccounts = []demoAccount{
	{id: "root", password: "secret", roles: []string{"admin"}},
	{id: "guest", password: "guest", roles: []string{"guest"}},
	{id: "presidentskroob", password: "12345", roles: []string{"president"}},
	{id: "darkhelmet", password: "ludicrousspeed", roles: []string{"darklord", "schwartz"}},
	{id: "lonestarr", password: "vespa", roles: []string{"goodguy", "schwartz"}},
}

var demoRoles = map[string][]string{
	"admin":    {"*"},
	"schwartz": {"lightsaber:*"},
	"goodguy":  {"winnebago:drive:eagle5", "user:delete"},
}

// NewDemoStore returns the accounts and roles the quickstart runs against.
func NewDemoStore(bcryptCost int) (*realm.MemoryStore, error) {
	store := realm.NewMemoryStore(bcryptCost)
	for _, acc := range demoAccounts {
		if err := store.AddAccount(acc.id, acc.password, acc.roles...); err != nil {
			return nil, err
		}
	}
	for role, perms := range demoRoles {
		store.DefineRole(role, perms...)
	}
	return store, nil
}
