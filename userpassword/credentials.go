package userpassword

import "github.com/axent-pl/security/common"

type UserPasswordCredentials struct {
	Username   string
	Password   string
	RememberMe bool
}

func (UserPasswordCredentials) Kind() common.Kind { return common.Password }

func (c UserPasswordCredentials) IsRememberMe() bool { return c.RememberMe }

// String keeps the password out of log output.
func (c UserPasswordCredentials) String() string {
	return "UserPasswordCredentials{Username: " + c.Username + "}"
}

var _ common.Credentials = UserPasswordCredentials{}
var _ common.RememberMeAware = UserPasswordCredentials{}

func (c UserPasswordCredentials) GetUsername() string { return c.Username }
