package userpassword

import (
	"github.com/axent-pl/security/common"
	"golang.org/x/crypto/bcrypt"
)

type UserPasswordScheme struct {
	Username     string
	PasswordHash []byte
	Locked       bool
}

func (UserPasswordScheme) Kind() common.Kind { return common.Password }

func (s UserPasswordScheme) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(password))
}

// HashPassword returns the bcrypt hash stored in a UserPasswordScheme.
func HashPassword(password string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), cost)
}

var _ common.Scheme = UserPasswordScheme{}
