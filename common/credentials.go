package common

type Kind string

const (
	Password   Kind = "password"
	RememberMe Kind = "remember_me"
)

type Credentials interface {
	Kind() Kind
}

// RememberMeAware is implemented by credentials that carry a remember-me request.
type RememberMeAware interface {
	IsRememberMe() bool
}
