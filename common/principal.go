package common

type SubjectID string

type Principal struct {
	Subject    SubjectID
	Attributes map[string]any
}

// IsZero reports whether p identifies nobody.
func (p Principal) IsZero() bool { return p.Subject == "" }

// Grants are the roles and permission strings held by a single principal.
type Grants struct {
	Roles       []string
	Permissions []string
}
