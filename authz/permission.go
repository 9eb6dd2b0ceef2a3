// Package authz answers role and permission-string queries for a principal.
//
// Permission strings are colon-separated parts, most general first, for
// example "domain:action:instance". A part may list alternatives separated by
// commas ("user:create,delete") and "*" matches any value at its position.
// Omitted trailing parts mean "any".
package authz

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	wildcardToken  = "*"
	partDivider    = ":"
	subpartDivider = ","
)

var ErrInvalidPermission = errors.New("invalid permission string")

// Permission is a parsed permission string: one set of sub-parts per part.
type Permission [][]string

// ParsePermission splits s into parts and sub-parts. Matching is case
// insensitive, so tokens are lower-cased.
func ParsePermission(s string) (Permission, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPermission)
	}
	var p Permission
	for _, part := range strings.Split(strings.ToLower(s), partDivider) {
		var subparts []string
		for _, sub := range strings.Split(part, subpartDivider) {
			sub = strings.TrimSpace(sub)
			if sub == "" {
				continue
			}
			subparts = append(subparts, sub)
		}
		if len(subparts) == 0 {
			return nil, fmt.Errorf("%w: empty part in %q", ErrInvalidPermission, s)
		}
		p = append(p, subparts)
	}
	return p, nil
}

// Implies reports whether holding p grants requested.
func (p Permission) Implies(requested Permission) bool {
	if len(p) == 0 || len(requested) == 0 {
		return false
	}
	for i, want := range requested {
		if i >= len(p) {
			// p ran out of parts first, so it is broader
			return true
		}
		if !covers(p[i], want) {
			return false
		}
	}
	for _, rest := range p[len(requested):] {
		if !slices.Contains(rest, wildcardToken) {
			return false
		}
	}
	return true
}

func (p Permission) String() string {
	parts := make([]string, len(p))
	for i, subparts := range p {
		parts[i] = strings.Join(subparts, subpartDivider)
	}
	return strings.Join(parts, partDivider)
}

func covers(granted, requested []string) bool {
	if slices.Contains(granted, wildcardToken) {
		return true
	}
	for _, r := range requested {
		if !slices.Contains(granted, r) {
			return false
		}
	}
	return true
}

// Implies parses both strings and reports whether granted implies requested.
// Unparsable input never implies anything.
func Implies(granted, requested string) bool {
	g, err := ParsePermission(granted)
	if err != nil {
		return false
	}
	r, err := ParsePermission(requested)
	if err != nil {
		return false
	}
	return g.Implies(r)
}
