// Package rememberme issues and recalls signed tokens that carry an identity
// beyond the lifetime of a single subject. A recalled identity is "remembered",
// never authenticated.
package rememberme

import (
	"errors"
	"fmt"
	"time"

	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/common/logx"
	jwtx "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid remember-me token")
var ErrTokenExpired = errors.New("remember-me token expired")

const DefaultIssuer = "axent-security"

type Manager struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	// Leeway tolerates clock skew on "exp" and "iat".
	Leeway time.Duration
}

func (m *Manager) issuer() string {
	if m.Issuer == "" {
		return DefaultIssuer
	}
	return m.Issuer
}

// Issue signs a token for principal valid for TTL.
func (m *Manager) Issue(principal common.Principal) (string, error) {
	if principal.IsZero() {
		return "", fmt.Errorf("%w: empty principal", common.ErrInvalidInput)
	}
	if len(m.Secret) == 0 {
		return "", fmt.Errorf("%w: empty secret", common.ErrInvalidInput)
	}
	now := time.Now()
	token := jwtx.NewWithClaims(jwtx.SigningMethodHS256, jwtx.RegisteredClaims{
		Issuer:    m.issuer(),
		Subject:   string(principal.Subject),
		IssuedAt:  jwtx.NewNumericDate(now),
		ExpiresAt: jwtx.NewNumericDate(now.Add(m.TTL)),
		ID:        uuid.NewString(),
	})
	tokenString, err := token.SignedString(m.Secret)
	if err != nil {
		return "", fmt.Errorf("could not sign remember-me token: %w", err)
	}
	return tokenString, nil
}

// Recall validates token and returns the identity it remembers.
func (m *Manager) Recall(token string) (common.SubjectID, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrInvalidToken)
	}
	opts := []jwtx.ParserOption{
		jwtx.WithValidMethods([]string{jwtx.SigningMethodHS256.Alg()}),
		jwtx.WithIssuer(m.issuer()),
		jwtx.WithExpirationRequired(),
	}
	if m.Leeway > 0 {
		opts = append(opts, jwtx.WithLeeway(m.Leeway))
	}

	claims := &jwtx.RegisteredClaims{}
	parsed, err := jwtx.ParseWithClaims(token, claims, func(t *jwtx.Token) (interface{}, error) {
		return m.Secret, nil
	}, opts...)
	if errors.Is(err, jwtx.ErrTokenExpired) {
		return "", ErrTokenExpired
	}
	if err != nil {
		logx.L().Debug("could not parse remember-me token", "error", err)
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if parsed == nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return common.SubjectID(claims.Subject), nil
}
