package common_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/axent-pl/security/common"
	"github.com/stretchr/testify/assert"
)

func TestFailureOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want common.FailureKind
	}{
		{name: "nil", err: nil, want: common.FailureNone},
		{name: "wrapped unknown account", err: fmt.Errorf("%w: acme", common.ErrUnknownAccount), want: common.FailureUnknownAccount},
		{name: "incorrect credentials", err: common.ErrIncorrectCredentials, want: common.FailureIncorrectCredentials},
		{name: "locked", err: common.ErrLockedAccount, want: common.FailureLockedAccount},
		{name: "unclassified", err: context.DeadlineExceeded, want: common.FailureAuthentication},
		{name: "auth error", err: common.NewAuthError(common.FailureLockedAccount, "acme", nil), want: common.FailureLockedAccount},
		{name: "wrapped auth error", err: fmt.Errorf("login: %w", common.NewAuthError(common.FailureUnknownAccount, "acme", nil)), want: common.FailureUnknownAccount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, common.FailureOf(tt.err))
		})
	}
}

func TestAuthError_Is(t *testing.T) {
	err := common.NewAuthError(common.FailureAuthentication, "acme", context.DeadlineExceeded)

	assert.True(t, errors.Is(err, common.ErrAuthentication))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, errors.Is(err, common.ErrLockedAccount))
	assert.Equal(t, "authentication error: acme: context deadline exceeded", err.Error())
}

func TestNewAuthError_NoneBecomesAuthentication(t *testing.T) {
	err := common.NewAuthError(common.FailureNone, "", nil)

	assert.Equal(t, common.FailureAuthentication, err.Kind)
	assert.Equal(t, "authentication error", err.Error())
}

func TestAuthError_WrappedSentinelNotRepeated(t *testing.T) {
	err := common.NewAuthError(common.FailureIncorrectCredentials, "acme", fmt.Errorf("%w: acme", common.ErrIncorrectCredentials))

	assert.Equal(t, "incorrect credentials: acme", err.Error())
}
