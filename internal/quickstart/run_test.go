package quickstart

import (
	"context"
	"testing"

	"github.com/axent-pl/security"
	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/realm"
	"github.com/axent-pl/security/userpassword"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDemo(t *testing.T) (*realm.MemoryStore, *security.SecurityManager) {
	t.Helper()
	store, err := NewDemoStore(bcrypt.MinCost)
	require.NoError(t, err)
	sm, err := security.NewSecurityManager(&realm.UserPasswordProvider{Store: store}, store)
	require.NoError(t, err)
	return store, sm
}

func TestRun_Lonestarr(t *testing.T) {
	_, sm := newDemo(t)

	report, err := Run(context.Background(), sm, userpassword.UserPasswordCredentials{Username: "lonestarr", Password: "vespa"})
	require.NoError(t, err)

	assert.Equal(t, Report{
		SessionRoundTrip:         true,
		Failure:                  common.FailureNone,
		Authenticated:            true,
		HasSchwartz:              true,
		CanWieldLightsaber:       true,
		CanDeleteZhangsan:        true,
		AuthenticatedAfterLogout: false,
	}, report)
}

func TestRun_Root(t *testing.T) {
	_, sm := newDemo(t)

	report, err := Run(context.Background(), sm, userpassword.UserPasswordCredentials{Username: "root", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, report.Authenticated)
	assert.False(t, report.HasSchwartz, "admin holds every permission but not the schwartz role")
}

func TestRun_StopsEarly(t *testing.T) {
	tests := []struct {
		name  string
		creds userpassword.UserPasswordCredentials
		want  common.FailureKind
	}{
		{name: "unknown account", creds: userpassword.UserPasswordCredentials{Username: "zhangsan", Password: "vespa"}, want: common.FailureUnknownAccount},
		{name: "incorrect password", creds: userpassword.UserPasswordCredentials{Username: "lonestarr", Password: "wrong"}, want: common.FailureIncorrectCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, sm := newDemo(t)
			report, err := Run(context.Background(), sm, tt.creds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.Failure)
			assert.True(t, report.SessionRoundTrip)
			assert.False(t, report.Authenticated)
			assert.False(t, report.HasSchwartz)
		})
	}
}

func TestRun_GuestLacksRole(t *testing.T) {
	_, sm := newDemo(t)

	report, err := Run(context.Background(), sm, userpassword.UserPasswordCredentials{Username: "guest", Password: "guest"})
	require.NoError(t, err)
	assert.True(t, report.Authenticated)
	assert.False(t, report.HasSchwartz)
	assert.False(t, report.CanWieldLightsaber)
}

func TestRun_LockedAccountContinues(t *testing.T) {
	store, sm := newDemo(t)
	require.NoError(t, store.SetLocked("darkhelmet", true))

	report, err := Run(context.Background(), sm, userpassword.UserPasswordCredentials{Username: "darkhelmet", Password: "ludicrousspeed"})
	require.NoError(t, err)
	assert.Equal(t, common.FailureLockedAccount, report.Failure)
	assert.False(t, report.Authenticated)
	assert.False(t, report.HasSchwartz)
}

func TestRun_UnexpectedFailureIsReturned(t *testing.T) {
	store, sm := newDemo(t)
	store.SetAvailable(false)

	report, err := Run(context.Background(), sm, userpassword.UserPasswordCredentials{Username: "lonestarr", Password: "vespa"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAuthentication)
	assert.Equal(t, common.FailureAuthentication, report.Failure)
}
