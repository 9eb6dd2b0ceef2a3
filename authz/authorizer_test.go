package authz_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/axent-pl/security/authz"
	"github.com/axent-pl/security/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls  atomic.Int32
	grants map[common.SubjectID]common.Grants
	err    error
}

func (s *countingSource) GrantsFor(_ context.Context, id common.SubjectID) (common.Grants, error) {
	s.calls.Add(1)
	if s.err != nil {
		return common.Grants{}, s.err
	}
	g, ok := s.grants[id]
	if !ok {
		return common.Grants{}, errors.New("not found")
	}
	return g, nil
}

func newSource() *countingSource {
	return &countingSource{grants: map[common.SubjectID]common.Grants{
		"lonestarr": {
			Roles:       []string{"goodguy", "schwartz"},
			Permissions: []string{"lightsaber:*", "user:delete", "::broken"},
		},
	}}
}

var lonestarr = common.Principal{Subject: "lonestarr"}

func TestAuthorizer_Queries(t *testing.T) {
	a, err := authz.NewAuthorizer(newSource(), 0)
	require.NoError(t, err)
	ctx := context.Background()

	assert.True(t, a.HasRole(ctx, lonestarr, "schwartz"))
	assert.False(t, a.HasRole(ctx, lonestarr, "admin"))
	assert.True(t, a.HasAllRoles(ctx, lonestarr, "schwartz", "goodguy"))
	assert.False(t, a.HasAllRoles(ctx, lonestarr, "schwartz", "admin"))
	assert.False(t, a.HasAllRoles(ctx, lonestarr))

	assert.True(t, a.IsPermitted(ctx, lonestarr, "lightsaber:weild"))
	assert.True(t, a.IsPermitted(ctx, lonestarr, "user:delete:zhangsan"))
	assert.False(t, a.IsPermitted(ctx, lonestarr, "winnebago:drive:eagle5"))
	assert.False(t, a.IsPermitted(ctx, lonestarr, ""))
	assert.True(t, a.IsPermittedAll(ctx, lonestarr, "lightsaber:weild", "user:delete:lisi"))
	assert.False(t, a.IsPermittedAll(ctx, lonestarr, "lightsaber:weild", "winnebago:drive"))
	assert.False(t, a.IsPermittedAll(ctx, lonestarr))

	assert.NoError(t, a.CheckPermission(ctx, lonestarr, "lightsaber:weild"))
	assert.ErrorIs(t, a.CheckPermission(ctx, lonestarr, "winnebago:drive"), common.ErrUnauthorized)
}

func TestAuthorizer_ZeroPrincipalSkipsSource(t *testing.T) {
	src := newSource()
	a, err := authz.NewAuthorizer(src, 16)
	require.NoError(t, err)
	ctx := context.Background()

	for _, role := range []string{"schwartz", "goodguy", ""} {
		assert.False(t, a.HasRole(ctx, common.Principal{}, role))
	}
	for _, perm := range []string{"*", "lightsaber:weild", "user:delete:zhangsan"} {
		assert.False(t, a.IsPermitted(ctx, common.Principal{}, perm))
	}
	assert.Equal(t, int32(0), src.calls.Load())
}

func TestAuthorizer_SourceFailureIsFalse(t *testing.T) {
	src := newSource()
	src.err = errors.New("store down")
	a, err := authz.NewAuthorizer(src, 16)
	require.NoError(t, err)

	assert.False(t, a.HasRole(context.Background(), lonestarr, "schwartz"))
	assert.False(t, a.IsPermitted(context.Background(), lonestarr, "lightsaber:weild"))
}

func TestAuthorizer_CachesGrants(t *testing.T) {
	src := newSource()
	a, err := authz.NewAuthorizer(src, 16)
	require.NoError(t, err)
	ctx := context.Background()

	assert.True(t, a.HasRole(ctx, lonestarr, "schwartz"))
	assert.True(t, a.IsPermitted(ctx, lonestarr, "lightsaber:weild"))
	assert.Equal(t, int32(1), src.calls.Load())

	a.Forget("lonestarr")
	assert.True(t, a.HasRole(ctx, lonestarr, "schwartz"))
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestAuthorizer_NoCache(t *testing.T) {
	src := newSource()
	a, err := authz.NewAuthorizer(src, 0)
	require.NoError(t, err)
	ctx := context.Background()

	a.HasRole(ctx, lonestarr, "schwartz")
	a.HasRole(ctx, lonestarr, "schwartz")
	a.Forget("lonestarr")
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestNewAuthorizer_NilSource(t *testing.T) {
	_, err := authz.NewAuthorizer(nil, 0)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
