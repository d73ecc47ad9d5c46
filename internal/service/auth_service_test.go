package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewbuy/internal/core/auth"
	"brewbuy/internal/domain"
)

func TestDefaultAdminLogin(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()

	res, err := f.auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", res.UserType)
	assert.Equal(t, "admin", res.Username)

	claims, err := f.jwter.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
	assert.Empty(t, claims.UID)

	_, err = f.auth.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestEnsureDefaultDoesNotResetPassword(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	require.NoError(t, f.admins.UpdatePassword(ctx, "admin", "rotated"))
	require.NoError(t, f.admins.EnsureDefault(ctx, "admin123"))

	ok, err := f.admins.Validate(ctx, "admin", "rotated")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterIssuesUserToken(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	res, err := f.auth.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret", FullName: "Alice A",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", res.UserType)
	assert.Equal(t, "alice", res.Username)

	claims, err := f.jwter.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.NotEmpty(t, claims.UID)

	u, err := f.users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", u.PasswordHash)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	_, err := f.auth.Register(ctx, RegisterInput{Username: "bob", Email: "bob@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, RegisterInput{Username: "bob", Email: "other@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.auth.Register(ctx, RegisterInput{Username: "bobby", Email: "bob@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	for _, in := range []RegisterInput{
		{Email: "a@b.c", Password: "x"},
		{Username: "a", Password: "x"},
		{Username: "a", Email: "a@b.c"},
		{Username: "a", Email: "a@b.c", Password: strings.Repeat("p", 73)},
	} {
		_, err := f.auth.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	_, err := f.auth.Register(ctx, RegisterInput{Username: "max", Email: "max@b.c", Password: strings.Repeat("p", 72)})
	assert.NoError(t, err)
}

func TestUserLoginByUsernameOrEmail(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	f.register(t, "carol")

	for _, id := range []string{"carol", "carol@example.com"} {
		res, err := f.auth.Login(ctx, id, "pw-carol")
		require.NoError(t, err, id)
		assert.Equal(t, "user", res.UserType)
		assert.Equal(t, "carol", res.Username)
	}

	_, err := f.auth.Login(ctx, "carol", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "nobody", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, f.auth.Logout(ctx))
}

func TestAdminNamespaceIsSeparate(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	// 普通用户也可以叫 admin，但密码不同
	_, err := f.users.Create(ctx, RegisterInput{Username: "admin", Email: "admin@example.com", Password: "user-pw"})
	require.NoError(t, err)

	res, err := f.auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", res.UserType)

	res, err = f.auth.Login(ctx, "admin", "user-pw")
	require.NoError(t, err)
	assert.Equal(t, "user", res.UserType)
}
