package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewbuy/internal/domain"
	"brewbuy/pkg/utils"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	u := f.register(t, "dave")
	f.register(t, "erin")

	got, err := f.users.UpdateProfile(ctx, u.ID, ProfileInput{FullName: strPtr("Dave D"), Phone: strPtr("555")})
	require.NoError(t, err)
	assert.Equal(t, "Dave D", got.FullName)
	assert.Equal(t, "555", got.Phone)
	assert.True(t, utils.CheckPassword("pw-dave", got.PasswordHash), "password kept when not provided")

	_, err = f.users.UpdateProfile(ctx, u.ID, ProfileInput{Email: strPtr("erin@example.com")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err = f.users.UpdateProfile(ctx, u.ID, ProfileInput{Password: "new-pw"})
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword("new-pw", got.PasswordHash))

	_, err = f.users.UpdateProfile(ctx, u.ID, ProfileInput{Password: strings.Repeat("x", 80)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.users.UpdateProfile(ctx, 9999, ProfileInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAndDeleteUsers(t *testing.T) {
	f := newFixture(t, OrderOptions{})
	ctx := context.Background()
	a := f.register(t, "u1")
	f.register(t, "u2")

	users, total, err := f.users.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	kept := f.register(t, "u3")
	gone, err := f.orders.Create(ctx, a.ID, []OrderItemInput{{ProductID: 1, Quantity: 1, Price: dec("2.00")}}, "")
	require.NoError(t, err)
	_, err = f.orders.Create(ctx, kept.ID, []OrderItemInput{{ProductID: 1, Quantity: 2, Price: dec("2.00")}}, "")
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(ctx, a.ID))
	assert.ErrorIs(t, f.users.Delete(ctx, a.ID), domain.ErrNotFound)
	assert.Zero(t, countRows(t, f.db, &domain.Order{}, "user_id = ?", a.ID))
	assert.Zero(t, countRows(t, f.db, &domain.OrderItem{}, "order_id = ?", gone.ID))
	assert.EqualValues(t, 1, countRows(t, f.db, &domain.Order{}, "user_id = ?", kept.ID))
	_, err = f.users.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
