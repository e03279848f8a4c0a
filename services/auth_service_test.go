package services

import (
	"testing"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(env *testEnv) *AuthService {
	return NewAuthService(env.db, env.Users, env.CartSvc, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	user, err := svc.Register(&RegisterIn{Email: "New@Example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	logged, token, err := svc.Login(&LoginIn{Email: "new@example.com", Password: "hunter2hunter2"}, 0)
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := utils.ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleCustomer, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	_, err := svc.Register(&RegisterIn{Email: "dup@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	_, err = svc.Register(&RegisterIn{Email: "DUP@example.com", Password: "hunter2hunter2"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	_, err := svc.Register(&RegisterIn{Email: "user@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, _, err = svc.Login(&LoginIn{Email: "user@example.com", Password: "wrong-password"}, 0)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, _, err = svc.Login(&LoginIn{Email: "ghost@example.com", Password: "whatever123"}, 0)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLoginMergesGuestCart(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	user, err := svc.Register(&RegisterIn{Email: "shopper@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	guest, _, _, err := env.CartSvc.Create(Identity{}, env.Restaurant.ID, entity.OrderTypePickup)
	require.NoError(t, err)
	_, _, err = env.CartSvc.AddItem(Identity{GuestCartID: guest.ID}, &AddItemIn{CartID: guest.ID, MenuItemID: env.Burger.ID})
	require.NoError(t, err)

	_, _, err = svc.Login(&LoginIn{Email: "shopper@example.com", Password: "hunter2hunter2"}, guest.ID)
	require.NoError(t, err)

	cart, err := env.Carts.GetForCustomer(user.ID, env.Restaurant.ID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Len(t, cart.Items, 1)
}
