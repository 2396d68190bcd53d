package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndVerify(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Register(ctx, "a@x.com", "pw1"))

	user, err := store.Verify(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "pw1", string(user.PasswordHash))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Register(ctx, "a@x.com", "pw1"))

	err := store.Register(ctx, "a@x.com", "other")
	assert.ErrorAs(t, err, &DuplicateEmail{})

	// emails are compared case-sensitive, so this is a distinct user
	require.NoError(t, store.Register(ctx, "A@x.com", "pw1"))
}

func TestVerifyFailures(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Register(ctx, "a@x.com", "pw1"))

	_, err := store.Verify(ctx, "missing@x.com", "pw1")
	assert.ErrorAs(t, err, &UserNotFound{})

	_, err = store.Verify(ctx, "a@x.com", "wrong")
	assert.ErrorAs(t, err, &InvalidPassword{})
}
