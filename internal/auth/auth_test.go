package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_RegisterVerifyLogin(t *testing.T) {
	svc := NewService(zap.NewNop())

	require.NoError(t, svc.Register("anna@example.com"))

	// Unverified accounts cannot log in.
	_, _, err := svc.Login("anna@example.com")
	assert.ErrorIs(t, err, ErrAuth)

	assert.False(t, svc.VerifyCode("anna@example.com", "000000"))
	assert.True(t, svc.VerifyCode("anna@example.com", "123456"))

	user, token, err := svc.Login("anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, "anna", user.Name)
	assert.True(t, user.Verified)
	assert.NotEmpty(t, token)
}

func TestService_RegisterDuplicate(t *testing.T) {
	svc := NewService(zap.NewNop())

	require.NoError(t, svc.Register("anna@example.com"))
	assert.ErrorIs(t, svc.Register("anna@example.com"), ErrAuth)
}

func TestService_LoginAutoProvisions(t *testing.T) {
	svc := NewService(zap.NewNop())

	user, token, err := svc.Login("bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)
	assert.True(t, user.Verified)

	got, ok := svc.Authenticate(token)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
}

func TestService_LoginStableUserID(t *testing.T) {
	svc := NewService(zap.NewNop())

	first, _, err := svc.Login("bob@example.com")
	require.NoError(t, err)
	second, _, err := svc.Login("bob@example.com")
	require.NoError(t, err)

	// The same email always resolves to the same user id, across sessions
	// and across service instances.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, UserID("bob@example.com"), first.ID)

	other := NewService(zap.NewNop())
	third, _, err := other.Login("bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)
}

func TestService_LoginRejectsInvalidEmail(t *testing.T) {
	svc := NewService(zap.NewNop())

	_, _, err := svc.Login("not-an-email")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestService_Logout(t *testing.T) {
	svc := NewService(zap.NewNop())

	_, token, err := svc.Login("bob@example.com")
	require.NoError(t, err)

	svc.Logout(token)
	_, ok := svc.Authenticate(token)
	assert.False(t, ok)
}

func TestService_AuthenticateUnknownToken(t *testing.T) {
	svc := NewService(zap.NewNop())

	_, ok := svc.Authenticate("bogus-token")
	assert.False(t, ok)
}
