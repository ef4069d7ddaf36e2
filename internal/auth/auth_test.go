package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendlyMessageMapsKnownCodes(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{CodeInvalidPhone, "The phone number is invalid."},
		{CodeTooManyRequests, "Too many attempts. Please try again later."},
		{CodeInvalidCode, "Invalid code. Please check and try again."},
		{CodeExpired, "The code has expired. Please request a new one."},
	}
	for _, tt := range tests {
		err := &ProviderError{Code: tt.code}
		assert.Equal(t, tt.want, FriendlyMessage(err))
	}
}

func TestFriendlyMessageFallsBackForUnknownErrors(t *testing.T) {
	assert.Equal(t, "Failed to send OTP. Please try again.",
		FriendlyMessage(&ProviderError{Code: "auth/something-new"}))
	assert.Equal(t, "Failed to send OTP. Please try again.",
		FriendlyMessage(errors.New("network down")))
}

func TestFriendlyMessageUnwrapsProviderErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("send failed"), &ProviderError{Code: CodeTooManyRequests})
	assert.Equal(t, "Too many attempts. Please try again later.", FriendlyMessage(wrapped))
}

func TestIssueUserToken(t *testing.T) {
	token, err := IssueUserToken("6123abc", "secret", time.Hour)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "6123abc", claims["userId"])
	assert.NotContains(t, claims, "onboarding")
}

func TestIssueOnboardingToken(t *testing.T) {
	token, err := IssueOnboardingToken("256700123456", "secret")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "256700123456", claims["phone"])
	assert.Equal(t, true, claims["onboarding"])
	assert.NotContains(t, claims, "userId")
}
