// Package auth wraps the external phone-OTP identity provider and issues the
// session tokens the rest of the API trusts. The provider itself (SMS
// delivery, code verification) is an external collaborator; this package owns
// the error translation and the JWT claims.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// OTPProvider is the external phone verification service.
type OTPProvider interface {
	// SendCode asks the provider to SMS a one-time code to the number.
	SendCode(ctx context.Context, phoneNumber string) error
	// VerifyCode checks a code the user typed in. A nil return means the
	// caller proved control of the number.
	VerifyCode(ctx context.Context, phoneNumber, code string) error
}

// ProviderError carries the provider's machine-readable error code.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

// Provider error codes with dedicated user-facing messages.
const (
	CodeInvalidPhone     = "auth/invalid-phone-number"
	CodeTooManyRequests  = "auth/too-many-requests"
	CodeInvalidAppCred   = "auth/invalid-app-credential"
	CodeInvalidCode      = "auth/invalid-verification-code"
	CodeExpired          = "auth/code-expired"
)

var friendlyMessages = map[string]string{
	CodeInvalidPhone:     "The phone number is invalid.",
	CodeTooManyRequests:  "Too many attempts. Please try again later.",
	CodeInvalidAppCred:   "Auth setup error. Please contact support.",
	CodeInvalidCode:      "Invalid code. Please check and try again.",
	CodeExpired:          "The code has expired. Please request a new one.",
}

const genericSendMessage = "Failed to send OTP. Please try again."

// FriendlyMessage maps a provider failure to a user-facing string. Unmapped
// codes and non-provider errors fall back to a generic message.
func FriendlyMessage(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		if msg, ok := friendlyMessages[pe.Code]; ok {
			return msg
		}
	}
	return genericSendMessage
}

// Session claims. A userId claim marks a full session; a phone claim with
// onboarding=true only authorizes creating the account it was verified for.

// IssueUserToken mints a session token for an existing account.
func IssueUserToken(userID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// IssueOnboardingToken mints a short-lived token proving phone ownership for
// a caller who has no account yet.
func IssueOnboardingToken(phoneNumber, secret string) (string, error) {
	claims := jwt.MapClaims{
		"phone":      phoneNumber,
		"onboarding": true,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(15 * time.Minute).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
