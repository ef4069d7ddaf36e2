package auth

import (
	"context"
	"log"
)

// DevProvider stands in for the real SMS provider in local development. It
// never sends anything; every phone number verifies with the fixed code.
type DevProvider struct {
	Code string
}

func NewDevProvider(code string) *DevProvider {
	if code == "" {
		code = "000000"
	}
	return &DevProvider{Code: code}
}

func (p *DevProvider) SendCode(_ context.Context, phoneNumber string) error {
	log.Printf("[AUTH] [INFO] dev provider: code for %s is %s", phoneNumber, p.Code)
	return nil
}

func (p *DevProvider) VerifyCode(_ context.Context, phoneNumber, code string) error {
	if code != p.Code {
		return &ProviderError{Code: CodeInvalidCode, Message: "wrong code"}
	}
	return nil
}
