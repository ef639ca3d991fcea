package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// NewOTP returns a uniformly distributed 6-digit numeric code.
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// NewResetToken returns an opaque link token (uuid v4, 122 bits of entropy).
func NewResetToken() string {
	return uuid.NewString()
}
