package models

import "time"

const (
	ResetKindOTP   = "otp"
	ResetKindToken = "token"
)

// PasswordReset — одна запись на каждый выданный код/токен.
// Храним только bcrypt-хэш секрета (SecretHash), TTL и флаг used.
type PasswordReset struct {
	ID         string    `json:"id"`
	UserID     int       `json:"user_id"`
	SecretHash string    `json:"-"`
	Kind       string    `json:"kind"`
	ExpiresAt  time.Time `json:"expires_at"`
	Used       bool      `json:"used"`
	CreatedAt  time.Time `json:"created_at"`
}

// Live reports whether the record can still be matched.
func (pr *PasswordReset) Live(now time.Time) bool {
	return !pr.Used && now.Before(pr.ExpiresAt)
}
