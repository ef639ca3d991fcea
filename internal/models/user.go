package models

import "time"

const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

func ValidRiskAppetite(v string) bool {
	switch v {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	}
	return false
}

type User struct {
	ID           int        `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name,omitempty"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // не отдаём наружу
	RiskAppetite string     `json:"risk_appetite"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type SignupRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	RiskAppetite string `json:"risk_appetite"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
