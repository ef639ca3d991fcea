package models

import "time"

type Investment struct {
	ID             string    `json:"id"`
	UserID         int       `json:"user_id"`
	ProductID      string    `json:"product_id"`
	Amount         float64   `json:"amount"`
	ExpectedReturn float64   `json:"expected_return"`
	MaturityDate   time.Time `json:"maturity_date"`
	CreatedAt      time.Time `json:"created_at"`

	// заполняется JOIN-ом при выборке портфеля
	ProductName    string `json:"name,omitempty"`
	InvestmentType string `json:"investment_type,omitempty"`
	RiskLevel      string `json:"risk_level,omitempty"`
}
