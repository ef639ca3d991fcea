package models

import "time"

type Product struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	InvestmentType string     `json:"investment_type"`
	TenureMonths   int        `json:"tenure_months"`
	AnnualYield    float64    `json:"annual_yield"`
	RiskLevel      string     `json:"risk_level"`
	MinInvestment  float64    `json:"min_investment"`
	MaxInvestment  *float64   `json:"max_investment,omitempty"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type ProductInput struct {
	Name           string   `json:"name"`
	InvestmentType string   `json:"investment_type"`
	TenureMonths   int      `json:"tenure_months"`
	AnnualYield    float64  `json:"annual_yield"`
	RiskLevel      string   `json:"risk_level"`
	MinInvestment  float64  `json:"min_investment"`
	MaxInvestment  *float64 `json:"max_investment"`
	Description    string   `json:"description"`
}
