package services

import (
	"context"
	"fmt"
	"strings"

	"gripinvest/internal/genai"
	"gripinvest/internal/models"
	"gripinvest/internal/repositories"
)

const insightsFallback = "AI insights temporarily unavailable"

type PortfolioInsights struct {
	TotalInvested    float64            `json:"totalInvested"`
	RiskDistribution map[string]float64 `json:"riskDistribution"`
	AIText           string             `json:"aiText"`
}

type PortfolioService interface {
	// Insights aggregates the user's investments and asks the
	// text-generation collaborator for a narrative; the aggregation never
	// fails because of the collaborator.
	Insights(ctx context.Context, userID int) (*PortfolioInsights, error)
}

type portfolioService struct {
	investments repositories.InvestmentRepository
	ai          genai.TextGenerator
}

func NewPortfolioService(investments repositories.InvestmentRepository, ai genai.TextGenerator) PortfolioService {
	return &portfolioService{investments: investments, ai: ai}
}

func (s *portfolioService) Insights(ctx context.Context, userID int) (*PortfolioInsights, error) {
	invs, err := s.investments.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	out := &PortfolioInsights{
		RiskDistribution: map[string]float64{
			models.RiskLow:      0,
			models.RiskModerate: 0,
			models.RiskHigh:     0,
		},
	}

	var lines []string
	for _, inv := range invs {
		out.TotalInvested += inv.Amount
		level := inv.RiskLevel
		if level == "" {
			level = models.RiskModerate
		}
		out.RiskDistribution[level] += inv.Amount
		lines = append(lines, fmt.Sprintf("- %s: amount=%.2f expected_return=%.2f risk=%s",
			inv.ProductName, inv.Amount, inv.ExpectedReturn, level))
	}

	prompt := fmt.Sprintf("User investments:\n%s\nGenerate portfolio insights.", strings.Join(lines, "\n"))
	out.AIText = genai.GenerateOrFallback(ctx, s.ai, prompt, insightsFallback)
	return out, nil
}
