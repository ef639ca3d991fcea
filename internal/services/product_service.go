package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gripinvest/internal/genai"
	"gripinvest/internal/models"
	"gripinvest/internal/repositories"
)

const descriptionFallback = "Description temporarily unavailable. Please add one manually."

const recommendationLimit = 5

type ProductService interface {
	Create(input *models.ProductInput) (*models.Product, error)
	Update(id string, input *models.ProductInput) (*models.Product, error)
	Delete(id string) error
	GetByID(id string) (*models.Product, error)
	List() ([]*models.Product, error)
	// Recommended returns up to five products matching the user's risk
	// appetite, highest yield first.
	Recommended(user *models.User) ([]*models.Product, error)
	// GenerateDescription asks the text-generation collaborator for copy;
	// on failure or timeout it returns a fixed fallback, never an error.
	GenerateDescription(ctx context.Context, input *models.ProductInput) string
}

type productService struct {
	repo repositories.ProductRepository
	ai   genai.TextGenerator
}

func NewProductService(repo repositories.ProductRepository, ai genai.TextGenerator) ProductService {
	return &productService{repo: repo, ai: ai}
}

func validateProductInput(input *models.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.InvestmentType) == "" {
		return &ValidationError{Message: "name and investment_type are required"}
	}
	if input.TenureMonths <= 0 {
		return &ValidationError{Message: "tenure_months must be positive"}
	}
	if !models.ValidRiskAppetite(input.RiskLevel) {
		return &ValidationError{Message: "risk_level must be low, moderate or high"}
	}
	if input.MinInvestment <= 0 {
		return &ValidationError{Message: "min_investment must be positive"}
	}
	if input.MaxInvestment != nil && *input.MaxInvestment < input.MinInvestment {
		return &ValidationError{Message: "max_investment must not be below min_investment"}
	}
	return nil
}

func (s *productService) Create(input *models.ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	p := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		InvestmentType: strings.TrimSpace(input.InvestmentType),
		TenureMonths:   input.TenureMonths,
		AnnualYield:    input.AnnualYield,
		RiskLevel:      input.RiskLevel,
		MinInvestment:  input.MinInvestment,
		MaxInvestment:  input.MaxInvestment,
		Description:    input.Description,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Update(id string, input *models.ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	p := &models.Product{
		ID:             id,
		Name:           strings.TrimSpace(input.Name),
		InvestmentType: strings.TrimSpace(input.InvestmentType),
		TenureMonths:   input.TenureMonths,
		AnnualYield:    input.AnnualYield,
		RiskLevel:      input.RiskLevel,
		MinInvestment:  input.MinInvestment,
		MaxInvestment:  input.MaxInvestment,
		Description:    input.Description,
	}
	if err := s.repo.Update(p); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetByID(id)
}

func (s *productService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *productService) GetByID(id string) (*models.Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) List() ([]*models.Product, error) {
	return s.repo.List()
}

func (s *productService) Recommended(user *models.User) ([]*models.Product, error) {
	risk := user.RiskAppetite
	if risk == "" {
		risk = models.RiskModerate
	}
	products, err := s.repo.ListByRisk(risk)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].AnnualYield > products[j].AnnualYield
	})
	if len(products) > recommendationLimit {
		products = products[:recommendationLimit]
	}
	return products, nil
}

func (s *productService) GenerateDescription(ctx context.Context, input *models.ProductInput) string {
	maxPart := "Not specified"
	if input.MaxInvestment != nil {
		maxPart = fmt.Sprintf("%.2f", *input.MaxInvestment)
	}
	prompt := fmt.Sprintf(`Write a professional, clear, and engaging investment product description.
Product Name: %s
Type: %s
Tenure: %d months
Annual Yield: %.2f%%
Risk Level: %s
Minimum Investment: %.2f
Maximum Investment: %s
`, input.Name, input.InvestmentType, input.TenureMonths, input.AnnualYield,
		input.RiskLevel, input.MinInvestment, maxPart)

	return genai.GenerateOrFallback(ctx, s.ai, prompt, descriptionFallback)
}
