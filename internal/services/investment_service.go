package services

import (
	"errors"
	"time"

	"gripinvest/internal/models"
	"gripinvest/internal/repositories"
)

var riskRank = map[string]int{
	models.RiskLow:      1,
	models.RiskModerate: 2,
	models.RiskHigh:     3,
}

type InvestmentService interface {
	// Invest places an investment after the risk gate: the product's risk
	// level must not exceed the user's risk appetite.
	Invest(userID int, productID string, amount float64) (*models.Investment, error)
	ListByUser(userID int) ([]*models.Investment, error)
	// GetOwned returns the investment only to its owner.
	GetOwned(userID int, investmentID string) (*models.Investment, error)
}

type investmentService struct {
	repo     repositories.InvestmentRepository
	users    repositories.UserRepository
	products repositories.ProductRepository

	now func() time.Time
}

func NewInvestmentService(
	repo repositories.InvestmentRepository,
	users repositories.UserRepository,
	products repositories.ProductRepository,
) InvestmentService {
	return &investmentService{repo: repo, users: users, products: products, now: time.Now}
}

func (s *investmentService) Invest(userID int, productID string, amount float64) (*models.Investment, error) {
	if productID == "" {
		return nil, &ValidationError{Message: "product_id is required"}
	}
	if amount <= 0 {
		return nil, &ValidationError{Message: "amount must be positive"}
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if riskRank[product.RiskLevel] > riskRank[user.RiskAppetite] {
		return nil, &ValidationError{Message: "Product risk exceeds your risk appetite"}
	}
	if amount < product.MinInvestment {
		return nil, &ValidationError{Message: "Amount is below the product minimum"}
	}
	if product.MaxInvestment != nil && amount > *product.MaxInvestment {
		return nil, &ValidationError{Message: "Amount is above the product maximum"}
	}

	inv := &models.Investment{
		UserID:         userID,
		ProductID:      product.ID,
		Amount:         amount,
		ExpectedReturn: ExpectedReturn(amount, product.AnnualYield, product.TenureMonths),
		MaturityDate:   s.now().AddDate(0, product.TenureMonths, 0),
		ProductName:    product.Name,
		InvestmentType: product.InvestmentType,
		RiskLevel:      product.RiskLevel,
	}
	if err := s.repo.Create(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// ExpectedReturn is simple interest over the tenure:
// amount + amount * yield/100 * months/12.
func ExpectedReturn(amount, annualYield float64, tenureMonths int) float64 {
	return amount + amount*(annualYield/100)*(float64(tenureMonths)/12)
}

func (s *investmentService) ListByUser(userID int) ([]*models.Investment, error) {
	return s.repo.ListByUser(userID)
}

func (s *investmentService) GetOwned(userID int, investmentID string) (*models.Investment, error) {
	inv, err := s.repo.GetByID(investmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if inv.UserID != userID {
		// not revealed as existing to other users
		return nil, ErrNotFound
	}
	return inv, nil
}
