package services

import "gripinvest/internal/repositories"

type PlatformStats struct {
	TotalUsers     int     `json:"totalUsers"`
	TotalInvested  float64 `json:"totalInvested"`
	ActiveProducts int     `json:"activeProducts"`
}

type StatsService interface {
	PlatformStats() (*PlatformStats, error)
}

type statsService struct {
	users       repositories.UserRepository
	products    repositories.ProductRepository
	investments repositories.InvestmentRepository
}

func NewStatsService(
	users repositories.UserRepository,
	products repositories.ProductRepository,
	investments repositories.InvestmentRepository,
) StatsService {
	return &statsService{users: users, products: products, investments: investments}
}

func (s *statsService) PlatformStats() (*PlatformStats, error) {
	totalUsers, err := s.users.GetCount()
	if err != nil {
		return nil, err
	}
	totalInvested, err := s.investments.GetTotalInvested()
	if err != nil {
		return nil, err
	}
	activeProducts, err := s.products.GetCount()
	if err != nil {
		return nil, err
	}
	return &PlatformStats{
		TotalUsers:     totalUsers,
		TotalInvested:  totalInvested,
		ActiveProducts: activeProducts,
	}, nil
}
