package repositories

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"gripinvest/internal/models"
)

type InvestmentRepository interface {
	Create(inv *models.Investment) error
	GetByID(id string) (*models.Investment, error)
	ListByUser(userID int) ([]*models.Investment, error)
	GetTotalInvested() (float64, error)
}

type investmentRepository struct {
	DB *sql.DB
}

func NewInvestmentRepository(db *sql.DB) InvestmentRepository {
	return &investmentRepository{DB: db}
}

func (r *investmentRepository) Create(inv *models.Investment) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO investments (id, user_id, product_id, amount, expected_return, maturity_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return r.DB.QueryRow(q,
		inv.ID, inv.UserID, inv.ProductID, inv.Amount, inv.ExpectedReturn, inv.MaturityDate,
	).Scan(&inv.CreatedAt)
}

func (r *investmentRepository) GetByID(id string) (*models.Investment, error) {
	const q = `
		SELECT i.id, i.user_id, i.product_id, i.amount, i.expected_return, i.maturity_date, i.created_at,
			p.name, p.investment_type, p.risk_level
		FROM investments i
		JOIN investment_products p ON i.product_id = p.id
		WHERE i.id = $1
	`
	inv := &models.Investment{}
	err := r.DB.QueryRow(q, id).Scan(
		&inv.ID, &inv.UserID, &inv.ProductID, &inv.Amount, &inv.ExpectedReturn,
		&inv.MaturityDate, &inv.CreatedAt,
		&inv.ProductName, &inv.InvestmentType, &inv.RiskLevel,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *investmentRepository) ListByUser(userID int) ([]*models.Investment, error) {
	const q = `
		SELECT i.id, i.user_id, i.product_id, i.amount, i.expected_return, i.maturity_date, i.created_at,
			p.name, p.investment_type, p.risk_level
		FROM investments i
		JOIN investment_products p ON i.product_id = p.id
		WHERE i.user_id = $1
		ORDER BY i.created_at DESC
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Investment
	for rows.Next() {
		inv := &models.Investment{}
		if err := rows.Scan(
			&inv.ID, &inv.UserID, &inv.ProductID, &inv.Amount, &inv.ExpectedReturn,
			&inv.MaturityDate, &inv.CreatedAt,
			&inv.ProductName, &inv.InvestmentType, &inv.RiskLevel,
		); err != nil {
			return nil, err
		}
		res = append(res, inv)
	}
	return res, rows.Err()
}

func (r *investmentRepository) GetTotalInvested() (float64, error) {
	var total float64
	err := r.DB.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM investments`).Scan(&total)
	return total, err
}
