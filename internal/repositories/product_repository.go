package repositories

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"gripinvest/internal/models"
)

type ProductRepository interface {
	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id string) error
	GetByID(id string) (*models.Product, error)
	List() ([]*models.Product, error)
	ListByRisk(riskLevel string) ([]*models.Product, error)
	GetCount() (int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, name, investment_type, tenure_months, annual_yield, risk_level,
	min_investment, max_investment, description, created_at, updated_at`

func (r *productRepository) Create(p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO investment_products
			(id, name, investment_type, tenure_months, annual_yield, risk_level,
			 min_investment, max_investment, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	return r.DB.QueryRow(q,
		p.ID, p.Name, p.InvestmentType, p.TenureMonths, p.AnnualYield,
		p.RiskLevel, p.MinInvestment, p.MaxInvestment, p.Description,
	).Scan(&p.CreatedAt)
}

func (r *productRepository) Update(p *models.Product) error {
	const q = `
		UPDATE investment_products
		SET name=$1, investment_type=$2, tenure_months=$3, annual_yield=$4,
			risk_level=$5, min_investment=$6, max_investment=$7, description=$8,
			updated_at=NOW()
		WHERE id=$9
	`
	res, err := r.DB.Exec(q,
		p.Name, p.InvestmentType, p.TenureMonths, p.AnnualYield,
		p.RiskLevel, p.MinInvestment, p.MaxInvestment, p.Description, p.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM investment_products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) GetByID(id string) (*models.Product, error) {
	row := r.DB.QueryRow(`SELECT `+productColumns+` FROM investment_products WHERE id=$1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) List() ([]*models.Product, error) {
	return r.query(`SELECT ` + productColumns + ` FROM investment_products ORDER BY created_at DESC`)
}

func (r *productRepository) ListByRisk(riskLevel string) ([]*models.Product, error) {
	return r.query(
		`SELECT `+productColumns+` FROM investment_products WHERE risk_level=$1 ORDER BY annual_yield DESC`,
		riskLevel,
	)
}

func (r *productRepository) GetCount() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM investment_products`).Scan(&count)
	return count, err
}

func (r *productRepository) query(q string, args ...any) ([]*models.Product, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	var (
		maxInv    sql.NullFloat64
		updatedAt sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.Name, &p.InvestmentType, &p.TenureMonths,
		&p.AnnualYield, &p.RiskLevel, &p.MinInvestment, &maxInv,
		&p.Description, &p.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if maxInv.Valid {
		v := maxInv.Float64
		p.MaxInvestment = &v
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}
	return p, nil
}
