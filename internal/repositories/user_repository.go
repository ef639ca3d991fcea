package repositories

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"gripinvest/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateRiskAppetite(userID int, riskAppetite string) error
	// UpdatePasswordAndClearResets sets the new password hash and
	// invalidates reset material in a single transaction. The matched
	// record is marked used with a used=FALSE precondition; losing a
	// race surfaces as ErrAlreadyUsed and the password stays unchanged.
	UpdatePasswordAndClearResets(userID int, newHash, matchedResetID string) error
	GetCount() (int, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const uniqueViolation = "23505"

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (first_name, last_name, email, password_hash, risk_appetite, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	var lastName sql.NullString
	if user.LastName != "" {
		lastName = sql.NullString{String: user.LastName, Valid: true}
	}
	err := r.DB.QueryRow(q,
		user.FirstName,
		lastName,
		user.Email,
		user.PasswordHash,
		user.RiskAppetite,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, password_hash, risk_appetite, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, password_hash, risk_appetite, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.DB.QueryRow(q, email))
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		lastName  sql.NullString
		updatedAt sql.NullTime
	)
	err := row.Scan(&u.ID, &u.FirstName, &lastName, &u.Email, &u.PasswordHash,
		&u.RiskAppetite, &u.Role, &u.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if lastName.Valid {
		u.LastName = lastName.String
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		u.UpdatedAt = &t
	}
	return u, nil
}

func (r *userRepository) UpdateRiskAppetite(userID int, riskAppetite string) error {
	const q = `UPDATE users SET risk_appetite = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.DB.Exec(q, riskAppetite, userID)
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

func (r *userRepository) UpdatePasswordAndClearResets(userID int, newHash, matchedResetID string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Conditional update first: if the matched record was consumed by a
	// concurrent confirm, the whole transaction backs out and no password
	// change happens.
	res, err := tx.Exec(
		`UPDATE password_resets SET used = TRUE WHERE id = $1 AND used = FALSE`,
		matchedResetID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyUsed
	}

	// Void every other outstanding record so no stale secret stays matchable.
	if _, err := tx.Exec(
		`UPDATE password_resets SET used = TRUE WHERE user_id = $1 AND used = FALSE`,
		userID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		newHash, userID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *userRepository) GetCount() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
