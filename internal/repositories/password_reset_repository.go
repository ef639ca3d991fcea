package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"gripinvest/internal/models"
)

type PasswordResetRepository interface {
	// Create voids any outstanding records of the same kind for the user
	// and inserts the new one in a single transaction, so at most one
	// record per (user, kind) is ever live.
	Create(userID int, secretHash, kind string, expiresAt time.Time) (*models.PasswordReset, error)
	// RecentCandidates returns the most recent unused records for the
	// user and kind, newest first. Expired records are included so the
	// caller can report Expired instead of a generic mismatch.
	RecentCandidates(userID int, kind string, limit int) ([]*models.PasswordReset, error)
	// MarkUsed flips used=TRUE with a used=FALSE precondition.
	MarkUsed(id string) error
}

type passwordResetRepository struct {
	DB *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{DB: db}
}

func (r *passwordResetRepository) Create(userID int, secretHash, kind string, expiresAt time.Time) (*models.PasswordReset, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Proactive superseding: a fresh request retires earlier challenges of
	// the same kind instead of leaving them matchable until expiry.
	if _, err := tx.Exec(
		`UPDATE password_resets SET used = TRUE WHERE user_id = $1 AND kind = $2 AND used = FALSE`,
		userID, kind,
	); err != nil {
		return nil, err
	}

	pr := &models.PasswordReset{
		ID:         uuid.NewString(),
		UserID:     userID,
		SecretHash: secretHash,
		Kind:       kind,
		ExpiresAt:  expiresAt,
	}
	const q = `
		INSERT INTO password_resets (id, user_id, secret_hash, kind, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	if err := tx.QueryRow(q, pr.ID, pr.UserID, pr.SecretHash, pr.Kind, pr.ExpiresAt).Scan(&pr.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return pr, nil
}

func (r *passwordResetRepository) RecentCandidates(userID int, kind string, limit int) ([]*models.PasswordReset, error) {
	if limit <= 0 {
		limit = 5
	}
	const q = `
		SELECT id, user_id, secret_hash, kind, expires_at, used, created_at
		FROM password_resets
		WHERE user_id = $1 AND kind = $2 AND used = FALSE
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.DB.Query(q, userID, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.PasswordReset
	for rows.Next() {
		pr := &models.PasswordReset{}
		if err := rows.Scan(&pr.ID, &pr.UserID, &pr.SecretHash, &pr.Kind,
			&pr.ExpiresAt, &pr.Used, &pr.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, pr)
	}
	return res, rows.Err()
}

func (r *passwordResetRepository) MarkUsed(id string) error {
	res, err := r.DB.Exec(
		`UPDATE password_resets SET used = TRUE WHERE id = $1 AND used = FALSE`,
		id,
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
	return nil
}
