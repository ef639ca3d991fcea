package repositories

import (
	"database/sql"

	"gripinvest/internal/models"
)

type TransactionLogRepository interface {
	Create(entry *models.TransactionLog) error
	ListAll(limit int) ([]*models.TransactionLog, error)
	ListByUser(userID, limit int) ([]*models.TransactionLog, error)
	ListByEmail(email string, limit int) ([]*models.TransactionLog, error)
}

type transactionLogRepository struct {
	DB *sql.DB
}

func NewTransactionLogRepository(db *sql.DB) TransactionLogRepository {
	return &transactionLogRepository{DB: db}
}

func (r *transactionLogRepository) Create(entry *models.TransactionLog) error {
	const q = `
		INSERT INTO transaction_logs (user_id, email, endpoint, http_method, status_code, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q,
		entry.UserID, entry.Email, entry.Endpoint, entry.HTTPMethod,
		entry.StatusCode, entry.ErrorMessage,
	).Scan(&entry.ID, &entry.CreatedAt)
}

const logColumns = `id, user_id, email, endpoint, http_method, status_code, error_message, created_at`

func (r *transactionLogRepository) ListAll(limit int) ([]*models.TransactionLog, error) {
	return r.query(
		`SELECT `+logColumns+` FROM transaction_logs ORDER BY created_at DESC LIMIT $1`,
		clampLimit(limit),
	)
}

func (r *transactionLogRepository) ListByUser(userID, limit int) ([]*models.TransactionLog, error) {
	return r.query(
		`SELECT `+logColumns+` FROM transaction_logs WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`,
		userID, clampLimit(limit),
	)
}

func (r *transactionLogRepository) ListByEmail(email string, limit int) ([]*models.TransactionLog, error) {
	const q = `
		SELECT tl.id, tl.user_id, tl.email, tl.endpoint, tl.http_method,
			tl.status_code, tl.error_message, tl.created_at
		FROM transaction_logs tl
		JOIN users u ON tl.user_id = u.id
		WHERE u.email = $1
		ORDER BY tl.created_at DESC
		LIMIT $2
	`
	return r.query(q, email, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 500
	}
	return limit
}

func (r *transactionLogRepository) query(q string, args ...any) ([]*models.TransactionLog, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.TransactionLog
	for rows.Next() {
		entry := &models.TransactionLog{}
		var (
			userID sql.NullInt64
			email  sql.NullString
			errMsg sql.NullString
		)
		if err := rows.Scan(&entry.ID, &userID, &email, &entry.Endpoint,
			&entry.HTTPMethod, &entry.StatusCode, &errMsg, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if userID.Valid {
			v := int(userID.Int64)
			entry.UserID = &v
		}
		if email.Valid {
			s := email.String
			entry.Email = &s
		}
		if errMsg.Valid {
			s := errMsg.String
			entry.ErrorMessage = &s
		}
		res = append(res, entry)
	}
	return res, rows.Err()
}
