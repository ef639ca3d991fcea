package models

import "time"

type TransactionLog struct {
	ID           int64     `json:"id"`
	UserID       *int      `json:"user_id,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Endpoint     string    `json:"endpoint"`
	HTTPMethod   string    `json:"http_method"`
	StatusCode   int       `json:"status_code"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
