package middleware

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/models"
	"gripinvest/internal/services"
)

type bodyCapture struct {
	gin.ResponseWriter
	body []byte
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	// keep a copy so the logger can lift the error message out of the body
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

// TransactionLogger records every response on the wrapped routes: caller,
// endpoint, status and the error message for failures. Log-write failures
// never affect the response.
func TransactionLogger(logs services.LogsService, alerts *services.AlertService) gin.HandlerFunc {
	return func(c *gin.Context) {
		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		status := c.Writer.Status()
		entry := &models.TransactionLog{
			Endpoint:   c.Request.URL.Path,
			HTTPMethod: c.Request.Method,
			StatusCode: status,
		}
		if id, ok := c.Get(CtxUserID); ok {
			if uid, ok := id.(int); ok {
				entry.UserID = &uid
			}
		}
		if v, ok := c.Get(CtxEmail); ok {
			if email, ok := v.(string); ok && email != "" {
				entry.Email = &email
			}
		}
		if status >= 400 {
			if msg := extractMessage(capture.body); msg != "" {
				entry.ErrorMessage = &msg
			}
		}

		if err := logs.Record(entry); err != nil {
			log.Printf("[txlog] failed to record %s %s: %v", entry.HTTPMethod, entry.Endpoint, err)
		}
		if status >= 500 {
			alerts.NotifyServerError(entry.HTTPMethod, entry.Endpoint, status)
		}
	}
}

func extractMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	return parsed.Message
}
