package services

import (
	"context"
	"fmt"
	"strings"

	"gripinvest/internal/genai"
	"gripinvest/internal/models"
	"gripinvest/internal/repositories"
)

const (
	noErrorsSummary = "No errors found."
	summaryFallback = "AI summarization failed. Please check logs."

	// first N failed entries go into the prompt, the rest are dropped
	summaryLogLimit = 50
)

type LogsResult struct {
	Logs      []*models.TransactionLog `json:"logs"`
	AISummary string                   `json:"ai_summary"`
}

type LogsService interface {
	Record(entry *models.TransactionLog) error
	// ForAdmin lists everything, or a single account's history when email
	// is given. ForUser is limited to the caller's own rows.
	ForAdmin(ctx context.Context, email string) (*LogsResult, error)
	ForUser(ctx context.Context, userID int) (*LogsResult, error)
}

type logsService struct {
	repo repositories.TransactionLogRepository
	ai   genai.TextGenerator
}

func NewLogsService(repo repositories.TransactionLogRepository, ai genai.TextGenerator) LogsService {
	return &logsService{repo: repo, ai: ai}
}

func (s *logsService) Record(entry *models.TransactionLog) error {
	return s.repo.Create(entry)
}

func (s *logsService) ForAdmin(ctx context.Context, email string) (*LogsResult, error) {
	var (
		logs []*models.TransactionLog
		err  error
	)
	if email != "" {
		logs, err = s.repo.ListByEmail(email, 0)
	} else {
		logs, err = s.repo.ListAll(0)
	}
	if err != nil {
		return nil, err
	}
	return s.withSummary(ctx, logs), nil
}

func (s *logsService) ForUser(ctx context.Context, userID int) (*LogsResult, error) {
	logs, err := s.repo.ListByUser(userID, 0)
	if err != nil {
		return nil, err
	}
	return s.withSummary(ctx, logs), nil
}

func (s *logsService) withSummary(ctx context.Context, logs []*models.TransactionLog) *LogsResult {
	var failed []*models.TransactionLog
	for _, l := range logs {
		if l.StatusCode >= 400 {
			failed = append(failed, l)
		}
	}

	result := &LogsResult{Logs: logs, AISummary: noErrorsSummary}
	if len(failed) == 0 {
		return result
	}
	if len(failed) > summaryLogLimit {
		failed = failed[:summaryLogLimit]
	}

	var b strings.Builder
	b.WriteString("You are an AI assistant. Summarize the following API error logs in a concise, developer-friendly way.\n")
	b.WriteString("Highlight common issues and suggest possible causes.\n\nLogs:\n")
	for _, l := range failed {
		msg := ""
		if l.ErrorMessage != nil {
			msg = *l.ErrorMessage
		}
		fmt.Fprintf(&b, "Endpoint: %s, Status: %d, Error: %s\n", l.Endpoint, l.StatusCode, msg)
	}

	result.AISummary = genai.GenerateOrFallback(ctx, s.ai, b.String(), summaryFallback)
	return result
}
