package services

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gripinvest/internal/models"
	"gripinvest/internal/password"
	"gripinvest/internal/repositories"
	"gripinvest/internal/utils"
)

const (
	otpTTL   = 10 * time.Minute
	tokenTTL = 60 * time.Minute

	// сколько последних записей сверяем при confirm
	candidateLimit = 5
)

type PasswordResetService interface {
	// RequestReset creates a reset challenge and hands the plaintext
	// secret to the delivery collaborator. A delivery failure surfaces
	// as ErrUpstreamUnavailable while the stored record stays valid, so
	// the user can retry or issue a fresh request.
	RequestReset(email, kind string) error
	// ConfirmReset consumes a challenge and sets the new password.
	// Exactly one of two racing confirms with the same secret succeeds.
	ConfirmReset(email, kind, secret, newPassword string) error
}

type passwordResetService struct {
	userRepo  repositories.UserRepository
	resetRepo repositories.PasswordResetRepository
	emails    EmailService
	auth      AuthService
	clientURL string

	now func() time.Time
}

func NewPasswordResetService(
	userRepo repositories.UserRepository,
	resetRepo repositories.PasswordResetRepository,
	emails EmailService,
	auth AuthService,
	clientURL string,
) PasswordResetService {
	return &passwordResetService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		emails:    emails,
		auth:      auth,
		clientURL: clientURL,
		now:       time.Now,
	}
}

func (s *passwordResetService) RequestReset(email, kind string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Message: "email is required"}
	}
	if kind != models.ResetKindOTP && kind != models.ResetKindToken {
		return &ValidationError{Message: "mode must be \"otp\" or \"token\""}
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	var (
		secret string
		ttl    time.Duration
	)
	switch kind {
	case models.ResetKindOTP:
		secret, err = utils.NewOTP()
		if err != nil {
			return err
		}
		ttl = otpTTL
	case models.ResetKindToken:
		secret = utils.NewResetToken()
		ttl = tokenTTL
	}

	// Only the bcrypt hash is persisted; the plaintext goes out by email
	// and is never logged.
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	record, err := s.resetRepo.Create(user.ID, string(hash), kind, s.now().Add(ttl))
	if err != nil {
		return err
	}
	log.Printf("[password-reset][request] created record id=%s kind=%s user=%d exp=%s",
		record.ID, kind, user.ID, record.ExpiresAt.Format(time.RFC3339))

	if err := s.deliver(user.Email, kind, secret); err != nil {
		log.Printf("[password-reset][request] delivery failed for user=%d: %v", user.ID, err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

func (s *passwordResetService) deliver(email, kind, secret string) error {
	if s.emails == nil {
		return fmt.Errorf("email delivery not configured")
	}
	if kind == models.ResetKindOTP {
		return s.emails.SendResetOTP(email, secret)
	}
	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		strings.TrimRight(s.clientURL, "/"), secret, url.QueryEscape(email))
	return s.emails.SendResetLink(email, link)
}

func (s *passwordResetService) ConfirmReset(email, kind, secret, newPassword string) error {
	email = strings.TrimSpace(email)
	secret = strings.TrimSpace(secret)
	if email == "" || secret == "" {
		return &ValidationError{Message: "email and OTP or token are required"}
	}
	if strings.TrimSpace(newPassword) == "" {
		return &ValidationError{Message: "new password is required"}
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// same external outcome as a wrong code
			return ErrInvalidCredential
		}
		return err
	}

	record, err := s.findMatch(user.ID, kind, secret)
	if err != nil {
		return err
	}

	if violations := password.Evaluate(newPassword, password.Context{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}); len(violations) > 0 {
		return &WeakPasswordError{Suggestions: violations}
	}

	newHash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// Atomic: mark the matched record used (used=FALSE precondition), void
	// the rest, swap the hash. The losing confirm observes ErrAlreadyUsed.
	if err := s.userRepo.UpdatePasswordAndClearResets(user.ID, newHash, record.ID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyUsed) {
			return ErrInvalidCredential
		}
		return err
	}

	log.Printf("[password-reset][confirm] password updated for user=%d record=%s", user.ID, record.ID)
	return nil
}

// findMatch scans the most recent unused candidates, comparing the supplied
// secret against each stored hash. A matching but stale record reports
// ErrExpired so the caller gets a stable error instead of a generic mismatch.
func (s *passwordResetService) findMatch(userID int, kind, secret string) (*models.PasswordReset, error) {
	candidates, err := s.resetRepo.RecentCandidates(userID, kind, candidateLimit)
	if err != nil {
		return nil, err
	}

	for _, pr := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(pr.SecretHash), []byte(secret)) != nil {
			continue
		}
		if !pr.Live(s.now()) {
			return nil, ErrExpired
		}
		return pr, nil
	}
	return nil, ErrInvalidCredential
}
