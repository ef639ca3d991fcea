package services

import (
	"errors"
	"log"
	"strings"

	"gripinvest/internal/authz"
	"gripinvest/internal/models"
	"gripinvest/internal/password"
	"gripinvest/internal/repositories"
)

type UserService interface {
	// Signup validates the password (hard composition gate, then the
	// advisory policy as a hard rejection), creates the account and
	// returns a session token.
	Signup(req *models.SignupRequest) (*models.User, string, error)
	// Login returns the user and a session token, or ErrInvalidCredential.
	Login(email, plainPassword string) (*models.User, string, error)
	GetUserByID(id int) (*models.User, error)
	UpdateRiskAppetite(userID int, riskAppetite string) (*models.User, error)
}

type userService struct {
	repo   repositories.UserRepository
	auth   AuthService
	emails EmailService
}

func NewUserService(repo repositories.UserRepository, auth AuthService, emails EmailService) UserService {
	return &userService{repo: repo, auth: auth, emails: emails}
}

func (s *userService) Signup(req *models.SignupRequest) (*models.User, string, error) {
	firstName := strings.TrimSpace(req.FirstName)
	email := strings.TrimSpace(req.Email)
	if firstName == "" || email == "" || req.Password == "" {
		return nil, "", &ValidationError{Message: "Missing required fields"}
	}

	riskAppetite := req.RiskAppetite
	if riskAppetite == "" {
		riskAppetite = models.RiskModerate
	}
	if !models.ValidRiskAppetite(riskAppetite) {
		return nil, "", &ValidationError{Message: "Invalid risk appetite value"}
	}

	if problems := password.Validate(req.Password); len(problems) > 0 {
		return nil, "", &WeakPasswordError{Suggestions: problems}
	}
	if suggestions := password.Evaluate(req.Password, password.Context{
		FirstName: firstName,
		LastName:  req.LastName,
		Email:     email,
	}); len(suggestions) > 0 {
		return nil, "", &WeakPasswordError{Suggestions: suggestions}
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
		RiskAppetite: riskAppetite,
		Role:         authz.RoleUser,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, "", ErrConflict
		}
		return nil, "", err
	}

	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			// warn but do not fail creation
			log.Printf("[users][signup] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) Login(email, plainPassword string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || plainPassword == "" {
		return nil, "", &ValidationError{Message: "Missing email or password"}
	}

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredential
		}
		return nil, "", err
	}
	if err := s.auth.ComparePassword(user.PasswordHash, plainPassword); err != nil {
		return nil, "", ErrInvalidCredential
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRiskAppetite(userID int, riskAppetite string) (*models.User, error) {
	if !models.ValidRiskAppetite(riskAppetite) {
		return nil, &ValidationError{Message: "Invalid risk appetite value"}
	}
	if err := s.repo.UpdateRiskAppetite(userID, riskAppetite); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetUserByID(userID)
}
