package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"gripinvest/internal/authz"
	"gripinvest/internal/models"
)

// Claims is the session token payload: identity and role, nothing else.
type Claims struct {
	UserID int    `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type AuthService interface {
	HashPassword(password string) (string, error)
	ComparePassword(hash, password string) error
	IssueToken(user *models.User) (string, error)
	// VerifyToken returns ErrExpired for a legitimately issued but stale
	// token and ErrUnauthorized for anything malformed or forged.
	VerifyToken(token string) (*Claims, error)
}

type authService struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(secret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &authService{secret: []byte(secret), tokenTTL: tokenTTL}
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *authService) VerifyToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// защита: принимаем только HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrUnauthorized
	}
	if !token.Valid {
		return nil, ErrUnauthorized
	}

	// expiry check independent of signature validity
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, ErrExpired
	}

	// signup-era tokens omit the role claim
	if claims.Role == "" {
		claims.Role = authz.RoleUser
	}
	return claims, nil
}
