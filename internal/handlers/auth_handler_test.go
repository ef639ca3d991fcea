package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gripinvest/internal/models"
	"gripinvest/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUserService struct {
	signupErr error
	loginErr  error
	user      *models.User
	token     string
}

func (s *stubUserService) Signup(req *models.SignupRequest) (*models.User, string, error) {
	if s.signupErr != nil {
		return nil, "", s.signupErr
	}
	return s.user, s.token, nil
}

func (s *stubUserService) Login(email, plainPassword string) (*models.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.user, s.token, nil
}

func (s *stubUserService) GetUserByID(id int) (*models.User, error) {
	if s.user == nil {
		return nil, services.ErrNotFound
	}
	return s.user, nil
}

func (s *stubUserService) UpdateRiskAppetite(userID int, riskAppetite string) (*models.User, error) {
	return s.user, nil
}

type stubResetService struct {
	requestErr error
	confirmErr error

	gotKind   string
	gotSecret string
}

func (s *stubResetService) RequestReset(email, kind string) error {
	s.gotKind = kind
	return s.requestErr
}

func (s *stubResetService) ConfirmReset(email, kind, secret, newPassword string) error {
	s.gotKind = kind
	s.gotSecret = secret
	return s.confirmErr
}

func postJSON(h gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST(path, h)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestResetSuccess(t *testing.T) {
	resets := &stubResetService{}
	h := NewAuthHandler(&stubUserService{}, resets)

	w := postJSON(h.RequestReset, "/auth/request-reset", `{"email":"alice@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Password reset instructions sent"}`, w.Body.String())
	assert.Equal(t, models.ResetKindOTP, resets.gotKind, "mode defaults to otp")
}

func TestRequestResetMasksUnknownEmail(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubResetService{requestErr: services.ErrNotFound})

	w := postJSON(h.RequestReset, "/auth/request-reset", `{"email":"nobody@example.com"}`)
	// indistinguishable from the success path
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Password reset instructions sent"}`, w.Body.String())
}

func TestRequestResetTokenMode(t *testing.T) {
	resets := &stubResetService{}
	h := NewAuthHandler(&stubUserService{}, resets)

	w := postJSON(h.RequestReset, "/auth/request-reset", `{"email":"alice@example.com","mode":"token"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ResetKindToken, resets.gotKind)
}

func TestRequestResetDeliveryFailure(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubResetService{requestErr: services.ErrUpstreamUnavailable})

	w := postJSON(h.RequestReset, "/auth/request-reset", `{"email":"alice@example.com"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"message":"Failed to send reset"}`, w.Body.String())
}

func TestResetPasswordRequiresSecret(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubResetService{})

	w := postJSON(h.ResetPassword, "/auth/reset-password", `{"email":"alice@example.com","new_password":"Str0ng#Visby90"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"OTP or token required"}`, w.Body.String())
}

func TestResetPasswordRoutesKind(t *testing.T) {
	resets := &stubResetService{}
	h := NewAuthHandler(&stubUserService{}, resets)

	w := postJSON(h.ResetPassword, "/auth/reset-password", `{"email":"alice@example.com","otp":"123456","new_password":"Str0ng#Visby90"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ResetKindOTP, resets.gotKind)
	assert.Equal(t, "123456", resets.gotSecret)

	w = postJSON(h.ResetPassword, "/auth/reset-password", `{"email":"alice@example.com","token":"uuid-token","new_password":"Str0ng#Visby90"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ResetKindToken, resets.gotKind)
	assert.Equal(t, "uuid-token", resets.gotSecret)
}

func TestResetPasswordErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"invalid", services.ErrInvalidCredential, http.StatusBadRequest, `{"message":"Invalid credentials"}`},
		{"expired", services.ErrExpired, http.StatusBadRequest, `{"message":"Code expired"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(&stubUserService{}, &stubResetService{confirmErr: tc.err})

			w := postJSON(h.ResetPassword, "/auth/reset-password", `{"email":"a@b.c","otp":"123456","new_password":"x"}`)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestResetPasswordWeakPassword(t *testing.T) {
	weak := &services.WeakPasswordError{Suggestions: []string{"Consider making your password longer than 12 characters"}}
	h := NewAuthHandler(&stubUserService{}, &stubResetService{confirmErr: weak})

	w := postJSON(h.ResetPassword, "/auth/reset-password", `{"email":"a@b.c","otp":"123456","new_password":"weak"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Weak password")
	assert.Contains(t, w.Body.String(), "longer than 12 characters")
}

func TestLoginErrorIsGeneric(t *testing.T) {
	h := NewAuthHandler(&stubUserService{loginErr: services.ErrInvalidCredential}, &stubResetService{})

	w := postJSON(h.Login, "/auth/login", `{"email":"a@b.c","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, w.Body.String())
}

func TestPasswordStrengthEndpoint(t *testing.T) {
	h := NewUtilsHandler()

	w := postJSON(h.PasswordStrength, "/utils/password-strength", `{"password":"Tr!ckyHorse#2857"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestions":[]}`, w.Body.String())

	w = postJSON(h.PasswordStrength, "/utils/password-strength", `{"password":"alice123","first_name":"Alice"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Avoid using your first name in the password")
}
