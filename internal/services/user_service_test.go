package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gripinvest/internal/authz"
	"gripinvest/internal/models"
)

func newUserFixture(t *testing.T) (UserService, *fakeUserRepo, *fakeEmail, AuthService) {
	t.Helper()
	resets := newFakeResetRepo()
	users := newFakeUserRepo(resets)
	emails := &fakeEmail{}
	auth := NewAuthService("test-secret", time.Hour)
	return NewUserService(users, auth, emails), users, emails, auth
}

func TestSignup(t *testing.T) {
	svc, _, emails, auth := newUserFixture(t)

	user, token, err := svc.Signup(&models.SignupRequest{
		FirstName: "Bob",
		Email:     "bob@example.com",
		Password:  "Str0ng#Visby90",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, models.RiskModerate, user.RiskAppetite, "risk appetite defaults to moderate")
	assert.Equal(t, authz.RoleUser, user.Role)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "Str0ng#Visby90"))

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	assert.Equal(t, []string{"bob@example.com"}, emails.welcomes)
}

func TestSignupMissingFields(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	_, _, err := svc.Signup(&models.SignupRequest{Email: "bob@example.com", Password: "Str0ng#Visby90"})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestSignupWeakPassword(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	// fails the hard composition gate
	_, _, err := svc.Signup(&models.SignupRequest{
		FirstName: "Bob",
		Email:     "bob@example.com",
		Password:  "short",
	})
	var weak *WeakPasswordError
	require.ErrorAs(t, err, &weak)
	assert.Contains(t, weak.Suggestions, "Password must be at least 8 characters long.")

	// passes composition but trips the advisory policy
	_, _, err = svc.Signup(&models.SignupRequest{
		FirstName: "Bob",
		Email:     "bob@example.com",
		Password:  "Bob#Qwerty123456",
	})
	require.ErrorAs(t, err, &weak)
	assert.Contains(t, weak.Suggestions, "Avoid using your first name in the password")
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	_, _, err := svc.Signup(&models.SignupRequest{
		FirstName: "Bob",
		Email:     "bob@example.com",
		Password:  "Str0ng#Visby90",
	})
	require.NoError(t, err)

	_, _, err = svc.Signup(&models.SignupRequest{
		FirstName: "Bobby",
		Email:     "bob@example.com",
		Password:  "Str0ng#Visby90",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSignupSurvivesWelcomeEmailFailure(t *testing.T) {
	svc, _, emails, _ := newUserFixture(t)
	emails.failing = true

	_, token, err := svc.Signup(&models.SignupRequest{
		FirstName: "Bob",
		Email:     "bob@example.com",
		Password:  "Str0ng#Visby90",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin(t *testing.T) {
	svc, _, _, auth := newUserFixture(t)

	created, _, err := svc.Signup(&models.SignupRequest{
		FirstName: "Bob",
		Email:     "bob@example.com",
		Password:  "Str0ng#Visby90",
	})
	require.NoError(t, err)

	user, token, err := svc.Login("bob@example.com", "Str0ng#Visby90")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestLoginGenericFailure(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	_, _, err := svc.Signup(&models.SignupRequest{
		FirstName: "Bob",
		Email:     "bob@example.com",
		Password:  "Str0ng#Visby90",
	})
	require.NoError(t, err)

	// wrong password and unknown account look the same from outside
	_, _, err = svc.Login("bob@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, _, err = svc.Login("nobody@example.com", "Str0ng#Visby90")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestUpdateRiskAppetite(t *testing.T) {
	svc, users, _, _ := newUserFixture(t)

	created, _, err := svc.Signup(&models.SignupRequest{
		FirstName: "Bob",
		Email:     "bob@example.com",
		Password:  "Str0ng#Visby90",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRiskAppetite(created.ID, models.RiskHigh)
	require.NoError(t, err)
	assert.Equal(t, models.RiskHigh, updated.RiskAppetite)

	stored, err := users.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RiskHigh, stored.RiskAppetite)

	_, err = svc.UpdateRiskAppetite(created.ID, "reckless")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
