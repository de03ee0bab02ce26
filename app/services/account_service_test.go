package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/pkg/auth"
)

func registerInput() RegisterInput {
	return RegisterInput{
		Name:     "Casey Customer",
		Email:    "casey@example.com",
		Phone:    "+4798765432",
		Password: "correct-horse-battery",
	}
}

func TestRegisterDefaultsToCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repositories.NewUserRepository(db))

	user, err := svc.Register(registerInput())
	require.NoError(t, err)

	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "correct-horse-battery", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "correct-horse-battery"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repositories.NewUserRepository(db))

	_, err := svc.Register(registerInput())
	require.NoError(t, err)

	dup := registerInput()
	dup.Phone = "+4711111111"
	_, err = svc.Register(dup)
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repositories.NewUserRepository(db))

	_, err := svc.Register(registerInput())
	require.NoError(t, err)

	dup := registerInput()
	dup.Email = "other@example.com"
	_, err = svc.Register(dup)
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestRegisterCannotSelfAssignAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repositories.NewUserRepository(db))

	in := registerInput()
	in.Role = "admin"
	user, err := svc.Register(in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
}

func TestRegisterVeterinarianKeepsProfileFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repositories.NewUserRepository(db))

	in := registerInput()
	in.Role = "veterinarian"
	in.Specialization = "Exotic birds"
	in.YearsOfExperience = 12

	user, err := svc.Register(in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleVeterinarian, user.Role)
	assert.Equal(t, "Exotic birds", user.Specialization)
	assert.Equal(t, 12, user.YearsOfExperience)
}

func TestLoginIssuesValidTokens(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repositories.NewUserRepository(db))

	registered, err := svc.Register(registerInput())
	require.NoError(t, err)

	user, tokens, err := svc.Login("casey@example.com", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	claims, err := auth.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repositories.NewUserRepository(db))

	_, err := svc.Register(registerInput())
	require.NoError(t, err)

	_, _, err = svc.Login("casey@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repositories.NewUserRepository(db))

	_, _, err := svc.Login("ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repositories.NewUserRepository(db))

	registered, err := svc.Register(registerInput())
	require.NoError(t, err)

	user, err := svc.Me(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)

	_, err = svc.Me(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
