package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/pkg/auth"
	"github.com/pawmart/pawmart/pkg/logger"
)

// AccountService covers registration, login and profile access. Passwords
// are always bcrypt-hashed; there is no plaintext comparison path.
type AccountService struct {
	users *repositories.UserRepository
}

func NewAccountService(users *repositories.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"nullable,min=7,max=20"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"nullable,in=customer,veterinarian,inventory_manager"`

	Specialization    string `json:"specialization" validate:"nullable,max=255"`
	YearsOfExperience int    `json:"years_of_experience" validate:"nullable,gte=0,lte=80"`
}

// Register creates a new account. Admin accounts cannot self-register.
func (s *AccountService) Register(in RegisterInput) (models.User, error) {
	taken, err := s.users.EmailOrPhoneTaken(in.Email, in.Phone)
	if err != nil {
		return models.User{}, fmt.Errorf("account: check duplicates: %w", err)
	}
	if taken {
		return models.User{}, ErrDuplicateAccount
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("account: hash password: %w", err)
	}

	role := models.Role(in.Role)
	if role == "" {
		role = models.RoleCustomer
	}
	if !models.ValidRole(role) || role == models.RoleAdmin {
		role = models.RoleCustomer
	}

	user := models.User{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Password:       hash,
		Role:           role,
		Specialization: in.Specialization,
	}
	if role == models.RoleVeterinarian {
		user.YearsOfExperience = in.YearsOfExperience
	}

	if err := s.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("account: create: %w", err)
	}

	logger.Info("account registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// TokenPair is the login result.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies credentials and issues access + refresh tokens.
func (s *AccountService) Login(email, password string) (models.User, TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return models.User{}, TokenPair{}, fmt.Errorf("account: lookup: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	access, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return models.User{}, TokenPair{}, fmt.Errorf("account: sign token: %w", err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return models.User{}, TokenPair{}, fmt.Errorf("account: sign refresh token: %w", err)
	}

	return user, TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Me returns the authenticated user's profile.
func (s *AccountService) Me(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
