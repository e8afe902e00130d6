package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/app/repositories"
	"github.com/casatartufo/tartufo/pkg/apperr"
	"github.com/casatartufo/tartufo/pkg/auth"
)

// AuthService implements registration, credential checks and address updates.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new user with a bcrypt-hashed credential.
// A duplicate email is a conflict, not an internal error.
func (s *AuthService) Register(name, email, password, address string) (models.User, error) {
	if name == "" || email == "" || password == "" {
		return models.User{}, apperr.InvalidInput("Missing name, email, or password")
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		return models.User{}, apperr.Conflict("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("auth: lookup email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user := models.User{Name: name, Email: email, Password: hash, Address: address}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("auth: create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.Unauthenticated("Invalid credentials")
		}
		return models.User{}, fmt.Errorf("auth: lookup email: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, apperr.Unauthenticated("Invalid credentials")
	}

	return user, nil
}

// FindUser resolves a user id from a session to the stored record.
func (s *AuthService) FindUser(id uint) (models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound("User not found")
		}
		return models.User{}, fmt.Errorf("auth: lookup user: %w", err)
	}
	return user, nil
}

// UpdateAddress mutates the user's free-text delivery address.
func (s *AuthService) UpdateAddress(userID uint, address string) (models.User, error) {
	user, err := s.FindUser(userID)
	if err != nil {
		return models.User{}, err
	}

	user.Address = address
	if err := s.users.Update(&user); err != nil {
		return models.User{}, fmt.Errorf("auth: update address: %w", err)
	}

	return user, nil
}
