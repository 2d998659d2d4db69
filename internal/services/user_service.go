package services

import (
	"fmt"
	"regexp"
	"strings"

	"recipebox/internal/models"
	"recipebox/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	uppercaseRe = regexp.MustCompile(`[A-Z]`)
	digitRe     = regexp.MustCompile(`[0-9]`)
)

// UserService handles business logic for user accounts: registration,
// credential checks and profile updates.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// normalizeEmail lowercases the domain portion of an email address. The
// local part is left untouched.
func normalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// validatePassword enforces the password policy: at least 8 characters,
// at least one uppercase letter and at least one digit. The uppercase
// check runs before the digit check so its message surfaces first.
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !uppercaseRe.MatchString(password) {
		return fmt.Errorf("password must contain at least 1 uppercase letter")
	}
	if !digitRe.MatchString(password) {
		return fmt.Errorf("password must contain at least 1 digit")
	}
	return nil
}

// CreateUser registers a new user: normalizes the email, enforces the
// password policy, hashes the password and saves the user.
func (s *UserService) CreateUser(email, password, name string) (*models.User, error) {
	return s.createUser(email, password, name, false, false)
}

// CreateSuperuser registers a new user with staff and superuser flags set.
func (s *UserService) CreateSuperuser(email, password string) (*models.User, error) {
	return s.createUser(email, password, "", true, true)
}

func (s *UserService) createUser(email, password, name string, isStaff, isSuperuser bool) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	email = normalizeEmail(email)

	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if existingUser, err := s.userRepo.GetByEmail(email); err == nil && existingUser != nil {
		return nil, fmt.Errorf("email '%s' already registered", email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:       email,
		Name:        name,
		Password:    string(hashedPassword),
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Authenticate checks the given credentials and returns the matching user.
// Any failure yields the same generic error so callers learn nothing about
// which part of the credentials was wrong.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

// GetByID returns the user with the given ID.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile updates only the supplied fields of a user's profile.
// A new password is validated against the policy and re-hashed.
func (s *UserService) UpdateProfile(userID string, name, password *string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if password != nil {
		if err := validatePassword(*password); err != nil {
			return nil, err
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
