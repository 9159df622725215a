package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for Users table data access
type UserRepository interface {
	// Method GetByID retrieves a user together with its roles and emails.
	//
	// If user with such ID does not exist, the error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// Method GetByUsername retrieves a user by exact username.
	//
	// If user with such username does not exist, the error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetByUsernameContaining retrieves users whose username contains "fragment", ignoring case.
	//
	// An empty slice is returned when nothing matches.
	GetByUsernameContaining(ctx context.Context, fragment string) ([]models.User, error)
	// Method GetAll retrieves all users in insertion order.
	GetAll(ctx context.Context) ([]models.User, error)
	// Method Create inserts a user with its role associations and emails in one transaction.
	//
	// Generated IDs are written back to "user".
	Create(ctx context.Context, user *models.User) error
	// Method Update writes the scalar fields of "user" and, when requested, replaces its role associations and emails.
	//
	// If user does not exist, the error wrapping models.ErrNotFound will be returned.
	Update(ctx context.Context, user *models.User, replaceRoles, replaceEmails bool) error
	// Method Delete removes a user with its emails and role associations in one transaction.
	//
	// If user does not exist, the error wrapping models.ErrNotFound will be returned.
	Delete(ctx context.Context, id int64) error
}

// RoleResolver resolves the canonical role for a role ID
type RoleResolver interface {
	FindRoleByID(ctx context.Context, id int64) (*models.Role, error)
}

type userService struct {
	repo         UserRepository
	roles        RoleResolver
	logger       *zap.Logger
	passwordCost int
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository, roles RoleResolver, logger *zap.Logger) *userService {
	return &userService{
		repo:         repo,
		roles:        roles,
		logger:       logger,
		passwordCost: bcrypt.DefaultCost,
	}
}

// FindUserByID retrieves a user by its ID
func (s *userService) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logLookupError("failed to get user by id", err, zap.Int64("id", id))
		return nil, err
	}
	return user, nil
}

// FindByName retrieves a user by exact username
func (s *userService) FindByName(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.logLookupError("failed to get user by name", err, zap.String("username", username))
		return nil, err
	}
	return user, nil
}

// FindByNameContaining retrieves users whose username contains fragment, ignoring case.
//
// No match is not an error; an empty slice is returned.
func (s *userService) FindByNameContaining(ctx context.Context, fragment string) ([]models.User, error) {
	users, err := s.repo.GetByUsernameContaining(ctx, fragment)
	if err != nil {
		s.logger.Error("failed to get users by name fragment", zap.Error(err), zap.String("fragment", fragment))
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// FindAll retrieves every user
func (s *userService) FindAll(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get all users", zap.Error(err))
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Delete removes a user with its role associations and emails
func (s *userService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		s.logLookupError("failed to get user for delete", err, zap.Int64("id", id))
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logLookupError("failed to delete user", err, zap.Int64("id", id))
		return err
	}
	return nil
}

// Save creates a new user.
//
// The ID supplied by the caller is ignored. Every referenced role is resolved by its ID only;
// if any of them does not exist nothing is persisted and the error wraps models.ErrNotFound.
func (s *userService) Save(ctx context.Context, user *models.User) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(user.Username))
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", models.ErrInvalidInput)
	}
	if user.Password == "" {
		return nil, fmt.Errorf("password is required: %w", models.ErrInvalidInput)
	}

	roles, err := s.resolveRoles(ctx, user)
	if err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(user.Password)
	if err != nil {
		return nil, err
	}

	newUser := &models.User{
		Username:     username,
		PasswordHash: hash,
		PrimaryEmail: strings.ToLower(strings.TrimSpace(user.PrimaryEmail)),
		Roles:        roles,
		Useremails:   copyEmails(user.Useremails),
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		s.logger.Error("failed to create user", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", zap.Int64("id", newUser.ID), zap.String("username", newUser.Username))
	return newUser, nil
}

// Update merges user into the persisted user identified by id.
//
// Non-empty scalar fields overwrite the stored values, empty ones keep them.
// A non-empty role list replaces every role association of the user, and a non-empty
// email list replaces every email of the user.
// If the user or any referenced role does not exist nothing is persisted and the error wraps models.ErrNotFound.
func (s *userService) Update(ctx context.Context, user *models.User, id int64) (*models.User, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logLookupError("failed to get user for update", err, zap.Int64("id", id))
		return nil, err
	}

	if username := strings.TrimSpace(user.Username); username != "" {
		current.Username = strings.ToLower(username)
	}
	if user.Password != "" {
		hash, err := s.hashPassword(user.Password)
		if err != nil {
			return nil, err
		}
		current.PasswordHash = hash
	}
	if email := strings.TrimSpace(user.PrimaryEmail); email != "" {
		current.PrimaryEmail = strings.ToLower(email)
	}

	replaceRoles := len(user.Roles) > 0
	if replaceRoles {
		roles, err := s.resolveRoles(ctx, user)
		if err != nil {
			return nil, err
		}
		current.Roles = roles
	}

	replaceEmails := len(user.Useremails) > 0
	if replaceEmails {
		current.Useremails = copyEmails(user.Useremails)
	}

	if err := s.repo.Update(ctx, current, replaceRoles, replaceEmails); err != nil {
		s.logLookupError("failed to update user", err, zap.Int64("id", id))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return current, nil
}

// resolveRoles looks up the canonical role for every role ID referenced by user.
//
// Only the ID of a referenced role is honored, any other field is discarded.
func (s *userService) resolveRoles(ctx context.Context, user *models.User) ([]models.UserRoles, error) {
	ids := user.RoleIDs()
	roles := make([]models.UserRoles, 0, len(ids))
	for _, id := range ids {
		role, err := s.roles.FindRoleByID(ctx, id)
		if err != nil {
			return nil, err
		}
		roles = append(roles, models.UserRoles{Role: *role})
	}
	return roles, nil
}

// hashPassword hashes a plain text password with bcrypt
func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// logLookupError logs err unless it only reports a missing record
func (s *userService) logLookupError(msg string, err error, fields ...zap.Field) {
	if errors.Is(err, models.ErrNotFound) {
		return
	}
	s.logger.Error(msg, append(fields, zap.Error(err))...)
}

// copyEmails copies the normalized addresses of emails into fresh, unsaved Useremail values
func copyEmails(emails []models.Useremail) []models.Useremail {
	result := make([]models.Useremail, 0, len(emails))
	for _, e := range emails {
		address := strings.ToLower(strings.TrimSpace(e.Useremail))
		if address == "" {
			continue
		}
		result = append(result, models.Useremail{Useremail: address})
	}
	return result
}
