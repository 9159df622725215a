package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

// UseremailRepository is the interface that wraps methods for Useremails table data access
type UseremailRepository interface {
	// Method GetAll retrieves all emails ordered by ID.
	GetAll(ctx context.Context) ([]models.Useremail, error)
	// Method GetByID retrieves an email by its ID.
	//
	// If email with such ID does not exist, the error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int64) (*models.Useremail, error)
	// Method Create inserts a new email and writes the generated ID back to "email".
	Create(ctx context.Context, email *models.Useremail) error
	// Method Update replaces the address of the email identified by "id".
	//
	// If email with such ID does not exist, the error wrapping models.ErrNotFound will be returned.
	Update(ctx context.Context, id int64, address string) error
	// Method Delete removes the email identified by "id".
	//
	// If email with such ID does not exist, the error wrapping models.ErrNotFound will be returned.
	Delete(ctx context.Context, id int64) error
}

// UserLookup checks the owner of an email
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type useremailService struct {
	repo   UseremailRepository
	users  UserLookup
	logger *zap.Logger
}

// NewUseremailService creates a new useremail service
func NewUseremailService(repo UseremailRepository, users UserLookup, logger *zap.Logger) *useremailService {
	return &useremailService{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// FindAll retrieves every email
func (s *useremailService) FindAll(ctx context.Context) ([]models.Useremail, error) {
	emails, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get all useremails", zap.Error(err))
		return nil, fmt.Errorf("failed to get useremails: %w", err)
	}
	return emails, nil
}

// FindUseremailByID retrieves an email by its ID
func (s *useremailService) FindUseremailByID(ctx context.Context, id int64) (*models.Useremail, error) {
	email, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to get useremail by id", zap.Error(err), zap.Int64("id", id))
		}
		return nil, fmt.Errorf("failed to get useremail: %w", err)
	}
	return email, nil
}

// Delete removes an email
func (s *useremailService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to delete useremail", zap.Error(err), zap.Int64("id", id))
		}
		return fmt.Errorf("failed to delete useremail: %w", err)
	}
	return nil
}

// Update replaces the address of an email and returns the stored email
func (s *useremailService) Update(ctx context.Context, id int64, address string) (*models.Useremail, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return nil, fmt.Errorf("email address is required: %w", models.ErrInvalidInput)
	}

	if err := s.repo.Update(ctx, id, address); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to update useremail", zap.Error(err), zap.Int64("id", id))
		}
		return nil, fmt.Errorf("failed to update useremail: %w", err)
	}
	return s.FindUseremailByID(ctx, id)
}

// Save adds a new email to the user identified by userID
func (s *useremailService) Save(ctx context.Context, userID int64, address string) (*models.Useremail, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return nil, fmt.Errorf("email address is required: %w", models.ErrInvalidInput)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to get owner of useremail: %w", err)
	}

	email := &models.Useremail{UserID: userID, Useremail: address}
	if err := s.repo.Create(ctx, email); err != nil {
		s.logger.Error("failed to create useremail", zap.Error(err), zap.Int64("userID", userID))
		return nil, fmt.Errorf("failed to create useremail: %w", err)
	}
	return email, nil
}
