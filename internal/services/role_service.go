package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

// RoleRepository is the interface that wraps methods for Roles table data access
type RoleRepository interface {
	// Method GetByID retrieves a role by its ID.
	//
	// If role with such ID does not exist, the error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int64) (*models.Role, error)
	// Method GetByName retrieves a role by its exact name.
	//
	// If role with such name does not exist, the error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByName(ctx context.Context, name string) (*models.Role, error)
	// Method GetAll retrieves all roles ordered by ID.
	GetAll(ctx context.Context) ([]models.Role, error)
	// Method Create inserts a new role and writes the generated ID back to "role".
	Create(ctx context.Context, role *models.Role) error
	// Method Update renames the role identified by "id".
	//
	// If role with such ID does not exist, the error wrapping models.ErrNotFound will be returned.
	Update(ctx context.Context, id int64, name string) error
}

type roleService struct {
	repo   RoleRepository
	logger *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(repo RoleRepository, logger *zap.Logger) *roleService {
	return &roleService{
		repo:   repo,
		logger: logger,
	}
}

// FindAll retrieves every role
func (s *roleService) FindAll(ctx context.Context) ([]models.Role, error) {
	roles, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get all roles", zap.Error(err))
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	return roles, nil
}

// FindRoleByID retrieves the canonical role for an ID
func (s *roleService) FindRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to get role by id", zap.Error(err), zap.Int64("id", id))
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

// FindByName retrieves a role by its name
func (s *roleService) FindByName(ctx context.Context, name string) (*models.Role, error) {
	role, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to get role by name", zap.Error(err), zap.String("name", name))
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

// Save creates a new role.
//
// Any ID supplied by the caller is ignored.
func (s *roleService) Save(ctx context.Context, role *models.Role) (*models.Role, error) {
	name := strings.TrimSpace(role.Name)
	if name == "" {
		return nil, fmt.Errorf("role name is required: %w", models.ErrInvalidInput)
	}

	newRole := &models.Role{Name: name}
	if err := s.repo.Create(ctx, newRole); err != nil {
		s.logger.Error("failed to create role", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return newRole, nil
}

// Update renames an existing role
func (s *roleService) Update(ctx context.Context, id int64, role *models.Role) (*models.Role, error) {
	name := strings.TrimSpace(role.Name)
	if name == "" {
		return nil, fmt.Errorf("role name is required: %w", models.ErrInvalidInput)
	}

	if err := s.repo.Update(ctx, id, name); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to update role", zap.Error(err), zap.Int64("id", id))
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return &models.Role{ID: id, Name: name}, nil
}
