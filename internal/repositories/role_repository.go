package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

type roleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *sql.DB, logger *zap.Logger) *roleRepository {
	return &roleRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a role by its ID
func (r *roleRepository) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM roles WHERE id = ?`, id).Scan(&role.ID, &role.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("role %d not found: %w", id, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get role by id", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get role by id: %w", err)
	}
	return role, nil
}

// GetByName retrieves a role by its name
func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM roles WHERE name = ?`, name).Scan(&role.ID, &role.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("role %s not found: %w", name, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get role by name", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return role, nil
}

// GetAll retrieves every role ordered by ID
func (r *roleRepository) GetAll(ctx context.Context) ([]models.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM roles ORDER BY id`)
	if err != nil {
		r.logger.Error("failed to query roles", zap.Error(err))
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			r.logger.Error("failed to scan role", zap.Error(err))
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return roles, nil
}

// Create inserts a new role and sets its generated ID
func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	result, err := r.db.ExecContext(ctx, `INSERT INTO roles (name) VALUES (?)`, role.Name)
	if err != nil {
		r.logger.Error("failed to create role", zap.Error(err), zap.String("name", role.Name))
		return fmt.Errorf("failed to create role: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	role.ID = id
	return nil
}

// Update renames a role
func (r *roleRepository) Update(ctx context.Context, id int64, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE roles SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		r.logger.Error("failed to update role", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to update role: %w", err)
	}
	return requireAffected(result, fmt.Sprintf("role %d", id))
}
