package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

type useremailRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUseremailRepository creates a new useremail repository
func NewUseremailRepository(db *sql.DB, logger *zap.Logger) *useremailRepository {
	return &useremailRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves every email ordered by ID
func (r *useremailRepository) GetAll(ctx context.Context) ([]models.Useremail, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, useremail FROM useremails ORDER BY id`)
	if err != nil {
		r.logger.Error("failed to query useremails", zap.Error(err))
		return nil, fmt.Errorf("failed to query useremails: %w", err)
	}
	defer rows.Close()

	emails := []models.Useremail{}
	for rows.Next() {
		var e models.Useremail
		if err := rows.Scan(&e.ID, &e.UserID, &e.Useremail); err != nil {
			r.logger.Error("failed to scan useremail", zap.Error(err))
			return nil, fmt.Errorf("failed to scan useremail: %w", err)
		}
		emails = append(emails, e)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return emails, nil
}

// GetByID retrieves an email by its ID
func (r *useremailRepository) GetByID(ctx context.Context, id int64) (*models.Useremail, error) {
	e := &models.Useremail{}
	err := r.db.QueryRowContext(ctx, `SELECT id, user_id, useremail FROM useremails WHERE id = ?`, id).
		Scan(&e.ID, &e.UserID, &e.Useremail)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("useremail %d not found: %w", id, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get useremail by id", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get useremail by id: %w", err)
	}
	return e, nil
}

// Create inserts a new email for its owning user and sets the generated ID
func (r *useremailRepository) Create(ctx context.Context, e *models.Useremail) error {
	result, err := r.db.ExecContext(ctx, `INSERT INTO useremails (user_id, useremail) VALUES (?, ?)`, e.UserID, e.Useremail)
	if err != nil {
		r.logger.Error("failed to create useremail", zap.Error(err), zap.Int64("userID", e.UserID))
		return fmt.Errorf("failed to create useremail: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	e.ID = id
	return nil
}

// Update replaces the address of an email
func (r *useremailRepository) Update(ctx context.Context, id int64, address string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE useremails SET useremail = ? WHERE id = ?`, address, id)
	if err != nil {
		r.logger.Error("failed to update useremail", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to update useremail: %w", err)
	}
	return requireAffected(result, fmt.Sprintf("useremail %d", id))
}

// Delete removes an email by its ID
func (r *useremailRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM useremails WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete useremail", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to delete useremail: %w", err)
	}
	return requireAffected(result, fmt.Sprintf("useremail %d", id))
}
