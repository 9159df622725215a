package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

const selectUsers = `
	SELECT id, username, password_hash, primary_email
	FROM users
`

// likeEscaper escapes LIKE wildcards so user input is matched literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a user with roles and emails by its ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	users, err := r.queryUsers(ctx, selectUsers+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %d not found: %w", id, models.ErrNotFound)
	}
	return &users[0], nil
}

// GetByUsername retrieves a user by exact username.
// The comparison is forced to a binary collation so "Admin" never matches "admin".
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := r.queryUsers(ctx, selectUsers+" WHERE username = ? COLLATE utf8mb4_bin", username)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s not found: %w", username, models.ErrNotFound)
	}
	return &users[0], nil
}

// GetByUsernameContaining retrieves users whose username contains fragment, ignoring case
func (r *userRepository) GetByUsernameContaining(ctx context.Context, fragment string) ([]models.User, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(fragment)) + "%"
	return r.queryUsers(ctx, selectUsers+" WHERE LOWER(username) LIKE ? ORDER BY id", pattern)
}

// GetAll retrieves every user in insertion order
func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	return r.queryUsers(ctx, selectUsers+" ORDER BY id")
}

// Create inserts a user together with its role associations and emails.
//
// Generated identifiers are written back to the passed user and its emails.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (username, password_hash, primary_email)
		VALUES (?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query, user.Username, user.PasswordHash, user.PrimaryEmail)
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err), zap.String("username", user.Username))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = id

	if err := r.insertRoles(ctx, tx, user); err != nil {
		return err
	}
	if err := r.insertEmails(ctx, tx, user); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Update writes the scalar fields of a user and optionally replaces its associations.
//
// When replaceRoles is true all user_roles rows of the user are replaced by user.Roles.
// When replaceEmails is true all useremails rows of the user are replaced by user.Useremails.
// If the user does not exist, the error wraps models.ErrNotFound.
func (r *userRepository) Update(ctx context.Context, user *models.User, replaceRoles, replaceEmails bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE users
		SET username = ?, password_hash = ?, primary_email = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, query, user.Username, user.PasswordHash, user.PrimaryEmail, user.ID)
	if err != nil {
		r.logger.Error("failed to update user", zap.Error(err), zap.Int64("id", user.ID))
		return fmt.Errorf("failed to update user: %w", err)
	}
	if err := requireAffected(result, fmt.Sprintf("user %d", user.ID)); err != nil {
		return err
	}

	if replaceRoles {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = ?`, user.ID); err != nil {
			r.logger.Error("failed to delete user roles", zap.Error(err), zap.Int64("id", user.ID))
			return fmt.Errorf("failed to delete user roles: %w", err)
		}
		if err := r.insertRoles(ctx, tx, user); err != nil {
			return err
		}
	}

	if replaceEmails {
		if _, err := tx.ExecContext(ctx, `DELETE FROM useremails WHERE user_id = ?`, user.ID); err != nil {
			r.logger.Error("failed to delete user emails", zap.Error(err), zap.Int64("id", user.ID))
			return fmt.Errorf("failed to delete user emails: %w", err)
		}
		if err := r.insertEmails(ctx, tx, user); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete removes a user with its emails and role associations in one transaction
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM useremails WHERE user_id = ?`, id); err != nil {
		r.logger.Error("failed to delete user emails", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to delete user emails: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = ?`, id); err != nil {
		r.logger.Error("failed to delete user roles", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to delete user roles: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete user", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := requireAffected(result, fmt.Sprintf("user %d", id)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertRoles batch inserts the user_roles rows of a user, recording each role's sort order
func (r *userRepository) insertRoles(ctx context.Context, tx *sql.Tx, user *models.User) error {
	if len(user.Roles) == 0 {
		return nil
	}

	placeholders := make([]string, len(user.Roles))
	args := make([]any, 0, len(user.Roles)*3)
	for i := range user.Roles {
		user.Roles[i].UserID = user.ID
		placeholders[i] = "(?, ?, ?)"
		args = append(args, user.ID, user.Roles[i].Role.ID, i)
	}

	query := fmt.Sprintf(`INSERT INTO user_roles (user_id, role_id, sort_order) VALUES %s`, strings.Join(placeholders, ","))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("failed to insert user roles", zap.Error(err), zap.Int64("id", user.ID))
		return fmt.Errorf("failed to insert user roles: %w", err)
	}
	return nil
}

// insertEmails inserts the useremails rows of a user one by one to collect their IDs
func (r *userRepository) insertEmails(ctx context.Context, tx *sql.Tx, user *models.User) error {
	for i := range user.Useremails {
		email := &user.Useremails[i]
		email.UserID = user.ID

		result, err := tx.ExecContext(ctx, `INSERT INTO useremails (user_id, useremail) VALUES (?, ?)`, user.ID, email.Useremail)
		if err != nil {
			r.logger.Error("failed to insert user email", zap.Error(err), zap.Int64("id", user.ID))
			return fmt.Errorf("failed to insert user email: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		email.ID = id
	}
	return nil
}

// queryUsers runs a users query and attaches the associations of every returned user
func (r *userRepository) queryUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query users", zap.Error(err))
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user := models.User{
			Roles:      []models.UserRoles{},
			Useremails: []models.Useremail{},
		}
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.PrimaryEmail); err != nil {
			r.logger.Error("failed to scan user", zap.Error(err))
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	rows.Close()

	if err := r.loadAssociations(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

// loadAssociations fills roles and emails of the given users with two batch queries
func (r *userRepository) loadAssociations(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	index := make(map[int64]int, len(users))
	placeholders := make([]string, len(users))
	args := make([]any, len(users))
	for i, u := range users {
		index[u.ID] = i
		placeholders[i] = "?"
		args[i] = u.ID
	}
	in := strings.Join(placeholders, ",")

	roleQuery := fmt.Sprintf(`
		SELECT ur.user_id, r.id, r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id IN (%s)
		ORDER BY ur.user_id, ur.sort_order, r.id
	`, in)

	rows, err := r.db.QueryContext(ctx, roleQuery, args...)
	if err != nil {
		r.logger.Error("failed to query user roles", zap.Error(err))
		return fmt.Errorf("failed to query user roles: %w", err)
	}
	for rows.Next() {
		var ur models.UserRoles
		if err := rows.Scan(&ur.UserID, &ur.Role.ID, &ur.Role.Name); err != nil {
			rows.Close()
			r.logger.Error("failed to scan user role", zap.Error(err))
			return fmt.Errorf("failed to scan user role: %w", err)
		}
		if i, ok := index[ur.UserID]; ok {
			users[i].Roles = append(users[i].Roles, ur)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating user roles: %w", err)
	}
	rows.Close()

	emailQuery := fmt.Sprintf(`
		SELECT id, user_id, useremail
		FROM useremails
		WHERE user_id IN (%s)
		ORDER BY id
	`, in)

	rows, err = r.db.QueryContext(ctx, emailQuery, args...)
	if err != nil {
		r.logger.Error("failed to query user emails", zap.Error(err))
		return fmt.Errorf("failed to query user emails: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e models.Useremail
		if err := rows.Scan(&e.ID, &e.UserID, &e.Useremail); err != nil {
			r.logger.Error("failed to scan user email", zap.Error(err))
			return fmt.Errorf("failed to scan user email: %w", err)
		}
		if i, ok := index[e.UserID]; ok {
			users[i].Useremails = append(users[i].Useremails, e)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating user emails: %w", err)
	}
	return nil
}

// requireAffected turns a zero row count into a not found error for subject
func requireAffected(result sql.Result, subject string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s not found: %w", subject, models.ErrNotFound)
	}
	return nil
}
