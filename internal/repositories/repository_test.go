package repositories

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupMockDB creates a mock database and a development logger
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *zap.Logger) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	return db, mock, logger
}

var (
	userColumns      = []string{"id", "username", "password_hash", "primary_email"}
	userRoleColumns  = []string{"user_id", "id", "name"}
	useremailColumns = []string{"id", "user_id", "useremail"}
)

const (
	userByIDQuery       = `SELECT id, username, password_hash, primary_email FROM users WHERE id = \?`
	userByNameQuery     = `SELECT id, username, password_hash, primary_email FROM users WHERE username = \? COLLATE utf8mb4_bin`
	userContainingQuery = `SELECT id, username, password_hash, primary_email FROM users WHERE LOWER\(username\) LIKE \? ORDER BY id`
	allUsersQuery       = `SELECT id, username, password_hash, primary_email FROM users ORDER BY id`
	userRolesQuery      = `SELECT ur.user_id, r.id, r.name FROM user_roles ur JOIN roles r ON r.id = ur.role_id WHERE ur.user_id IN`
	userEmailsQuery     = `SELECT id, user_id, useremail FROM useremails WHERE user_id IN`
)
