package handlers

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

// testUsers mirrors a small seeded data set
func testUsers() []models.User {
	admin := models.Role{ID: 1, Name: "admin"}
	data := models.Role{ID: 3, Name: "data"}
	return []models.User{
		{
			ID:           10,
			Username:     "admin",
			PasswordHash: "$2a$10$hash",
			PrimaryEmail: "admin@lambdaschool.local",
			Roles:        []models.UserRoles{{UserID: 10, Role: admin}, {UserID: 10, Role: data}},
			Useremails:   []models.Useremail{{ID: 1, UserID: 10, Useremail: "admin@email.local"}},
		},
		{
			ID:           20,
			Username:     "cinnamon",
			PasswordHash: "$2a$10$hash",
			PrimaryEmail: "cinnamon@lambdaschool.local",
			Roles:        []models.UserRoles{{UserID: 20, Role: data}},
			Useremails:   []models.Useremail{},
		},
	}
}

// mockUsersService is a mock implementation of UsersService
type mockUsersService struct {
	users []models.User
	user  *models.User
	err   error

	lastID       int64
	lastName     string
	lastFragment string
	lastUser     *models.User
	deleted      bool
}

func (m *mockUsersService) FindAll(ctx context.Context) ([]models.User, error) {
	return m.users, m.err
}

func (m *mockUsersService) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.lastID = id
	return m.user, m.err
}

func (m *mockUsersService) FindByName(ctx context.Context, username string) (*models.User, error) {
	m.lastName = username
	return m.user, m.err
}

func (m *mockUsersService) FindByNameContaining(ctx context.Context, fragment string) ([]models.User, error) {
	m.lastFragment = fragment
	return m.users, m.err
}

func (m *mockUsersService) Save(ctx context.Context, user *models.User) (*models.User, error) {
	m.lastUser = user
	return m.user, m.err
}

func (m *mockUsersService) Update(ctx context.Context, user *models.User, id int64) (*models.User, error) {
	m.lastUser = user
	m.lastID = id
	return m.user, m.err
}

func (m *mockUsersService) Delete(ctx context.Context, id int64) error {
	m.lastID = id
	if m.err == nil {
		m.deleted = true
	}
	return m.err
}

// mockRolesService is a mock implementation of RolesService
type mockRolesService struct {
	roles []models.Role
	role  *models.Role
	err   error

	lastID   int64
	lastName string
	lastRole *models.Role
}

func (m *mockRolesService) FindAll(ctx context.Context) ([]models.Role, error) {
	return m.roles, m.err
}

func (m *mockRolesService) FindRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	m.lastID = id
	return m.role, m.err
}

func (m *mockRolesService) FindByName(ctx context.Context, name string) (*models.Role, error) {
	m.lastName = name
	return m.role, m.err
}

func (m *mockRolesService) Save(ctx context.Context, role *models.Role) (*models.Role, error) {
	m.lastRole = role
	return m.role, m.err
}

func (m *mockRolesService) Update(ctx context.Context, id int64, role *models.Role) (*models.Role, error) {
	m.lastID = id
	m.lastRole = role
	return m.role, m.err
}

// mockUseremailsService is a mock implementation of UseremailsService
type mockUseremailsService struct {
	emails []models.Useremail
	email  *models.Useremail
	err    error

	lastID      int64
	lastAddress string
}

func (m *mockUseremailsService) FindAll(ctx context.Context) ([]models.Useremail, error) {
	return m.emails, m.err
}

func (m *mockUseremailsService) FindUseremailByID(ctx context.Context, id int64) (*models.Useremail, error) {
	m.lastID = id
	return m.email, m.err
}

func (m *mockUseremailsService) Delete(ctx context.Context, id int64) error {
	m.lastID = id
	return m.err
}

func (m *mockUseremailsService) Update(ctx context.Context, id int64, address string) (*models.Useremail, error) {
	m.lastID = id
	m.lastAddress = address
	return m.email, m.err
}

func (m *mockUseremailsService) Save(ctx context.Context, userID int64, address string) (*models.Useremail, error) {
	m.lastID = userID
	m.lastAddress = address
	return m.email, m.err
}

// routeRegistrar is implemented by every handler of this package
type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

func setupRouter(t *testing.T, h routeRegistrar) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func testLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}
