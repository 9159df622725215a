package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/usermodel/backend/internal/models"
)

var (
	roleAdmin = models.Role{ID: 1, Name: "admin"}
	roleUser  = models.Role{ID: 2, Name: "user"}
	roleData  = models.Role{ID: 3, Name: "data"}
)

// seedUsers returns the users every service test starts from
func seedUsers() []models.User {
	return []models.User{
		{
			ID:           10,
			Username:     "admin",
			PasswordHash: "hash",
			PrimaryEmail: "admin@lambdaschool.local",
			Roles: []models.UserRoles{
				{UserID: 10, Role: roleAdmin},
				{UserID: 10, Role: roleUser},
				{UserID: 10, Role: roleData},
			},
			Useremails: []models.Useremail{
				{ID: 1, UserID: 10, Useremail: "admin@email.local"},
				{ID: 2, UserID: 10, Useremail: "admin@mymail.local"},
			},
		},
		{
			ID:           20,
			Username:     "cinnamon",
			PasswordHash: "hash",
			PrimaryEmail: "cinnamon@lambdaschool.local",
			Roles: []models.UserRoles{
				{UserID: 20, Role: roleUser},
				{UserID: 20, Role: roleData},
			},
			Useremails: []models.Useremail{
				{ID: 3, UserID: 20, Useremail: "cinnamon@mymail.local"},
				{ID: 4, UserID: 20, Useremail: "hops@mymail.local"},
				{ID: 5, UserID: 20, Useremail: "bunny@email.local"},
			},
		},
		{
			ID:           30,
			Username:     "barnbarn",
			PasswordHash: "hash",
			PrimaryEmail: "barnbarn@lambdaschool.local",
			Roles: []models.UserRoles{
				{UserID: 30, Role: roleUser},
			},
			Useremails: []models.Useremail{
				{ID: 6, UserID: 30, Useremail: "barnbarn@email.local"},
			},
		},
	}
}

// mockUserRepository is an in-memory implementation of UserRepository
type mockUserRepository struct {
	users  []models.User
	nextID int64
	err    error

	createCalls       int
	updateCalls       int
	deleteCalls       int
	lastReplaceRoles  bool
	lastReplaceEmails bool
}

func newMockUserRepository(users ...models.User) *mockUserRepository {
	return &mockUserRepository{users: users, nextID: 100}
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.ID == id {
			c := copyUser(u)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("user %d not found: %w", id, models.ErrNotFound)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			c := copyUser(u)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("user %s not found: %w", username, models.ErrNotFound)
}

func (m *mockUserRepository) GetByUsernameContaining(ctx context.Context, fragment string) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []models.User
	for _, u := range m.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(fragment)) {
			result = append(result, copyUser(u))
		}
	}
	return result, nil
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, copyUser(u))
	}
	return result, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.createCalls++
	if m.err != nil {
		return m.err
	}
	m.nextID++
	user.ID = m.nextID
	for i := range user.Roles {
		user.Roles[i].UserID = user.ID
	}
	for i := range user.Useremails {
		m.nextID++
		user.Useremails[i].ID = m.nextID
		user.Useremails[i].UserID = user.ID
	}
	m.users = append(m.users, copyUser(*user))
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User, replaceRoles, replaceEmails bool) error {
	m.updateCalls++
	m.lastReplaceRoles = replaceRoles
	m.lastReplaceEmails = replaceEmails
	if m.err != nil {
		return m.err
	}
	for i, u := range m.users {
		if u.ID == user.ID {
			m.users[i] = copyUser(*user)
			return nil
		}
	}
	return fmt.Errorf("user %d not found: %w", user.ID, models.ErrNotFound)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.err != nil {
		return m.err
	}
	for i, u := range m.users {
		if u.ID == id {
			m.users = slices.Delete(m.users, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("user %d not found: %w", id, models.ErrNotFound)
}

// mockRoleResolver resolves roles from a fixed set
type mockRoleResolver struct {
	roles map[int64]models.Role
	calls []int64
}

func newMockRoleResolver() *mockRoleResolver {
	return &mockRoleResolver{
		roles: map[int64]models.Role{
			roleAdmin.ID: roleAdmin,
			roleUser.ID:  roleUser,
			roleData.ID:  roleData,
		},
	}
}

func (m *mockRoleResolver) FindRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	m.calls = append(m.calls, id)
	role, ok := m.roles[id]
	if !ok {
		return nil, fmt.Errorf("role %d not found: %w", id, models.ErrNotFound)
	}
	return &role, nil
}

func copyUser(u models.User) models.User {
	u.Roles = slices.Clone(u.Roles)
	u.Useremails = slices.Clone(u.Useremails)
	return u
}
