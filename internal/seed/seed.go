// Package seed fills an empty database with a starter set of roles and users
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

// RoleSaver looks up and creates roles
type RoleSaver interface {
	FindByName(ctx context.Context, name string) (*models.Role, error)
	Save(ctx context.Context, role *models.Role) (*models.Role, error)
}

// UserSaver lists and creates users
type UserSaver interface {
	FindAll(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
}

type seedUser struct {
	username string
	password string
	email    string
	roles    []string
	emails   []string
}

var seedRoles = []string{"admin", "user", "data"}

var seedUsers = []seedUser{
	{
		username: "admin",
		password: "password",
		email:    "admin@lambdaschool.local",
		roles:    []string{"admin", "user", "data"},
		emails:   []string{"admin@email.local", "admin@mymail.local"},
	},
	{
		username: "cinnamon",
		password: "1234567",
		email:    "cinnamon@lambdaschool.local",
		roles:    []string{"user", "data"},
		emails:   []string{"cinnamon@mymail.local", "hops@mymail.local", "bunny@email.local"},
	},
	{
		username: "barnbarn",
		password: "ILuvM4th!",
		email:    "barnbarn@lambdaschool.local",
		roles:    []string{"user"},
		emails:   []string{"barnbarn@email.local"},
	},
	{
		username: "puttat",
		password: "password",
		email:    "puttat@school.lambda",
		roles:    []string{"user"},
	},
	{
		username: "misskitty",
		password: "password",
		email:    "misskitty@school.lambda",
		roles:    []string{"user"},
	},
}

// Seeder creates the starter data through the services so roles are resolved and passwords hashed
type Seeder struct {
	roles  RoleSaver
	users  UserSaver
	logger *zap.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(roles RoleSaver, users UserSaver, logger *zap.Logger) *Seeder {
	return &Seeder{
		roles:  roles,
		users:  users,
		logger: logger,
	}
}

// Run seeds roles and users unless users already exist.
// It reports whether anything was written.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	existing, err := s.users.FindAll(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check existing users: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("database already has users, skipping seed", zap.Int("users", len(existing)))
		return false, nil
	}

	roleIDs := make(map[string]int64, len(seedRoles))
	for _, name := range seedRoles {
		id, err := s.ensureRole(ctx, name)
		if err != nil {
			return false, err
		}
		roleIDs[name] = id
	}

	for _, su := range seedUsers {
		user := &models.User{
			Username:     su.username,
			Password:     su.password,
			PrimaryEmail: su.email,
		}
		for _, name := range su.roles {
			user.Roles = append(user.Roles, models.UserRoles{Role: models.Role{ID: roleIDs[name]}})
		}
		for _, address := range su.emails {
			user.Useremails = append(user.Useremails, models.Useremail{Useremail: address})
		}

		if _, err := s.users.Save(ctx, user); err != nil {
			return false, fmt.Errorf("failed to seed user %s: %w", su.username, err)
		}
	}

	s.logger.Info("database seeded", zap.Int("roles", len(seedRoles)), zap.Int("users", len(seedUsers)))
	return true, nil
}

// ensureRole returns the ID of the named role, creating it only when it does not exist yet
func (s *Seeder) ensureRole(ctx context.Context, name string) (int64, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err == nil {
		s.logger.Debug("seed role already exists", zap.String("role", name), zap.Int64("id", role.ID))
		return role.ID, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return 0, fmt.Errorf("failed to look up role %s: %w", name, err)
	}

	role, err = s.roles.Save(ctx, &models.Role{Name: name})
	if err != nil {
		return 0, fmt.Errorf("failed to seed role %s: %w", name, err)
	}
	return role.ID, nil
}
