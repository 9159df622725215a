package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

// mockUseremailRepository is a mock implementation of UseremailRepository
type mockUseremailRepository struct {
	email       *models.Useremail
	emails      []models.Useremail
	getErr      error
	writeErr    error
	createID    int64
	lastID      int64
	lastAddress string
	created     *models.Useremail
	writeCalls  int
}

func (m *mockUseremailRepository) GetAll(ctx context.Context) ([]models.Useremail, error) {
	return m.emails, m.getErr
}

func (m *mockUseremailRepository) GetByID(ctx context.Context, id int64) (*models.Useremail, error) {
	m.lastID = id
	return m.email, m.getErr
}

func (m *mockUseremailRepository) Create(ctx context.Context, email *models.Useremail) error {
	m.writeCalls++
	if m.writeErr != nil {
		return m.writeErr
	}
	email.ID = m.createID
	m.created = email
	return nil
}

func (m *mockUseremailRepository) Update(ctx context.Context, id int64, address string) error {
	m.writeCalls++
	m.lastID = id
	m.lastAddress = address
	return m.writeErr
}

func (m *mockUseremailRepository) Delete(ctx context.Context, id int64) error {
	m.writeCalls++
	m.lastID = id
	return m.writeErr
}

func newTestUseremailService(repo *mockUseremailRepository) *useremailService {
	logger, _ := zap.NewDevelopment()
	return NewUseremailService(repo, newMockUserRepository(seedUsers()...), logger)
}

func TestNewUseremailService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := &mockUseremailRepository{}
	users := newMockUserRepository()

	svc := NewUseremailService(repo, users, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, repo, svc.repo)
	assert.Equal(t, users, svc.users)
	assert.Equal(t, logger, svc.logger)
}

func TestUseremailService_FindAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		emails := []models.Useremail{{ID: 1, UserID: 10, Useremail: "admin@email.local"}}
		svc := newTestUseremailService(&mockUseremailRepository{emails: emails})

		result, err := svc.FindAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, emails, result)
	})

	t.Run("repository error", func(t *testing.T) {
		svc := newTestUseremailService(&mockUseremailRepository{getErr: errors.New("database error")})

		result, err := svc.FindAll(context.Background())

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestUseremailService_FindUseremailByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		email := &models.Useremail{ID: 4, UserID: 20, Useremail: "hops@mymail.local"}
		repo := &mockUseremailRepository{email: email}
		svc := newTestUseremailService(repo)

		result, err := svc.FindUseremailByID(context.Background(), 4)

		require.NoError(t, err)
		assert.Equal(t, email, result)
		assert.Equal(t, int64(4), repo.lastID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestUseremailService(&mockUseremailRepository{getErr: fmt.Errorf("useremail not found: %w", models.ErrNotFound)})

		result, err := svc.FindUseremailByID(context.Background(), 4)

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, result)
	})
}

func TestUseremailService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockUseremailRepository{}
		svc := newTestUseremailService(repo)

		err := svc.Delete(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, int64(5), repo.lastID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockUseremailRepository{writeErr: fmt.Errorf("useremail not found: %w", models.ErrNotFound)}
		svc := newTestUseremailService(repo)

		err := svc.Delete(context.Background(), 5)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestUseremailService_Update(t *testing.T) {
	tests := []struct {
		name          string
		address       string
		repo          *mockUseremailRepository
		expectedError error
		expectWrite   bool
	}{
		{
			name:        "success lowercases address",
			address:     " Bunny@Email.Local ",
			repo:        &mockUseremailRepository{email: &models.Useremail{ID: 5, UserID: 20, Useremail: "bunny@email.local"}},
			expectWrite: true,
		},
		{
			name:          "blank address",
			address:       "  ",
			repo:          &mockUseremailRepository{},
			expectedError: models.ErrInvalidInput,
		},
		{
			name:          "not found",
			address:       "bunny@email.local",
			repo:          &mockUseremailRepository{writeErr: fmt.Errorf("useremail not found: %w", models.ErrNotFound)},
			expectedError: models.ErrNotFound,
			expectWrite:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestUseremailService(tt.repo)

			email, err := svc.Update(context.Background(), 5, tt.address)

			assert.Equal(t, tt.expectWrite, tt.repo.writeCalls == 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, email)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "bunny@email.local", tt.repo.lastAddress)
			assert.Equal(t, "bunny@email.local", email.Useremail)
		})
	}
}

func TestUseremailService_Save(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockUseremailRepository{createID: 42}
		svc := newTestUseremailService(repo)

		email, err := svc.Save(context.Background(), 30, "Favbun@Hops.local")

		require.NoError(t, err)
		assert.Equal(t, &models.Useremail{ID: 42, UserID: 30, Useremail: "favbun@hops.local"}, email)
		assert.Equal(t, 1, repo.writeCalls)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &mockUseremailRepository{createID: 42}
		svc := newTestUseremailService(repo)

		email, err := svc.Save(context.Background(), 999, "favbun@hops.local")

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, email)
		assert.Equal(t, 0, repo.writeCalls)
	})

	t.Run("blank address", func(t *testing.T) {
		repo := &mockUseremailRepository{}
		svc := newTestUseremailService(repo)

		email, err := svc.Save(context.Background(), 30, "")

		assert.ErrorIs(t, err, models.ErrInvalidInput)
		assert.Nil(t, email)
		assert.Equal(t, 0, repo.writeCalls)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mockUseremailRepository{writeErr: errors.New("database error")}
		svc := newTestUseremailService(repo)

		email, err := svc.Save(context.Background(), 30, "favbun@hops.local")

		assert.Error(t, err)
		assert.Nil(t, email)
	})
}
