package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/usermodel/backend/internal/middleware"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

func newTestRouter(t *testing.T, db Pinger) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewRouter(RouterOptions{
		Logger:         testLogger(),
		AllowedOrigins: []string{"*"},
		Registerer:     reg,
		Gatherer:       reg,
		DB:             db,
		Users:          &mockUsersService{users: testUsers()},
		Roles:          &mockRolesService{},
		Useremails:     &mockUseremailsService{},
	})
}

func TestNewRouter_Routes(t *testing.T) {
	router := newTestRouter(t, &mockPinger{})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{name: "users", path: "/users/users", expectedStatus: http.StatusOK},
		{name: "roles", path: "/roles/roles", expectedStatus: http.StatusOK},
		{name: "useremails", path: "/useremails/useremails", expectedStatus: http.StatusOK},
		{name: "health", path: "/healthz", expectedStatus: http.StatusOK},
		{name: "ready", path: "/readyz", expectedStatus: http.StatusOK},
		{name: "unknown", path: "/nowhere", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestNewRouter_ReadyzDatabaseDown(t *testing.T) {
	router := newTestRouter(t, &mockPinger{err: errors.New("connection refused")})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNewRouter_Metrics(t *testing.T) {
	router := newTestRouter(t, nil)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/users", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `usermodel_http_requests_total{method="GET",route="/users/users",status="200"} 1`)
}
