package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/usermodel/backend/internal/models"
)

func TestUseremailsHandler_ListAllUseremails(t *testing.T) {
	svc := &mockUseremailsService{emails: []models.Useremail{
		{ID: 1, UserID: 10, Useremail: "admin@email.local"},
		{ID: 2, UserID: 10, Useremail: "admin@mymail.local"},
	}}
	router := setupRouter(t, NewUseremailsHandler(svc, testLogger()))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/useremails/useremails", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"useremailid":1,"useremail":"admin@email.local"},{"useremailid":2,"useremail":"admin@mymail.local"}]`, w.Body.String())
}

func TestUseremailsHandler_GetUseremailByID(t *testing.T) {
	tests := []struct {
		name           string
		svc            *mockUseremailsService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			svc:            &mockUseremailsService{email: &models.Useremail{ID: 4, UserID: 20, Useremail: "hops@mymail.local"}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"useremailid":4,"useremail":"hops@mymail.local"}`,
		},
		{
			name:           "not found",
			svc:            &mockUseremailsService{err: notFound("useremail 4")},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"useremail not found"}`,
		},
		{
			name:           "service error",
			svc:            &mockUseremailsService{err: errDatabase},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to get useremail"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(t, NewUseremailsHandler(tt.svc, testLogger()))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/useremails/useremail/4", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, int64(4), tt.svc.lastID)
		})
	}
}

func TestUseremailsHandler_DeleteUseremailByID(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "not found", err: notFound("useremail 5"), expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockUseremailsService{err: tt.err}
			router := setupRouter(t, NewUseremailsHandler(svc, testLogger()))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/useremails/useremail/5", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, int64(5), svc.lastID)
		})
	}
}

func TestUseremailsHandler_UpdateUseremail(t *testing.T) {
	svc := &mockUseremailsService{email: &models.Useremail{ID: 5, UserID: 20, Useremail: "bunny@email.local"}}
	router := setupRouter(t, NewUseremailsHandler(svc, testLogger()))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/useremails/useremail/5/email/bunny@email.local", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), svc.lastID)
	assert.Equal(t, "bunny@email.local", svc.lastAddress)
	assert.JSONEq(t, `{"useremailid":5,"useremail":"bunny@email.local"}`, w.Body.String())
}

func TestUseremailsHandler_AddNewUseremail(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockUseremailsService{email: &models.Useremail{ID: 42, UserID: 30, Useremail: "favbun@hops.local"}}
		router := setupRouter(t, NewUseremailsHandler(svc, testLogger()))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/useremails/user/30/email/favbun@hops.local", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/useremails/useremail/42", w.Header().Get("Location"))
		assert.Equal(t, int64(30), svc.lastID)
		assert.Equal(t, "favbun@hops.local", svc.lastAddress)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := &mockUseremailsService{err: notFound("user 999")}
		router := setupRouter(t, NewUseremailsHandler(svc, testLogger()))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/useremails/user/999/email/favbun@hops.local", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())
	})

	t.Run("invalid user id", func(t *testing.T) {
		svc := &mockUseremailsService{}
		router := setupRouter(t, NewUseremailsHandler(svc, testLogger()))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/useremails/user/zero/email/favbun@hops.local", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, svc.lastAddress)
	})
}
