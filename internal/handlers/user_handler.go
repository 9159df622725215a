package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

// UsersService is the interface that wraps methods for Users business logic.
type UsersService interface {
	// Method FindAll retrieves every user together with its roles and emails.
	FindAll(ctx context.Context) ([]models.User, error)
	// Method FindUserByID retrieves a user by its ID.
	//
	// If user with such ID does not exist, the error wrapping models.ErrNotFound will be returned together with "nil" value.
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	// Method FindByName retrieves a user by its exact username.
	//
	// If user with such username does not exist, the error wrapping models.ErrNotFound will be returned together with "nil" value.
	FindByName(ctx context.Context, username string) (*models.User, error)
	// Method FindByNameContaining retrieves users whose username contains "fragment", ignoring case.
	//
	// No match results in an empty slice and no error.
	FindByNameContaining(ctx context.Context, fragment string) ([]models.User, error)
	// Method Save creates a new user and returns it with its generated ID.
	//
	// Referenced roles are resolved by ID; an unknown role results in the error wrapping models.ErrNotFound.
	// Missing username or password results in the error wrapping models.ErrInvalidInput.
	Save(ctx context.Context, user *models.User) (*models.User, error)
	// Method Update merges "user" into the stored user identified by "id" and returns the result.
	//
	// Empty scalar fields keep the stored values, non-empty role and email lists replace the stored ones.
	// If the user or a referenced role does not exist, the error wrapping models.ErrNotFound will be returned.
	Update(ctx context.Context, user *models.User, id int64) (*models.User, error)
	// Method Delete removes a user with its role associations and emails.
	//
	// If user with such ID does not exist, the error wrapping models.ErrNotFound will be returned.
	Delete(ctx context.Context, id int64) error
}

// UsersHandler handles HTTP requests for users
type UsersHandler struct {
	BaseHandler
	service UsersService
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(svc UsersService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all users handler routes
func (h *UsersHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/users", h.ListAllUsers)
		r.Post("/user", h.AddNewUser)
		r.Get("/user/{userid}", h.GetUserByID)
		r.Put("/user/{userid}", h.UpdateFullUser)
		r.Patch("/user/{userid}", h.UpdateUser)
		r.Delete("/user/{userid}", h.DeleteUserByID)
		r.Get("/user/name/{userName}", h.GetUserByName)
		r.Get("/user/name/like/{userName}", h.GetUserLikeName)
	})
}

// ListAllUsers handles GET /users/users
// @Summary List all users
// @Description Get every user with its roles and emails
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} map[string]string
// @Router /users/users [get]
func (h *UsersHandler) ListAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.FindAll(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "users not found", "failed to get users")
		return
	}

	h.respondJSON(w, http.StatusOK, users)
}

// GetUserByID handles GET /users/user/{userid}
// @Summary Get user by ID
// @Description Get a user with its roles and emails. A missing user is answered with an empty 404 response.
// @Tags users
// @Produce json
// @Param userid path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 404 "User not found"
// @Failure 500 {object} map[string]string
// @Router /users/user/{userid} [get]
func (h *UsersHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userid")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.FindUserByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, err, "failed to get user")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// GetUserByName handles GET /users/user/name/{userName}
// @Summary Get user by name
// @Description Get a user by its exact username. A missing user is answered with an empty 404 response.
// @Tags users
// @Produce json
// @Param userName path string true "Username"
// @Success 200 {object} models.User
// @Failure 404 "User not found"
// @Failure 500 {object} map[string]string
// @Router /users/user/name/{userName} [get]
func (h *UsersHandler) GetUserByName(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.FindByName(r.Context(), chi.URLParam(r, "userName"))
	if err != nil {
		h.respondLookupError(w, err, "failed to get user")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// GetUserLikeName handles GET /users/user/name/like/{userName}
// @Summary Find users by name fragment
// @Description Get users whose username contains the fragment, ignoring case
// @Tags users
// @Produce json
// @Param userName path string true "Username fragment"
// @Success 200 {array} models.User
// @Failure 500 {object} map[string]string
// @Router /users/user/name/like/{userName} [get]
func (h *UsersHandler) GetUserLikeName(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.FindByNameContaining(r.Context(), chi.URLParam(r, "userName"))
	if err != nil {
		h.respondServiceError(w, err, "users not found", "failed to get users")
		return
	}

	h.respondJSON(w, http.StatusOK, users)
}

// AddNewUser handles POST /users/user
// @Summary Create user
// @Description Create a user. Roles are referenced by ID only, any ID in the body is ignored.
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.User true "New user"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/user [post]
func (h *UsersHandler) AddNewUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := h.decodeJSON(r, &user); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Save(r.Context(), &user)
	if err != nil {
		h.respondServiceError(w, err, "role not found", "failed to create user")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/users/user/%d", created.ID))
	h.respondJSON(w, http.StatusCreated, created)
}

// UpdateFullUser handles PUT /users/user/{userid}
// @Summary Update user
// @Description Update a user. Empty fields keep their stored values, non-empty role and email lists replace the stored ones.
// @Tags users
// @Accept json
// @Produce json
// @Param userid path int true "User ID"
// @Param user body models.User true "User fields"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/user/{userid} [put]
func (h *UsersHandler) UpdateFullUser(w http.ResponseWriter, r *http.Request) {
	h.update(w, r)
}

// UpdateUser handles PATCH /users/user/{userid}
// @Summary Patch user
// @Description Same merge semantics as PUT
// @Tags users
// @Accept json
// @Produce json
// @Param userid path int true "User ID"
// @Param user body models.User true "User fields"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/user/{userid} [patch]
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	h.update(w, r)
}

// DeleteUserByID handles DELETE /users/user/{userid}
// @Summary Delete user
// @Description Delete a user with its role associations and emails
// @Tags users
// @Param userid path int true "User ID"
// @Success 200
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/user/{userid} [delete]
func (h *UsersHandler) DeleteUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userid")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "user not found", "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userid")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := h.decodeJSON(r, &user); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), &user, id)
	if err != nil {
		h.respondServiceError(w, err, "user or role not found", "failed to update user")
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}

// respondLookupError answers a failed single user lookup; a missing user gets a 404 with no body
func (h *UsersHandler) respondLookupError(w http.ResponseWriter, err error, failureMessage string) {
	if errors.Is(err, models.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.respondServiceError(w, err, "user not found", failureMessage)
}
