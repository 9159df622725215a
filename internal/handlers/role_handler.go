package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

// RolesService is the interface that wraps methods for Roles business logic.
type RolesService interface {
	// Method FindAll retrieves every role.
	FindAll(ctx context.Context) ([]models.Role, error)
	// Method FindRoleByID retrieves a role by its ID.
	//
	// If role with such ID does not exist, the error wrapping models.ErrNotFound will be returned together with "nil" value.
	FindRoleByID(ctx context.Context, id int64) (*models.Role, error)
	// Method FindByName retrieves a role by its name.
	//
	// If role with such name does not exist, the error wrapping models.ErrNotFound will be returned together with "nil" value.
	FindByName(ctx context.Context, name string) (*models.Role, error)
	// Method Save creates a new role and returns it with its generated ID.
	Save(ctx context.Context, role *models.Role) (*models.Role, error)
	// Method Update renames the role identified by "id".
	//
	// If role with such ID does not exist, the error wrapping models.ErrNotFound will be returned.
	Update(ctx context.Context, id int64, role *models.Role) (*models.Role, error)
}

// RolesHandler handles HTTP requests for roles
type RolesHandler struct {
	BaseHandler
	service RolesService
}

// NewRolesHandler creates a new roles handler
func NewRolesHandler(svc RolesService, logger *zap.Logger) *RolesHandler {
	return &RolesHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all roles handler routes
func (h *RolesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/roles", func(r chi.Router) {
		r.Get("/roles", h.ListRoles)
		r.Post("/role", h.AddNewRole)
		r.Get("/role/{roleid}", h.GetRoleByID)
		r.Put("/role/{roleid}", h.PutUpdateRole)
		r.Get("/role/name/{roleName}", h.GetRoleByName)
	})
}

// ListRoles handles GET /roles/roles
// @Summary List all roles
// @Tags roles
// @Produce json
// @Success 200 {array} models.Role
// @Failure 500 {object} map[string]string
// @Router /roles/roles [get]
func (h *RolesHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.FindAll(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "roles not found", "failed to get roles")
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}

	h.respondJSON(w, http.StatusOK, roles)
}

// GetRoleByID handles GET /roles/role/{roleid}
// @Summary Get role by ID
// @Tags roles
// @Produce json
// @Param roleid path int true "Role ID"
// @Success 200 {object} models.Role
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /roles/role/{roleid} [get]
func (h *RolesHandler) GetRoleByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "roleid")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := h.service.FindRoleByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "role not found", "failed to get role")
		return
	}

	h.respondJSON(w, http.StatusOK, role)
}

// GetRoleByName handles GET /roles/role/name/{roleName}
// @Summary Get role by name
// @Tags roles
// @Produce json
// @Param roleName path string true "Role name"
// @Success 200 {object} models.Role
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /roles/role/name/{roleName} [get]
func (h *RolesHandler) GetRoleByName(w http.ResponseWriter, r *http.Request) {
	role, err := h.service.FindByName(r.Context(), chi.URLParam(r, "roleName"))
	if err != nil {
		h.respondServiceError(w, err, "role not found", "failed to get role")
		return
	}

	h.respondJSON(w, http.StatusOK, role)
}

// AddNewRole handles POST /roles/role
// @Summary Create role
// @Tags roles
// @Accept json
// @Produce json
// @Param role body models.Role true "New role"
// @Success 201 {object} models.Role
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /roles/role [post]
func (h *RolesHandler) AddNewRole(w http.ResponseWriter, r *http.Request) {
	var role models.Role
	if err := h.decodeJSON(r, &role); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Save(r.Context(), &role)
	if err != nil {
		h.respondServiceError(w, err, "role not found", "failed to create role")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/roles/role/%d", created.ID))
	h.respondJSON(w, http.StatusCreated, created)
}

// PutUpdateRole handles PUT /roles/role/{roleid}
// @Summary Rename role
// @Tags roles
// @Accept json
// @Produce json
// @Param roleid path int true "Role ID"
// @Param role body models.Role true "Role with the new name"
// @Success 200 {object} models.Role
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /roles/role/{roleid} [put]
func (h *RolesHandler) PutUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "roleid")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var role models.Role
	if err := h.decodeJSON(r, &role); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), id, &role)
	if err != nil {
		h.respondServiceError(w, err, "role not found", "failed to update role")
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}
