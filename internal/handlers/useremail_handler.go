package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

// UseremailsService is the interface that wraps methods for Useremails business logic.
type UseremailsService interface {
	// Method FindAll retrieves every email.
	FindAll(ctx context.Context) ([]models.Useremail, error)
	// Method FindUseremailByID retrieves an email by its ID.
	//
	// If email with such ID does not exist, the error wrapping models.ErrNotFound will be returned together with "nil" value.
	FindUseremailByID(ctx context.Context, id int64) (*models.Useremail, error)
	// Method Delete removes an email.
	//
	// If email with such ID does not exist, the error wrapping models.ErrNotFound will be returned.
	Delete(ctx context.Context, id int64) error
	// Method Update replaces the address of an email.
	//
	// If email with such ID does not exist, the error wrapping models.ErrNotFound will be returned.
	Update(ctx context.Context, id int64, address string) (*models.Useremail, error)
	// Method Save adds a new email to the user identified by "userID".
	//
	// If user with such ID does not exist, the error wrapping models.ErrNotFound will be returned.
	Save(ctx context.Context, userID int64, address string) (*models.Useremail, error)
}

// UseremailsHandler handles HTTP requests for user emails
type UseremailsHandler struct {
	BaseHandler
	service UseremailsService
}

// NewUseremailsHandler creates a new user emails handler
func NewUseremailsHandler(svc UseremailsService, logger *zap.Logger) *UseremailsHandler {
	return &UseremailsHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all user emails handler routes
func (h *UseremailsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/useremails", func(r chi.Router) {
		r.Get("/useremails", h.ListAllUseremails)
		r.Get("/useremail/{useremailid}", h.GetUseremailByID)
		r.Delete("/useremail/{useremailid}", h.DeleteUseremailByID)
		r.Put("/useremail/{useremailid}/email/{emailaddress}", h.UpdateUseremail)
		r.Post("/user/{userid}/email/{emailaddress}", h.AddNewUseremail)
	})
}

// ListAllUseremails handles GET /useremails/useremails
// @Summary List all user emails
// @Tags useremails
// @Produce json
// @Success 200 {array} models.Useremail
// @Failure 500 {object} map[string]string
// @Router /useremails/useremails [get]
func (h *UseremailsHandler) ListAllUseremails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.service.FindAll(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "useremails not found", "failed to get useremails")
		return
	}
	if emails == nil {
		emails = []models.Useremail{}
	}

	h.respondJSON(w, http.StatusOK, emails)
}

// GetUseremailByID handles GET /useremails/useremail/{useremailid}
// @Summary Get user email by ID
// @Tags useremails
// @Produce json
// @Param useremailid path int true "Useremail ID"
// @Success 200 {object} models.Useremail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /useremails/useremail/{useremailid} [get]
func (h *UseremailsHandler) GetUseremailByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "useremailid")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	email, err := h.service.FindUseremailByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "useremail not found", "failed to get useremail")
		return
	}

	h.respondJSON(w, http.StatusOK, email)
}

// DeleteUseremailByID handles DELETE /useremails/useremail/{useremailid}
// @Summary Delete user email
// @Tags useremails
// @Param useremailid path int true "Useremail ID"
// @Success 200
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /useremails/useremail/{useremailid} [delete]
func (h *UseremailsHandler) DeleteUseremailByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "useremailid")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "useremail not found", "failed to delete useremail")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// UpdateUseremail handles PUT /useremails/useremail/{useremailid}/email/{emailaddress}
// @Summary Change user email address
// @Tags useremails
// @Produce json
// @Param useremailid path int true "Useremail ID"
// @Param emailaddress path string true "New address"
// @Success 200 {object} models.Useremail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /useremails/useremail/{useremailid}/email/{emailaddress} [put]
func (h *UseremailsHandler) UpdateUseremail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "useremailid")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	email, err := h.service.Update(r.Context(), id, chi.URLParam(r, "emailaddress"))
	if err != nil {
		h.respondServiceError(w, err, "useremail not found", "failed to update useremail")
		return
	}

	h.respondJSON(w, http.StatusOK, email)
}

// AddNewUseremail handles POST /useremails/user/{userid}/email/{emailaddress}
// @Summary Add email to user
// @Tags useremails
// @Produce json
// @Param userid path int true "User ID"
// @Param emailaddress path string true "Address"
// @Success 201 {object} models.Useremail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /useremails/user/{userid}/email/{emailaddress} [post]
func (h *UseremailsHandler) AddNewUseremail(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userid")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	email, err := h.service.Save(r.Context(), userID, chi.URLParam(r, "emailaddress"))
	if err != nil {
		h.respondServiceError(w, err, "user not found", "failed to create useremail")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/useremails/useremail/%d", email.ID))
	h.respondJSON(w, http.StatusCreated, email)
}
