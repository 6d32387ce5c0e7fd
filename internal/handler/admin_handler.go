package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"assignportal/internal/auth"
	apperrors "assignportal/internal/errors"
	"assignportal/internal/model"
	"assignportal/internal/response"
	"assignportal/internal/service"
)

// AdminHandler handles the admin-facing endpoints.
type AdminHandler struct {
	accounts    service.AccountService
	assignments service.AssignmentService
	log         *logrus.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(accounts service.AccountService, assignments service.AssignmentService, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		accounts:    accounts,
		assignments: assignments,
		log:         log,
	}
}

// Register godoc
// @Summary Register a new admin account
// @Tags admins
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admins/register [post]
func (h *AdminHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
	}

	user, err := h.accounts.Register(c.Request().Context(), req.Username, req.Password, model.RoleAdmin)
	if err != nil {
		h.log.WithError(err).Error("admin registration failed")
		he := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, he.StatusCode, "Registration failed", err)
	}

	h.log.Infof("Admin %s registered", user.Username)
	return response.OK(c, http.StatusCreated, "Admin registered successfully", user)
}

// Login godoc
// @Summary Login as an admin
// @Tags admins
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} response.Envelope{data=TokenResponse}
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admins/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
	}

	token, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		h.log.WithError(err).Error("admin login failed")
		he := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, he.StatusCode, "Login failed", err)
	}

	h.log.Infof("Admin %s logged in", req.Username)
	return response.OK(c, http.StatusOK, "Login successful", TokenResponse{Token: token})
}

// GetAssignments godoc
// @Summary List assignments addressed to the authenticated admin
// @Tags admins
// @Produce json
// @Success 200 {object} response.Envelope{data=[]model.AssignmentWithUser}
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Security BearerAuth
// @Router /admins/assignments [get]
func (h *AdminHandler) GetAssignments(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	adminID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return response.Fail(c, http.StatusForbidden, "Invalid token", err)
	}

	assignments, err := h.assignments.ListForAdmin(c.Request().Context(), adminID)
	if err != nil {
		h.log.WithError(err).Error("failed to retrieve assignments")
		return response.Fail(c, http.StatusInternalServerError, "Failed to retrieve assignments", err)
	}

	return response.OK(c, http.StatusOK, "Assignments retrieved", assignments)
}

// AcceptAssignment godoc
// @Summary Accept an assignment
// @Tags admins
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope{data=model.Assignment}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Security BearerAuth
// @Router /admins/assignments/{id}/accept [post]
func (h *AdminHandler) AcceptAssignment(c echo.Context) error {
	return h.setStatus(c, model.StatusAccepted, "Assignment accepted", "Failed to accept assignment")
}

// RejectAssignment godoc
// @Summary Reject an assignment
// @Tags admins
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope{data=model.Assignment}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Security BearerAuth
// @Router /admins/assignments/{id}/reject [post]
func (h *AdminHandler) RejectAssignment(c echo.Context) error {
	return h.setStatus(c, model.StatusRejected, "Assignment rejected", "Failed to reject assignment")
}

func (h *AdminHandler) setStatus(c echo.Context, status model.AssignmentStatus, okMessage, failMessage string) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid assignment id", err)
	}

	assignment, err := h.assignments.SetStatus(c.Request().Context(), id, status)
	if err != nil {
		h.log.WithError(err).Error(failMessage)
		he := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, he.StatusCode, failMessage, err)
	}

	h.log.Infof("%s: %s", okMessage, assignment.ID)
	return response.OK(c, http.StatusOK, okMessage, assignment)
}
