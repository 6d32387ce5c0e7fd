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

// UserHandler handles the student-facing endpoints.
type UserHandler struct {
	accounts    service.AccountService
	assignments service.AssignmentService
	log         *logrus.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(accounts service.AccountService, assignments service.AssignmentService, log *logrus.Logger) *UserHandler {
	return &UserHandler{
		accounts:    accounts,
		assignments: assignments,
		log:         log,
	}
}

// CredentialsRequest carries a registration or login payload.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UploadRequest carries an assignment upload payload.
type UploadRequest struct {
	Task    string `json:"task" validate:"required"`
	AdminID string `json:"adminId" validate:"required"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Register godoc
// @Summary Register a new user account
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
	}

	user, err := h.accounts.Register(c.Request().Context(), req.Username, req.Password, model.RoleUser)
	if err != nil {
		h.log.WithError(err).Error("user registration failed")
		he := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, he.StatusCode, "Registration failed", err)
	}

	h.log.Infof("User %s registered", user.Username)
	return response.OK(c, http.StatusCreated, "User registered successfully", user)
}

// Login godoc
// @Summary Login as a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} response.Envelope{data=TokenResponse}
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
	}

	token, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		h.log.WithError(err).Error("user login failed")
		he := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, he.StatusCode, "Login failed", err)
	}

	h.log.Infof("User %s logged in", req.Username)
	return response.OK(c, http.StatusOK, "Login successful", TokenResponse{Token: token})
}

// UploadAssignment godoc
// @Summary Upload an assignment addressed to an admin
// @Tags users
// @Accept json
// @Produce json
// @Param request body UploadRequest true "Assignment"
// @Success 201 {object} response.Envelope{data=model.Assignment}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Security BearerAuth
// @Router /users/upload [post]
func (h *UserHandler) UploadAssignment(c echo.Context) error {
	var req UploadRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
	}

	claims := auth.ClaimsFrom(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return response.Fail(c, http.StatusForbidden, "Invalid token", err)
	}
	adminID, err := uuid.Parse(req.AdminID)
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "Invalid admin id", err)
	}

	assignment, err := h.assignments.Upload(c.Request().Context(), userID, adminID, req.Task)
	if err != nil {
		h.log.WithError(err).Error("assignment upload failed")
		he := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, he.StatusCode, "Failed to upload assignment", err)
	}

	h.log.Infof("Assignment uploaded by user %s", claims.UserID)
	return response.OK(c, http.StatusCreated, "Assignment uploaded", assignment)
}

// GetAdmins godoc
// @Summary List all admin accounts
// @Tags users
// @Produce json
// @Success 200 {object} response.Envelope{data=[]model.User}
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Security BearerAuth
// @Router /users/admins [get]
func (h *UserHandler) GetAdmins(c echo.Context) error {
	admins, err := h.accounts.ListAdmins(c.Request().Context())
	if err != nil {
		h.log.WithError(err).Error("failed to list admins")
		return response.Fail(c, http.StatusInternalServerError, "Failed to get admins", err)
	}

	return response.OK(c, http.StatusOK, "Admins retrieved", admins)
}
