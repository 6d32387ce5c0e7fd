package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"assignportal/internal/auth"
	apperrors "assignportal/internal/errors"
	"assignportal/internal/handler"
	"assignportal/internal/model"
	"assignportal/internal/response"
)

// MockAccountService is a mock implementation of service.AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, username, password string, role model.Role) (*model.User, error) {
	args := m.Called(ctx, username, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) ListAdmins(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockAssignmentService is a mock implementation of service.AssignmentService.
type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) Upload(ctx context.Context, userID, adminID uuid.UUID, task string) (*model.Assignment, error) {
	args := m.Called(ctx, userID, adminID, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func (m *MockAssignmentService) ListForAdmin(ctx context.Context, adminID uuid.UUID) ([]model.AssignmentWithUser, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AssignmentWithUser), args.Error(1)
}

func (m *MockAssignmentService) SetStatus(ctx context.Context, id uuid.UUID, status model.AssignmentStatus) (*model.Assignment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func newTestServer(accounts *MockAccountService, assignments *MockAssignmentService) (*echo.Echo, *auth.JWTService) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := auth.NewJWTService("test-secret", 0)
	userHandler := handler.NewUserHandler(accounts, assignments, log)
	adminHandler := handler.NewAdminHandler(accounts, assignments, log)

	e := echo.New()
	Register(e, jwtService, userHandler, adminHandler)
	return e, jwtService
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestBannerRoute(t *testing.T) {
	e, _ := newTestServer(new(MockAccountService), new(MockAssignmentService))

	rec := doJSON(e, http.MethodGet, "/api", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Assignment Portal API")
}

func TestUnknownEndpoint(t *testing.T) {
	e, _ := newTestServer(new(MockAccountService), new(MockAssignmentService))

	rec := doJSON(e, http.MethodGet, "/api/nope", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Endpoint Not Found")
}

func TestRegisterAndLoginFlow(t *testing.T) {
	accounts := new(MockAccountService)
	assignments := new(MockAssignmentService)
	e, jwtService := newTestServer(accounts, assignments)

	userID := uuid.New()
	accounts.On("Register", mock.Anything, "userA", "Passw0rd!@", model.RoleUser).Return(&model.User{
		ID:       userID,
		Username: "userA",
		Role:     model.RoleUser,
	}, nil)
	token, _ := jwtService.Issue(userID, model.RoleUser)
	accounts.On("Login", mock.Anything, "userA", "Passw0rd!@").Return(token, nil)

	rec := doJSON(e, http.MethodPost, "/api/users/register", `{"username":"userA","password":"Passw0rd!@"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "User registered successfully", env.Message)

	rec = doJSON(e, http.MethodPost, "/api/users/login", `{"username":"userA","password":"Passw0rd!@"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, token, data["token"])

	accounts.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	accounts := new(MockAccountService)
	e, _ := newTestServer(accounts, new(MockAssignmentService))

	accounts.On("Login", mock.Anything, "userA", "Wr0ngPass!").Return("", apperrors.ErrInvalidCredentials)

	rec := doJSON(e, http.MethodPost, "/api/users/login", `{"username":"userA","password":"Wr0ngPass!"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	accounts := new(MockAccountService)
	e, _ := newTestServer(accounts, new(MockAssignmentService))

	accounts.On("Register", mock.Anything, "taken", "Passw0rd!@", model.RoleUser).Return(nil, apperrors.ErrUsernameTaken)

	rec := doJSON(e, http.MethodPost, "/api/users/register", `{"username":"taken","password":"Passw0rd!@"}`, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUploadAssignment(t *testing.T) {
	accounts := new(MockAccountService)
	assignments := new(MockAssignmentService)
	e, jwtService := newTestServer(accounts, assignments)

	userID := uuid.New()
	adminID := uuid.New()
	token, _ := jwtService.Issue(userID, model.RoleUser)

	assignments.On("Upload", mock.Anything, userID, adminID, "Essay").Return(&model.Assignment{
		ID:      uuid.New(),
		UserID:  userID,
		AdminID: adminID,
		Task:    "Essay",
		Status:  model.StatusPending,
	}, nil)

	body := `{"task":"Essay","adminId":"` + adminID.String() + `"}`
	rec := doJSON(e, http.MethodPost, "/api/users/upload", body, token)

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, string(model.StatusPending), data["status"])
	assignments.AssertExpectations(t)
}

func TestUploadRequiresUserRole(t *testing.T) {
	e, jwtService := newTestServer(new(MockAccountService), new(MockAssignmentService))

	token, _ := jwtService.Issue(uuid.New(), model.RoleAdmin)
	body := `{"task":"Essay","adminId":"` + uuid.New().String() + `"}`
	rec := doJSON(e, http.MethodPost, "/api/users/upload", body, token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminAssignmentsFlow(t *testing.T) {
	accounts := new(MockAccountService)
	assignments := new(MockAssignmentService)
	e, jwtService := newTestServer(accounts, assignments)

	adminID := uuid.New()
	assignmentID := uuid.New()
	token, _ := jwtService.Issue(adminID, model.RoleAdmin)

	assignments.On("ListForAdmin", mock.Anything, adminID).Return([]model.AssignmentWithUser{
		{
			Assignment: model.Assignment{ID: assignmentID, AdminID: adminID, Task: "Essay", Status: model.StatusPending},
			Username:   "userA",
		},
	}, nil)
	assignments.On("SetStatus", mock.Anything, assignmentID, model.StatusAccepted).Return(&model.Assignment{
		ID:     assignmentID,
		Status: model.StatusAccepted,
	}, nil)

	rec := doJSON(e, http.MethodGet, "/api/admins/assignments", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	rows := env.Data.([]interface{})
	assert.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "Essay", row["task"])
	assert.Equal(t, "userA", row["username"])

	rec = doJSON(e, http.MethodPost, "/api/admins/assignments/"+assignmentID.String()+"/accept", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, string(model.StatusAccepted), data["status"])

	assignments.AssertExpectations(t)
}

func TestAdminRoutesRejectUserToken(t *testing.T) {
	e, jwtService := newTestServer(new(MockAccountService), new(MockAssignmentService))

	token, _ := jwtService.Issue(uuid.New(), model.RoleUser)

	for _, path := range []string{
		"/api/admins/assignments",
	} {
		rec := doJSON(e, http.MethodGet, path, "", token)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Unauthorized role")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e, _ := newTestServer(new(MockAccountService), new(MockAssignmentService))

	tests := []struct {
		method string
		path   string
	}{
		{method: http.MethodPost, path: "/api/users/upload"},
		{method: http.MethodGet, path: "/api/users/admins"},
		{method: http.MethodGet, path: "/api/admins/assignments"},
		{method: http.MethodPost, path: "/api/admins/assignments/" + uuid.New().String() + "/accept"},
		{method: http.MethodPost, path: "/api/admins/assignments/" + uuid.New().String() + "/reject"},
	}

	for _, tt := range tests {
		rec := doJSON(e, tt.method, tt.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tt.path)
		assert.Contains(t, rec.Body.String(), "Access denied")
	}
}

func TestAcceptUnknownAssignment(t *testing.T) {
	assignments := new(MockAssignmentService)
	e, jwtService := newTestServer(new(MockAccountService), assignments)

	assignmentID := uuid.New()
	token, _ := jwtService.Issue(uuid.New(), model.RoleAdmin)
	assignments.On("SetStatus", mock.Anything, assignmentID, model.StatusAccepted).Return(nil, apperrors.ErrAssignmentNotFound)

	rec := doJSON(e, http.MethodPost, "/api/admins/assignments/"+assignmentID.String()+"/accept", "", token)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
