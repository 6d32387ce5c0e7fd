package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "assignportal/internal/errors"
	"assignportal/internal/model"
)

// MockAssignmentRepository is a mock implementation of AssignmentRepository.
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.AssignmentWithUser, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AssignmentWithUser), args.Error(1)
}

func (m *MockAssignmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AssignmentStatus) (*model.Assignment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func TestAssignmentService_Upload(t *testing.T) {
	adminID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockAssignmentRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name: "successful upload starts pending",
			setupMock: func(mAssign *MockAssignmentRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, adminID).Return(&model.User{
					ID:   adminID,
					Role: model.RoleAdmin,
				}, nil)
				mAssign.On("Create", mock.Anything, mock.AnythingOfType("*model.Assignment")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "unknown admin id",
			setupMock: func(mAssign *MockAssignmentRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, adminID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAdminNotFound,
		},
		{
			name: "target is not an admin",
			setupMock: func(mAssign *MockAssignmentRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, adminID).Return(&model.User{
					ID:   adminID,
					Role: model.RoleUser,
				}, nil)
			},
			expectedError: apperrors.ErrAdminNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAssignRepo := new(MockAssignmentRepository)
			mockUserRepo := new(MockUserRepository)
			tt.setupMock(mockAssignRepo, mockUserRepo)

			svc := NewAssignmentService(mockAssignRepo, mockUserRepo)
			assignment, err := svc.Upload(context.Background(), userID, adminID, "Essay")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, assignment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, assignment)
				assert.Equal(t, userID, assignment.UserID)
				assert.Equal(t, adminID, assignment.AdminID)
				assert.Equal(t, "Essay", assignment.Task)
				assert.Equal(t, model.StatusPending, assignment.Status)
			}

			mockAssignRepo.AssertExpectations(t)
			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestAssignmentService_ListForAdmin(t *testing.T) {
	adminID := uuid.New()
	rows := []model.AssignmentWithUser{
		{
			Assignment: model.Assignment{ID: uuid.New(), AdminID: adminID, Task: "Essay", Status: model.StatusPending},
			Username:   "userA",
		},
	}

	mockAssignRepo := new(MockAssignmentRepository)
	mockAssignRepo.On("ListByAdmin", mock.Anything, adminID).Return(rows, nil)

	svc := NewAssignmentService(mockAssignRepo, new(MockUserRepository))
	got, err := svc.ListForAdmin(context.Background(), adminID)

	assert.NoError(t, err)
	assert.Equal(t, rows, got)
	mockAssignRepo.AssertExpectations(t)
}

func TestAssignmentService_SetStatus(t *testing.T) {
	assignmentID := uuid.New()

	t.Run("accept returns updated record", func(t *testing.T) {
		mockAssignRepo := new(MockAssignmentRepository)
		mockAssignRepo.On("UpdateStatus", mock.Anything, assignmentID, model.StatusAccepted).Return(&model.Assignment{
			ID:     assignmentID,
			Status: model.StatusAccepted,
		}, nil)

		svc := NewAssignmentService(mockAssignRepo, new(MockUserRepository))
		got, err := svc.SetStatus(context.Background(), assignmentID, model.StatusAccepted)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusAccepted, got.Status)
		mockAssignRepo.AssertExpectations(t)
	})

	t.Run("repeated accept is idempotent in effect", func(t *testing.T) {
		mockAssignRepo := new(MockAssignmentRepository)
		mockAssignRepo.On("UpdateStatus", mock.Anything, assignmentID, model.StatusAccepted).Return(&model.Assignment{
			ID:     assignmentID,
			Status: model.StatusAccepted,
		}, nil).Twice()

		svc := NewAssignmentService(mockAssignRepo, new(MockUserRepository))
		first, err := svc.SetStatus(context.Background(), assignmentID, model.StatusAccepted)
		assert.NoError(t, err)
		second, err := svc.SetStatus(context.Background(), assignmentID, model.StatusAccepted)
		assert.NoError(t, err)
		assert.Equal(t, first.Status, second.Status)
		mockAssignRepo.AssertExpectations(t)
	})

	t.Run("reject after accept overwrites", func(t *testing.T) {
		mockAssignRepo := new(MockAssignmentRepository)
		mockAssignRepo.On("UpdateStatus", mock.Anything, assignmentID, model.StatusAccepted).Return(&model.Assignment{
			ID:     assignmentID,
			Status: model.StatusAccepted,
		}, nil).Once()
		mockAssignRepo.On("UpdateStatus", mock.Anything, assignmentID, model.StatusRejected).Return(&model.Assignment{
			ID:     assignmentID,
			Status: model.StatusRejected,
		}, nil).Once()

		svc := NewAssignmentService(mockAssignRepo, new(MockUserRepository))
		_, err := svc.SetStatus(context.Background(), assignmentID, model.StatusAccepted)
		assert.NoError(t, err)
		got, err := svc.SetStatus(context.Background(), assignmentID, model.StatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusRejected, got.Status)
		mockAssignRepo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockAssignRepo := new(MockAssignmentRepository)
		mockAssignRepo.On("UpdateStatus", mock.Anything, assignmentID, model.StatusAccepted).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAssignmentService(mockAssignRepo, new(MockUserRepository))
		got, err := svc.SetStatus(context.Background(), assignmentID, model.StatusAccepted)

		assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
		assert.Nil(t, got)
		mockAssignRepo.AssertExpectations(t)
	})
}
