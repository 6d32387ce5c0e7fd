package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "assignportal/internal/errors"
	"assignportal/internal/model"
	"assignportal/internal/repository"
)

// AssignmentService handles assignment uploads and review transitions.
type AssignmentService interface {
	Upload(ctx context.Context, userID, adminID uuid.UUID, task string) (*model.Assignment, error)
	ListForAdmin(ctx context.Context, adminID uuid.UUID) ([]model.AssignmentWithUser, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.AssignmentStatus) (*model.Assignment, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.UserRepository
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(assignmentRepo repository.AssignmentRepository, userRepo repository.UserRepository) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
	}
}

// Upload persists a new pending assignment. The target must be an existing
// account with the Admin role.
func (s *assignmentService) Upload(ctx context.Context, userID, adminID uuid.UUID, task string) (*model.Assignment, error) {
	admin, err := s.userRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if admin.Role != model.RoleAdmin {
		return nil, apperrors.ErrAdminNotFound
	}

	assignment := &model.Assignment{
		UserID:  userID,
		AdminID: adminID,
		Task:    task,
		Status:  model.StatusPending,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return assignment, nil
}

// ListForAdmin returns all assignments addressed to the admin, joined with
// each uploader's username.
func (s *assignmentService) ListForAdmin(ctx context.Context, adminID uuid.UUID) ([]model.AssignmentWithUser, error) {
	return s.assignmentRepo.ListByAdmin(ctx, adminID)
}

// SetStatus overwrites the assignment's status with the given terminal value
// and returns the updated record. The transition is unconditional: writing
// the same terminal value twice, or replacing one terminal value with the
// other, is permitted and the last write wins.
func (s *assignmentService) SetStatus(ctx context.Context, id uuid.UUID, status model.AssignmentStatus) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("update status: %w", err)
	}
	return assignment, nil
}
