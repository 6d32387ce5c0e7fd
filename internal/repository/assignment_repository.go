package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assignportal/internal/model"
)

// AssignmentRepository defines assignment persistence operations.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.AssignmentWithUser, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AssignmentStatus) (*model.Assignment, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository builds a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListByAdmin returns all assignments addressed to the admin, each joined
// with the uploading user's username.
func (r *assignmentRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.AssignmentWithUser, error) {
	var rows []model.AssignmentWithUser
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Select("assignments.*, users.username AS username").
		Joins("JOIN users ON users.id = assignments.user_id").
		Where("assignments.admin_id = ?", adminID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus overwrites the status unconditionally and returns the updated
// record. Returns gorm.ErrRecordNotFound if the id does not exist.
func (r *assignmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AssignmentStatus) (*model.Assignment, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// distinguish a missing row from a no-op write on the same status
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Assignment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}
