package repo

import (
	"context"
	"fmt"

	"github.com/busitron/workhub/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepo interface {
	CreateWithAssignees(ctx context.Context, t *model.Task, assigneeIDs []uuid.UUID) error
	FindAll(ctx context.Context) ([]model.Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	FindByAssignee(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}, assigneeIDs []uuid.UUID) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) CreateWithAssignees(ctx context.Context, t *model.Task, assigneeIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}

		if len(assigneeIDs) > 0 {
			rows := make([]model.TaskAssignee, 0, len(assigneeIDs))
			for _, id := range assigneeIDs {
				rows = append(rows, model.TaskAssignee{TaskID: t.ID, UserID: id})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("insert assignees: %w", err)
			}
		}
		return nil
	})
}

func (r *taskRepo) FindAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	return tasks, r.db.WithContext(ctx).Preload("Assignees").Order("created_at ASC").Find(&tasks).Error
}

func (r *taskRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).Preload("Assignees").Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) FindByAssignee(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignees").
		Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Where("task_assignees.user_id = ?", userID).
		Order("tasks.created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) FindByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	return tasks, r.db.WithContext(ctx).Preload("Assignees").Where("project_id = ?", projectID).Order("created_at ASC").Find(&tasks).Error
}

// UpdateFields patches the given columns and, when assigneeIDs is non-nil,
// replaces the assignee set, all under the task row lock.
func (r *taskRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}, assigneeIDs []uuid.UUID) (*model.Task, error) {
	var t model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&t).Error; err != nil {
			return err
		}

		if len(fields) > 0 {
			if err := tx.Model(&t).Updates(fields).Error; err != nil {
				return fmt.Errorf("update task: %w", err)
			}
		}

		if assigneeIDs != nil {
			if err := tx.Where("task_id = ?", id).Delete(&model.TaskAssignee{}).Error; err != nil {
				return fmt.Errorf("clear assignees: %w", err)
			}
			if len(assigneeIDs) > 0 {
				rows := make([]model.TaskAssignee, 0, len(assigneeIDs))
				for _, uid := range assigneeIDs {
					rows = append(rows, model.TaskAssignee{TaskID: id, UserID: uid})
				}
				if err := tx.Create(&rows).Error; err != nil {
					return fmt.Errorf("insert assignees: %w", err)
				}
			}
		}

		return tx.Preload("Assignees").Where("id = ?", id).First(&t).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
