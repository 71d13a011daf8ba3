package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/busitron/workhub/internal/modules/apperr"
	"github.com/busitron/workhub/internal/modules/model"
	"github.com/busitron/workhub/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*model.Task, error)
	ListAll(ctx context.Context) ([]model.Task, error)
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, id uuid.UUID, patch TaskPatch, files []*multipart.FileHeader) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskService struct {
	r        repo.TaskRepo
	projects repo.ProjectRepo
	users    repo.UserRepo
	blob     Uploader
	notify   NotificationService
	log      *zap.Logger
}

func NewTaskService(r repo.TaskRepo, projects repo.ProjectRepo, users repo.UserRepo, blob Uploader, notify NotificationService, log *zap.Logger) TaskService {
	return &taskService{r: r, projects: projects, users: users, blob: blob, notify: notify, log: log}
}

type CreateTaskInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
	AssigneeIDs []uuid.UUID
	Files       []*multipart.FileHeader
}

// TaskPatch holds the client-settable task fields; only non-nil fields are
// applied. A non-nil AssigneeIDs replaces the assignee set.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *time.Time
	AssigneeIDs []uuid.UUID
}

func taskNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Task not found.")
	}
	return apperr.Internal("", err)
}

func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	if in.Title == "" || in.ProjectID == uuid.Nil {
		return nil, apperr.Validation("All required fields must be filled.")
	}

	if _, err := s.projects.FindByID(ctx, in.ProjectID); err != nil {
		return nil, projectNotFound(err)
	}

	status := in.Status
	if status == "" {
		status = model.TaskStatusPending
	}

	t := &model.Task{
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
	}
	if err := s.r.CreateWithAssignees(ctx, t, in.AssigneeIDs); err != nil {
		return nil, apperr.Internal("task not saved successfully", err)
	}

	if len(in.Files) > 0 {
		urls := make([]string, 0, len(in.Files))
		for _, fh := range in.Files {
			u, err := s.blob.UploadFormFile(ctx, fmt.Sprintf("tasks/%s/attachments", t.ID), fh)
			if err != nil {
				return nil, apperr.Internal(fmt.Sprintf("upload %s failed", fh.Filename), err)
			}
			urls = append(urls, u)
		}
		t.Attachments = datatypes.NewJSONType(urls)
		if _, err := s.r.UpdateFields(ctx, t.ID, map[string]interface{}{"attachments": t.Attachments}, nil); err != nil {
			return nil, apperr.Internal("", err)
		}
	}

	s.notifyAssignment(ctx, t, in.AssigneeIDs)
	s.notify.PublishTaskEvent(ctx, "task.assigned", t)

	created, err := s.r.FindByID(ctx, t.ID)
	if err != nil {
		return nil, taskNotFound(err)
	}
	return created, nil
}

// notifyAssignment mails every assignee and every user mentioned in the
// description. Failures are logged, never surfaced.
func (s *taskService) notifyAssignment(ctx context.Context, t *model.Task, assigneeIDs []uuid.UUID) {
	if len(assigneeIDs) > 0 {
		assignees, err := s.users.FindByIDs(ctx, assigneeIDs)
		if err != nil {
			s.log.Sugar().Warnw("assignees not resolved for notification", "task_id", t.ID, "err", err)
		} else {
			emails := make([]string, 0, len(assignees))
			for i := range assignees {
				emails = append(emails, assignees[i].Email)
			}
			s.notify.NotifyTask(ctx, emails, "New Task Assigned",
				fmt.Sprintf("You have been assigned the task %q.", t.Title), t.ID)
		}
	}

	mentioned, err := s.notify.ResolveMentions(ctx, t.Description)
	if err != nil {
		s.log.Sugar().Warnw("mentions not resolved", "task_id", t.ID, "err", err)
		return
	}
	if len(mentioned) > 0 {
		s.notify.NotifyTask(ctx, mentioned, "You were mentioned in a task",
			fmt.Sprintf("You were mentioned in the task %q.", t.Title), t.ID)
	}
}

func (s *taskService) ListAll(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.r.FindAll(ctx)
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	if len(tasks) == 0 {
		return nil, apperr.NotFound("task not found")
	}
	return tasks, nil
}

func (s *taskService) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.r.FindByAssignee(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	return tasks, nil
}

// ListByProject returns every task under a project. The project must exist;
// a project with no tasks yields an empty list, not an error.
func (s *taskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, projectNotFound(err)
	}

	tasks, err := s.r.FindByProject(ctx, projectID)
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	return tasks, nil
}

func (s *taskService) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	t, err := s.r.FindByID(ctx, id)
	if err != nil {
		return nil, taskNotFound(err)
	}
	return t, nil
}

func (s *taskService) Update(ctx context.Context, id uuid.UUID, patch TaskPatch, files []*multipart.FileHeader) (*model.Task, error) {
	fields := map[string]interface{}{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.DueDate != nil {
		fields["due_date"] = *patch.DueDate
	}

	if len(files) > 0 {
		current, err := s.r.FindByID(ctx, id)
		if err != nil {
			return nil, taskNotFound(err)
		}
		urls := current.Attachments.Data()
		for _, fh := range files {
			u, err := s.blob.UploadFormFile(ctx, fmt.Sprintf("tasks/%s/attachments", id), fh)
			if err != nil {
				return nil, apperr.Internal(fmt.Sprintf("upload %s failed", fh.Filename), err)
			}
			urls = append(urls, u)
		}
		fields["attachments"] = datatypes.NewJSONType(urls)
	}

	t, err := s.r.UpdateFields(ctx, id, fields, patch.AssigneeIDs)
	if err != nil {
		return nil, taskNotFound(err)
	}
	return t, nil
}

func (s *taskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return taskNotFound(err)
	}
	return nil
}
