package handler

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/busitron/workhub/internal/modules/serializer"
	"github.com/busitron/workhub/internal/modules/service"
	"github.com/busitron/workhub/internal/pkg/jwtauth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type CreateTaskReq struct {
	ProjectID   string     `form:"project_id" json:"project_id"`
	Title       string     `form:"title" json:"title"`
	Description string     `form:"description" json:"description"`
	Status      string     `form:"status" json:"status"`
	DueDate     *time.Time `form:"due_date" json:"due_date" time_format:"2006-01-02"`
	AssigneeIDs []string   `form:"assignee_ids" json:"assignee_ids"`
}

// CreateTask godoc
//
//	@Summary		Create task
//	@Description	Create a task under a project; assignees and mentioned users are notified by mail
//	@Tags			task
//	@Accept			mpfd
//	@Produce		json
//	@Param			project_id	formData	string	true	"Project ID"
//	@Param			title		formData	string	true	"Task title"
//	@Param			attachments	formData	file	false	"Attachment files"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Task}
//	@Router			/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	req := CreateTaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project id", err))
		return
	}

	assigneeIDs := make([]uuid.UUID, 0, len(req.AssigneeIDs))
	for _, raw := range req.AssigneeIDs {
		uid, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid assignee id", err))
			return
		}
		assigneeIDs = append(assigneeIDs, uid)
	}

	in := service.CreateTaskInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		AssigneeIDs: assigneeIDs,
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.Files = form.File["attachments"]
	}

	t, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.Created(c, t, "Task created successfully")
}

// GetAllTasks godoc
//
//	@Summary		List tasks
//	@Tags			task
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Router			/tasks [get]
func (h *TaskHandler) GetAllTasks(c *gin.Context) {
	tasks, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, tasks, "Tasks fetched successfully")
}

// GetTasksByUser godoc
//
//	@Summary		List tasks assigned to the caller
//	@Tags			task
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Router			/tasks/assigned [get]
func (h *TaskHandler) GetTasksByUser(c *gin.Context) {
	claims := c.MustGet("claims").(*jwtauth.Claims)

	tasks, err := h.svc.ListByAssignee(c.Request.Context(), claims.UserID)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, tasks, "Tasks fetched successfully")
}

// GetProjectTasks godoc
//
//	@Summary		List tasks in a project
//	@Tags			task
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Router			/projects/{id}/tasks [get]
func (h *TaskHandler) GetProjectTasks(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tasks, err := h.svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, tasks, "Tasks fetched successfully")
}

// GetTask godoc
//
//	@Summary		Get task
//	@Tags			task
//	@Produce		json
//	@Param			id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Task}
//	@Router			/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, t, "Task fetched successfully")
}

type UpdateTaskReq struct {
	Title       *string    `form:"title" json:"title"`
	Description *string    `form:"description" json:"description"`
	Status      *string    `form:"status" json:"status"`
	DueDate     *time.Time `form:"due_date" json:"due_date" time_format:"2006-01-02"`
	AssigneeIDs []string   `form:"assignee_ids" json:"assignee_ids"`
}

// UpdateTask godoc
//
//	@Summary		Update task
//	@Description	Patch the fields present in the payload; new attachments are appended
//	@Tags			task
//	@Accept			mpfd
//	@Produce		json
//	@Param			id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Task}
//	@Router			/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateTaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
	if req.AssigneeIDs != nil {
		ids := make([]uuid.UUID, 0, len(req.AssigneeIDs))
		for _, raw := range req.AssigneeIDs {
			uid, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid assignee id", err))
				return
			}
			ids = append(ids, uid)
		}
		patch.AssigneeIDs = ids
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["attachments"]
	}

	t, err := h.svc.Update(c.Request.Context(), id, patch, files)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, t, "Task updated successfully")
}

// DeleteTask godoc
//
//	@Summary		Delete task
//	@Tags			task
//	@Produce		json
//	@Param			id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, nil, "Task deleted successfully")
}
