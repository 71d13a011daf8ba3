package handler

import (
	"net/http"
	"time"

	"github.com/busitron/workhub/internal/modules/serializer"
	"github.com/busitron/workhub/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	ShortCode       string    `form:"short_code" json:"short_code"`
	ProjectName     string    `form:"project_name" json:"project_name"`
	StartDate       time.Time `form:"start_date" json:"start_date" time_format:"2006-01-02"`
	EndDate         time.Time `form:"end_date" json:"end_date" time_format:"2006-01-02"`
	ProjectCategory string    `form:"project_category" json:"project_category"`
	Department      string    `form:"department" json:"department"`
	ProjectSummary  string    `form:"project_summary" json:"project_summary"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a project; attachment files are uploaded to object storage under the new project's id
//	@Tags			project
//	@Accept			mpfd
//	@Produce		json
//	@Param			project_name	formData	string	true	"Project name"
//	@Param			start_date		formData	string	true	"Start date (YYYY-MM-DD)"
//	@Param			end_date		formData	string	true	"End date (YYYY-MM-DD)"
//	@Param			attachments		formData	file	false	"Attachment files"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Router			/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.CreateProjectInput{
		ShortCode:       req.ShortCode,
		ProjectName:     req.ProjectName,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		ProjectCategory: req.ProjectCategory,
		Department:      req.Department,
		ProjectSummary:  req.ProjectSummary,
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.Files = form.File["attachments"]
	}

	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.Created(c, p, "Project created successfully")
}

// GetAllProjects godoc
//
//	@Summary		List projects
//	@Description	List every project; an empty collection is reported as not found
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/projects [get]
func (h *ProjectHandler) GetAllProjects(c *gin.Context) {
	projects, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, projects, "Projects fetched successfully")
}

// GetProject godoc
//
//	@Summary		Get project
//	@Description	Get a project with members expanded and attachment filenames derived
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ProjectDetail}
//	@Router			/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	detail, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, detail, "Project fetched successfully")
}

type UpdateProjectReq struct {
	ShortCode       *string    `json:"short_code"`
	ProjectName     *string    `json:"project_name"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	ProjectCategory *string    `json:"project_category"`
	Department      *string    `json:"department"`
	ProjectSummary  *string    `json:"project_summary"`
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Patch the client-settable project fields; absent fields are left untouched
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Project ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateProjectReq	true	"Patch payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, service.ProjectPatch{
		ShortCode:       req.ShortCode,
		ProjectName:     req.ProjectName,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		ProjectCategory: req.ProjectCategory,
		Department:      req.Department,
		ProjectSummary:  req.ProjectSummary,
	})
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, p, "Project updated successfully")
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Hard-delete a project by id
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, nil, "Project deleted successfully")
}

type AddMemberItem struct {
	ID string `json:"id" binding:"required"`
}

// AddMembers godoc
//
//	@Summary		Add project members
//	@Description	Append the member ids not already present; fails when the selection is empty or wholly duplicate
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Project ID"	Format(uuid)
//	@Param			payload	body	[]handler.AddMemberItem	true	"Members to add"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ProjectDetail}
//	@Router			/projects/{id}/members [post]
func (h *ProjectHandler) AddMembers(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	var items []AddMemberItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Please select at least one user.", err))
		return
	}

	memberIDs := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		uid, err := uuid.Parse(it.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid member id", err))
			return
		}
		memberIDs = append(memberIDs, uid)
	}

	detail, err := h.svc.AddMembers(c.Request.Context(), projectID, memberIDs)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, detail, "Project members added successfully.")
}

// RemoveMember godoc
//
//	@Summary		Remove project member
//	@Description	Remove one member reference from a project
//	@Tags			project
//	@Produce		json
//	@Param			id			path	string	true	"Project ID"	Format(uuid)
//	@Param			member_id	path	string	true	"Member ID"		Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{id}/members/{member_id} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	memberID, err := uuid.Parse(c.Param("member_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.RemoveMember(c.Request.Context(), projectID, memberID); err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, nil, "Project member deleted successfully")
}

// ListMembers godoc
//
//	@Summary		List project members
//	@Description	List every member of a project in the reduced projection
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.MemberProjection}
//	@Router			/projects/{id}/members [get]
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	members, err := h.svc.ListMembers(c.Request.Context(), projectID)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, members, "")
}

type MilestoneReq struct {
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

// AddMilestone godoc
//
//	@Summary		Add milestone
//	@Description	Append a milestone to a project's embedded milestone list
//	@Tags			milestone
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Project ID"	Format(uuid)
//	@Param			payload	body	handler.MilestoneReq	true	"Milestone payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Router			/projects/{id}/milestones [post]
func (h *ProjectHandler) AddMilestone(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := MilestoneReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.AddMilestone(c.Request.Context(), projectID, service.MilestoneInput{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    req.Status,
	})
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.Created(c, p, "Milestone added successfully.")
}

type UpdateMilestoneReq struct {
	Title     *string    `json:"title"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Status    *string    `json:"status"`
}

// UpdateMilestone godoc
//
//	@Summary		Update milestone
//	@Description	Patch the fields present in the payload on the matched milestone
//	@Tags			milestone
//	@Accept			json
//	@Produce		json
//	@Param			id				path	string						true	"Project ID"	Format(uuid)
//	@Param			milestone_id	path	string						true	"Milestone ID"	Format(uuid)
//	@Param			payload			body	handler.UpdateMilestoneReq	true	"Patch payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Milestone}
//	@Router			/projects/{id}/milestones/{milestone_id} [put]
func (h *ProjectHandler) UpdateMilestone(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	milestoneID, err := uuid.Parse(c.Param("milestone_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateMilestoneReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	m, err := h.svc.UpdateMilestone(c.Request.Context(), projectID, milestoneID, service.MilestonePatch{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    req.Status,
	})
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, m, "Milestone updated successfully.")
}

// DeleteMilestone godoc
//
//	@Summary		Delete milestone
//	@Description	Remove one milestone from a project's embedded list
//	@Tags			milestone
//	@Produce		json
//	@Param			id				path	string	true	"Project ID"	Format(uuid)
//	@Param			milestone_id	path	string	true	"Milestone ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/projects/{id}/milestones/{milestone_id} [delete]
func (h *ProjectHandler) DeleteMilestone(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	milestoneID, err := uuid.Parse(c.Param("milestone_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.DeleteMilestone(c.Request.Context(), projectID, milestoneID)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, p, "Milestone deleted successfully.")
}

// ListMilestones godoc
//
//	@Summary		List milestones
//	@Description	Return a project's full milestone array
//	@Tags			milestone
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Milestone}
//	@Router			/projects/{id}/milestones [get]
func (h *ProjectHandler) ListMilestones(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	milestones, err := h.svc.ListMilestones(c.Request.Context(), projectID)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, milestones, "Milestones fetched successfully.")
}

// AppendFiles godoc
//
//	@Summary		Append project files
//	@Description	Upload files and concatenate their URLs onto the existing attachment list
//	@Tags			project
//	@Accept			mpfd
//	@Produce		json
//	@Param			id			path		string	true	"Project ID"	Format(uuid)
//	@Param			attachments	formData	file	false	"Files to append"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]string}
//	@Router			/projects/{id}/files [post]
func (h *ProjectHandler) AppendFiles(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	attachments, err := h.svc.AppendFiles(c.Request.Context(), projectID, form.File["attachments"])
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, attachments, "Files uploaded successfully")
}

// ReplaceFiles godoc
//
//	@Summary		Replace project files
//	@Description	Upload files and overwrite the entire attachment list with only the new URLs
//	@Tags			project
//	@Accept			mpfd
//	@Produce		json
//	@Param			id			path		string	true	"Project ID"	Format(uuid)
//	@Param			attachments	formData	file	false	"Replacement files"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]string}
//	@Router			/projects/{id}/files [put]
func (h *ProjectHandler) ReplaceFiles(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	attachments, err := h.svc.ReplaceFiles(c.Request.Context(), projectID, form.File["attachments"])
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, attachments, "Files updated successfully")
}

// DeleteFile godoc
//
//	@Summary		Delete project file by filename
//	@Description	Remove every attachment URL containing the given filename fragment
//	@Tags			project
//	@Produce		json
//	@Param			id			path	string	true	"Project ID"	Format(uuid)
//	@Param			file_name	path	string	true	"Filename fragment"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]string}
//	@Router			/projects/{id}/files/{file_name} [delete]
func (h *ProjectHandler) DeleteFile(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	attachments, err := h.svc.DeleteFileByName(c.Request.Context(), projectID, c.Param("file_name"))
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, attachments, "File URL removed successfully")
}
