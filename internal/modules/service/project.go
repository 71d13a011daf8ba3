package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/busitron/workhub/internal/modules/apperr"
	"github.com/busitron/workhub/internal/modules/model"
	"github.com/busitron/workhub/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Uploader is the slice of the blob layer the project service needs.
type Uploader interface {
	UploadFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (string, error)
}

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProjectDetail, error)
	Update(ctx context.Context, id uuid.UUID, patch ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddMembers(ctx context.Context, projectID uuid.UUID, memberIDs []uuid.UUID) (*ProjectDetail, error)
	RemoveMember(ctx context.Context, projectID uuid.UUID, memberID uuid.UUID) error
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.MemberProjection, error)

	AddMilestone(ctx context.Context, projectID uuid.UUID, in MilestoneInput) (*model.Project, error)
	UpdateMilestone(ctx context.Context, projectID uuid.UUID, milestoneID uuid.UUID, patch MilestonePatch) (*model.Milestone, error)
	DeleteMilestone(ctx context.Context, projectID uuid.UUID, milestoneID uuid.UUID) (*model.Project, error)
	ListMilestones(ctx context.Context, projectID uuid.UUID) ([]model.Milestone, error)

	AppendFiles(ctx context.Context, projectID uuid.UUID, files []*multipart.FileHeader) ([]string, error)
	ReplaceFiles(ctx context.Context, projectID uuid.UUID, files []*multipart.FileHeader) ([]string, error)
	DeleteFileByName(ctx context.Context, projectID uuid.UUID, fileName string) ([]string, error)
}

type projectService struct {
	r    repo.ProjectRepo
	blob Uploader
	log  *zap.Logger
}

func NewProjectService(r repo.ProjectRepo, blob Uploader, log *zap.Logger) ProjectService {
	return &projectService{r: r, blob: blob, log: log}
}

type CreateProjectInput struct {
	ShortCode       string
	ProjectName     string
	StartDate       time.Time
	EndDate         time.Time
	ProjectCategory string
	Department      string
	ProjectSummary  string
	Files           []*multipart.FileHeader
}

// ProjectPatch holds the client-settable fields. Only non-nil fields are
// applied; server-owned state (ids, timestamps, attachments, members,
// milestones) is not patchable.
type ProjectPatch struct {
	ShortCode       *string
	ProjectName     *string
	StartDate       *time.Time
	EndDate         *time.Time
	ProjectCategory *string
	Department      *string
	ProjectSummary  *string
}

type MilestoneInput struct {
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Status    string
}

type MilestonePatch struct {
	Title     *string
	StartDate *time.Time
	EndDate   *time.Time
	Status    *string
}

// ProjectDetail is the read shape with members expanded to the reduced
// projection and attachment URLs paired with their derived filenames.
type ProjectDetail struct {
	model.Project
	MemberDetails  []model.MemberProjection `json:"member_details"`
	AttachmentInfo []model.AttachmentView   `json:"attachment_info"`
}

func projectNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Project not found.")
	}
	return apperr.Internal("", err)
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if in.ProjectName == "" || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, apperr.Validation("All required fields must be filled.")
	}

	p := &model.Project{
		ShortCode:       in.ShortCode,
		ProjectName:     in.ProjectName,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		ProjectCategory: in.ProjectCategory,
		Department:      in.Department,
		ProjectSummary:  in.ProjectSummary,
	}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, apperr.Internal("project not saved successfully", err)
	}

	if len(in.Files) > 0 {
		urls, err := s.uploadAll(ctx, fmt.Sprintf("projects/%s/attachments", p.ID), in.Files)
		if err != nil {
			return nil, err
		}
		if _, err := s.r.MutateAttachments(ctx, p.ID, func(existing []string) []string {
			return append(existing, urls...)
		}); err != nil {
			return nil, apperr.Internal("", err)
		}
		fresh, err := s.r.FindByID(ctx, p.ID)
		if err != nil {
			return nil, projectNotFound(err)
		}
		p = fresh
	}

	return p, nil
}

func (s *projectService) ListAll(ctx context.Context) ([]model.Project, error) {
	projects, err := s.r.FindAll(ctx)
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	// An empty collection is reported as not-found to match existing client
	// expectations.
	if len(projects) == 0 {
		return nil, apperr.NotFound("project not found")
	}
	return projects, nil
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*ProjectDetail, error) {
	p, err := s.r.FindByIDWithMembers(ctx, id)
	if err != nil {
		return nil, projectNotFound(err)
	}
	return buildDetail(p), nil
}

func buildDetail(p *model.Project) *ProjectDetail {
	detail := &ProjectDetail{Project: *p}

	detail.MemberDetails = make([]model.MemberProjection, 0, len(p.Members))
	for i := range p.Members {
		detail.MemberDetails = append(detail.MemberDetails, p.Members[i].Projection())
	}

	attachments := p.Attachments.Data()
	detail.AttachmentInfo = make([]model.AttachmentView, 0, len(attachments))
	for _, link := range attachments {
		parts := strings.Split(link, "/")
		detail.AttachmentInfo = append(detail.AttachmentInfo, model.AttachmentView{
			URL:      link,
			Filename: parts[len(parts)-1],
		})
	}
	return detail
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, patch ProjectPatch) (*model.Project, error) {
	fields := map[string]interface{}{}
	if patch.ShortCode != nil {
		fields["short_code"] = *patch.ShortCode
	}
	if patch.ProjectName != nil {
		fields["project_name"] = *patch.ProjectName
	}
	if patch.StartDate != nil {
		fields["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		fields["end_date"] = *patch.EndDate
	}
	if patch.ProjectCategory != nil {
		fields["project_category"] = *patch.ProjectCategory
	}
	if patch.Department != nil {
		fields["department"] = *patch.Department
	}
	if patch.ProjectSummary != nil {
		fields["project_summary"] = *patch.ProjectSummary
	}

	p, err := s.r.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, projectNotFound(err)
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return projectNotFound(err)
	}
	return nil
}

func (s *projectService) AddMembers(ctx context.Context, projectID uuid.UUID, memberIDs []uuid.UUID) (*ProjectDetail, error) {
	if len(memberIDs) == 0 {
		return nil, apperr.Validation("Please select at least one user.")
	}

	if err := s.r.AddMembers(ctx, projectID, memberIDs); err != nil {
		if errors.Is(err, repo.ErrNoNewMembers) {
			return nil, apperr.Validation("All selected members are already in the project.")
		}
		return nil, projectNotFound(err)
	}

	p, err := s.r.FindByIDWithMembers(ctx, projectID)
	if err != nil {
		return nil, projectNotFound(err)
	}
	return buildDetail(p), nil
}

func (s *projectService) RemoveMember(ctx context.Context, projectID uuid.UUID, memberID uuid.UUID) error {
	if err := s.r.RemoveMember(ctx, projectID, memberID); err != nil {
		if errors.Is(err, repo.ErrMemberNotFound) {
			return apperr.NotFound("Project member not found.")
		}
		return projectNotFound(err)
	}
	return nil
}

func (s *projectService) ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.MemberProjection, error) {
	p, err := s.r.FindByIDWithMembers(ctx, projectID)
	if err != nil {
		return nil, projectNotFound(err)
	}

	members := make([]model.MemberProjection, 0, len(p.Members))
	for i := range p.Members {
		members = append(members, p.Members[i].Projection())
	}
	return members, nil
}

func (s *projectService) AddMilestone(ctx context.Context, projectID uuid.UUID, in MilestoneInput) (*model.Project, error) {
	m := model.Milestone{
		ID:        uuid.New(),
		Title:     in.Title,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    in.Status,
	}

	p, err := s.r.AddMilestone(ctx, projectID, m)
	if err != nil {
		return nil, projectNotFound(err)
	}
	return p, nil
}

func (s *projectService) UpdateMilestone(ctx context.Context, projectID uuid.UUID, milestoneID uuid.UUID, patch MilestonePatch) (*model.Milestone, error) {
	m, err := s.r.UpdateMilestone(ctx, projectID, milestoneID, func(m *model.Milestone) {
		if patch.Title != nil {
			m.Title = *patch.Title
		}
		if patch.StartDate != nil {
			m.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			m.EndDate = *patch.EndDate
		}
		if patch.Status != nil {
			m.Status = *patch.Status
		}
	})
	if err != nil {
		if errors.Is(err, repo.ErrMilestoneNotFound) {
			return nil, apperr.NotFound("Milestone not found.")
		}
		return nil, projectNotFound(err)
	}
	return m, nil
}

func (s *projectService) DeleteMilestone(ctx context.Context, projectID uuid.UUID, milestoneID uuid.UUID) (*model.Project, error) {
	p, err := s.r.DeleteMilestone(ctx, projectID, milestoneID)
	if err != nil {
		if errors.Is(err, repo.ErrMilestoneNotFound) {
			return nil, apperr.NotFound("No milestones found in this project.")
		}
		return nil, projectNotFound(err)
	}
	return p, nil
}

func (s *projectService) ListMilestones(ctx context.Context, projectID uuid.UUID) ([]model.Milestone, error) {
	p, err := s.r.FindByID(ctx, projectID)
	if err != nil {
		return nil, projectNotFound(err)
	}
	milestones := p.Milestones.Data()
	if milestones == nil {
		milestones = []model.Milestone{}
	}
	return milestones, nil
}

// uploadAll uploads every file or none: the first failure aborts the batch and
// nothing is persisted.
func (s *projectService) uploadAll(ctx context.Context, keyPrefix string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		u, err := s.blob.UploadFormFile(ctx, keyPrefix, fh)
		if err != nil {
			return nil, apperr.Internal(fmt.Sprintf("upload %s failed", fh.Filename), err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func (s *projectService) AppendFiles(ctx context.Context, projectID uuid.UUID, files []*multipart.FileHeader) ([]string, error) {
	p, err := s.r.FindByID(ctx, projectID)
	if err != nil {
		return nil, projectNotFound(err)
	}

	if len(files) == 0 {
		return p.Attachments.Data(), nil
	}

	urls, err := s.uploadAll(ctx, fmt.Sprintf("projects/%s/attachments", projectID), files)
	if err != nil {
		return nil, err
	}

	result, err := s.r.MutateAttachments(ctx, projectID, func(existing []string) []string {
		return append(existing, urls...)
	})
	if err != nil {
		return nil, projectNotFound(err)
	}
	return result, nil
}

// ReplaceFiles overwrites the whole attachment list with the new uploads.
// Prior attachments are discarded from the record, not merged; this is a
// distinct operation from AppendFiles, not a variant of it.
func (s *projectService) ReplaceFiles(ctx context.Context, projectID uuid.UUID, files []*multipart.FileHeader) ([]string, error) {
	p, err := s.r.FindByID(ctx, projectID)
	if err != nil {
		return nil, projectNotFound(err)
	}

	if len(files) == 0 {
		return p.Attachments.Data(), nil
	}

	urls, err := s.uploadAll(ctx, fmt.Sprintf("projects/%s/attachments", projectID), files)
	if err != nil {
		return nil, err
	}

	result, err := s.r.MutateAttachments(ctx, projectID, func([]string) []string {
		return urls
	})
	if err != nil {
		return nil, projectNotFound(err)
	}
	return result, nil
}

// DeleteFileByName removes every attachment URL containing fileName as a
// substring. A fragment that is a prefix of another stored filename removes
// both, so callers should pass the full filename.
func (s *projectService) DeleteFileByName(ctx context.Context, projectID uuid.UUID, fileName string) ([]string, error) {
	result, err := s.r.MutateAttachments(ctx, projectID, func(existing []string) []string {
		kept := make([]string, 0, len(existing))
		for _, link := range existing {
			if !strings.Contains(link, fileName) {
				kept = append(kept, link)
			}
		}
		return kept
	})
	if err != nil {
		return nil, projectNotFound(err)
	}
	return result, nil
}
