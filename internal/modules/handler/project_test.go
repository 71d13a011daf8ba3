package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/busitron/workhub/internal/modules/apperr"
	"github.com/busitron/workhub/internal/modules/model"
	"github.com/busitron/workhub/internal/modules/service"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProjectService is a mock implementation of ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) ListAll(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectService) GetByID(ctx context.Context, id uuid.UUID) (*service.ProjectDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProjectDetail), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, id uuid.UUID, patch service.ProjectPatch) (*model.Project, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectService) AddMembers(ctx context.Context, projectID uuid.UUID, memberIDs []uuid.UUID) (*service.ProjectDetail, error) {
	args := m.Called(ctx, projectID, memberIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProjectDetail), args.Error(1)
}

func (m *MockProjectService) RemoveMember(ctx context.Context, projectID uuid.UUID, memberID uuid.UUID) error {
	args := m.Called(ctx, projectID, memberID)
	return args.Error(0)
}

func (m *MockProjectService) ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.MemberProjection, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MemberProjection), args.Error(1)
}

func (m *MockProjectService) AddMilestone(ctx context.Context, projectID uuid.UUID, in service.MilestoneInput) (*model.Project, error) {
	args := m.Called(ctx, projectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) UpdateMilestone(ctx context.Context, projectID uuid.UUID, milestoneID uuid.UUID, patch service.MilestonePatch) (*model.Milestone, error) {
	args := m.Called(ctx, projectID, milestoneID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Milestone), args.Error(1)
}

func (m *MockProjectService) DeleteMilestone(ctx context.Context, projectID uuid.UUID, milestoneID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, projectID, milestoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) ListMilestones(ctx context.Context, projectID uuid.UUID) ([]model.Milestone, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Milestone), args.Error(1)
}

func (m *MockProjectService) AppendFiles(ctx context.Context, projectID uuid.UUID, files []*multipart.FileHeader) ([]string, error) {
	args := m.Called(ctx, projectID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProjectService) ReplaceFiles(ctx context.Context, projectID uuid.UUID, files []*multipart.FileHeader) ([]string, error) {
	args := m.Called(ctx, projectID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProjectService) DeleteFileByName(ctx context.Context, projectID uuid.UUID, fileName string) ([]string, error) {
	args := m.Called(ctx, projectID, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func setupProjectRouter(h *ProjectHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/projects", h.GetAllProjects)
	r.GET("/projects/:id", h.GetProject)
	r.DELETE("/projects/:id", h.DeleteProject)
	r.POST("/projects/:id/members", h.AddMembers)
	r.DELETE("/projects/:id/members/:member_id", h.RemoveMember)
	r.DELETE("/projects/:id/files/:file_name", h.DeleteFile)

	return r
}

func TestProjectHandler_GetAllProjects(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(*MockProjectService)
		expectedStatus int
	}{
		{
			name: "successful retrieval",
			setup: func(svc *MockProjectService) {
				svc.On("ListAll", mock.Anything).Return([]model.Project{
					{ID: uuid.New(), ProjectName: "Website Revamp"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "empty collection is 404",
			setup: func(svc *MockProjectService) {
				svc.On("ListAll", mock.Anything).Return(nil, apperr.NotFound("project not found"))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "service error",
			setup: func(svc *MockProjectService) {
				svc.On("ListAll", mock.Anything).Return(nil, apperr.Internal("", assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProjectService{}
			tt.setup(mockService)

			router := setupProjectRouter(NewProjectHandler(mockService))

			req := httptest.NewRequest("GET", "/projects", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_GetProject(t *testing.T) {
	projectID := uuid.New()

	tests := []struct {
		name           string
		path           string
		setup          func(*MockProjectService)
		expectedStatus int
	}{
		{
			name: "successful retrieval",
			path: "/projects/" + projectID.String(),
			setup: func(svc *MockProjectService) {
				svc.On("GetByID", mock.Anything, projectID).Return(&service.ProjectDetail{
					Project: model.Project{ID: projectID, ProjectName: "Website Revamp"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed id",
			path:           "/projects/not-a-uuid",
			setup:          func(svc *MockProjectService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown project",
			path: "/projects/" + projectID.String(),
			setup: func(svc *MockProjectService) {
				svc.On("GetByID", mock.Anything, projectID).Return(nil, apperr.NotFound("Project not found."))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProjectService{}
			tt.setup(mockService)

			router := setupProjectRouter(NewProjectHandler(mockService))

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_AddMembers(t *testing.T) {
	projectID := uuid.New()
	memberID := uuid.New()

	tests := []struct {
		name           string
		body           interface{}
		setup          func(*MockProjectService)
		expectedStatus int
	}{
		{
			name: "successful addition",
			body: []AddMemberItem{{ID: memberID.String()}},
			setup: func(svc *MockProjectService) {
				svc.On("AddMembers", mock.Anything, projectID, []uuid.UUID{memberID}).
					Return(&service.ProjectDetail{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "all members already present",
			body: []AddMemberItem{{ID: memberID.String()}},
			setup: func(svc *MockProjectService) {
				svc.On("AddMembers", mock.Anything, projectID, []uuid.UUID{memberID}).
					Return(nil, apperr.Validation("All selected members are already in the project."))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed member id",
			body:           []AddMemberItem{{ID: "not-a-uuid"}},
			setup:          func(svc *MockProjectService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProjectService{}
			tt.setup(mockService)

			router := setupProjectRouter(NewProjectHandler(mockService))

			payload, _ := sonic.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/projects/"+projectID.String()+"/members", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_DeleteFile(t *testing.T) {
	projectID := uuid.New()

	t.Run("removes matching urls", func(t *testing.T) {
		mockService := &MockProjectService{}
		mockService.On("DeleteFileByName", mock.Anything, projectID, "brief.pdf").
			Return([]string{}, nil)

		router := setupProjectRouter(NewProjectHandler(mockService))

		req := httptest.NewRequest("DELETE", "/projects/"+projectID.String()+"/files/brief.pdf", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}
