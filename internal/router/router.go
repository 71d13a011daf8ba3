package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "github.com/busitron/workhub/docs"
	"github.com/busitron/workhub/internal/config"
	"github.com/busitron/workhub/internal/middleware"
	"github.com/busitron/workhub/internal/modules/handler"
	"github.com/busitron/workhub/internal/modules/serializer"
	"github.com/busitron/workhub/internal/pkg/jwtauth"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config         *config.Config
	Log            *zap.Logger
	Auth           *jwtauth.Auth
	UserHandler    *handler.UserHandler
	ProjectHandler *handler.ProjectHandler
	TaskHandler    *handler.TaskHandler
	CompanyHandler *handler.CompanyHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))
	r.Use(middleware.HTTPMetrics(d.Config.App.Name))

	// health and metrics
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.UserHandler.Register)
			auth.POST("/login", d.UserHandler.Login)
			auth.POST("/refresh", d.UserHandler.Refresh)
			auth.POST("/forgot-password", d.UserHandler.ForgotPassword)
			auth.POST("/reset-password", d.UserHandler.ResetPassword)

			auth.POST("/logout", middleware.JWTAuth(d.Auth), d.UserHandler.Logout)
		}

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(d.Auth))

		users := protected.Group("/users")
		{
			users.GET("", d.UserHandler.ListUsers)
			users.GET("/me", d.UserHandler.Me)
			users.GET("/:id", d.UserHandler.GetUser)
		}

		projects := protected.Group("/projects")
		{
			projects.POST("", d.ProjectHandler.CreateProject)
			projects.GET("", d.ProjectHandler.GetAllProjects)
			projects.GET("/:id", d.ProjectHandler.GetProject)
			projects.PUT("/:id", d.ProjectHandler.UpdateProject)
			projects.DELETE("/:id", d.ProjectHandler.DeleteProject)

			projects.GET("/:id/members", d.ProjectHandler.ListMembers)
			projects.POST("/:id/members", d.ProjectHandler.AddMembers)
			projects.DELETE("/:id/members/:member_id", d.ProjectHandler.RemoveMember)

			projects.GET("/:id/milestones", d.ProjectHandler.ListMilestones)
			projects.POST("/:id/milestones", d.ProjectHandler.AddMilestone)
			projects.PUT("/:id/milestones/:milestone_id", d.ProjectHandler.UpdateMilestone)
			projects.DELETE("/:id/milestones/:milestone_id", d.ProjectHandler.DeleteMilestone)

			projects.GET("/:id/tasks", d.TaskHandler.GetProjectTasks)

			projects.POST("/:id/files", d.ProjectHandler.AppendFiles)
			projects.PUT("/:id/files", d.ProjectHandler.ReplaceFiles)
			projects.DELETE("/:id/files/:file_name", d.ProjectHandler.DeleteFile)
		}

		company := protected.Group("/company")
		{
			company.GET("/settings", d.CompanyHandler.GetSettings)
			company.PUT("/settings", d.CompanyHandler.UpdateSettings)

			company.POST("/:id/addresses", d.CompanyHandler.AddAddress)
			company.PUT("/:id/addresses/:address_id", d.CompanyHandler.UpdateAddress)
			company.DELETE("/:id/addresses/:address_id", d.CompanyHandler.DeleteAddress)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.POST("", d.TaskHandler.CreateTask)
			tasks.GET("", d.TaskHandler.GetAllTasks)
			tasks.GET("/assigned", d.TaskHandler.GetTasksByUser)
			tasks.GET("/:id", d.TaskHandler.GetTask)
			tasks.PUT("/:id", d.TaskHandler.UpdateTask)
			tasks.DELETE("/:id", d.TaskHandler.DeleteTask)
		}
	}
	return r
}
