package bootstrap

import (
	"context"
	"time"

	"github.com/busitron/workhub/internal/config"
	"github.com/busitron/workhub/internal/infra/blob"
	"github.com/busitron/workhub/internal/infra/cache"
	"github.com/busitron/workhub/internal/infra/db"
	"github.com/busitron/workhub/internal/infra/logger"
	"github.com/busitron/workhub/internal/infra/mailer"
	"github.com/busitron/workhub/internal/infra/queue"
	"github.com/busitron/workhub/internal/modules/handler"
	"github.com/busitron/workhub/internal/modules/model"
	"github.com/busitron/workhub/internal/modules/repo"
	"github.com/busitron/workhub/internal/modules/service"
	"github.com/busitron/workhub/internal/pkg/jwtauth"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.User{},
				&model.Project{},
				&model.ProjectMember{},
				&model.Task{},
				&model.TaskAssignee{},
				&model.CompanySetting{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})
	do.Provide(inj, func(i *do.Injector) (cache.OTPStore, error) {
		return cache.NewOTPStore(do.MustInvoke[*redis.Client](i)), nil
	})

	// RabbitMQ
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return amqp.Dial(cfg.RabbitMQ.URL)
	})
	do.Provide(inj, func(i *do.Injector) (*queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return queue.NewPublisher(
			do.MustInvoke[*amqp.Connection](i),
			cfg.RabbitMQ.Exchange,
			do.MustInvoke[*zap.Logger](i),
		)
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})

	// SMTP
	do.Provide(inj, func(i *do.Injector) (mailer.Mailer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return mailer.New(cfg), nil
	})

	// JWT
	do.Provide(inj, func(i *do.Injector) (*jwtauth.Auth, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return jwtauth.New(jwtauth.Config{
			AccessSecret:  cfg.JWT.AccessSecret,
			RefreshSecret: cfg.JWT.RefreshSecret,
			AccessTTL:     time.Duration(cfg.JWT.AccessTTLMin) * time.Minute,
			RefreshTTL:    time.Duration(cfg.JWT.RefreshTTLHr) * time.Hour,
		}), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CompanyRepo, error) {
		return repo.NewCompanyRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.NotificationService, error) {
		return service.NewNotificationService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[mailer.Mailer](i),
			do.MustInvoke[*queue.Publisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*jwtauth.Auth](i),
			do.MustInvoke[cache.OTPStore](i),
			do.MustInvoke[mailer.Mailer](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[service.NotificationService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(inj, func(i *do.Injector) (service.CompanyService, error) {
		return service.NewCompanyService(
			do.MustInvoke[repo.CompanyRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(do.MustInvoke[service.UserService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CompanyHandler, error) {
		return handler.NewCompanyHandler(do.MustInvoke[service.CompanyService](i)), nil
	})

	return inj
}
