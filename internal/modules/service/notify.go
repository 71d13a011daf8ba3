package service

import (
	"context"

	"github.com/busitron/workhub/internal/infra/mailer"
	"github.com/busitron/workhub/internal/infra/queue"
	"github.com/busitron/workhub/internal/modules/model"
	"github.com/busitron/workhub/internal/modules/repo"
	"github.com/busitron/workhub/internal/pkg/mention"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService resolves @-mentions and dispatches task mail. Delivery
// is best-effort: a transport failure is logged and never aborts the calling
// operation.
type NotificationService interface {
	ResolveMentions(ctx context.Context, text string) ([]string, error)
	NotifyTask(ctx context.Context, to []string, subject, message string, taskID uuid.UUID)
	PublishTaskEvent(ctx context.Context, routingKey string, task *model.Task)
}

type notificationService struct {
	users repo.UserRepo
	mail  mailer.Mailer
	pub   *queue.Publisher
	log   *zap.Logger
}

func NewNotificationService(users repo.UserRepo, mail mailer.Mailer, pub *queue.Publisher, log *zap.Logger) NotificationService {
	return &notificationService{users: users, mail: mail, pub: pub, log: log}
}

// ResolveMentions scans text for "@name" tokens and returns the email
// addresses of users whose name matches a token exactly. Unmatched tokens are
// silently dropped.
func (s *notificationService) ResolveMentions(ctx context.Context, text string) ([]string, error) {
	names := mention.Extract(text)
	if len(names) == 0 {
		return nil, nil
	}

	users, err := s.users.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(users))
	for i := range users {
		emails = append(emails, users[i].Email)
	}
	return emails, nil
}

func (s *notificationService) NotifyTask(ctx context.Context, to []string, subject, message string, taskID uuid.UUID) {
	for _, addr := range to {
		if err := s.mail.SendTaskEmail(addr, subject, message, taskID.String(), true); err != nil {
			s.log.Sugar().Warnw("task mail not delivered", "to", addr, "task_id", taskID, "err", err)
		}
	}
}

func (s *notificationService) PublishTaskEvent(ctx context.Context, routingKey string, task *model.Task) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishJSON(ctx, routingKey, task); err != nil {
		s.log.Sugar().Warnw("task event not published", "routing_key", routingKey, "task_id", task.ID, "err", err)
	}
}
