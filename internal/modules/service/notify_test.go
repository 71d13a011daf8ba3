package service

import (
	"context"
	"errors"
	"testing"

	"github.com/busitron/workhub/internal/modules/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestNotificationService_ResolveMentions(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		setup  func(*MockUserRepo)
		want   []string
		errors bool
	}{
		{
			name: "resolves mentioned names to emails",
			text: "hand this off to @Asha and @Ravi",
			setup: func(r *MockUserRepo) {
				r.On("FindByNames", mock.Anything, []string{"Asha", "Ravi"}).Return([]model.User{
					{Name: "Asha", Email: "asha@example.com"},
					{Name: "Ravi", Email: "ravi@example.com"},
				}, nil)
			},
			want: []string{"asha@example.com", "ravi@example.com"},
		},
		{
			name: "unmatched names are dropped",
			text: "cc @Nobody",
			setup: func(r *MockUserRepo) {
				r.On("FindByNames", mock.Anything, []string{"Nobody"}).Return([]model.User{}, nil)
			},
			want: []string{},
		},
		{
			name:  "no mentions skips the lookup",
			text:  "plain description",
			setup: func(r *MockUserRepo) {},
			want:  nil,
		},
		{
			name: "repo error propagates",
			text: "cc @Asha",
			setup: func(r *MockUserRepo) {
				r.On("FindByNames", mock.Anything, []string{"Asha"}).Return(nil, errors.New("query error"))
			},
			errors: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockUserRepo{}
			tt.setup(mockRepo)

			svc := NewNotificationService(mockRepo, &MockMailer{}, nil, zap.NewNop())
			emails, err := svc.ResolveMentions(context.Background(), tt.text)

			if tt.errors {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, emails)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNotificationService_NotifyTask(t *testing.T) {
	taskID := uuid.New()

	t.Run("mails every recipient", func(t *testing.T) {
		mail := &MockMailer{}
		mail.On("SendTaskEmail", "asha@example.com", "New Task Assigned", "msg", taskID.String(), true).Return(nil)
		mail.On("SendTaskEmail", "ravi@example.com", "New Task Assigned", "msg", taskID.String(), true).Return(nil)

		svc := NewNotificationService(&MockUserRepo{}, mail, nil, zap.NewNop())
		svc.NotifyTask(context.Background(), []string{"asha@example.com", "ravi@example.com"}, "New Task Assigned", "msg", taskID)

		mail.AssertExpectations(t)
	})

	t.Run("a failed delivery does not stop the rest", func(t *testing.T) {
		mail := &MockMailer{}
		mail.On("SendTaskEmail", "asha@example.com", mock.Anything, mock.Anything, mock.Anything, true).Return(errors.New("smtp error"))
		mail.On("SendTaskEmail", "ravi@example.com", mock.Anything, mock.Anything, mock.Anything, true).Return(nil)

		svc := NewNotificationService(&MockUserRepo{}, mail, nil, zap.NewNop())
		svc.NotifyTask(context.Background(), []string{"asha@example.com", "ravi@example.com"}, "s", "m", taskID)

		mail.AssertExpectations(t)
	})
}

func TestNotificationService_PublishTaskEvent(t *testing.T) {
	t.Run("nil publisher is a no-op", func(t *testing.T) {
		svc := NewNotificationService(&MockUserRepo{}, &MockMailer{}, nil, zap.NewNop())
		svc.PublishTaskEvent(context.Background(), "task.assigned", &model.Task{ID: uuid.New()})
	})
}
