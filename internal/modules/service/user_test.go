package service

import (
	"context"
	"testing"
	"time"

	"github.com/busitron/workhub/internal/modules/apperr"
	"github.com/busitron/workhub/internal/modules/model"
	"github.com/busitron/workhub/internal/pkg/jwtauth"
	"github.com/busitron/workhub/internal/pkg/password"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockOTPStore is a mock implementation of cache.OTPStore
type MockOTPStore struct {
	mock.Mock
}

func (m *MockOTPStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	args := m.Called(ctx, email, code, ttl)
	return args.Error(0)
}

func (m *MockOTPStore) Consume(ctx context.Context, email, code string) (bool, error) {
	args := m.Called(ctx, email, code)
	return args.Bool(0), args.Error(1)
}

// MockMailer is a mock implementation of mailer.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendTaskEmail(to, subject, message, taskID string, includeLink bool) error {
	args := m.Called(to, subject, message, taskID, includeLink)
	return args.Error(0)
}

func (m *MockMailer) SendOTPEmail(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordChangedEmail(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func testAuth() *jwtauth.Auth {
	return jwtauth.New(jwtauth.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
}

func newUserServiceForTest(r *MockUserRepo, otp *MockOTPStore, mail *MockMailer) UserService {
	return NewUserService(r, testAuth(), otp, mail, zap.NewNop())
}

func createTestUser(plain string) *model.User {
	hash, _ := password.Hash(plain)
	return &model.User{
		ID:           uuid.New(),
		Name:         "Asha",
		Email:        "asha@example.com",
		EmployeeID:   "EMP-000123",
		Role:         model.RoleEmployee,
		PasswordHash: hash,
	}
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name        string
		input       RegisterInput
		setup       func(*MockUserRepo)
		expectError bool
		wantStatus  int
	}{
		{
			name: "successful registration with generated employee id",
			input: RegisterInput{
				Name:        "Asha",
				Email:       "  Asha@Example.com ",
				Password:    "hunter2hunter2",
				Designation: "Engineer",
			},
			setup: func(r *MockUserRepo) {
				r.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "asha@example.com" &&
						u.Role == model.RoleEmployee &&
						u.EmployeeID != "" &&
						u.PasswordHash != "hunter2hunter2"
				})).Return(nil)
			},
		},
		{
			name:        "missing designation",
			input:       RegisterInput{Email: "asha@example.com", Password: "hunter2hunter2"},
			setup:       func(r *MockUserRepo) {},
			expectError: true,
			wantStatus:  400,
		},
		{
			name: "invalid role",
			input: RegisterInput{
				Email:       "asha@example.com",
				Password:    "hunter2hunter2",
				Designation: "Engineer",
				Role:        "Overlord",
			},
			setup:       func(r *MockUserRepo) {},
			expectError: true,
			wantStatus:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockUserRepo{}
			tt.setup(mockRepo)

			svc := newUserServiceForTest(mockRepo, &MockOTPStore{}, &MockMailer{})
			u, err := svc.Register(context.Background(), tt.input)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, u)
				assert.Equal(t, tt.wantStatus, apperr.StatusOf(err))
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, u)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	u := createTestUser("hunter2hunter2")

	t.Run("issues a token pair and marks the user online", func(t *testing.T) {
		mockRepo := &MockUserRepo{}
		mockRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(u, nil)
		mockRepo.On("UpdateFields", mock.Anything, u.ID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["status"] == model.PresenceOnline && fields["refresh_token"] != ""
		})).Return(nil)

		svc := newUserServiceForTest(mockRepo, &MockOTPStore{}, &MockMailer{})
		pair, got, err := svc.Login(context.Background(), "asha@example.com", "hunter2hunter2")

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, u.ID, got.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		mockRepo := &MockUserRepo{}
		mockRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(u, nil)

		svc := newUserServiceForTest(mockRepo, &MockOTPStore{}, &MockMailer{})
		_, _, err := svc.Login(context.Background(), "asha@example.com", "wrong")

		assert.Error(t, err)
		assert.Equal(t, 401, apperr.StatusOf(err))
	})

	t.Run("unknown email is 401, not 404", func(t *testing.T) {
		mockRepo := &MockUserRepo{}
		mockRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := newUserServiceForTest(mockRepo, &MockOTPStore{}, &MockMailer{})
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2")

		assert.Error(t, err)
		assert.Equal(t, 401, apperr.StatusOf(err))
	})
}

func TestUserService_Refresh(t *testing.T) {
	u := createTestUser("hunter2hunter2")
	auth := testAuth()
	_, refresh, err := auth.GeneratePair(u.ID, u.Email, u.Name, u.Role)
	assert.NoError(t, err)
	u.RefreshToken = refresh

	t.Run("rotates the pair when the stored token matches", func(t *testing.T) {
		mockRepo := &MockUserRepo{}
		mockRepo.On("FindByID", mock.Anything, u.ID).Return(u, nil)
		mockRepo.On("UpdateFields", mock.Anything, u.ID, mock.Anything).Return(nil)

		svc := newUserServiceForTest(mockRepo, &MockOTPStore{}, &MockMailer{})
		pair, err := svc.Refresh(context.Background(), refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("revoked token is 401", func(t *testing.T) {
		stale := *u
		stale.RefreshToken = "something-else"

		mockRepo := &MockUserRepo{}
		mockRepo.On("FindByID", mock.Anything, u.ID).Return(&stale, nil)

		svc := newUserServiceForTest(mockRepo, &MockOTPStore{}, &MockMailer{})
		_, err := svc.Refresh(context.Background(), refresh)

		assert.Error(t, err)
		assert.Equal(t, 401, apperr.StatusOf(err))
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		svc := newUserServiceForTest(&MockUserRepo{}, &MockOTPStore{}, &MockMailer{})
		_, err := svc.Refresh(context.Background(), "not-a-jwt")

		assert.Error(t, err)
		assert.Equal(t, 401, apperr.StatusOf(err))
	})
}

func TestUserService_ForgotPassword(t *testing.T) {
	u := createTestUser("hunter2hunter2")

	t.Run("saves a code and mails it", func(t *testing.T) {
		mockRepo := &MockUserRepo{}
		mockRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(u, nil)

		otp := &MockOTPStore{}
		otp.On("Save", mock.Anything, u.Email, mock.MatchedBy(func(code string) bool {
			return len(code) == 6
		}), otpTTL).Return(nil)

		mail := &MockMailer{}
		mail.On("SendOTPEmail", u.Email, mock.Anything).Return(nil)

		svc := newUserServiceForTest(mockRepo, otp, mail)
		assert.NoError(t, svc.ForgotPassword(context.Background(), "asha@example.com"))

		otp.AssertExpectations(t)
		mail.AssertExpectations(t)
	})

	t.Run("unknown email is 404", func(t *testing.T) {
		mockRepo := &MockUserRepo{}
		mockRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := newUserServiceForTest(mockRepo, &MockOTPStore{}, &MockMailer{})
		err := svc.ForgotPassword(context.Background(), "nobody@example.com")

		assert.Error(t, err)
		assert.Equal(t, 404, apperr.StatusOf(err))
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	u := createTestUser("hunter2hunter2")

	t.Run("consumes the code, re-hashes, revokes refresh token", func(t *testing.T) {
		mockRepo := &MockUserRepo{}
		mockRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(u, nil)
		mockRepo.On("UpdateFields", mock.Anything, u.ID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			hash, ok := fields["password_hash"].(string)
			return ok && password.Verify("newpassword1", hash) && fields["refresh_token"] == ""
		})).Return(nil)

		otp := &MockOTPStore{}
		otp.On("Consume", mock.Anything, u.Email, "123456").Return(true, nil)

		mail := &MockMailer{}
		mail.On("SendPasswordChangedEmail", u.Email).Return(nil)

		svc := newUserServiceForTest(mockRepo, otp, mail)
		assert.NoError(t, svc.ResetPassword(context.Background(), "asha@example.com", "123456", "newpassword1"))

		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong code is 400", func(t *testing.T) {
		mockRepo := &MockUserRepo{}
		mockRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(u, nil)

		otp := &MockOTPStore{}
		otp.On("Consume", mock.Anything, u.Email, "000000").Return(false, nil)

		svc := newUserServiceForTest(mockRepo, otp, &MockMailer{})
		err := svc.ResetPassword(context.Background(), "asha@example.com", "000000", "newpassword1")

		assert.Error(t, err)
		assert.Equal(t, 400, apperr.StatusOf(err))
		assert.Equal(t, "invalid or expired passcode", apperr.MessageOf(err))
	})

	t.Run("empty password is 400", func(t *testing.T) {
		svc := newUserServiceForTest(&MockUserRepo{}, &MockOTPStore{}, &MockMailer{})
		err := svc.ResetPassword(context.Background(), "asha@example.com", "123456", "")

		assert.Error(t, err)
		assert.Equal(t, 400, apperr.StatusOf(err))
	})
}
