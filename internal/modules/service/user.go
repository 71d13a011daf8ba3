package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/busitron/workhub/internal/infra/cache"
	"github.com/busitron/workhub/internal/infra/mailer"
	"github.com/busitron/workhub/internal/modules/apperr"
	"github.com/busitron/workhub/internal/modules/model"
	"github.com/busitron/workhub/internal/modules/repo"
	"github.com/busitron/workhub/internal/pkg/jwtauth"
	"github.com/busitron/workhub/internal/pkg/password"
	"github.com/busitron/workhub/internal/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const otpTTL = 10 * time.Minute

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, plain string) (*TokenPair, *model.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
}

type userService struct {
	r    repo.UserRepo
	auth *jwtauth.Auth
	otp  cache.OTPStore
	mail mailer.Mailer
	log  *zap.Logger
}

func NewUserService(r repo.UserRepo, auth *jwtauth.Auth, otp cache.OTPStore, mail mailer.Mailer, log *zap.Logger) UserService {
	return &userService{r: r, auth: auth, otp: otp, mail: mail, log: log}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Designation string
	EmployeeID  string
	Role        string
	Department  string
	Phone       string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func userNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("User not found.")
	}
	return apperr.Internal("", err)
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Email == "" || in.Password == "" || in.Designation == "" {
		return nil, apperr.Validation("All required fields must be filled.")
	}

	role := in.Role
	if role == "" {
		role = model.RoleEmployee
	}
	if !model.IsValidRole(role) {
		return nil, apperr.Validation("invalid role")
	}

	employeeID := in.EmployeeID
	if employeeID == "" {
		generated, err := utils.GenerateEmployeeID("EMP")
		if err != nil {
			return nil, apperr.Internal("", err)
		}
		employeeID = generated
	}

	// The plaintext is hashed here and discarded; only the hash is stored.
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal("", err)
	}

	u := &model.User{
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		EmployeeID:   employeeID,
		Role:         role,
		Designation:  in.Designation,
		Department:   in.Department,
		Phone:        in.Phone,
		PasswordHash: hash,
	}
	if err := s.r.Create(ctx, u); err != nil {
		return nil, apperr.Validation("email or employee id already registered")
	}
	return u, nil
}

func (s *userService) Login(ctx context.Context, email, plain string) (*TokenPair, *model.User, error) {
	u, err := s.r.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, nil, apperr.Internal("", err)
	}

	if !password.Verify(plain, u.PasswordHash) {
		return nil, nil, apperr.Unauthorized("invalid email or password")
	}

	access, refresh, err := s.auth.GeneratePair(u.ID, u.Email, u.Name, u.Role)
	if err != nil {
		return nil, nil, apperr.Internal("", err)
	}

	if err := s.r.UpdateFields(ctx, u.ID, map[string]interface{}{
		"refresh_token": refresh,
		"status":        model.PresenceOnline,
	}); err != nil {
		return nil, nil, apperr.Internal("", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, u, nil
}

// Refresh validates the presented refresh token against the stored one and
// rotates the pair.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.auth.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired refresh token")
	}

	u, err := s.r.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, userNotFound(err)
	}
	if u.RefreshToken != refreshToken {
		return nil, apperr.Unauthorized("refresh token revoked")
	}

	access, refresh, err := s.auth.GeneratePair(u.ID, u.Email, u.Name, u.Role)
	if err != nil {
		return nil, apperr.Internal("", err)
	}

	if err := s.r.UpdateFields(ctx, u.ID, map[string]interface{}{"refresh_token": refresh}); err != nil {
		return nil, apperr.Internal("", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.r.UpdateFields(ctx, userID, map[string]interface{}{
		"refresh_token": "",
		"status":        model.PresenceOffline,
	}); err != nil {
		return apperr.Internal("", err)
	}
	return nil
}

func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.r.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return userNotFound(err)
	}

	code, err := utils.GenerateOTP(6)
	if err != nil {
		return apperr.Internal("", err)
	}
	if err := s.otp.Save(ctx, u.Email, code, otpTTL); err != nil {
		return apperr.Internal("", err)
	}

	if err := s.mail.SendOTPEmail(u.Email, code); err != nil {
		return apperr.Internal("otp mail not sent", err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return apperr.Validation("Password is required")
	}

	u, err := s.r.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return userNotFound(err)
	}

	ok, err := s.otp.Consume(ctx, u.Email, code)
	if err != nil {
		return apperr.Internal("", err)
	}
	if !ok {
		return apperr.Validation("invalid or expired passcode")
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return apperr.Internal("", err)
	}
	if err := s.r.UpdateFields(ctx, u.ID, map[string]interface{}{
		"password_hash": hash,
		"refresh_token": "",
	}); err != nil {
		return apperr.Internal("", err)
	}

	if err := s.mail.SendPasswordChangedEmail(u.Email); err != nil {
		s.log.Sugar().Warnw("password-changed mail not delivered", "email", u.Email, "err", err)
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.r.FindByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err)
	}
	return u, nil
}

func (s *userService) ListAll(ctx context.Context) ([]model.User, error) {
	users, err := s.r.FindAll(ctx)
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	return users, nil
}
