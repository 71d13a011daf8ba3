package handler

import (
	"net/http"

	"github.com/busitron/workhub/internal/modules/serializer"
	"github.com/busitron/workhub/internal/modules/service"
	"github.com/busitron/workhub/internal/pkg/jwtauth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{svc: s}
}

type RegisterReq struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Designation string `json:"designation"`
	EmployeeID  string `json:"employee_id"`
	Role        string `json:"role"`
	Department  string `json:"department"`
	Phone       string `json:"phone"`
}

// Register godoc
//
//	@Summary	Register a user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		RegisterReq	true	"User details"
//	@Success	201		{object}	serializer.Response{data=model.User}
//	@Router		/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	req := RegisterReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	u, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Designation: req.Designation,
		EmployeeID:  req.EmployeeID,
		Role:        req.Role,
		Department:  req.Department,
		Phone:       req.Phone,
	})
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.Created(c, u, "User registered successfully")
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	Tokens *service.TokenPair `json:"tokens"`
	User   any                `json:"user"`
}

// Login godoc
//
//	@Summary	Log in with email and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		LoginReq	true	"Credentials"
//	@Success	200		{object}	serializer.Response{data=LoginResp}
//	@Router		/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tokens, u, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, LoginResp{Tokens: tokens, User: u}, "Logged in successfully")
}

type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh godoc
//
//	@Summary	Rotate an access/refresh token pair
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		RefreshReq	true	"Refresh token"
//	@Success	200		{object}	serializer.Response{data=service.TokenPair}
//	@Router		/auth/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	req := RefreshReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, tokens, "Token refreshed successfully")
}

// Logout godoc
//
//	@Summary	Log out the caller
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response
//	@Router		/auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	claims := c.MustGet("claims").(*jwtauth.Claims)

	if err := h.svc.Logout(c.Request.Context(), claims.UserID); err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, nil, "Logged out successfully")
}

type ForgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword godoc
//
//	@Summary	Send a password reset code by mail
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		ForgotPasswordReq	true	"Account email"
//	@Success	200		{object}	serializer.Response
//	@Router		/auth/forgot-password [post]
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	req := ForgotPasswordReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, nil, "OTP sent to your email")
}

type ResetPasswordReq struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword godoc
//
//	@Summary	Reset the password with the mailed code
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		ResetPasswordReq	true	"Reset payload"
//	@Success	200		{object}	serializer.Response
//	@Router		/auth/reset-password [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	req := ResetPasswordReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, nil, "Password changed successfully")
}

// Me godoc
//
//	@Summary	Get the caller's profile
//	@Tags		user
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.User}
//	@Router		/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	claims := c.MustGet("claims").(*jwtauth.Claims)

	u, err := h.svc.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, u, "User fetched successfully")
}

// GetUser godoc
//
//	@Summary	Get a user by id
//	@Tags		user
//	@Produce	json
//	@Param		id	path	string	true	"User ID"	Format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.User}
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	u, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, u, "User fetched successfully")
}

// ListUsers godoc
//
//	@Summary	List users
//	@Tags		user
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.User}
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, users, "Users fetched successfully")
}
