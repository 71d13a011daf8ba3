package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RoleEmployee   = "Employee"
)

const (
	PresenceOnline  = "Online"
	PresenceOffline = "Offline"
)

// IsValidRole checks if the given role is one of the supported roles
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email      string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	EmployeeID string    `gorm:"type:text;not null;uniqueIndex" json:"employee_id"`
	Name       string    `gorm:"type:text;index" json:"name"`

	Role        string `gorm:"type:text;not null;default:'Employee';check:role IN ('SuperAdmin','Admin','Employee')" json:"role"`
	Designation string `gorm:"type:text" json:"designation"`

	// Only the one-way hash is ever stored; plaintext never reaches the database.
	PasswordHash string `gorm:"column:password_hash;type:text;not null" json:"-"`

	Phone         string     `gorm:"type:text" json:"phone"`
	Address       string     `gorm:"type:text" json:"address"`
	CompanyName   string     `gorm:"type:text" json:"company_name"`
	Avatar        string     `gorm:"type:text" json:"avatar"`
	DateOfBirth   *time.Time `gorm:"type:date" json:"date_of_birth"`
	Department    string     `gorm:"type:text" json:"department"`
	Gender        string     `gorm:"type:text" json:"gender"`
	MaritalStatus string     `gorm:"type:text" json:"marital_status"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`

	Status   string `gorm:"type:text;not null;default:'Offline';check:status IN ('Online','Offline')" json:"status"`
	SocketID string `gorm:"type:text" json:"socket_id,omitempty"`

	RefreshToken string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// MemberProjection is the reduced user shape returned wherever project
// membership is expanded.
type MemberProjection struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`
	Avatar string    `json:"avatar"`
	Role   string    `json:"role"`
}

// Projection reduces a User to the membership view.
func (u *User) Projection() MemberProjection {
	return MemberProjection{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
		Avatar: u.Avatar,
		Role:   u.Role,
	}
}
