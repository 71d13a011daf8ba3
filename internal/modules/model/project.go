package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Milestone is owned exclusively by its parent project and lives inside the
// project's jsonb column. It has no identity outside the parent; its id is
// minted when it is appended.
type Milestone struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShortCode string    `gorm:"type:text" json:"short_code"`

	ProjectName string    `gorm:"type:text;not null" json:"project_name"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`

	ProjectCategory string `gorm:"type:text" json:"project_category"`
	Department      string `gorm:"type:text" json:"department"`
	ProjectSummary  string `gorm:"type:text" json:"project_summary"`

	// Ordered attachment URLs; appended or wholesale-replaced, never merged.
	Attachments datatypes.JSONType[[]string] `gorm:"type:jsonb;not null;default:'[]'" swaggertype:"array,string" json:"attachments"`

	// Ordered embedded milestones; a milestone cannot outlive its project.
	Milestones datatypes.JSONType[[]Milestone] `gorm:"type:jsonb;not null;default:'[]'" swaggertype:"array,object" json:"milestones"`

	// Non-owning references to users. Uniqueness is enforced in the service
	// layer, not the schema.
	Members []User `gorm:"many2many:project_members;" json:"members,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

type ProjectMember struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// ProjectMember <-> Project
	Project Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// ProjectMember <-> User
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ProjectMember) TableName() string { return "project_members" }

// AttachmentView pairs an attachment URL with the filename derived from its
// last path segment.
type AttachmentView struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
