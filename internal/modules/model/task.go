package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`

	Title       string     `gorm:"type:text;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:text;not null;default:'pending';check:status IN ('pending','in_progress','completed')" json:"status"`
	DueDate     *time.Time `json:"due_date"`

	Attachments datatypes.JSONType[[]string] `gorm:"type:jsonb;not null;default:'[]'" swaggertype:"array,string" json:"attachments"`

	Assignees []User `gorm:"many2many:task_assignees;" json:"assignees,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Task <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Task) TableName() string { return "tasks" }

type TaskAssignee struct {
	TaskID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"task_id"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// TaskAssignee <-> Task
	Task Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// TaskAssignee <-> User
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (TaskAssignee) TableName() string { return "task_assignees" }
