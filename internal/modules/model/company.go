package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BusinessAddress is owned exclusively by its company record and lives inside
// the company's jsonb column, like a project milestone. Its id is minted when
// it is appended.
type BusinessAddress struct {
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postal_code"`
}

// CompanySetting is the single per-installation company record.
type CompanySetting struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	CompanyName string `gorm:"type:text" json:"company_name"`
	Email       string `gorm:"type:text" json:"email"`
	Phone       string `gorm:"type:text" json:"phone"`
	Website     string `gorm:"type:text" json:"website"`
	LogoURL     string `gorm:"type:text" json:"logo_url"`

	// Ordered embedded addresses; an address cannot outlive the company record.
	BusinessAddresses datatypes.JSONType[[]BusinessAddress] `gorm:"type:jsonb;not null;default:'[]'" swaggertype:"array,object" json:"business_addresses"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CompanySetting) TableName() string { return "company_settings" }
