// Package domain contains persistence models for the RFP service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// RFP is a request for proposal owned by an organization. Its payload
// lives in a free-form JSON bag so forms can evolve without schema churn.
type RFP struct {
	ID               snowflake.ID   `gorm:"primaryKey" json:"-"`
	UUID             string         `gorm:"type:uuid;not null;uniqueIndex" json:"uuid"`
	Name             string         `gorm:"type:text;index" json:"name"`
	OrganizationUUID string         `gorm:"type:uuid;not null;index" json:"organization_uuid"`
	OwnerUUID        string         `gorm:"type:uuid" json:"owner_uuid"`
	Data             datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (RFP) TableName() string { return "rfps" }
