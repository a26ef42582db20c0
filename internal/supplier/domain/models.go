// Package domain contains persistence models for the supplier service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Supplier represents a vendor tracked inside an organization.
type Supplier struct {
	ID               snowflake.ID   `gorm:"primaryKey" json:"-"`
	UUID             string         `gorm:"type:uuid;not null;uniqueIndex" json:"uuid"`
	Name             string         `gorm:"type:text;not null;index" json:"name"`
	OrganizationUUID string         `gorm:"type:uuid;not null;index" json:"organization_uuid"`
	OwnerUUID        string         `gorm:"type:uuid" json:"owner_uuid"`
	LogoURL          string         `gorm:"type:text;index" json:"logo_url"`
	Data             datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Supplier) TableName() string { return "suppliers" }

// SupplierMember links a user to a supplier they collaborate on.
type SupplierMember struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"-"`
	UserUUID     string       `gorm:"type:uuid;not null;uniqueIndex:uq_supplier_users,priority:1" json:"user_uuid"`
	SupplierUUID string       `gorm:"type:uuid;not null;uniqueIndex:uq_supplier_users,priority:2" json:"supplier_uuid"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (SupplierMember) TableName() string { return "supplier_users" }
