// Package domain contains persistence models for the organization service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Organization represents a tenant.
type Organization struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"-"`
	UUID      string       `gorm:"type:uuid;not null;uniqueIndex" json:"uuid"`
	Name      string       `gorm:"type:text;not null;index" json:"name"`
	OwnerUUID string       `gorm:"type:uuid;not null" json:"owner_uuid"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }

// OrganizationMember links a user to an organization.
type OrganizationMember struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"-"`
	UserUUID         string       `gorm:"type:uuid;not null;uniqueIndex:uq_organization_users,priority:1" json:"user_uuid"`
	OrganizationUUID string       `gorm:"type:uuid;not null;uniqueIndex:uq_organization_users,priority:2" json:"organization_uuid"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (OrganizationMember) TableName() string { return "organization_users" }

// Invitation tracks a pending invite into an organization.
type Invitation struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"-"`
	Email            string       `gorm:"type:text;not null;index" json:"email"`
	OrganizationUUID string       `gorm:"type:uuid;not null;index" json:"organization_uuid"`
	Status           string       `gorm:"type:text;not null;default:pending" json:"status"`
	OwnerUUID        string       `gorm:"type:uuid" json:"owner_uuid"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invitation) TableName() string { return "invitations" }

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)
