// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User represents a system user account.
type User struct {
	ID                     snowflake.ID `gorm:"primaryKey" json:"-"`
	UUID                   string       `gorm:"type:uuid;not null;uniqueIndex" json:"uuid"`
	Email                  string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	FirstName              string       `gorm:"type:text" json:"first_name"`
	LastName               string       `gorm:"type:text" json:"last_name"`
	HashedPassword         string       `gorm:"type:text;not null" json:"-"`
	ActiveOrganizationUUID *string      `gorm:"type:uuid" json:"active_organization_uuid"`
	CreatedAt              time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt              time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// UserResponse is the public view of a user account.
type UserResponse struct {
	UUID                   string  `json:"uuid"`
	Email                  string  `json:"email"`
	FirstName              string  `json:"first_name"`
	LastName               string  `json:"last_name"`
	ActiveOrganizationUUID *string `json:"active_organization_uuid"`
}

// PublicView converts a stored user to its response shape.
func (u *User) PublicView() *UserResponse {
	return &UserResponse{
		UUID:                   u.UUID,
		Email:                  u.Email,
		FirstName:              u.FirstName,
		LastName:               u.LastName,
		ActiveOrganizationUUID: u.ActiveOrganizationUUID,
	}
}
