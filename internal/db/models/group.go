package models

import "time"

// Group is a local group. Directory logins join users to the groups whose name matches one of
// their directory groups or the configured allowlist.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"`
	// Name is unique and compared case-insensitively with directory group names.
	Name string `gorm:"size:150;unique;not null"`
	// Description is free text for operators.
	Description string `gorm:"size:255"`
	// CreatedAt is managed by GORM.
	CreatedAt time.Time
	// UpdatedAt is managed by GORM.
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming.
func (Group) TableName() string {
	return "groups"
}
