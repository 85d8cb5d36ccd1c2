package models

import "time"

// UserGroup is the membership join table between users and groups.
// The composite primary key makes adding a membership twice a no-op.
type UserGroup struct {
	// UserID is the ID of the user in this membership.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// GroupID is the ID of the group in this membership.
	GroupID uint `gorm:"primaryKey;column:group_id"`
	// CreatedAt is the time the membership was added.
	CreatedAt time.Time
}

// TableName overrides GORM's default naming.
func (UserGroup) TableName() string {
	return "user_groups"
}
