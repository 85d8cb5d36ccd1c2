// Package repository reads and writes the local user store with gorm.
package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/authgw/authgw/internal/db/models"
)

const usernameQueryPattern = "username = ?"

// Users stores user records and their group memberships.
type Users struct {
	db *gorm.DB
}

// NewUsers returns a Users repository on db.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// FindByUsername returns the user with the exact username, or nil without error when absent.
func (r *Users) FindByUsername(username string) (*models.User, error) {
	if r.db == nil {
		return nil, wrap("find user", ErrDBNil)
	}

	if username == "" {
		return nil, wrap("find user", ErrUsernameEmpty)
	}

	var user models.User

	err := r.db.Where(usernameQueryPattern, username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, wrap("find user", err)
	}

	return &user, nil
}

// Create inserts user. A taken username fails with the driver's unique constraint error.
func (r *Users) Create(user *models.User) error {
	if r.db == nil {
		return wrap("create user", ErrDBNil)
	}

	if user.Username == "" {
		return wrap("create user", ErrUsernameEmpty)
	}

	return wrap("create user", r.db.Create(user).Error)
}

// Update saves every column of an existing user.
func (r *Users) Update(user *models.User) error {
	if r.db == nil {
		return wrap("update user", ErrDBNil)
	}

	return wrap("update user", r.db.Save(user).Error)
}

// ListGroups returns all local groups ordered by name.
func (r *Users) ListGroups() ([]models.Group, error) {
	if r.db == nil {
		return nil, wrap("list groups", ErrDBNil)
	}

	var groups []models.Group
	if err := r.db.Order("name").Find(&groups).Error; err != nil {
		return nil, wrap("list groups", err)
	}

	return groups, nil
}

// IsMember reports whether the user already belongs to the group.
func (r *Users) IsMember(userID uint64, groupID uint) (bool, error) {
	if r.db == nil {
		return false, wrap("check membership", ErrDBNil)
	}

	var count int64

	err := r.db.Model(&models.UserGroup{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&count).Error
	if err != nil {
		return false, wrap("check membership", err)
	}

	return count > 0, nil
}

// AddToGroup adds a membership; adding an existing one is a no-op.
func (r *Users) AddToGroup(userID uint64, groupID uint) error {
	if r.db == nil {
		return wrap("add membership", ErrDBNil)
	}

	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserGroup{UserID: userID, GroupID: groupID}).Error

	return wrap("add membership", err)
}

// GroupsOf returns the groups the user belongs to.
func (r *Users) GroupsOf(userID uint64) ([]models.Group, error) {
	if r.db == nil {
		return nil, wrap("list user groups", ErrDBNil)
	}

	var groups []models.Group

	err := r.db.Table("groups").
		Joins("JOIN user_groups ON user_groups.group_id = groups.id").
		Where("user_groups.user_id = ?", userID).
		Order("groups.name").
		Find(&groups).Error
	if err != nil {
		return nil, wrap("list user groups", err)
	}

	return groups, nil
}
