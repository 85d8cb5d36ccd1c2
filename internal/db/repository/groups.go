package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/authgw/authgw/internal/db/models"
)

const nameQueryPattern = "name = ?"

// CreateGroup adds a local group that directory logins can be matched against.
// Names are stored uppercased so they compare equal to directory group names.
func CreateGroup(db *gorm.DB, name, description string) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, ErrGroupNameEmpty
	}

	var existing models.Group

	result := db.Where(nameQueryPattern, name).First(&existing)
	if result.Error == nil {
		return nil, ErrGroupAlreadyExists
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	group := &models.Group{Name: name, Description: description}
	if err := db.Create(group).Error; err != nil {
		return nil, err
	}

	return group, nil
}

// GetGroup retrieves a group by name.
func GetGroup(db *gorm.DB, name string) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, ErrGroupNameEmpty
	}

	var group models.Group

	result := db.Where(nameQueryPattern, name).First(&group)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}

		return nil, result.Error
	}

	return &group, nil
}

// DeleteGroup removes a group and its memberships.
func DeleteGroup(db *gorm.DB, name string) error {
	group, err := GetGroup(db, name)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.UserGroup{}).Error; err != nil {
			return err
		}

		return tx.Delete(group).Error
	})
}
