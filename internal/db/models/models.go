// Package models holds the gorm models of the gateway's local user store.
package models

// All returns every model in migration order.
func All() []any {
	return []any{
		&Group{},
		&User{},
		&UserGroup{},
	}
}
