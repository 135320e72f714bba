package models

import "time"

// User is keyed by the external identity id issued by the auth provider.
// Rows are provisioned on first authenticated contact, never registered
// through this API.
type User struct {
	ID        string `gorm:"primaryKey;size:255"`
	Email     string `gorm:"uniqueIndex;not null"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
