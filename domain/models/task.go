package models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Description string
	DueDate     *time.Time
	Completed   bool   `gorm:"not null;default:false;index:idx_tasks_owner_order,priority:2"`
	UserID      string `gorm:"not null;size:255;index:idx_tasks_owner_order,priority:1"`
	User        User   `gorm:"foreignKey:UserID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Task) TableName() string {
	return "tasks"
}
