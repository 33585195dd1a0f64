// Package userrepo reads user display names from the users table, which is owned by the
// identity service.
package userrepo

import (
	"github.com/google/uuid"
)

// UserDTO is the subset of the users table the cafeteria reads.
type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Role     string    `gorm:"type:varchar(16);not null"`
}

func (UserDTO) TableName() string {
	return "users"
}
