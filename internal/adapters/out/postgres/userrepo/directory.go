package userrepo

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserDirectory implements ports.UserDirectory.
type GormUserDirectory struct {
	db *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// Migrate creates the users table when the service runs against its own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserDTO{})
}

// DisplayNames looks up usernames in one query. Missing users are left out of the map.
func (d *GormUserDirectory) DisplayNames(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]string, error) {
	names := make(map[kernel.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []UserDTO
	if err := d.db.WithContext(ctx).Select("id", "username").Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromRaw(dto.ID)
		if err != nil {
			return nil, err
		}
		names[id] = dto.Username
	}

	return names, nil
}
