package postgres

import (
	"context"

	"github.com/arjunv/vidtube/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *mediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, object *domain.MediaObject) error {
	return r.db.WithContext(ctx).Create(object).Error
}

func (r *mediaRepository) GetByStorageKey(ctx context.Context, key string) (*domain.MediaObject, error) {
	var object domain.MediaObject
	err := r.db.WithContext(ctx).First(&object, "storage_key = ?", key).Error
	if err != nil {
		return nil, err
	}
	return &object, nil
}

func (r *mediaRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.MediaObject, error) {
	var objects []*domain.MediaObject
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&objects).Error
	if err != nil {
		return nil, err
	}
	return objects, nil
}
