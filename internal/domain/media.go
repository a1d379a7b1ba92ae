package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MediaKind string

const (
	MediaKindAvatar MediaKind = "avatar"
	MediaKindCover  MediaKind = "cover"
)

// MediaObject tracks a file uploaded to object storage via a presigned URL.
// The bytes themselves never pass through this service.
type MediaObject struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID    uuid.UUID      `json:"ownerId" gorm:"type:uuid;index;not null"`
	StorageKey string         `json:"storageKey" gorm:"uniqueIndex;not null"`
	Kind       MediaKind      `json:"kind" gorm:"not null"`
	Metadata   datatypes.JSON `json:"metadata" gorm:"type:jsonb;default:'{}'"`
	CreatedAt  time.Time      `json:"createdAt"`
}
