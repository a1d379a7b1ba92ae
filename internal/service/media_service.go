package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sc "github.com/arjunv/vidtube/internal/config"
	"github.com/arjunv/vidtube/internal/domain"
	"github.com/arjunv/vidtube/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

// MediaService hands out presigned URLs so clients upload avatar and cover
// images directly to object storage; only the storage key and metadata are
// recorded here.
type MediaService struct {
	mediaRepo repository.MediaRepository
	cfg       *sc.Config
}

func NewMediaService(mediaRepo repository.MediaRepository, cfg *sc.Config) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		cfg:       cfg,
	}
}

func storageKeyFor(ownerID uuid.UUID) string {
	d := time.Now()
	return fmt.Sprintf("users/%s/%d/%d/%d/%s", ownerID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *MediaService) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.S3AccessKey,
			s.cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.S3BaseEndpoint)
		}
	})

	return s3.NewPresignClient(client), nil
}

type UploadGrant struct {
	StorageKey string `json:"storageKey"`
	UploadURL  string `json:"uploadUrl"`
}

type UploadMetadata struct {
	ContentType string `json:"contentType,omitempty"`
	Filename    string `json:"filename,omitempty"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
}

// RequestUpload issues a presigned PUT URL and records the pending object.
func (s *MediaService) RequestUpload(ctx context.Context, ownerID uuid.UUID, kind domain.MediaKind, meta UploadMetadata) (*UploadGrant, error) {
	if kind != domain.MediaKindAvatar && kind != domain.MediaKindCover {
		return nil, domain.ErrInvalidInput
	}

	presigner, err := s.presignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.cfg.S3Bucket
	key := storageKeyFor(ownerID)

	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	object := &domain.MediaObject{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		StorageKey: key,
		Kind:       kind,
		Metadata:   metadata,
	}
	if err := s.mediaRepo.Create(ctx, object); err != nil {
		return nil, err
	}

	return &UploadGrant{StorageKey: key, UploadURL: req.URL}, nil
}

type UploadRecord struct {
	StorageKey string          `json:"storageKey"`
	Kind       string          `json:"kind"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ListUploads returns the requester's recorded uploads, newest first.
func (s *MediaService) ListUploads(ctx context.Context, ownerID uuid.UUID) ([]UploadRecord, error) {
	objects, err := s.mediaRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	records := make([]UploadRecord, 0, len(objects))
	for _, object := range objects {
		records = append(records, UploadRecord{
			StorageKey: object.StorageKey,
			Kind:       string(object.Kind),
			Metadata:   json.RawMessage(object.Metadata),
			CreatedAt:  object.CreatedAt,
		})
	}
	return records, nil
}

// DownloadURL issues a presigned GET URL for an object owned by requesterID.
func (s *MediaService) DownloadURL(ctx context.Context, requesterID uuid.UUID, storageKey string) (string, error) {
	object, err := s.mediaRepo.GetByStorageKey(ctx, storageKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrMediaNotFound
		}
		return "", err
	}
	if object.OwnerID != requesterID {
		return "", domain.ErrMediaNotOwned
	}

	presigner, err := s.presignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.cfg.S3Bucket
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &object.StorageKey,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
