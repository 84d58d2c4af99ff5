// Package storage keeps uploaded avatars in a gocloud.dev blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"

	"brewhouse/config"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/util"
)

const avatarPrefix = "avatars/"

var allowedAvatarTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type blobAvatarStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	maxSize       int
	logger        *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and closes it on shutdown.
func New(params Params) (service.AvatarStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL is required")
	}

	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewAvatarStorage(bucket, cfg.PublicBaseURL, cfg.MaxAvatarSize, params.Logger), nil
}

// NewAvatarStorage wraps an open bucket.
func NewAvatarStorage(bucket *blob.Bucket, publicBaseURL string, maxSize int, logger *slog.Logger) service.AvatarStorage {
	return &blobAvatarStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxSize:       maxSize,
		logger:        logger,
	}
}

// Upload writes the image under a fresh key per upload.
func (s *blobAvatarStorage) Upload(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error) {
	if s.maxSize > 0 && len(data) > s.maxSize {
		return "", domainerrors.ErrAvatarTooLarge.WithDetails("limit is " + util.FormatBytes(int64(s.maxSize)))
	}
	ext, ok := allowedAvatarTypes[strings.ToLower(contentType)]
	if !ok {
		return "", domainerrors.ErrUnsupportedAvatarType
	}

	key := avatarPrefix + userID.String() + "/" + uuid.NewString() + ext
	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to write avatar")
	}

	s.logger.Debug("Avatar stored", slog.String("key", key), slog.Int("bytes", len(data)))

	return s.publicBaseURL + "/" + strings.TrimPrefix(key, avatarPrefix), nil
}

// Open returns a reader over a stored avatar. key is relative to the avatar prefix.
func (s *blobAvatarStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || strings.HasPrefix(clean, "..") {
		return nil, "", domainerrors.ErrNotFound.WithDetails("avatar")
	}

	reader, err := s.bucket.NewReader(ctx, avatarPrefix+clean, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", domainerrors.ErrNotFound.WithDetails("avatar")
		}

		return nil, "", errors.Wrap(err, "failed to open avatar")
	}

	return reader, reader.ContentType(), nil
}
