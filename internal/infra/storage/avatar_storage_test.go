package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/testutil"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestAvatarStorage_UploadAndOpen(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()
	store := NewAvatarStorage(bucket, "/static/avatars/", 1024, testutil.DiscardLogger())
	userID := uuid.New()

	url, err := store.Upload(ctx, userID, "image/png", pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/static/avatars/"+userID.String()+"/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	reader, contentType, err := store.Open(ctx, strings.TrimPrefix(url, "/static/avatars/"))
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
	assert.Equal(t, "image/png", contentType)
}

func TestAvatarStorage_Rejections(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()
	store := NewAvatarStorage(bucket, "/static/avatars", 4, testutil.DiscardLogger())

	_, err := store.Upload(ctx, uuid.New(), "image/png", pngHeader)
	assert.ErrorIs(t, err, domainerrors.ErrAvatarTooLarge)

	_, err = store.Upload(ctx, uuid.New(), "application/pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedAvatarType)

	_, _, err = store.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, _, err = store.Open(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
