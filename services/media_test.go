package services

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"kacchi/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageKeyLayout(t *testing.T) {
	at := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	key := StorageKey("u1", model.UploadMemoryMedia, at)

	parts := strings.Split(key, "/")
	require.Len(t, parts, 6)
	assert.Equal(t, []string{"users", "u1", "memory", "2024", "03"}, parts[:5])
	assert.Len(t, parts[5], 36)
}

func TestS3PresignerSignsPutURL(t *testing.T) {
	p, err := NewS3Presigner(context.Background(), S3Options{
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		Bucket:    "kacchi",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	})
	require.NoError(t, err)

	fixed := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	out, err := p.PresignUpload(context.Background(), "u1", model.PresignRequest{
		Kind:        model.UploadStoryCover,
		ContentType: "image/png",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.Key, "users/u1/cover/2024/03/"))
	assert.Equal(t, fixed.Add(PresignExpiry), out.ExpiresAt)

	u, err := url.Parse(out.UploadURL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/kacchi/"+out.Key, u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestDisabledPresigner(t *testing.T) {
	_, err := DisabledPresigner{}.PresignUpload(context.Background(), "u1", model.PresignRequest{})
	assert.ErrorIs(t, err, model.ErrStorageDisabled)
}
