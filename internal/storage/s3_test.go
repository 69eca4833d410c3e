package storage

import (
	"context"
	"strings"
	"testing"

	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type capturingS3Client struct {
	lastInput *s3aws.PutObjectInput
	err       error
}

func (c *capturingS3Client) PutObject(_ context.Context, params *s3aws.PutObjectInput, _ ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error) {
	c.lastInput = params
	if c.err != nil {
		return nil, c.err
	}
	return &s3aws.PutObjectOutput{}, nil
}

func TestS3PhotoStoreUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads under a unique key preserving the extension", func(t *testing.T) {
		client := &capturingS3Client{}
		store := NewS3PhotoStoreWithClient(client, "photos", "https://cdn.example.com/")

		url, err := store.Upload(ctx, "site-photo.JPG", "image/jpeg", []byte("fake-image"))
		require.NoError(t, err)

		require.NotNil(t, client.lastInput)
		require.Equal(t, "photos", *client.lastInput.Bucket)
		require.True(t, strings.HasSuffix(*client.lastInput.Key, ".jpg"))
		require.Equal(t, "image/jpeg", *client.lastInput.ContentType)

		require.Equal(t, "https://cdn.example.com/"+*client.lastInput.Key, url)
	})

	t.Run("two uploads never share a key", func(t *testing.T) {
		client := &capturingS3Client{}
		store := NewS3PhotoStoreWithClient(client, "photos", "https://cdn.example.com")

		_, err := store.Upload(ctx, "a.png", "image/png", []byte("one"))
		require.NoError(t, err)
		first := *client.lastInput.Key

		_, err = store.Upload(ctx, "a.png", "image/png", []byte("two"))
		require.NoError(t, err)
		require.NotEqual(t, first, *client.lastInput.Key)
	})

	t.Run("omits content type when unknown", func(t *testing.T) {
		client := &capturingS3Client{}
		store := NewS3PhotoStoreWithClient(client, "photos", "https://cdn.example.com")

		_, err := store.Upload(ctx, "blob", "", []byte("data"))
		require.NoError(t, err)
		require.Nil(t, client.lastInput.ContentType)
	})
}

func TestDisabledStore(t *testing.T) {
	_, err := DisabledStore{}.Upload(context.Background(), "a.png", "image/png", []byte("x"))
	require.ErrorIs(t, err, ErrNotConfigured)
}
