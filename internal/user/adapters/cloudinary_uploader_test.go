package adapters

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadWithoutConfiguration(t *testing.T) {
	uploader := NewCloudinaryUploader("")

	_, err := uploader.Upload(context.Background(), strings.NewReader("img"), "user_1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploaderNotConfigured)
}

func TestUploadWithMalformedURL(t *testing.T) {
	uploader := NewCloudinaryUploader("://not-a-cloudinary-url")

	_, err := uploader.Upload(context.Background(), strings.NewReader("img"), "user_1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploaderNotConfigured)
}
