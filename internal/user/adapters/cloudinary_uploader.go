package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Avatars share one folder; the public ID is derived from the user so a
// re-upload replaces the previous image instead of piling up assets.
const avatarFolder = "contacts_avatars"

var (
	// ErrUploaderNotConfigured signals that no Cloudinary URL was provided.
	// The API boots without one; only the avatar endpoint needs it.
	ErrUploaderNotConfigured = errors.New("cloudinary is not configured")
	// ErrNoUploadURL signals the upload succeeded but returned no URL.
	ErrNoUploadURL = errors.New("upload returned no URL")
)

// AvatarUploader stores an avatar image and returns its public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, file io.Reader, publicID string) (string, error)
}

// CloudinaryUploader implements AvatarUploader on the Cloudinary upload
// API. The client is built lazily on first use so a missing CLOUDINARY_URL
// surfaces as an error on the avatar endpoint, not at startup.
type CloudinaryUploader struct {
	url string

	mu     sync.Mutex
	client *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudinaryURL string) *CloudinaryUploader {
	return &CloudinaryUploader{url: cloudinaryURL}
}

var _ AvatarUploader = (*CloudinaryUploader)(nil)

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	client, err := u.getClient()
	if err != nil {
		return "", err
	}

	resp, err := client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:    avatarFolder,
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	if resp.SecureURL == "" {
		return "", ErrNoUploadURL
	}
	return resp.SecureURL, nil
}

func (u *CloudinaryUploader) getClient() (*cloudinary.Cloudinary, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.client != nil {
		return u.client, nil
	}
	if u.url == "" {
		return nil, ErrUploaderNotConfigured
	}
	client, err := cloudinary.NewFromURL(u.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploaderNotConfigured, err)
	}
	u.client = client
	return client, nil
}
