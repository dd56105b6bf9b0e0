// Package photo stores item and receipt pictures in Cloud Storage and hands
// back opaque public URLs. Callers treat the URL as a plain string field.
package photo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const (
	PurposeItem    = "item"
	PurposeReceipt = "receipt"
)

var ErrInvalidPurpose = errors.New("invalid_purpose")

type Uploader struct {
	client *storage.Client
	bucket string
}

func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	if bucket == "" {
		return nil, errors.New("storage bucket is not configured")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// Upload writes the file under the owner's prefix and returns a URL with a
// Firebase download token so the mobile client can render it directly.
func (u *Uploader) Upload(ctx context.Context, ownerUID, purpose string, data []byte, contentType string) (string, error) {
	if purpose != PurposeItem && purpose != PurposeReceipt {
		return "", fmt.Errorf("%w: %q", ErrInvalidPurpose, purpose)
	}
	if ownerUID == "" {
		return "", errors.New("owner is required")
	}
	if len(data) == 0 {
		return "", errors.New("file is empty")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	token := uuid.NewString()
	objectPath := fmt.Sprintf("photos/%s/%s_%s%s", ownerUID, purpose, uuid.NewString(), extensionFor(contentType))
	obj := u.client.Bucket(u.bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	escapedPath := url.PathEscape(objectPath)
	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		u.bucket, escapedPath, token)
	return publicURL, nil
}

func (u *Uploader) Close() error {
	return u.client.Close()
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	default:
		return ".jpg"
	}
}
