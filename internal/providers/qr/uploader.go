package qr

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// Uploader publishes a rendered QR image and returns its public URL.
// Uploading is best-effort: receipts embed the QR directly, the hosted
// copy only feeds e-mail and dashboard links.
type Uploader interface {
	Upload(ctx context.Context, png []byte, publicID string) (string, error)
}

// NoOpUploader is used when no image host is configured.
type NoOpUploader struct{}

func (NoOpUploader) Upload(ctx context.Context, png []byte, publicID string) (string, error) {
	_ = ctx
	_ = png
	_ = publicID
	return "", nil
}

// CloudinaryUploader stores QR images in a Cloudinary folder.
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
	log    *zap.Logger
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string, log *zap.Logger) (*CloudinaryUploader, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("configure cloudinary: %w", err)
	}
	return &CloudinaryUploader{
		client: client,
		log:    log.Named("qr.uploader"),
	}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, png []byte, publicID string) (string, error) {
	resp, err := u.client.Upload.Upload(ctx, bytes.NewReader(png), uploader.UploadParams{
		PublicID: publicID,
		Folder:   "ebm-receipts",
	})
	if err != nil {
		return "", fmt.Errorf("upload qr image: %w", err)
	}

	u.log.Debug("qr image uploaded",
		zap.String("public_id", publicID),
		zap.String("url", resp.SecureURL),
	)
	return resp.SecureURL, nil
}
