package qr

import (
	"github.com/kabisa/ebmbridge/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.qr",
	fx.Provide(NewBuilderFromConfig),
	fx.Provide(NewUploaderFromConfig),
)

func NewBuilderFromConfig(cfg config.Config) *Builder {
	return NewBuilder(cfg.QR.Mode, cfg.QR.RRABaseURL)
}

func NewUploaderFromConfig(cfg config.Config, log *zap.Logger) (Uploader, error) {
	if cfg.Cloudinary.CloudName == "" {
		return NoOpUploader{}, nil
	}
	return NewCloudinaryUploader(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
		log,
	)
}
