package creatives

import (
	"context"
	"log/slog"

	"adsync/internal/backoff"
	"adsync/internal/logging"
	"adsync/internal/services"
	"adsync/internal/services/drive"
)

// MediaUploader is the slice of the platform gateway the uploader needs.
type MediaUploader interface {
	UploadImage(ctx context.Context, name string, data []byte) (string, error)
	UploadVideo(ctx context.Context, name string, data []byte) (string, error)
}

// Uploader moves one asset from the file store to the ad platform. Download
// and upload each get their own retry budget; a validation failure between
// them never reaches the network.
type Uploader struct {
	store    drive.Downloader
	platform MediaUploader
	retry    backoff.Policy
	logger   *slog.Logger
}

// NewUploader builds an Uploader with the supplied retry policy.
func NewUploader(store drive.Downloader, platform MediaUploader, retry backoff.Policy, logger *slog.Logger) *Uploader {
	return &Uploader{
		store:    store,
		platform: platform,
		retry:    retry,
		logger:   logging.NewComponentLogger(logger, "uploader"),
	}
}

// Upload downloads, validates, and uploads a single asset. Failures are
// captured in the result rather than returned, so batch callers can keep
// going; the error inside the result carries the variant and aspect ratio for
// operator triage.
func (u *Uploader) Upload(ctx context.Context, asset Asset) UploadResult {
	result := UploadResult{Asset: asset}

	var data []byte
	err := u.retry.Do(func() error {
		var downloadErr error
		data, downloadErr = u.store.Download(ctx, asset.FileID)
		return downloadErr
	})
	if err != nil {
		result.Err = services.Wrap(services.ErrTransport, "upload", asset.Label(), "download failed after retries", err)
		return result
	}

	warning, err := Validate(asset, data)
	if err != nil {
		result.Err = err
		return result
	}
	if warning != nil {
		u.logger.Warn("asset content not recognized, uploading anyway",
			logging.String("asset", asset.Label()),
			logging.String("detail", warning.Detail))
	}

	switch asset.Kind {
	case KindImage:
		var hash string
		err = u.retry.Do(func() error {
			var uploadErr error
			hash, uploadErr = u.platform.UploadImage(ctx, asset.Name, data)
			return uploadErr
		})
		if err != nil {
			result.Err = services.Wrap(services.ErrTransport, "upload", asset.Label(), "image upload failed after retries", err)
			return result
		}
		result.ImageHash = hash
	case KindVideo:
		var videoID string
		err = u.retry.Do(func() error {
			var uploadErr error
			videoID, uploadErr = u.platform.UploadVideo(ctx, asset.Name, data)
			return uploadErr
		})
		if err != nil {
			result.Err = services.Wrap(services.ErrTransport, "upload", asset.Label(), "video upload failed after retries", err)
			return result
		}
		result.VideoID = videoID
	}

	result.Success = true
	u.logger.Info("asset uploaded",
		logging.String("asset", asset.Label()),
		logging.String(logging.FieldFileID, asset.FileID),
		logging.String("platform_id", result.PlatformID()))
	return result
}
