package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/mikelitos05/asistencias/internal/app/repositories"
)

const (
	// PhotoSizeLimitKey is the app_config key for the attendance photo
	// upload limit, in megabytes.
	PhotoSizeLimitKey = "photo_size_limit_mb"

	// DefaultPhotoSizeLimitMB applies when the key was never configured.
	DefaultPhotoSizeLimitMB = 10
)

// AppConfigService defines the interface for runtime setting operations
type AppConfigService interface {
	GetPhotoSizeLimit(ctx context.Context) (int, error)
	SetPhotoSizeLimit(ctx context.Context, sizeMB int) error
}

// appConfigServiceImpl implements AppConfigService
type appConfigServiceImpl struct {
	store  ConfigStore
	logger zerolog.Logger
}

// NewAppConfigService creates a new AppConfigService
func NewAppConfigService(store ConfigStore, logger zerolog.Logger) AppConfigService {
	return &appConfigServiceImpl{
		store:  store,
		logger: logger,
	}
}

// GetPhotoSizeLimit returns the configured attendance photo size limit in
// megabytes, falling back to the default when unset or unparseable.
func (s *appConfigServiceImpl) GetPhotoSizeLimit(ctx context.Context) (int, error) {
	value, err := s.store.GetValue(ctx, PhotoSizeLimitKey)
	if err != nil {
		if errors.Is(err, repositories.ErrConfigKeyNotFound) {
			return DefaultPhotoSizeLimitMB, nil
		}
		return 0, err
	}

	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 {
		s.logger.Warn().Str("value", value).Msg("Invalid photo size limit stored, using default")
		return DefaultPhotoSizeLimitMB, nil
	}

	return limit, nil
}

// SetPhotoSizeLimit stores the attendance photo size limit in megabytes
func (s *appConfigServiceImpl) SetPhotoSizeLimit(ctx context.Context, sizeMB int) error {
	if err := s.store.SetValue(ctx, PhotoSizeLimitKey, strconv.Itoa(sizeMB)); err != nil {
		return err
	}

	s.logger.Info().Int("size_mb", sizeMB).Msg("Photo size limit updated")
	return nil
}
