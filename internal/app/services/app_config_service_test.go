package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikelitos05/asistencias/internal/app/repositories"
)

type memConfig map[string]string

func (c memConfig) GetValue(ctx context.Context, key string) (string, error) {
	value, ok := c[key]
	if !ok {
		return "", repositories.ErrConfigKeyNotFound
	}
	return value, nil
}

func (c memConfig) SetValue(ctx context.Context, key, value string) error {
	c[key] = value
	return nil
}

func TestGetPhotoSizeLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("unset falls back to default", func(t *testing.T) {
		service := NewAppConfigService(memConfig{}, zerolog.Nop())
		limit, err := service.GetPhotoSizeLimit(ctx)
		require.NoError(t, err)
		assert.Equal(t, DefaultPhotoSizeLimitMB, limit)
	})

	t.Run("unparseable falls back to default", func(t *testing.T) {
		service := NewAppConfigService(memConfig{PhotoSizeLimitKey: "lots"}, zerolog.Nop())
		limit, err := service.GetPhotoSizeLimit(ctx)
		require.NoError(t, err)
		assert.Equal(t, DefaultPhotoSizeLimitMB, limit)
	})

	t.Run("stored value wins", func(t *testing.T) {
		config := memConfig{}
		service := NewAppConfigService(config, zerolog.Nop())
		require.NoError(t, service.SetPhotoSizeLimit(ctx, 25))

		limit, err := service.GetPhotoSizeLimit(ctx)
		require.NoError(t, err)
		assert.Equal(t, 25, limit)
	})
}
