package seed

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/mikelitos05/asistencias/internal/app/models"
	appRepos "github.com/mikelitos05/asistencias/internal/app/repositories"
	"github.com/mikelitos05/asistencias/internal/app/services"
	"github.com/mikelitos05/asistencias/internal/db"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
)

const (
	defaultAdminEmail    = "admin@asistencias.local"
	defaultAdminPassword = "changeme"
)

// CreateDefaultData seeds the bootstrap super admin and the runtime settings
// the application expects to find. It is idempotent: existing rows are left
// untouched.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	var finalErr error

	if err := seedSuperAdmin(ctx, appRepos.NewUserRepository(database), lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedConfigDefaults(ctx, appRepos.NewAppConfigRepository(database), lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// seedSuperAdmin creates the initial SUPER_ADMIN account so a fresh install
// can log in and create the real users. Credentials come from
// SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD when set.
func seedSuperAdmin(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing seed admin password")
		return err
	}

	user := &appModels.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Administrador",
		RoleType: appModels.RoleSuperAdmin,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			lgr.Debug().Str("email", email).Msg("Seed admin already exists")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating seed admin user")
		return err
	}

	lgr.Info().Str("email", email).Msg("Seed super admin created")
	return nil
}

// seedConfigDefaults writes the settings read at request time, so operators
// see them in app_config instead of discovering hard-coded fallbacks.
func seedConfigDefaults(ctx context.Context, configRepo *appRepos.AppConfigRepository, lgr zerolog.Logger) error {
	if _, err := configRepo.GetValue(ctx, services.PhotoSizeLimitKey); err == nil {
		return nil
	}

	if err := configRepo.SetValue(ctx, services.PhotoSizeLimitKey, "10"); err != nil {
		lgr.Error().Err(err).Msg("Error seeding photo size limit")
		return err
	}
	lgr.Info().Msg("Seeded default photo size limit")
	return nil
}
