package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/repositories"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
	"github.com/mikelitos05/asistencias/internal/pkg/auth"
)

// memUsers is an in-memory UserStore for auth tests.
type memUsers struct {
	users  map[string]*models.User
	nextID int64
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*models.User{}}
}

func (s *memUsers) Create(ctx context.Context, user *models.User) error {
	if _, ok := s.users[user.Email]; ok {
		return apperrors.ErrDuplicateEmail
	}
	s.nextID++
	user.ID = s.nextID
	clone := *user
	s.users[user.Email] = &clone
	return nil
}

func (s *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *memUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (s *memUsers) GetAll(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		clone := *user
		out = append(out, &clone)
	}
	return out, nil
}

func newAuthFixture(t *testing.T) (AuthService, *memUsers) {
	t.Helper()
	users := newMemUsers()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	return NewAuthService(users, jwtService, zerolog.Nop()), users
}

func TestLogin(t *testing.T) {
	service, users := newAuthFixture(t)
	ctx := context.Background()

	hashed, err := auth.HashPassword("secreta123")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &models.User{
		Email:    "admin@parques.mx",
		Password: hashed,
		Name:     "Admin",
		RoleType: models.RoleSuperAdmin,
	}))

	t.Run("succeeds with valid credentials", func(t *testing.T) {
		resp, err := service.Login(ctx, &dto.LoginRequest{Email: "admin@parques.mx", Password: "secreta123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "admin@parques.mx", resp.User.Email)
		assert.Equal(t, "SUPER_ADMIN", resp.User.RoleType)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, &dto.LoginRequest{Email: "admin@parques.mx", Password: "incorrecta"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, &dto.LoginRequest{Email: "nadie@parques.mx", Password: "secreta123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestCreateUser(t *testing.T) {
	service, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := service.CreateUser(ctx, &dto.UserRequest{
		Email:    "coordinadora@parques.mx",
		Password: "secreta123",
		Name:     "Coordinadora",
		RoleType: "ADMIN",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "ADMIN", resp.RoleType)

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := service.CreateUser(ctx, &dto.UserRequest{
			Email:    "coordinadora@parques.mx",
			Password: "secreta123",
			Name:     "Otra",
			RoleType: "ADMIN",
		})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := service.CreateUser(ctx, &dto.UserRequest{
			Email:    "alguien@parques.mx",
			Password: "secreta123",
			Name:     "Alguien",
			RoleType: "VOLUNTARIO",
		})
		assert.Error(t, err)
	})

	// Login works with the newly created account.
	login, err := service.Login(ctx, &dto.LoginRequest{Email: "coordinadora@parques.mx", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	all, err := service.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
