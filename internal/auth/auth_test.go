package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-occupancy-backend/internal/db"
	"hotel-occupancy-backend/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gormDB))

	return NewService(store.NewGormStore(gormDB), "test-secret", time.Hour, bcrypt.MinCost)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	admin, err := svc.Register(ctx, "front@desk.example", "correct horse", "Front Desk")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", admin.PasswordHash)

	got, token, err := svc.Login(ctx, "front@desk.example", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	assert.NotEmpty(t, token)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "correct horse", "Front Desk")
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	_, err = svc.Register(ctx, "front@desk.example", "short", "Front Desk")
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "front@desk.example", "correct horse", "Front Desk")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "front@desk.example", "other password", "Night Shift")
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "front@desk.example", "correct horse", "Front Desk")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "front@desk.example", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@desk.example", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	id, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestVerifyTokenRejectsForgedToken(t *testing.T) {
	svc := newTestService(t)
	other := NewService(nil, "different-secret", time.Hour, bcrypt.MinCost)

	forged, err := other.GenerateToken(42)
	require.NoError(t, err)

	_, err = svc.VerifyToken(forged)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpiredToken(t *testing.T) {
	svc := NewService(nil, "test-secret", -time.Minute, bcrypt.MinCost)

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}
