//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/delivery-console/internal/domains/auth/domain"
	"github.com/Apurer/delivery-console/internal/domains/auth/ports"
	"github.com/Apurer/delivery-console/internal/platform/migrations"
)

func setupSessionsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("console_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSessionsPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db)
	ctx := context.Background()

	session, err := domain.NewSession("tok", "owner@example.com", time.Now(), time.Hour)
	require.NoError(t, err)
	session.AddFlash("Erro ao atualizar status")
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.Token)
	assert.Equal(t, []string{"Erro ao atualizar status"}, loaded.Flashes)

	loaded.PopFlashes()
	require.NoError(t, store.Save(ctx, loaded))
	reloaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Flashes)

	require.NoError(t, store.Delete(ctx, session.ID))
	_, err = store.Get(ctx, session.ID)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSessionsPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db)
	ctx := context.Background()

	live, err := domain.NewSession("live", "owner@example.com", time.Now(), time.Hour)
	require.NoError(t, err)
	stale, err := domain.NewSession("stale", "owner@example.com", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, live))
	require.NoError(t, store.Save(ctx, stale))

	_, err = store.Get(ctx, stale.ID)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Get(ctx, live.ID)
	require.NoError(t, err)
}
