package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect_RejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ")
	require.ErrorIs(t, err, ErrEmptyDSN)
}

func TestConnectFromEnv_WithoutDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	var buf bytes.Buffer

	db, cleanup := ConnectFromEnv(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	defer cleanup()

	require.Nil(t, db)
	require.Contains(t, buf.String(), "postgres unavailable")
}
