package console

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authmemory "github.com/Apurer/delivery-console/internal/domains/auth/adapters/memory"
	authapp "github.com/Apurer/delivery-console/internal/domains/auth/application"
	authdomain "github.com/Apurer/delivery-console/internal/domains/auth/domain"
	ordersmemory "github.com/Apurer/delivery-console/internal/domains/orders/adapters/memory"
	ordersdomain "github.com/Apurer/delivery-console/internal/domains/orders/domain"
	storememory "github.com/Apurer/delivery-console/internal/domains/store/adapters/memory"
)

func TestSweepSessions_ReleasesAbandonedSessionState(t *testing.T) {
	sessions := authmemory.NewSessionStore()
	switches := storememory.NewSwitchRegistry()
	boards := ordersmemory.NewBoardCache()
	auth := authapp.NewService(nil, sessions,
		authapp.WithTeardown(switches.Forget),
		authapp.WithTeardown(boards.Forget),
	)

	now := time.Now()
	require.NoError(t, sessions.Save(t.Context(), &authdomain.Session{ID: "stale", Token: "tok", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, sessions.Save(t.Context(), &authdomain.Session{ID: "live", Token: "tok", ExpiresAt: now.Add(time.Hour)}))
	for _, id := range []string{"stale", "live", "logged-out-elsewhere"} {
		switches.For(id)
		boards.Put(id, ordersdomain.NewBoard(nil, nil, now))
	}

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		sweepSessions(ctx, 10*time.Millisecond, auth, discardLogger(), switches.Sessions, boards.Sessions)
	}()

	require.Eventually(t, func() bool {
		return len(switches.Sessions()) == 1 && len(boards.Sessions()) == 1
	}, time.Second, 10*time.Millisecond)
	cancel()
	<-done

	require.Equal(t, []string{"live"}, switches.Sessions())
	require.Equal(t, []string{"live"}, boards.Sessions())
	ids, err := sessions.SessionIDs(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"live"}, ids)
}
