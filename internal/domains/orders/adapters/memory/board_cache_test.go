package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/delivery-console/internal/domains/orders/domain"
)

func TestBoardCache_PerSession(t *testing.T) {
	cache := NewBoardCache()
	board := domain.NewBoard([]domain.Order{{ID: 1}}, nil, time.Now())

	cache.Put("a", board)
	cache.Put("b", nil)

	got, ok := cache.Get("a")
	require.True(t, ok)
	require.Same(t, board, got)

	_, ok = cache.Get("b")
	require.False(t, ok)
	require.Equal(t, []string{"a"}, cache.Sessions())

	cache.Forget("a")
	require.Empty(t, cache.Sessions())
	_, ok = cache.Get("a")
	require.False(t, ok)
}
