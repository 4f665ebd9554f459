package memory

import (
	"sync"

	"github.com/Apurer/delivery-console/internal/domains/orders/domain"
	"github.com/Apurer/delivery-console/internal/domains/orders/ports"
)

var _ ports.BoardCache = (*BoardCache)(nil)

// BoardCache keeps the orders board of each session in process memory. Boards
// are immutable so they are shared without copying.
type BoardCache struct {
	mu     sync.RWMutex
	boards map[string]*domain.Board
}

func NewBoardCache() *BoardCache {
	return &BoardCache{boards: map[string]*domain.Board{}}
}

func (c *BoardCache) Get(sessionID string) (*domain.Board, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	board, ok := c.boards[sessionID]
	return board, ok
}

func (c *BoardCache) Put(sessionID string, board *domain.Board) {
	if board == nil {
		return
	}
	c.mu.Lock()
	c.boards[sessionID] = board
	c.mu.Unlock()
}

func (c *BoardCache) Forget(sessionID string) {
	c.mu.Lock()
	delete(c.boards, sessionID)
	c.mu.Unlock()
}

// Sessions lists the session ids that currently hold state.
func (c *BoardCache) Sessions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.boards))
	for id := range c.boards {
		ids = append(ids, id)
	}
	return ids
}
