package memory

import (
	"sync"

	"github.com/Apurer/delivery-console/internal/domains/store/domain"
	"github.com/Apurer/delivery-console/internal/domains/store/ports"
)

var _ ports.SwitchRegistry = (*SwitchRegistry)(nil)

// SwitchRegistry keeps one store switch per console session in process memory.
type SwitchRegistry struct {
	mu       sync.Mutex
	switches map[string]*domain.Switch
}

func NewSwitchRegistry() *SwitchRegistry {
	return &SwitchRegistry{switches: map[string]*domain.Switch{}}
}

func (r *SwitchRegistry) For(sessionID string) *domain.Switch {
	r.mu.Lock()
	defer r.mu.Unlock()
	sw, ok := r.switches[sessionID]
	if !ok {
		sw = domain.NewSwitch()
		r.switches[sessionID] = sw
	}
	return sw
}

func (r *SwitchRegistry) Forget(sessionID string) {
	r.mu.Lock()
	delete(r.switches, sessionID)
	r.mu.Unlock()
}

// Sessions lists the session ids that currently hold state.
func (r *SwitchRegistry) Sessions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.switches))
	for id := range r.switches {
		ids = append(ids, id)
	}
	return ids
}
