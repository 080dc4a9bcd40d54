package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Module is a self-contained component with a start/stop lifecycle.
type Module interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context)
}

// Manager starts modules in registration order and stops them in reverse.
type Manager struct {
	modules []Module
	started []Module
	logger  zerolog.Logger
	mu      sync.Mutex
}

// NewManager creates a manager with the provided modules.
func NewManager(logger zerolog.Logger, mods ...Module) *Manager {
	return &Manager{
		modules: mods,
		logger:  logger,
	}
}

// Add registers additional modules before Start is invoked.
func (m *Manager) Add(mod Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started != nil {
		return fmt.Errorf("actions.Manager: cannot add modules after start")
	}
	m.modules = append(m.modules, mod)
	return nil
}

// Len reports how many modules are registered.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.modules)
}

// Start initializes all modules. If any module fails, previously started modules are stopped.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started != nil {
		return fmt.Errorf("actions.Manager already started")
	}

	started := make([]Module, 0, len(m.modules))
	for _, mod := range m.modules {
		if mod == nil {
			continue
		}
		if err := mod.Start(ctx); err != nil {
			for i := len(started) - 1; i >= 0; i-- {
				started[i].Stop(ctx)
			}
			return fmt.Errorf("module %s failed: %w", mod.Name(), err)
		}
		m.logger.Info().Str("module", mod.Name()).Msg("module started")
		started = append(started, mod)
	}

	m.started = started
	return nil
}

// Stop shuts down started modules in reverse order.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.started) - 1; i >= 0; i-- {
		m.started[i].Stop(ctx)
		m.logger.Info().Str("module", m.started[i].Name()).Msg("module stopped")
	}
	m.started = nil
}
