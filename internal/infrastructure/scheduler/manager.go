// Package scheduler hosts the periodic jobs of the worker binary. Each
// scheduler owns one goroutine loop; the manager fans Start and Stop out to
// all of them.
package scheduler

import (
	"context"

	"atrium/internal/shared/logger"
)

// Scheduler is implemented by every periodic job loop in this package.
type Scheduler interface {
	Start(ctx context.Context)
	Stop()
}

// Manager supervises the registered schedulers.
type Manager struct {
	schedulers []Scheduler
	logger     logger.Interface
}

// NewManager creates a new Manager
func NewManager(logger logger.Interface) *Manager {
	return &Manager{logger: logger}
}

// Register adds a scheduler to the managed set. Not safe to call after Start.
func (m *Manager) Register(s Scheduler) {
	m.schedulers = append(m.schedulers, s)
}

// Start starts all registered schedulers.
func (m *Manager) Start(ctx context.Context) {
	m.logger.Infow("starting scheduler manager", "scheduler_count", len(m.schedulers))
	for _, s := range m.schedulers {
		s.Start(ctx)
	}
}

// Stop stops all schedulers and waits for their loops to drain.
func (m *Manager) Stop() {
	m.logger.Infow("stopping scheduler manager")
	for _, s := range m.schedulers {
		s.Stop()
	}
	m.logger.Infow("scheduler manager stopped")
}
