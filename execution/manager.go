package execution

import (
	"fmt"
	"sync/atomic"

	"github.com/petermattis/goid"

	"github.com/launchdarkly/go-test-execution/logging"
)

// Manager coordinates one test run's execution contexts: it owns the root
// context and the goroutine registry, and is the only entry point for
// creating contexts, resolving the current context, and pinning contexts to
// goroutines. Construct one Manager per run rather than sharing global
// state, so isolated runs (including this package's own tests) can coexist.
type Manager struct {
	root     *Context
	registry *registry
	logger   logging.Logger
	observer Observer
	closed   int32 // atomic; nonzero once Close has been called
}

// ManagerOption is an optional configuration setting for NewManager.
type ManagerOption func(*Manager)

// WithObserver makes the manager report context lifecycle events to o.
func WithObserver(o Observer) ManagerOption {
	return func(m *Manager) {
		if o != nil {
			m.observer = o
		}
	}
}

// NewManager creates the Manager for a test run, along with its root
// context. A nil debugLogger disables debug output.
func NewManager(debugLogger logging.Logger, opts ...ManagerOption) *Manager {
	if debugLogger == nil {
		debugLogger = logging.NullLogger()
	}
	m := &Manager{
		registry: newRegistry(),
		logger:   debugLogger,
		observer: nullObserver{},
	}
	m.root = newContext(m, nil, nil)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RootContext returns the run's root context. It always succeeds.
func (m *Manager) RootContext() *Context {
	return m.root
}

// CurrentContext resolves the context for the calling goroutine: an explicit
// pin wins; otherwise, if the goroutine was started with Spawn, the snapshot
// of its creator's context taken at spawn time; otherwise the root context.
// It has no side effects, so repeated calls from the same goroutine return
// the same context until the pin state changes.
func (m *Manager) CurrentContext() *Context {
	if c, ok := m.registry.lookup(goid.Get()); ok {
		return c
	}
	return m.root
}

// CreateContext creates a child of parent for the given unit of work. A nil
// parent means the root context. The parent must belong to this manager's
// run and the run must still be open; otherwise the error identifies the
// problem and no context is created.
func (m *Manager) CreateContext(parent *Context, unit interface{}) (*Context, error) {
	if m.isClosed() {
		return nil, ErrManagerClosed
	}
	if parent == nil {
		parent = m.root
	}
	if parent.manager != m {
		return nil, fmt.Errorf("CreateContext with parent %s: %w", parent.id, ErrInvalidContext)
	}
	child := parent.newChild(unit)
	m.logger.Printf("created context %s (parent %s, unit %v)", child.id, parent.id, unit)
	m.observer.ContextCreated(child)
	return child, nil
}

// SetGoroutineContext pins ctx as the current context of the goroutine with
// the given id, overriding inheritance until changed. A nil ctx clears the
// pin, reverting that goroutine to inherited resolution. Setting the same
// value twice is a no-op.
func (m *Manager) SetGoroutineContext(gid int64, ctx *Context) error {
	if m.isClosed() {
		return ErrManagerClosed
	}
	if ctx != nil && ctx.manager != m {
		return fmt.Errorf("SetGoroutineContext with context %s: %w", ctx.id, ErrInvalidContext)
	}
	m.registry.setPin(gid, ctx)
	if ctx == nil {
		m.logger.Printf("cleared context pin for goroutine %d", gid)
		m.observer.ContextUnpinned(gid)
	} else {
		m.logger.Printf("pinned context %s to goroutine %d", ctx.id, gid)
		m.observer.ContextPinned(gid, ctx)
	}
	return nil
}

// SetCurrentContext pins ctx (or clears the pin, if ctx is nil) for the
// calling goroutine.
func (m *Manager) SetCurrentContext(ctx *Context) error {
	return m.SetGoroutineContext(goid.Get(), ctx)
}

// Close ends the run. Subsequent CreateContext, SetGoroutineContext, and
// RunWithContext calls fail with ErrManagerClosed; the context tree remains
// readable so reports can still be assembled from it.
func (m *Manager) Close() {
	if atomic.CompareAndSwapInt32(&m.closed, 0, 1) {
		m.logger.Printf("execution manager closed")
	}
}

func (m *Manager) isClosed() bool {
	return atomic.LoadInt32(&m.closed) != 0
}
