package execution

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/go-test-execution/logging"
)

// Context is a node in the execution-scope tree for one test run. Its
// identity, parent, and unit of work are fixed at creation; everything else
// is accumulated state that only grows while code runs inside the context
// (errors and properties are appended, the failed and skipped flags latch and
// are never cleared), so readers assembling a report can look at any time.
//
// Context implements the Errorf/FailNow pair expected by assertion libraries
// such as testify's require package, in which case a failed assertion is
// recorded on the context and FailNow aborts the enclosing RunWithContext
// block.
type Context struct {
	id      uuid.UUID
	manager *Manager
	parent  *Context
	unit    interface{}

	lock        sync.RWMutex
	children    []*Context
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	properties  map[string]ldvalue.Value
	debugLogger logging.CapturingLogger
}

func newContext(m *Manager, parent *Context, unit interface{}) *Context {
	return &Context{
		id:      uuid.New(),
		manager: m,
		parent:  parent,
		unit:    unit,
	}
}

// newChild creates a context whose parent is c and appends it to c's child
// list. Safe under concurrent creators on the same parent.
func (c *Context) newChild(unit interface{}) *Context {
	child := newContext(c.manager, c, unit)
	c.lock.Lock()
	c.children = append(c.children, child)
	c.lock.Unlock()
	return child
}

// ID returns the context's unique identity token.
func (c *Context) ID() uuid.UUID { return c.id }

// Parent returns the parent context, or nil for the root.
func (c *Context) Parent() *Context { return c.parent }

// UnitOfWork returns the opaque unit-of-work reference this context was
// created with, or nil for contexts that do not represent a test (such as
// the root or a setup scope).
func (c *Context) UnitOfWork() interface{} { return c.unit }

// Children returns a copy of the child list in creation order.
func (c *Context) Children() []*Context {
	c.lock.RLock()
	ret := append([]*Context(nil), c.children...)
	c.lock.RUnlock()
	return ret
}

// Errorf records a failure on the context. The failed flag latches; it is
// never reset.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.addError(fmt.Errorf(format, args...))
}

func (c *Context) addError(err error) {
	c.lock.Lock()
	c.failed = true
	c.errors = append(c.errors, err)
	c.lock.Unlock()
}

// FailNow aborts the block currently running inside this context. It must be
// called from within a RunWithContext block for this context; the abort is
// surfaced to the caller of RunWithContext as ErrBlockAborted.
func (c *Context) FailNow() {
	panic(c)
}

// Skip marks the context as skipped and aborts the current block. A skip is
// not a failure; RunWithContext returns nil for a skipped block.
func (c *Context) Skip() {
	c.lock.Lock()
	c.skipped = true
	c.lock.Unlock()
	panic(c)
}

// SkipWithReason is Skip with an explanation attached to the context.
func (c *Context) SkipWithReason(reason string) {
	c.lock.Lock()
	c.skipped = true
	c.skipReason = reason
	c.lock.Unlock()
	panic(c)
}

// Failed reports whether any failure has been recorded on this context.
func (c *Context) Failed() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.failed
}

// Skipped reports whether the context was skipped, and the reason if one was
// given.
func (c *Context) Skipped() (bool, string) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.skipped, c.skipReason
}

// Errors returns a copy of all failures recorded so far, in order.
func (c *Context) Errors() []error {
	c.lock.RLock()
	ret := append([]error(nil), c.errors...)
	c.lock.RUnlock()
	return ret
}

// SetProperty attaches a named result value to the context. Properties are
// only ever added, never removed; report writers read them through Snapshot.
func (c *Context) SetProperty(key string, value ldvalue.Value) {
	c.lock.Lock()
	if c.properties == nil {
		c.properties = make(map[string]ldvalue.Value)
	}
	c.properties[key] = value
	c.lock.Unlock()
}

// Properties returns a copy of the context's result properties.
func (c *Context) Properties() map[string]ldvalue.Value {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if len(c.properties) == 0 {
		return nil
	}
	ret := make(map[string]ldvalue.Value, len(c.properties))
	for k, v := range c.properties {
		ret[k] = v
	}
	return ret
}

// Debugf writes a line to the context's captured debug output.
func (c *Context) Debugf(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// DebugLogger exposes the context's debug output as a logging.Logger, so
// code running inside the context can be handed a plain Logger.
func (c *Context) DebugLogger() logging.Logger {
	return &c.debugLogger
}

// DebugOutput returns a copy of everything written via Debugf so far.
func (c *Context) DebugOutput() logging.CapturedOutput {
	return c.debugLogger.Output()
}
