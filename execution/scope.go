package execution

import (
	"errors"
	"fmt"

	"github.com/petermattis/goid"
)

// RunWithContext executes block synchronously on the calling goroutine with
// ctx pinned as its current context for the duration of the call. The
// goroutine's previous pin state is captured first and restored on every
// exit path, so nested calls restore the outer pin rather than unpinning.
//
// Any error returned by block is returned unmodified. If block panics with
// a value other than an execution context, the pin is restored and the panic
// continues to the caller. A FailNow on the running context terminates the
// block and surfaces as an error wrapping ErrBlockAborted; a Skip terminates
// the block and returns nil.
func (m *Manager) RunWithContext(ctx *Context, block func() error) (err error) {
	if m.isClosed() {
		return ErrManagerClosed
	}
	if ctx == nil || ctx.manager != m {
		return fmt.Errorf("RunWithContext: %w", ErrInvalidContext)
	}
	gid := goid.Get()
	prev, hadPin := m.registry.swapPin(gid, ctx)
	m.logger.Printf("pinned context %s to goroutine %d (scoped)", ctx.id, gid)
	m.observer.ContextPinned(gid, ctx)

	defer func() {
		// The pin must be back in its pre-call state before any error or
		// panic reaches the caller.
		m.registry.restorePin(gid, prev, hadPin)
		if hadPin {
			m.observer.ContextPinned(gid, prev)
		} else {
			m.observer.ContextUnpinned(gid)
		}
		if r := recover(); r != nil {
			aborted, ok := r.(*Context)
			if !ok {
				panic(r)
			}
			if skipped, _ := aborted.Skipped(); !skipped {
				if !aborted.Failed() {
					aborted.addError(errors.New("block aborted with no failure message"))
				}
				err = fmt.Errorf("context %s: %w", aborted.id, ErrBlockAborted)
			}
		}
		m.observer.BlockFinished(ctx, err)
	}()

	return block()
}

// Spawn starts block on a new goroutine whose current context, until and
// unless it is explicitly pinned, is a snapshot of the calling goroutine's
// current context taken now. The creator's pin may change afterward without
// affecting the spawned goroutine. The snapshot is discarded when block
// returns.
func (m *Manager) Spawn(block func()) {
	snapshot := m.CurrentContext()
	go func() {
		gid := goid.Get()
		m.registry.setInherited(gid, snapshot)
		defer m.registry.clearInherited(gid)
		block()
	}()
}
