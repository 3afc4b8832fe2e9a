package execution

import "sync"

// registry is the single source of truth for which context, if any, is
// associated with a goroutine. It has two layers: explicit pins set through
// the Manager, and inherited snapshots written when a goroutine is started
// with Spawn. Pins always win. All mutation goes through the methods below;
// the maps are never exposed.
type registry struct {
	lock      sync.RWMutex
	pins      map[int64]*Context
	inherited map[int64]*Context
}

func newRegistry() *registry {
	return &registry{
		pins:      make(map[int64]*Context),
		inherited: make(map[int64]*Context),
	}
}

// setPin pins c to gid, or clears the pin if c is nil. Setting the same value
// twice is a no-op.
func (r *registry) setPin(gid int64, c *Context) {
	r.lock.Lock()
	if c == nil {
		delete(r.pins, gid)
	} else {
		r.pins[gid] = c
	}
	r.lock.Unlock()
}

// swapPin pins c to gid and returns the pin state that was replaced, so a
// scoped execution can restore it afterward.
func (r *registry) swapPin(gid int64, c *Context) (prev *Context, hadPin bool) {
	r.lock.Lock()
	prev, hadPin = r.pins[gid]
	if c == nil {
		delete(r.pins, gid)
	} else {
		r.pins[gid] = c
	}
	r.lock.Unlock()
	return
}

// restorePin reinstates a pin state previously returned by swapPin.
func (r *registry) restorePin(gid int64, prev *Context, hadPin bool) {
	if hadPin {
		r.setPin(gid, prev)
	} else {
		r.setPin(gid, nil)
	}
}

// lookup resolves gid to a context: explicit pin first, then inherited
// snapshot. The second return value is false if neither exists.
func (r *registry) lookup(gid int64) (*Context, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if c, ok := r.pins[gid]; ok {
		return c, true
	}
	if c, ok := r.inherited[gid]; ok {
		return c, true
	}
	return nil, false
}

// pinned returns only the explicit pin for gid, ignoring inheritance.
func (r *registry) pinned(gid int64) (*Context, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	c, ok := r.pins[gid]
	return c, ok
}

// setInherited records the context snapshot a spawned goroutine inherits.
// Written once per goroutine, before any user code runs on it.
func (r *registry) setInherited(gid int64, c *Context) {
	r.lock.Lock()
	r.inherited[gid] = c
	r.lock.Unlock()
}

// clearInherited removes a goroutine's inherited entry when it exits, so the
// map does not grow for the lifetime of the run.
func (r *registry) clearInherited(gid int64) {
	r.lock.Lock()
	delete(r.inherited, gid)
	r.lock.Unlock()
}
