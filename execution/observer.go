package execution

// Observer receives notifications about context lifecycle events. It is for
// logging and progress reporting only: implementations must not mutate
// contexts, and must tolerate being called concurrently from any goroutine.
type Observer interface {
	ContextCreated(c *Context)
	ContextPinned(gid int64, c *Context)
	ContextUnpinned(gid int64)
	BlockFinished(c *Context, err error)
}

type nullObserver struct{}

func (n nullObserver) ContextCreated(*Context)        {}
func (n nullObserver) ContextPinned(int64, *Context)  {}
func (n nullObserver) ContextUnpinned(int64)          {}
func (n nullObserver) BlockFinished(*Context, error)  {}

// NullObserver returns an Observer that ignores all events.
func NullObserver() Observer { return nullObserver{} }
