package execution

import "errors"

// ErrInvalidContext means a caller supplied a Context that does not belong to
// this Manager's run. The operation is rejected; the root context is never
// silently substituted.
var ErrInvalidContext = errors.New("context does not belong to this manager's run")

// ErrManagerClosed means the Manager has been closed and no longer accepts
// mutations. Read accessors on already-created contexts keep working so the
// report tree remains consumable.
var ErrManagerClosed = errors.New("execution manager is closed")

// ErrBlockAborted is returned by RunWithContext when the block was terminated
// early by FailNow on the running context rather than returning normally.
// Details of the failure are recorded in the context's accumulated errors.
var ErrBlockAborted = errors.New("block aborted before completion")
