// Package execution implements the execution-context subsystem of the test
// framework: the association between a logical test context and the goroutine
// that is running code on its behalf.
//
// The general model is:
//
// 1. A Manager owns a tree of Contexts for one test run, rooted at a root
// context that always exists. Contexts are created with CreateContext, carry
// an opaque unit of work (typically a test identifier), and accumulate
// result state (errors, skip status, properties, debug output) while code
// runs inside them.
//
// 2. A goroutine's "current context" is resolved by the Manager: an explicit
// pin set with SetGoroutineContext wins; otherwise a goroutine started with
// Spawn resolves to a snapshot of its creator's current context taken at
// spawn time; otherwise the root context is returned.
//
// 3. RunWithContext runs a block of code with a context temporarily pinned to
// the calling goroutine, restoring the previous pin state on every exit path,
// including panics, so that nested scoped executions compose correctly.
//
// Report-generation code consumes finished state through Snapshot, which
// produces an immutable copy of the context tree; this package renders
// nothing itself.
package execution
