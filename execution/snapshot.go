package execution

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/go-test-execution/logging"
)

// ContextSnapshot is a point-in-time copy of a context and its descendants,
// safe to hand to report-generation code: it shares no mutable state with
// the live tree, so later execution cannot alter it.
type ContextSnapshot struct {
	ID          uuid.UUID
	ParentID    uuid.UUID // zero value for the root of the snapshot
	UnitOfWork  interface{}
	Failed      bool
	Skipped     bool
	SkipReason  string
	Errors      []error
	Properties  map[string]ldvalue.Value
	DebugOutput logging.CapturedOutput
	Children    []ContextSnapshot
}

// Snapshot copies the tree rooted at c. Because context state is append-only,
// a snapshot taken while execution is still in progress is a consistent
// prefix of the final results.
func Snapshot(c *Context) ContextSnapshot {
	skipped, reason := c.Skipped()
	s := ContextSnapshot{
		ID:          c.ID(),
		UnitOfWork:  c.UnitOfWork(),
		Failed:      c.Failed(),
		Skipped:     skipped,
		SkipReason:  reason,
		Errors:      c.Errors(),
		Properties:  c.Properties(),
		DebugOutput: c.DebugOutput(),
	}
	if c.Parent() != nil {
		s.ParentID = c.Parent().ID()
	}
	for _, child := range c.Children() {
		s.Children = append(s.Children, Snapshot(child))
	}
	return s
}

// Walk visits the snapshot and every descendant in pre-order, passing each
// node's depth relative to the snapshot root (which has depth zero).
func (s ContextSnapshot) Walk(fn func(depth int, node ContextSnapshot)) {
	s.walk(0, fn)
}

func (s ContextSnapshot) walk(depth int, fn func(int, ContextSnapshot)) {
	fn(depth, s)
	for _, child := range s.Children {
		child.walk(depth+1, fn)
	}
}

// Failure is one recorded error together with the context it belongs to.
type Failure struct {
	ID         uuid.UUID
	UnitOfWork interface{}
	Err        error
}

func (f Failure) Error() string {
	if f.UnitOfWork != nil {
		return fmt.Sprintf("[%v]: %s", f.UnitOfWork, f.Err)
	}
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// Summary is an aggregate view of a snapshot for pass/fail accounting.
type Summary struct {
	Contexts int // total number of contexts in the tree
	Failed   int // number of contexts with at least one failure
	Skipped  int
	Failures []Failure // every recorded error, flattened in tree order
}

// OK reports whether the run had no failures.
func (s Summary) OK() bool { return s.Failed == 0 }

// Summarize walks a snapshot and tallies its outcomes.
func Summarize(snapshot ContextSnapshot) Summary {
	var sum Summary
	snapshot.Walk(func(depth int, node ContextSnapshot) {
		sum.Contexts++
		if node.Failed {
			sum.Failed++
		}
		if node.Skipped {
			sum.Skipped++
		}
		for _, err := range node.Errors {
			sum.Failures = append(sum.Failures, Failure{
				ID:         node.ID,
				UnitOfWork: node.UnitOfWork,
				Err:        err,
			})
		}
	})
	return sum
}
