package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func buildSampleTree(t *testing.T) (*Manager, *Context) {
	m := NewManager(nil)
	suite, err := m.CreateContext(nil, "suite")
	require.NoError(t, err)

	passing, err := m.CreateContext(suite, "passing")
	require.NoError(t, err)
	passing.SetProperty("elapsedMs", ldvalue.Int(12))

	failing, err := m.CreateContext(suite, "failing")
	require.NoError(t, err)
	failing.Errorf("expected 1, got 2")
	failing.Debugf("request sent")

	skipped, err := m.CreateContext(suite, "skipped")
	require.NoError(t, err)
	func() {
		defer func() { _ = recover() }()
		skipped.SkipWithReason("not supported")
	}()

	return m, suite
}

func TestSnapshotCopiesTreeInOrder(t *testing.T) {
	m, suite := buildSampleTree(t)

	s := Snapshot(m.RootContext())
	require.Len(t, s.Children, 1)
	assert.Equal(t, m.RootContext().ID(), s.ID)
	assert.Nil(t, s.UnitOfWork)

	suiteSnap := s.Children[0]
	assert.Equal(t, suite.ID(), suiteSnap.ID)
	assert.Equal(t, m.RootContext().ID(), suiteSnap.ParentID)
	assert.Equal(t, "suite", suiteSnap.UnitOfWork)
	require.Len(t, suiteSnap.Children, 3)

	assert.Equal(t, "passing", suiteSnap.Children[0].UnitOfWork)
	assert.False(t, suiteSnap.Children[0].Failed)
	assert.Equal(t, ldvalue.Int(12), suiteSnap.Children[0].Properties["elapsedMs"])

	failingSnap := suiteSnap.Children[1]
	assert.True(t, failingSnap.Failed)
	require.Len(t, failingSnap.Errors, 1)
	assert.Equal(t, "expected 1, got 2", failingSnap.Errors[0].Error())
	require.Len(t, failingSnap.DebugOutput, 1)
	assert.Equal(t, "request sent", failingSnap.DebugOutput[0].Message)

	skippedSnap := suiteSnap.Children[2]
	assert.True(t, skippedSnap.Skipped)
	assert.Equal(t, "not supported", skippedSnap.SkipReason)
}

func TestSnapshotIsUnaffectedByLaterMutation(t *testing.T) {
	m, suite := buildSampleTree(t)

	s := Snapshot(suite)
	childrenBefore := len(s.Children)
	failuresBefore := len(s.Children[1].Errors)

	_, err := m.CreateContext(suite, "late arrival")
	require.NoError(t, err)
	suite.Children()[1].Errorf("another failure")

	assert.Len(t, s.Children, childrenBefore)
	assert.Len(t, s.Children[1].Errors, failuresBefore)
}

func TestWalkVisitsPreOrderWithDepth(t *testing.T) {
	m, _ := buildSampleTree(t)

	var units []interface{}
	var depths []int
	Snapshot(m.RootContext()).Walk(func(depth int, node ContextSnapshot) {
		units = append(units, node.UnitOfWork)
		depths = append(depths, depth)
	})

	assert.Equal(t, []interface{}{nil, "suite", "passing", "failing", "skipped"}, units)
	assert.Equal(t, []int{0, 1, 2, 2, 2}, depths)
}

func TestSummarize(t *testing.T) {
	m, _ := buildSampleTree(t)

	sum := Summarize(Snapshot(m.RootContext()))
	assert.Equal(t, 5, sum.Contexts)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Skipped)
	require.Len(t, sum.Failures, 1)
	assert.Equal(t, "failing", sum.Failures[0].UnitOfWork)
	assert.Equal(t, "[failing]: expected 1, got 2", sum.Failures[0].Error())
	assert.False(t, sum.OK())

	clean := NewManager(nil)
	assert.True(t, Summarize(Snapshot(clean.RootContext())).OK())
}
