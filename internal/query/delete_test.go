package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// countRows runs a raw COUNT over one table, optionally restricted by a
// where clause. Test-only; table and clause are trusted literals.
func countRows(t *testing.T, e *Executor, table, where string) int64 {
	t.Helper()
	q := "SELECT count(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	rs, err := e.ExecuteRaw(q + ";")
	require.NoError(t, err)
	require.Len(t, rs.Records, 1)
	n, err := cellInt64(rs.Records[0].Values[0])
	require.NoError(t, err)
	return n
}

func TestDeleteArtifactsCascade(t *testing.T) {
	e := newTestExecutor(t)
	f := insertLineageFixture(t, e)

	require.NoError(t, e.InsertArtifactProperty(f.artifactID, "accuracy", false, types.DoublePropertyValue(0.9)))
	_, err := e.InsertEvent(&types.Event{
		ArtifactID:  f.artifactID,
		ExecutionID: f.executionID,
		Type:        types.OutputEvent,
		Path:        []types.PathStep{{Kind: types.IndexStep, Index: 0}},
	})
	require.NoError(t, err)
	_, err = e.InsertAttribution(f.contextID, f.artifactID)
	require.NoError(t, err)

	require.NoError(t, e.DeleteArtifactsByID([]int64{f.artifactID}))

	assert.Zero(t, countRows(t, e, "Artifact", ""))
	assert.Zero(t, countRows(t, e, "ArtifactProperty", ""))
	assert.Zero(t, countRows(t, e, "Event", ""))
	assert.Zero(t, countRows(t, e, "EventPath", ""))
	assert.Zero(t, countRows(t, e, "Attribution", ""))

	// The execution and context are untouched.
	assert.Equal(t, int64(1), countRows(t, e, "Execution", ""))
	assert.Equal(t, int64(1), countRows(t, e, "Context", ""))
}

func TestDeleteExecutionsCascade(t *testing.T) {
	e := newTestExecutor(t)
	f := insertLineageFixture(t, e)

	require.NoError(t, e.InsertExecutionProperty(f.executionID, "step", false, types.IntPropertyValue(3)))
	_, err := e.InsertEvent(&types.Event{
		ArtifactID:  f.artifactID,
		ExecutionID: f.executionID,
		Type:        types.InputEvent,
		Path:        []types.PathStep{{Kind: types.KeyStep, Key: "data"}},
	})
	require.NoError(t, err)
	_, err = e.InsertAssociation(f.contextID, f.executionID)
	require.NoError(t, err)

	require.NoError(t, e.DeleteExecutionsByID([]int64{f.executionID}))

	assert.Zero(t, countRows(t, e, "Execution", ""))
	assert.Zero(t, countRows(t, e, "ExecutionProperty", ""))
	assert.Zero(t, countRows(t, e, "Event", ""))
	assert.Zero(t, countRows(t, e, "EventPath", ""))
	assert.Zero(t, countRows(t, e, "Association", ""))

	assert.Equal(t, int64(1), countRows(t, e, "Artifact", ""))
	assert.Equal(t, int64(1), countRows(t, e, "Context", ""))
}

func TestDeleteContextsCascade(t *testing.T) {
	e := newTestExecutor(t)
	f := insertLineageFixture(t, e)

	require.NoError(t, e.InsertContextProperty(f.contextID, "owner", true, types.StringPropertyValue("team")))
	_, err := e.InsertAssociation(f.contextID, f.executionID)
	require.NoError(t, err)
	_, err = e.InsertAttribution(f.contextID, f.artifactID)
	require.NoError(t, err)

	otherID, err := e.InsertContext(&types.Context{TypeID: insertContextType(t, e, "Experiment"), Name: "exp"})
	require.NoError(t, err)
	require.NoError(t, e.InsertParentContext(otherID, f.contextID))
	require.NoError(t, e.InsertParentContext(f.contextID, otherID))

	require.NoError(t, e.DeleteContextsByID([]int64{f.contextID}))

	assert.Zero(t, countRows(t, e, "ContextProperty", ""))
	assert.Zero(t, countRows(t, e, "Association", ""))
	assert.Zero(t, countRows(t, e, "Attribution", ""))
	// Hierarchy edges are removed on both sides.
	assert.Zero(t, countRows(t, e, "ParentContext", ""))

	// The other nodes survive.
	assert.Equal(t, int64(1), countRows(t, e, "Context", ""))
	assert.Equal(t, int64(1), countRows(t, e, "Artifact", ""))
	assert.Equal(t, int64(1), countRows(t, e, "Execution", ""))
}

func TestDeleteIsIdempotent(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertContextType(t, e, "Pipeline")
	c1, err := e.InsertContext(&types.Context{TypeID: typeID, Name: "c1"})
	require.NoError(t, err)
	c2, err := e.InsertContext(&types.Context{TypeID: typeID, Name: "c2"})
	require.NoError(t, err)

	require.NoError(t, e.DeleteContextsByID([]int64{c1}))
	require.NoError(t, e.DeleteContextsByID([]int64{c1}))

	got, err := e.SelectContextsByID([]int64{c1, c2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c2, got[0].ID)
}

func TestDeleteEmptyIDsIsNoOp(t *testing.T) {
	e := newTestExecutor(t)
	insertLineageFixture(t, e)

	require.NoError(t, e.DeleteArtifactsByID(nil))
	require.NoError(t, e.DeleteExecutionsByID([]int64{}))
	require.NoError(t, e.DeleteContextsByID(nil))

	assert.Equal(t, int64(1), countRows(t, e, "Artifact", ""))
	assert.Equal(t, int64(1), countRows(t, e, "Execution", ""))
	assert.Equal(t, int64(1), countRows(t, e, "Context", ""))
}

func TestDeleteParentContextsByDirection(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertContextType(t, e, "Pipeline")
	parent, err := e.InsertContext(&types.Context{TypeID: typeID, Name: "parent"})
	require.NoError(t, err)
	child, err := e.InsertContext(&types.Context{TypeID: typeID, Name: "child"})
	require.NoError(t, err)
	other, err := e.InsertContext(&types.Context{TypeID: typeID, Name: "other"})
	require.NoError(t, err)

	require.NoError(t, e.InsertParentContext(parent, child))
	require.NoError(t, e.InsertParentContext(other, child))

	require.NoError(t, e.DeleteParentContextsByParentIDs([]int64{parent}))
	edges, err := e.SelectParentContextsByContextID(child)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, other, edges[0].ParentContextID)

	require.NoError(t, e.DeleteParentContextsByChildIDs([]int64{child}))
	edges, err = e.SelectParentContextsByContextID(child)
	require.NoError(t, err)
	assert.Empty(t, edges)

	require.NoError(t, e.DeleteParentContextsByParentIDs(nil))
}
