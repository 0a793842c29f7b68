package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// lineageFixture is one minimal lineage graph: a context holding one
// execution that produced one artifact.
type lineageFixture struct {
	artifactID  int64
	executionID int64
	contextID   int64
}

func insertLineageFixture(t *testing.T, e *Executor) lineageFixture {
	t.Helper()
	artifactID, err := e.InsertArtifact(&types.Artifact{TypeID: insertArtifactType(t, e, "Model"), URI: "s3://m"})
	require.NoError(t, err)
	executionID, err := e.InsertExecution(&types.Execution{TypeID: insertExecutionType(t, e, "Trainer")})
	require.NoError(t, err)
	contextID, err := e.InsertContext(&types.Context{TypeID: insertContextType(t, e, "Pipeline"), Name: "run"})
	require.NoError(t, err)
	return lineageFixture{artifactID: artifactID, executionID: executionID, contextID: contextID}
}

func TestEventRoundTripWithPath(t *testing.T) {
	e := newTestExecutor(t)
	f := insertLineageFixture(t, e)

	in := &types.Event{
		ArtifactID:             f.artifactID,
		ExecutionID:            f.executionID,
		Type:                   types.OutputEvent,
		MillisecondsSinceEpoch: 12345,
		Path: []types.PathStep{
			{Kind: types.KeyStep, Key: "outputs"},
			{Kind: types.IndexStep, Index: 2},
			{Kind: types.KeyStep, Key: "model"},
		},
	}
	id, err := e.InsertEvent(in)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := e.SelectEventsByArtifactIDs([]int64{f.artifactID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	ev := got[0]
	assert.Equal(t, id, ev.ID)
	assert.Equal(t, f.artifactID, ev.ArtifactID)
	assert.Equal(t, f.executionID, ev.ExecutionID)
	assert.Equal(t, types.OutputEvent, ev.Type)
	assert.Equal(t, int64(12345), ev.MillisecondsSinceEpoch)

	// Path steps come back in insertion order.
	require.Len(t, ev.Path, 3)
	assert.Equal(t, types.KeyStep, ev.Path[0].Kind)
	assert.Equal(t, "outputs", ev.Path[0].Key)
	assert.Equal(t, types.IndexStep, ev.Path[1].Kind)
	assert.Equal(t, int64(2), ev.Path[1].Index)
	assert.Equal(t, "model", ev.Path[2].Key)

	byExec, err := e.SelectEventsByExecutionIDs([]int64{f.executionID})
	require.NoError(t, err)
	require.Len(t, byExec, 1)
	assert.Equal(t, id, byExec[0].ID)
}

func TestEventWithoutPath(t *testing.T) {
	e := newTestExecutor(t)
	f := insertLineageFixture(t, e)

	_, err := e.InsertEvent(&types.Event{
		ArtifactID:  f.artifactID,
		ExecutionID: f.executionID,
		Type:        types.DeclaredInputEvent,
	})
	require.NoError(t, err)

	got, err := e.SelectEventsByArtifactIDs([]int64{f.artifactID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Path)
}

func TestEventRejectsBadPathStepKind(t *testing.T) {
	e := newTestExecutor(t)
	f := insertLineageFixture(t, e)

	_, err := e.InsertEvent(&types.Event{
		ArtifactID:  f.artifactID,
		ExecutionID: f.executionID,
		Type:        types.OutputEvent,
		Path:        []types.PathStep{{Kind: types.PathStepKind(7)}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestSelectEventsOnEmptyInput(t *testing.T) {
	e := newTestExecutor(t)

	got, err := e.SelectEventsByArtifactIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = e.SelectEventsByExecutionIDs([]int64{404})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAssociationLookups(t *testing.T) {
	e := newTestExecutor(t)
	f := insertLineageFixture(t, e)

	id, err := e.InsertAssociation(f.contextID, f.executionID)
	require.NoError(t, err)

	byCtx, err := e.SelectAssociationsByContextIDs([]int64{f.contextID})
	require.NoError(t, err)
	require.Len(t, byCtx, 1)
	assert.Equal(t, id, byCtx[0].ID)
	assert.Equal(t, f.executionID, byCtx[0].ExecutionID)

	byExec, err := e.SelectAssociationsByExecutionID(f.executionID)
	require.NoError(t, err)
	require.Len(t, byExec, 1)
	assert.Equal(t, f.contextID, byExec[0].ContextID)

	// Duplicate edges are stored as-is; no dedup at this layer.
	_, err = e.InsertAssociation(f.contextID, f.executionID)
	require.NoError(t, err)
	byCtx, err = e.SelectAssociationsByContextIDs([]int64{f.contextID})
	require.NoError(t, err)
	assert.Len(t, byCtx, 2)
}

func TestAttributionLookups(t *testing.T) {
	e := newTestExecutor(t)
	f := insertLineageFixture(t, e)

	id, err := e.InsertAttribution(f.contextID, f.artifactID)
	require.NoError(t, err)

	byCtx, err := e.SelectAttributionsByContextID(f.contextID)
	require.NoError(t, err)
	require.Len(t, byCtx, 1)
	assert.Equal(t, id, byCtx[0].ID)
	assert.Equal(t, f.artifactID, byCtx[0].ArtifactID)

	byArt, err := e.SelectAttributionsByArtifactID(f.artifactID)
	require.NoError(t, err)
	require.Len(t, byArt, 1)
	assert.Equal(t, f.contextID, byArt[0].ContextID)
}

func TestParentTypeEdgesAreLenient(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Model")

	// The parent id does not exist; the edge is stored anyway.
	require.NoError(t, e.InsertParentType(typeID, 9999))

	err := e.InsertParentType(typeID, 9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	edges, err := e.SelectParentTypesByTypeID([]int64{typeID})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, typeID, edges[0].TypeID)
	assert.Equal(t, int64(9999), edges[0].ParentTypeID)

	require.NoError(t, e.DeleteParentType(typeID, 9999))
	edges, err = e.SelectParentTypesByTypeID([]int64{typeID})
	require.NoError(t, err)
	assert.Empty(t, edges)

	// Deleting an absent edge succeeds.
	require.NoError(t, e.DeleteParentType(typeID, 9999))
}

func TestParentContextDirections(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertContextType(t, e, "Pipeline")

	parentID, err := e.InsertContext(&types.Context{TypeID: typeID, Name: "parent"})
	require.NoError(t, err)
	childID, err := e.InsertContext(&types.Context{TypeID: typeID, Name: "child"})
	require.NoError(t, err)

	require.NoError(t, e.InsertParentContext(parentID, childID))

	err = e.InsertParentContext(parentID, childID)
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	parents, err := e.SelectParentContextsByContextID(childID)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, parentID, parents[0].ParentContextID)
	assert.Equal(t, childID, parents[0].ChildContextID)

	children, err := e.SelectChildContextsByContextID(parentID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, childID, children[0].ChildContextID)

	// The child's own children and the parent's own parents are empty.
	none, err := e.SelectChildContextsByContextID(childID)
	require.NoError(t, err)
	assert.Empty(t, none)
	none, err = e.SelectParentContextsByContextID(parentID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
