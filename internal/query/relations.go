package query

import (
	"fmt"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// InsertEvent stores an event edge and its path steps, preserving the
// caller-supplied step order, and returns the generated event id.
func (e *Executor) InsertEvent(ev *types.Event) (int64, error) {
	id, err := e.ExecuteInsert(opInsertEvent,
		e.bind.Int64(ev.ArtifactID),
		e.bind.Int64(ev.ExecutionID),
		e.bind.EventType(ev.Type),
		e.bind.Int64(ev.MillisecondsSinceEpoch),
	)
	if err != nil {
		return 0, err
	}
	for _, step := range ev.Path {
		if err := e.insertEventPathStep(id, step); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (e *Executor) insertEventPathStep(eventID int64, step types.PathStep) error {
	switch step.Kind {
	case types.IndexStep:
		return e.ExecuteIgnoreResult(opInsertEventPathIndex, e.bind.Int64(eventID), e.bind.Int64(step.Index))
	case types.KeyStep:
		return e.ExecuteIgnoreResult(opInsertEventPathKey, e.bind.Int64(eventID), e.bind.Text(step.Key))
	default:
		return fmt.Errorf("%w: path step kind %d", types.ErrInvalidArgument, step.Kind)
	}
}

// SelectEventsByArtifactIDs returns all events touching the given
// artifacts, each with its path steps in stored order.
func (e *Executor) SelectEventsByArtifactIDs(ids []int64) ([]*types.Event, error) {
	return e.selectEvents(opSelectEventByArtifactIDs, ids)
}

// SelectEventsByExecutionIDs returns all events touching the given
// executions, each with its path steps in stored order.
func (e *Executor) SelectEventsByExecutionIDs(ids []int64) ([]*types.Event, error) {
	return e.selectEvents(opSelectEventByExecutionIDs, ids)
}

func (e *Executor) selectEvents(op string, ids []int64) ([]*types.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rs, err := e.Execute(op, e.bind.Int64List(ids))
	if err != nil {
		return nil, err
	}
	events := make([]*types.Event, 0, len(rs.Records))
	byID := make(map[int64]*types.Event, len(rs.Records))
	eventIDs := make([]int64, 0, len(rs.Records))
	for _, rec := range rs.Records {
		ev, err := decodeEvent(rs, rec)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
		byID[ev.ID] = ev
		eventIDs = append(eventIDs, ev.ID)
	}
	if len(eventIDs) == 0 {
		return events, nil
	}

	paths, err := e.Execute(opSelectEventPathByEventIDs, e.bind.Int64List(eventIDs))
	if err != nil {
		return nil, err
	}
	for _, rec := range paths.Records {
		eventID, step, err := decodePathStep(paths, rec)
		if err != nil {
			return nil, err
		}
		if ev, ok := byID[eventID]; ok {
			ev.Path = append(ev.Path, step)
		}
	}
	return events, nil
}

// InsertAssociation stores a context-to-execution edge unconditionally
// and returns its generated id. No dedup is performed at this layer.
func (e *Executor) InsertAssociation(contextID, executionID int64) (int64, error) {
	return e.ExecuteInsert(opInsertAssociation, e.bind.Int64(contextID), e.bind.Int64(executionID))
}

// SelectAssociationsByContextIDs returns the associations of the given
// contexts.
func (e *Executor) SelectAssociationsByContextIDs(contextIDs []int64) ([]types.Association, error) {
	if len(contextIDs) == 0 {
		return nil, nil
	}
	rs, err := e.Execute(opSelectAssociationByContextIDs, e.bind.Int64List(contextIDs))
	if err != nil {
		return nil, err
	}
	return decodeAssociations(rs)
}

// SelectAssociationsByExecutionID returns the associations of one
// execution.
func (e *Executor) SelectAssociationsByExecutionID(executionID int64) ([]types.Association, error) {
	rs, err := e.Execute(opSelectAssociationByExecutionID, e.bind.Int64(executionID))
	if err != nil {
		return nil, err
	}
	return decodeAssociations(rs)
}

// InsertAttribution stores a context-to-artifact edge unconditionally
// and returns its generated id.
func (e *Executor) InsertAttribution(contextID, artifactID int64) (int64, error) {
	return e.ExecuteInsert(opInsertAttribution, e.bind.Int64(contextID), e.bind.Int64(artifactID))
}

// SelectAttributionsByContextID returns the attributions of one context.
func (e *Executor) SelectAttributionsByContextID(contextID int64) ([]types.Attribution, error) {
	rs, err := e.Execute(opSelectAttributionByContextID, e.bind.Int64(contextID))
	if err != nil {
		return nil, err
	}
	return decodeAttributions(rs)
}

// SelectAttributionsByArtifactID returns the attributions referencing
// one artifact.
func (e *Executor) SelectAttributionsByArtifactID(artifactID int64) ([]types.Attribution, error) {
	rs, err := e.Execute(opSelectAttributionByArtifactID, e.bind.Int64(artifactID))
	if err != nil {
		return nil, err
	}
	return decodeAttributions(rs)
}

// InsertParentType stores a directed type-hierarchy edge. The ids are
// not checked for existence or kind; duplicates of the same edge surface
// as ErrAlreadyExists.
func (e *Executor) InsertParentType(typeID, parentTypeID int64) error {
	err := e.ExecuteIgnoreResult(opInsertParentType, e.bind.Int64(typeID), e.bind.Int64(parentTypeID))
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("parent type edge (%d, %d): %w", typeID, parentTypeID, types.ErrAlreadyExists)
	}
	return err
}

// DeleteParentType removes one type-hierarchy edge. Missing edges are
// not an error.
func (e *Executor) DeleteParentType(typeID, parentTypeID int64) error {
	return e.ExecuteIgnoreResult(opDeleteParentType, e.bind.Int64(typeID), e.bind.Int64(parentTypeID))
}

// SelectParentTypesByTypeID returns the hierarchy edges of the given
// types verbatim, including edges whose parent id no longer exists or
// belongs to another kind.
func (e *Executor) SelectParentTypesByTypeID(typeIDs []int64) ([]types.ParentType, error) {
	if len(typeIDs) == 0 {
		return nil, nil
	}
	rs, err := e.Execute(opSelectParentTypesByTypeID, e.bind.Int64List(typeIDs))
	if err != nil {
		return nil, err
	}
	out := make([]types.ParentType, 0, len(rs.Records))
	for _, rec := range rs.Records {
		typeID, err := cellInt64(rec.Values[rs.ColumnIndex("type_id")])
		if err != nil {
			return nil, err
		}
		parentID, err := cellInt64(rec.Values[rs.ColumnIndex("parent_type_id")])
		if err != nil {
			return nil, err
		}
		out = append(out, types.ParentType{TypeID: typeID, ParentTypeID: parentID})
	}
	return out, nil
}

// InsertParentContext stores a directed context-hierarchy edge with the
// same lenient contract as InsertParentType.
func (e *Executor) InsertParentContext(parentContextID, childContextID int64) error {
	err := e.ExecuteIgnoreResult(opInsertParentContext, e.bind.Int64(childContextID), e.bind.Int64(parentContextID))
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("parent context edge (%d, %d): %w", parentContextID, childContextID, types.ErrAlreadyExists)
	}
	return err
}

// SelectParentContextsByContextID returns the edges naming the parents
// of one context.
func (e *Executor) SelectParentContextsByContextID(contextID int64) ([]types.ParentContext, error) {
	rs, err := e.Execute(opSelectParentContextsByContextID, e.bind.Int64(contextID))
	if err != nil {
		return nil, err
	}
	return decodeParentContexts(rs)
}

// SelectChildContextsByContextID returns the edges naming the children
// of one context.
func (e *Executor) SelectChildContextsByContextID(contextID int64) ([]types.ParentContext, error) {
	rs, err := e.Execute(opSelectChildContextsByContextID, e.bind.Int64(contextID))
	if err != nil {
		return nil, err
	}
	return decodeParentContexts(rs)
}

func decodeEvent(rs *types.RecordSet, rec types.Record) (*types.Event, error) {
	id, err := cellInt64(rec.Values[rs.ColumnIndex("id")])
	if err != nil {
		return nil, err
	}
	artifactID, err := cellInt64(rec.Values[rs.ColumnIndex("artifact_id")])
	if err != nil {
		return nil, err
	}
	executionID, err := cellInt64(rec.Values[rs.ColumnIndex("execution_id")])
	if err != nil {
		return nil, err
	}
	eventType, err := cellInt64(rec.Values[rs.ColumnIndex("type")])
	if err != nil {
		return nil, err
	}
	millis, err := cellInt64OrZero(rec.Values[rs.ColumnIndex("milliseconds_since_epoch")])
	if err != nil {
		return nil, err
	}
	return &types.Event{
		ID:                     id,
		ArtifactID:             artifactID,
		ExecutionID:            executionID,
		Type:                   types.EventType(eventType),
		MillisecondsSinceEpoch: millis,
	}, nil
}

func decodePathStep(rs *types.RecordSet, rec types.Record) (int64, types.PathStep, error) {
	eventID, err := cellInt64(rec.Values[rs.ColumnIndex("event_id")])
	if err != nil {
		return 0, types.PathStep{}, err
	}
	isIndex, err := cellBool(rec.Values[rs.ColumnIndex("is_index_step")])
	if err != nil {
		return 0, types.PathStep{}, err
	}
	if isIndex {
		idx, err := cellInt64OrZero(rec.Values[rs.ColumnIndex("step_index")])
		if err != nil {
			return 0, types.PathStep{}, err
		}
		return eventID, types.PathStep{Kind: types.IndexStep, Index: idx}, nil
	}
	step := types.PathStep{Kind: types.KeyStep}
	if key := cellOptString(rec.Values[rs.ColumnIndex("step_key")]); key != nil {
		step.Key = *key
	}
	return eventID, step, nil
}

func decodeAssociations(rs *types.RecordSet) ([]types.Association, error) {
	out := make([]types.Association, 0, len(rs.Records))
	for _, rec := range rs.Records {
		id, err := cellInt64(rec.Values[rs.ColumnIndex("id")])
		if err != nil {
			return nil, err
		}
		contextID, err := cellInt64(rec.Values[rs.ColumnIndex("context_id")])
		if err != nil {
			return nil, err
		}
		executionID, err := cellInt64(rec.Values[rs.ColumnIndex("execution_id")])
		if err != nil {
			return nil, err
		}
		out = append(out, types.Association{ID: id, ContextID: contextID, ExecutionID: executionID})
	}
	return out, nil
}

func decodeAttributions(rs *types.RecordSet) ([]types.Attribution, error) {
	out := make([]types.Attribution, 0, len(rs.Records))
	for _, rec := range rs.Records {
		id, err := cellInt64(rec.Values[rs.ColumnIndex("id")])
		if err != nil {
			return nil, err
		}
		contextID, err := cellInt64(rec.Values[rs.ColumnIndex("context_id")])
		if err != nil {
			return nil, err
		}
		artifactID, err := cellInt64(rec.Values[rs.ColumnIndex("artifact_id")])
		if err != nil {
			return nil, err
		}
		out = append(out, types.Attribution{ID: id, ContextID: contextID, ArtifactID: artifactID})
	}
	return out, nil
}

func decodeParentContexts(rs *types.RecordSet) ([]types.ParentContext, error) {
	out := make([]types.ParentContext, 0, len(rs.Records))
	for _, rec := range rs.Records {
		childID, err := cellInt64(rec.Values[rs.ColumnIndex("context_id")])
		if err != nil {
			return nil, err
		}
		parentID, err := cellInt64(rec.Values[rs.ColumnIndex("parent_context_id")])
		if err != nil {
			return nil, err
		}
		out = append(out, types.ParentContext{ParentContextID: parentID, ChildContextID: childID})
	}
	return out, nil
}
