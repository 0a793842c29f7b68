package query

import (
	"fmt"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// InsertExecution stores an execution row and returns its generated id.
func (e *Executor) InsertExecution(x *types.Execution) (int64, error) {
	id, err := e.ExecuteInsert(opInsertExecution,
		e.bind.Int64(x.TypeID),
		e.bind.ExecutionState(x.LastKnownState),
		e.bind.NullableText(x.Name),
		e.bind.Int64(x.CreateTimeSinceEpoch),
		e.bind.Int64(x.LastUpdateTimeSinceEpoch),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("execution on type %d: %w", x.TypeID, types.ErrAlreadyExists)
		}
		return 0, err
	}
	return id, nil
}

// SelectExecutionsByID returns the executions among ids that exist.
func (e *Executor) SelectExecutionsByID(ids []int64) ([]*types.Execution, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rs, err := e.Execute(opSelectExecutionsByID, e.bind.Int64List(ids))
	if err != nil {
		return nil, err
	}
	return decodeExecutions(rs)
}

// SelectExecutionByTypeIDAndName returns the execution with the given
// type and name, or nil.
func (e *Executor) SelectExecutionByTypeIDAndName(typeID int64, name string) (*types.Execution, error) {
	rs, err := e.Execute(opSelectExecutionByTypeIDAndName, e.bind.Int64(typeID), e.bind.Text(name))
	if err != nil {
		return nil, err
	}
	if len(rs.Records) == 0 {
		return nil, nil
	}
	return decodeExecution(rs, rs.Records[0])
}

// SelectExecutionsByTypeID returns every execution of the given type.
func (e *Executor) SelectExecutionsByTypeID(typeID int64) ([]*types.Execution, error) {
	rs, err := e.Execute(opSelectExecutionsByTypeID, e.bind.Int64(typeID))
	if err != nil {
		return nil, err
	}
	return decodeExecutions(rs)
}

// UpdateExecution rewrites the mutable columns of an execution row.
func (e *Executor) UpdateExecution(x *types.Execution) error {
	return e.ExecuteIgnoreResult(opUpdateExecution,
		e.bind.Int64(x.ID),
		e.bind.Int64(x.TypeID),
		e.bind.ExecutionState(x.LastKnownState),
		e.bind.Int64(x.LastUpdateTimeSinceEpoch),
	)
}

// InsertExecutionProperty stores one property value for an execution.
func (e *Executor) InsertExecutionProperty(executionID int64, name string, isCustom bool, v types.PropertyValue) error {
	return e.insertNodeProperty(opInsertExecutionProperty, executionID, name, isCustom, v)
}

// SelectExecutionPropertiesByExecutionIDs returns all property rows of
// the given executions.
func (e *Executor) SelectExecutionPropertiesByExecutionIDs(ids []int64) ([]types.StoredProperty, error) {
	return e.selectNodeProperties(opSelectExecutionPropertyByID, "execution_id", ids)
}

// UpdateExecutionProperty replaces the value stored under a property name.
func (e *Executor) UpdateExecutionProperty(executionID int64, name string, v types.PropertyValue) error {
	return e.updateNodeProperty(opUpdateExecutionProperty, executionID, name, v)
}

// DeleteExecutionProperty removes one property row.
func (e *Executor) DeleteExecutionProperty(executionID int64, name string) error {
	return e.deleteNodeProperty(opDeleteExecutionProperty, executionID, name)
}

func decodeExecutions(rs *types.RecordSet) ([]*types.Execution, error) {
	out := make([]*types.Execution, 0, len(rs.Records))
	for _, rec := range rs.Records {
		x, err := decodeExecution(rs, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func decodeExecution(rs *types.RecordSet, rec types.Record) (*types.Execution, error) {
	id, err := cellInt64(rec.Values[rs.ColumnIndex("id")])
	if err != nil {
		return nil, err
	}
	typeID, err := cellInt64(rec.Values[rs.ColumnIndex("type_id")])
	if err != nil {
		return nil, err
	}
	stateCell, err := cellOptInt64(rec.Values[rs.ColumnIndex("last_known_state")])
	if err != nil {
		return nil, err
	}
	createTime, err := cellInt64OrZero(rec.Values[rs.ColumnIndex("create_time_since_epoch")])
	if err != nil {
		return nil, err
	}
	updateTime, err := cellInt64OrZero(rec.Values[rs.ColumnIndex("last_update_time_since_epoch")])
	if err != nil {
		return nil, err
	}
	x := &types.Execution{
		ID:                       id,
		TypeID:                   typeID,
		Name:                     cellOptString(rec.Values[rs.ColumnIndex("name")]),
		CreateTimeSinceEpoch:     createTime,
		LastUpdateTimeSinceEpoch: updateTime,
	}
	if stateCell != nil {
		s := types.ExecutionState(*stateCell)
		x.LastKnownState = &s
	}
	return x, nil
}
