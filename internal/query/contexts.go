package query

import (
	"fmt"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// InsertContext stores a context row and returns its generated id.
// Context names are required and unique within the type.
func (e *Executor) InsertContext(c *types.Context) (int64, error) {
	if c.Name == "" {
		return 0, fmt.Errorf("%w: context name must not be empty", types.ErrInvalidArgument)
	}
	id, err := e.ExecuteInsert(opInsertContext,
		e.bind.Int64(c.TypeID),
		e.bind.Text(c.Name),
		e.bind.Int64(c.CreateTimeSinceEpoch),
		e.bind.Int64(c.LastUpdateTimeSinceEpoch),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("context %q on type %d: %w", c.Name, c.TypeID, types.ErrAlreadyExists)
		}
		return 0, err
	}
	return id, nil
}

// SelectContextsByID returns the contexts among ids that exist.
func (e *Executor) SelectContextsByID(ids []int64) ([]*types.Context, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rs, err := e.Execute(opSelectContextsByID, e.bind.Int64List(ids))
	if err != nil {
		return nil, err
	}
	return decodeContexts(rs)
}

// SelectContextByTypeIDAndName returns the context with the given type
// and name, or nil.
func (e *Executor) SelectContextByTypeIDAndName(typeID int64, name string) (*types.Context, error) {
	rs, err := e.Execute(opSelectContextByTypeIDAndName, e.bind.Int64(typeID), e.bind.Text(name))
	if err != nil {
		return nil, err
	}
	if len(rs.Records) == 0 {
		return nil, nil
	}
	return decodeContext(rs, rs.Records[0])
}

// SelectContextsByTypeID returns every context of the given type.
func (e *Executor) SelectContextsByTypeID(typeID int64) ([]*types.Context, error) {
	rs, err := e.Execute(opSelectContextsByTypeID, e.bind.Int64(typeID))
	if err != nil {
		return nil, err
	}
	return decodeContexts(rs)
}

// UpdateContext rewrites the mutable columns of a context row.
func (e *Executor) UpdateContext(c *types.Context) error {
	if c.Name == "" {
		return fmt.Errorf("%w: context name must not be empty", types.ErrInvalidArgument)
	}
	return e.ExecuteIgnoreResult(opUpdateContext,
		e.bind.Int64(c.ID),
		e.bind.Int64(c.TypeID),
		e.bind.Text(c.Name),
		e.bind.Int64(c.LastUpdateTimeSinceEpoch),
	)
}

// InsertContextProperty stores one property value for a context.
func (e *Executor) InsertContextProperty(contextID int64, name string, isCustom bool, v types.PropertyValue) error {
	return e.insertNodeProperty(opInsertContextProperty, contextID, name, isCustom, v)
}

// SelectContextPropertiesByContextIDs returns all property rows of the
// given contexts.
func (e *Executor) SelectContextPropertiesByContextIDs(ids []int64) ([]types.StoredProperty, error) {
	return e.selectNodeProperties(opSelectContextPropertyByID, "context_id", ids)
}

// UpdateContextProperty replaces the value stored under a property name.
func (e *Executor) UpdateContextProperty(contextID int64, name string, v types.PropertyValue) error {
	return e.updateNodeProperty(opUpdateContextProperty, contextID, name, v)
}

// DeleteContextProperty removes one property row.
func (e *Executor) DeleteContextProperty(contextID int64, name string) error {
	return e.deleteNodeProperty(opDeleteContextProperty, contextID, name)
}

func decodeContexts(rs *types.RecordSet) ([]*types.Context, error) {
	out := make([]*types.Context, 0, len(rs.Records))
	for _, rec := range rs.Records {
		c, err := decodeContext(rs, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeContext(rs *types.RecordSet, rec types.Record) (*types.Context, error) {
	id, err := cellInt64(rec.Values[rs.ColumnIndex("id")])
	if err != nil {
		return nil, err
	}
	typeID, err := cellInt64(rec.Values[rs.ColumnIndex("type_id")])
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
	return &types.Context{
		ID:                       id,
		TypeID:                   typeID,
		Name:                     rec.Values[rs.ColumnIndex("name")],
		CreateTimeSinceEpoch:     createTime,
		LastUpdateTimeSinceEpoch: updateTime,
	}, nil
}
