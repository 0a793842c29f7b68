package query

import (
	"fmt"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// Property plumbing shared by the three node kinds. The insert templates
// receive the value column name as their first parameter, so exactly one
// value column is written per row; the update templates reset all four
// columns in one statement for the same reason.

func (e *Executor) insertNodeProperty(op string, nodeID int64, name string, isCustom bool, v types.PropertyValue) error {
	if name == "" {
		return fmt.Errorf("%w: property name must not be empty", types.ErrInvalidArgument)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	err := e.ExecuteIgnoreResult(op,
		e.bind.ValueColumn(v),
		e.bind.Int64(nodeID),
		e.bind.Text(name),
		e.bind.Bool(isCustom),
		e.bind.Value(v),
	)
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("property %q on node %d: %w", name, nodeID, types.ErrAlreadyExists)
	}
	return err
}

func (e *Executor) updateNodeProperty(op string, nodeID int64, name string, v types.PropertyValue) error {
	if err := v.Validate(); err != nil {
		return err
	}
	return e.ExecuteIgnoreResult(op,
		e.bind.Int64(nodeID),
		e.bind.ValueOrNull(v, types.IntProperty),
		e.bind.ValueOrNull(v, types.DoubleProperty),
		e.bind.ValueOrNull(v, types.StringProperty),
		e.bind.ValueOrNull(v, types.StructProperty),
		e.bind.Text(name),
	)
}

func (e *Executor) deleteNodeProperty(op string, nodeID int64, name string) error {
	return e.ExecuteIgnoreResult(op, e.bind.Int64(nodeID), e.bind.Text(name))
}

func (e *Executor) selectNodeProperties(op, idColumn string, ids []int64) ([]types.StoredProperty, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rs, err := e.Execute(op, e.bind.Int64List(ids))
	if err != nil {
		return nil, err
	}
	out := make([]types.StoredProperty, 0, len(rs.Records))
	for _, rec := range rs.Records {
		p, err := decodeStoredProperty(rs, rec, idColumn)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// decodeStoredProperty reconstructs the tagged value from whichever
// value column is populated. Exactly one must be non-NULL.
func decodeStoredProperty(rs *types.RecordSet, rec types.Record, idColumn string) (types.StoredProperty, error) {
	nodeID, err := cellInt64(rec.Values[rs.ColumnIndex(idColumn)])
	if err != nil {
		return types.StoredProperty{}, err
	}
	isCustom, err := cellBool(rec.Values[rs.ColumnIndex("is_custom_property")])
	if err != nil {
		return types.StoredProperty{}, err
	}
	p := types.StoredProperty{
		NodeID:   nodeID,
		Name:     rec.Values[rs.ColumnIndex("name")],
		IsCustom: isCustom,
	}

	intCell := rec.Values[rs.ColumnIndex("int_value")]
	doubleCell := rec.Values[rs.ColumnIndex("double_value")]
	stringCell := rec.Values[rs.ColumnIndex("string_value")]
	structCell := rec.Values[rs.ColumnIndex("struct_value")]

	populated := 0
	if !types.IsNull(intCell) {
		v, err := cellInt64(intCell)
		if err != nil {
			return types.StoredProperty{}, err
		}
		p.Value = types.IntPropertyValue(v)
		populated++
	}
	if !types.IsNull(doubleCell) {
		v, err := cellDouble(doubleCell)
		if err != nil {
			return types.StoredProperty{}, err
		}
		p.Value = types.DoublePropertyValue(v)
		populated++
	}
	if !types.IsNull(stringCell) {
		p.Value = types.StringPropertyValue(stringCell)
		populated++
	}
	if !types.IsNull(structCell) {
		p.Value = types.StructPropertyValue(structCell)
		populated++
	}
	if populated != 1 {
		return types.StoredProperty{}, fmt.Errorf(
			"%w: property %q on node %d has %d populated value columns",
			types.ErrInternal, p.Name, nodeID, populated)
	}
	return p, nil
}
