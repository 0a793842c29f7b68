package query

import (
	"fmt"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// InsertType stores a type row and returns its generated id. A
// uniqueness violation on (name, version, kind) surfaces as
// ErrAlreadyExists.
func (e *Executor) InsertType(t *types.Type) (int64, error) {
	if t.Name == "" {
		return 0, fmt.Errorf("%w: type name must not be empty", types.ErrInvalidArgument)
	}
	id, err := e.ExecuteInsert(opInsertType,
		e.bind.Text(t.Name),
		e.bind.NullableText(t.Version),
		e.bind.TypeKind(t.Kind),
		e.bind.NullableText(t.Description),
		e.bind.NullableText(t.InputType),
		e.bind.NullableText(t.OutputType),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("type %q: %w", t.Name, types.ErrAlreadyExists)
		}
		return 0, err
	}
	return id, nil
}

// SelectTypeByID returns the type with the given id if it carries the
// requested kind tag, nil otherwise. An id belonging to another kind is
// never returned.
func (e *Executor) SelectTypeByID(id int64, kind types.TypeKind) (*types.Type, error) {
	rs, err := e.Execute(opSelectTypeByID, e.bind.Int64(id), e.bind.TypeKind(kind))
	if err != nil {
		return nil, err
	}
	if len(rs.Records) == 0 {
		return nil, nil
	}
	return decodeType(rs, rs.Records[0], kind)
}

// SelectTypesByID returns the types among ids carrying the requested
// kind tag. Ids of other kinds are filtered out; missing ids are simply
// absent from the result.
func (e *Executor) SelectTypesByID(ids []int64, kind types.TypeKind) ([]*types.Type, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rs, err := e.Execute(opSelectTypesByID, e.bind.Int64List(ids), e.bind.TypeKind(kind))
	if err != nil {
		return nil, err
	}
	out := make([]*types.Type, 0, len(rs.Records))
	for _, rec := range rs.Records {
		t, err := decodeType(rs, rec, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// SelectTypeByNameAndVersion returns the type with the given name,
// version, and kind, or nil. A nil version matches only types stored
// without a version.
func (e *Executor) SelectTypeByNameAndVersion(name string, version *string, kind types.TypeKind) (*types.Type, error) {
	var (
		rs  *types.RecordSet
		err error
	)
	if version == nil {
		rs, err = e.Execute(opSelectTypeByName, e.bind.Text(name), e.bind.TypeKind(kind))
	} else {
		rs, err = e.Execute(opSelectTypeByNameAndVersion, e.bind.Text(name), e.bind.Text(*version), e.bind.TypeKind(kind))
	}
	if err != nil {
		return nil, err
	}
	if len(rs.Records) == 0 {
		return nil, nil
	}
	return decodeType(rs, rs.Records[0], kind)
}

// SelectAllTypes returns every type of the requested kind.
func (e *Executor) SelectAllTypes(kind types.TypeKind) ([]*types.Type, error) {
	rs, err := e.Execute(opSelectAllTypes, e.bind.TypeKind(kind))
	if err != nil {
		return nil, err
	}
	out := make([]*types.Type, 0, len(rs.Records))
	for _, rec := range rs.Records {
		t, err := decodeType(rs, rec, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// InsertTypeProperty declares a property on a type. A duplicate property
// name on the same type surfaces as ErrAlreadyExists.
func (e *Executor) InsertTypeProperty(typeID int64, name string, t types.PropertyType) error {
	if name == "" {
		return fmt.Errorf("%w: property name must not be empty", types.ErrInvalidArgument)
	}
	err := e.ExecuteIgnoreResult(opInsertTypeProperty,
		e.bind.Int64(typeID), e.bind.Text(name), e.bind.PropertyType(t))
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("property %q on type %d: %w", name, typeID, types.ErrAlreadyExists)
	}
	return err
}

// SelectPropertiesByTypeID returns the property definitions declared on
// a type, empty when the type has none or does not exist.
func (e *Executor) SelectPropertiesByTypeID(typeID int64) ([]types.PropertyDefinition, error) {
	rs, err := e.Execute(opSelectPropertyByTypeID, e.bind.Int64(typeID))
	if err != nil {
		return nil, err
	}
	out := make([]types.PropertyDefinition, 0, len(rs.Records))
	for _, rec := range rs.Records {
		def, err := decodePropertyDefinition(rs, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

func decodeType(rs *types.RecordSet, rec types.Record, kind types.TypeKind) (*types.Type, error) {
	id, err := cellInt64(rec.Values[rs.ColumnIndex("id")])
	if err != nil {
		return nil, err
	}
	return &types.Type{
		ID:          id,
		Name:        rec.Values[rs.ColumnIndex("name")],
		Version:     cellOptString(rec.Values[rs.ColumnIndex("version")]),
		Description: cellOptString(rec.Values[rs.ColumnIndex("description")]),
		Kind:        kind,
		InputType:   cellOptString(rec.Values[rs.ColumnIndex("input_type")]),
		OutputType:  cellOptString(rec.Values[rs.ColumnIndex("output_type")]),
	}, nil
}

func decodePropertyDefinition(rs *types.RecordSet, rec types.Record) (types.PropertyDefinition, error) {
	typeID, err := cellInt64(rec.Values[rs.ColumnIndex("type_id")])
	if err != nil {
		return types.PropertyDefinition{}, err
	}
	dataType, err := cellInt64OrZero(rec.Values[rs.ColumnIndex("data_type")])
	if err != nil {
		return types.PropertyDefinition{}, err
	}
	return types.PropertyDefinition{
		TypeID: typeID,
		Name:   rec.Values[rs.ColumnIndex("name")],
		Type:   types.PropertyType(dataType),
	}, nil
}
