package query

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// sqlNull is the literal produced for absent optionals.
const sqlNull = "NULL"

// Binder renders typed parameters as backend-legal literal text for
// substitution into template queries. It is the single chokepoint for
// escaping and NULL representation; callers never pre-escape. Binding is
// total: every input produces a literal, never an error.
type Binder struct {
	src types.MetadataSource
}

// Text renders free text as a quoted, escaped string literal.
func (b Binder) Text(s string) string {
	return "'" + b.src.EscapeString(s) + "'"
}

// NullableText renders an optional string, producing NULL when absent.
func (b Binder) NullableText(s *string) string {
	if s == nil {
		return sqlNull
	}
	return b.Text(*s)
}

// Int64 renders a 64-bit integer literal.
func (b Binder) Int64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Int renders an integer literal.
func (b Binder) Int(v int) string {
	return strconv.Itoa(v)
}

// Bool renders a boolean as 0 or 1.
func (b Binder) Bool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Double renders a floating point literal.
func (b Binder) Double(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Int64List renders an ordered id collection for an IN (...) clause.
// An empty collection renders as NULL so that IN (NULL) matches no rows.
func (b Binder) Int64List(ids []int64) string {
	if len(ids) == 0 {
		return sqlNull
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

// TypeKind renders the type kind discriminant.
func (b Binder) TypeKind(k types.TypeKind) string {
	return strconv.Itoa(int(k))
}

// PropertyType renders a property type enum.
func (b Binder) PropertyType(t types.PropertyType) string {
	return strconv.Itoa(int(t))
}

// EventType renders an event type enum.
func (b Binder) EventType(t types.EventType) string {
	return strconv.Itoa(int(t))
}

// ArtifactState renders an optional artifact state, NULL when absent.
func (b Binder) ArtifactState(s *types.ArtifactState) string {
	if s == nil {
		return sqlNull
	}
	return strconv.Itoa(int(*s))
}

// ExecutionState renders an optional execution state, NULL when absent.
func (b Binder) ExecutionState(s *types.ExecutionState) string {
	if s == nil {
		return sqlNull
	}
	return strconv.Itoa(int(*s))
}

// ValueColumn returns the name of the value column a property value
// populates. The insert templates splice it in as an identifier, which
// keeps exactly one value column non-NULL per row.
func (b Binder) ValueColumn(v types.PropertyValue) string {
	switch v.Kind {
	case types.DoubleProperty:
		return "double_value"
	case types.StringProperty:
		return "string_value"
	case types.StructProperty:
		return "struct_value"
	default:
		return "int_value"
	}
}

// Value renders the populated variant of a property value as a literal.
func (b Binder) Value(v types.PropertyValue) string {
	switch v.Kind {
	case types.DoubleProperty:
		return b.Double(v.DoubleValue)
	case types.StringProperty:
		return b.Text(v.StringValue)
	case types.StructProperty:
		return b.Text(v.StructValue)
	default:
		return b.Int64(v.IntValue)
	}
}

// ValueOrNull renders the property value for one specific column: the
// literal when the value is of that kind, NULL otherwise. Used by the
// update templates, which reset every value column in one statement.
func (b Binder) ValueOrNull(v types.PropertyValue, kind types.PropertyType) string {
	if v.Kind != kind {
		return sqlNull
	}
	return b.Value(v)
}
