package types

import "fmt"

// PropertyValue is a tagged union over the four storable value kinds.
// Exactly one of the value fields is meaningful, selected by Kind; the
// storage layer writes exactly one value column per row and leaves the
// others NULL.
type PropertyValue struct {
	Kind PropertyType

	IntValue    int64
	DoubleValue float64
	StringValue string
	// StructValue holds a serialized (JSON-encoded) structured value.
	StructValue string
}

// IntPropertyValue wraps an int64 as a property value.
func IntPropertyValue(v int64) PropertyValue {
	return PropertyValue{Kind: IntProperty, IntValue: v}
}

// DoublePropertyValue wraps a float64 as a property value.
func DoublePropertyValue(v float64) PropertyValue {
	return PropertyValue{Kind: DoubleProperty, DoubleValue: v}
}

// StringPropertyValue wraps a string as a property value.
func StringPropertyValue(v string) PropertyValue {
	return PropertyValue{Kind: StringProperty, StringValue: v}
}

// StructPropertyValue wraps serialized structured data as a property value.
func StructPropertyValue(serialized string) PropertyValue {
	return PropertyValue{Kind: StructProperty, StructValue: serialized}
}

// Validate checks that the discriminant names a storable kind.
func (v PropertyValue) Validate() error {
	switch v.Kind {
	case IntProperty, DoubleProperty, StringProperty, StructProperty:
		return nil
	default:
		return fmt.Errorf("%w: property value kind %d", ErrInvalidArgument, v.Kind)
	}
}

// StoredProperty is one property row read back from storage: the owning
// node id, the property name, whether the property was declared on the
// node's type or supplied ad hoc, and the value itself.
type StoredProperty struct {
	NodeID   int64
	Name     string
	IsCustom bool
	Value    PropertyValue
}
