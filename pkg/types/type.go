package types

// TypeKind discriminates the three node kinds sharing the Type table and
// id space. Every by-id type accessor filters on this tag; id ranges are
// never assumed disjoint per kind.
type TypeKind int

const (
	ExecutionTypeKind TypeKind = 0
	ArtifactTypeKind  TypeKind = 1
	ContextTypeKind   TypeKind = 2
)

// String returns the kind name used in logs and CLI output.
func (k TypeKind) String() string {
	switch k {
	case ExecutionTypeKind:
		return "EXECUTION_TYPE"
	case ArtifactTypeKind:
		return "ARTIFACT_TYPE"
	case ContextTypeKind:
		return "CONTEXT_TYPE"
	default:
		return "UNKNOWN_TYPE"
	}
}

// PropertyType identifies which value column a property row populates.
type PropertyType int

const (
	UnknownProperty PropertyType = 0
	IntProperty     PropertyType = 1
	DoubleProperty  PropertyType = 2
	StringProperty  PropertyType = 3
	StructProperty  PropertyType = 4
)

// Type is a named, versioned schema for a class of nodes. The kind tag
// records which node kind the type describes. Input and output descriptors
// are populated only for execution types and hold serialized struct-type
// definitions.
type Type struct {
	ID          int64
	Name        string
	Version     *string
	Description *string
	Kind        TypeKind
	InputType   *string
	OutputType  *string
}

// PropertyDefinition is a declared (name, value kind) pair on a Type.
// Property names are unique per type.
type PropertyDefinition struct {
	TypeID int64
	Name   string
	Type   PropertyType
}
