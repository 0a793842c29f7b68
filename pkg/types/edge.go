package types

// EventType records the direction and role of an Event edge.
type EventType int

const (
	EventTypeUnknown EventType = iota
	DeclaredOutputEvent
	DeclaredInputEvent
	InputEvent
	OutputEvent
	InternalInputEvent
	InternalOutputEvent
)

// PathStepKind discriminates the two addressing modes of a path step.
type PathStepKind int

const (
	IndexStep PathStepKind = iota
	KeyStep
)

// PathStep identifies a position within a structured artifact, either by
// list index or by map key.
type PathStep struct {
	Kind  PathStepKind
	Index int64
	Key   string
}

// Event is a timestamped, typed edge between an Artifact and an
// Execution. Path steps are persisted as child rows keyed by event id,
// preserving the caller-supplied order.
type Event struct {
	ID                     int64
	ArtifactID             int64
	ExecutionID            int64
	Type                   EventType
	MillisecondsSinceEpoch int64
	Path                   []PathStep
}

// Association links a Context to an Execution. Insert-once, id-bearing;
// no dedup is performed at this layer.
type Association struct {
	ID          int64
	ContextID   int64
	ExecutionID int64
}

// Attribution links a Context to an Artifact. Insert-once, id-bearing;
// no dedup is performed at this layer.
type Attribution struct {
	ID         int64
	ContextID  int64
	ArtifactID int64
}

// ParentType is a directed hierarchy edge between two Types. The store
// keeps only the ids: no existence, kind, or acyclicity check is made,
// and edges to missing or cross-kind ids are returned verbatim.
type ParentType struct {
	TypeID       int64
	ParentTypeID int64
}

// ParentContext is a directed hierarchy edge between two Contexts, with
// the same lenient storage contract as ParentType.
type ParentContext struct {
	ParentContextID int64
	ChildContextID  int64
}
