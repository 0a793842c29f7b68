package types

// NodeKind names one of the three node tables. It selects table names and
// per-kind behavior in the list and delete paths.
type NodeKind int

const (
	ArtifactNode NodeKind = iota
	ExecutionNode
	ContextNode
)

// String returns the node kind name used in logs and errors.
func (k NodeKind) String() string {
	switch k {
	case ArtifactNode:
		return "artifact"
	case ExecutionNode:
		return "execution"
	case ContextNode:
		return "context"
	default:
		return "unknown"
	}
}

// ArtifactState is the lifecycle state of an Artifact.
type ArtifactState int

const (
	ArtifactStateUnknown ArtifactState = iota
	ArtifactPending
	ArtifactLive
	ArtifactMarkedForDeletion
	ArtifactDeleted
)

// ExecutionState is the last known lifecycle state of an Execution.
type ExecutionState int

const (
	ExecutionStateUnknown ExecutionState = iota
	ExecutionNew
	ExecutionRunning
	ExecutionComplete
	ExecutionFailed
	ExecutionCached
	ExecutionCanceled
)

// Artifact is a node instance recording a produced or consumed entity.
// Name is unique within the type when present. Timestamps are
// milliseconds since the Unix epoch.
type Artifact struct {
	ID                       int64
	TypeID                   int64
	URI                      string
	State                    *ArtifactState
	Name                     *string
	CreateTimeSinceEpoch     int64
	LastUpdateTimeSinceEpoch int64
}

// Execution is a node instance recording a run of a step or pipeline.
type Execution struct {
	ID                       int64
	TypeID                   int64
	LastKnownState           *ExecutionState
	Name                     *string
	CreateTimeSinceEpoch     int64
	LastUpdateTimeSinceEpoch int64
}

// Context is a node instance grouping artifacts and executions. Unlike
// the other node kinds its name is required, and (type_id, name) is
// unique.
type Context struct {
	ID                       int64
	TypeID                   int64
	Name                     string
	CreateTimeSinceEpoch     int64
	LastUpdateTimeSinceEpoch int64
}
