package types

// OrderByField selects the sort key for id-listing operations.
type OrderByField int

const (
	OrderByID OrderByField = iota
	OrderByCreateTime
	OrderByLastUpdateTime
)

// String returns the field name used in errors and tokens.
func (f OrderByField) String() string {
	switch f {
	case OrderByID:
		return "ID"
	case OrderByCreateTime:
		return "CREATE_TIME"
	case OrderByLastUpdateTime:
		return "LAST_UPDATE_TIME"
	default:
		return "UNKNOWN"
	}
}

// DefaultMaxResultSize is the page size used when options leave
// MaxResultSize unset.
const DefaultMaxResultSize = 20

// MaxResultSizeLimit caps the page size of a single listing call.
const MaxResultSizeLimit = 100

// ListOperationOptions carries the filter, ordering, and pagination state
// for id-listing operations. NextPageToken is an opaque resumption
// cursor produced by a previous call with the same ordering; passing a
// token issued under different options is rejected.
type ListOperationOptions struct {
	MaxResultSize int
	OrderBy       OrderByField
	IsAsc         bool

	// FilterQuery is a field-predicate expression restricting the result
	// set, for example "type_id = 3 AND name LIKE 'model%'". Supported
	// fields depend on the node kind.
	FilterQuery string

	NextPageToken string
}
