package query

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// nodeTable maps a node kind to its table names for the listing, filter,
// and delete paths.
type nodeTable struct {
	name             string
	propertyTable    string
	propertyIDColumn string
}

var nodeTables = map[types.NodeKind]nodeTable{
	types.ArtifactNode:  {name: "Artifact", propertyTable: "ArtifactProperty", propertyIDColumn: "artifact_id"},
	types.ExecutionNode: {name: "Execution", propertyTable: "ExecutionProperty", propertyIDColumn: "execution_id"},
	types.ContextNode:   {name: "Context", propertyTable: "ContextProperty", propertyIDColumn: "context_id"},
}

// pageToken is the decoded form of the opaque continuation token: the
// ordering it was issued under, the last seen order key, and a nonce
// identifying the issuing call. Tokens are rejected when replayed under
// different options.
type pageToken struct {
	OrderField types.OrderByField `json:"f"`
	IsAsc      bool               `json:"a"`
	LastValue  int64              `json:"v"`
	LastID     int64              `json:"id"`
	Nonce      string             `json:"n"`
}

func encodePageToken(t pageToken) (string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("%w: encoding page token: %v", types.ErrInternal, err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodePageToken(s string) (pageToken, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return pageToken{}, fmt.Errorf("%w: malformed page token", types.ErrInvalidArgument)
	}
	var t pageToken
	if err := json.Unmarshal(raw, &t); err != nil {
		return pageToken{}, fmt.Errorf("%w: malformed page token", types.ErrInvalidArgument)
	}
	return t, nil
}

// ListArtifactIDs lists artifact ids using options, optionally
// restricted to candidateIDs.
func (e *Executor) ListArtifactIDs(opts types.ListOperationOptions, candidateIDs []int64) ([]int64, string, error) {
	return e.listNodeIDs(types.ArtifactNode, opts, candidateIDs)
}

// ListExecutionIDs lists execution ids using options.
func (e *Executor) ListExecutionIDs(opts types.ListOperationOptions, candidateIDs []int64) ([]int64, string, error) {
	return e.listNodeIDs(types.ExecutionNode, opts, candidateIDs)
}

// ListContextIDs lists context ids using options.
func (e *Executor) ListContextIDs(opts types.ListOperationOptions, candidateIDs []int64) ([]int64, string, error) {
	return e.listNodeIDs(types.ContextNode, opts, candidateIDs)
}

// listNodeIDs builds and runs one ordered, paginated id-listing query.
// The returned token resumes after the last returned row without
// re-scanning earlier pages. When candidateIDs is non-nil the result is
// the intersection with the filtered set, in the filter's order.
func (e *Executor) listNodeIDs(kind types.NodeKind, opts types.ListOperationOptions, candidateIDs []int64) ([]int64, string, error) {
	table := nodeTables[kind]

	pageSize := opts.MaxResultSize
	if pageSize <= 0 {
		pageSize = types.DefaultMaxResultSize
	}
	if pageSize > types.MaxResultSizeLimit {
		pageSize = types.MaxResultSizeLimit
	}

	orderColumn, err := orderByColumn(opts.OrderBy)
	if err != nil {
		return nil, "", err
	}

	var where []string
	if opts.FilterQuery != "" {
		clause, err := buildFilterClause(e.bind, kind, opts.FilterQuery)
		if err != nil {
			return nil, "", err
		}
		if clause != "" {
			where = append(where, clause)
		}
	}
	if candidateIDs != nil {
		where = append(where, fmt.Sprintf("id IN (%s)", e.bind.Int64List(candidateIDs)))
	}
	if opts.NextPageToken != "" {
		token, err := decodePageToken(opts.NextPageToken)
		if err != nil {
			return nil, "", err
		}
		if token.OrderField != opts.OrderBy || token.IsAsc != opts.IsAsc {
			return nil, "", fmt.Errorf("%w: page token does not match list options", types.ErrInvalidArgument)
		}
		where = append(where, resumeClause(orderColumn, opts.IsAsc, token))
	}

	direction := "DESC"
	if opts.IsAsc {
		direction = "ASC"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT id, %s FROM %s", orderColumn, table.name)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	// One extra row decides whether a continuation token is needed.
	fmt.Fprintf(&sb, " ORDER BY %s %s, id %s LIMIT %d;", orderColumn, direction, direction, pageSize+1)

	rs, err := e.ExecuteRaw(sb.String())
	if err != nil {
		return nil, "", err
	}

	ids := make([]int64, 0, len(rs.Records))
	values := make([]int64, 0, len(rs.Records))
	for _, rec := range rs.Records {
		id, err := cellInt64(rec.Values[0])
		if err != nil {
			return nil, "", err
		}
		v, err := cellInt64OrZero(rec.Values[1])
		if err != nil {
			return nil, "", err
		}
		ids = append(ids, id)
		values = append(values, v)
	}

	if len(ids) <= pageSize {
		return ids, "", nil
	}
	ids = ids[:pageSize]
	values = values[:pageSize]
	token, err := encodePageToken(pageToken{
		OrderField: opts.OrderBy,
		IsAsc:      opts.IsAsc,
		LastValue:  values[pageSize-1],
		LastID:     ids[pageSize-1],
		Nonce:      uuid.NewString(),
	})
	if err != nil {
		return nil, "", err
	}
	return ids, token, nil
}

// SelectAllArtifactIDs returns every artifact id, unordered and
// unpaginated. Intended for offline scans, not serving paths.
func (e *Executor) SelectAllArtifactIDs() ([]int64, error) {
	return e.selectAllIDs(opSelectAllArtifactIDs)
}

// SelectAllExecutionIDs returns every execution id.
func (e *Executor) SelectAllExecutionIDs() ([]int64, error) {
	return e.selectAllIDs(opSelectAllExecutionIDs)
}

// SelectAllContextIDs returns every context id.
func (e *Executor) SelectAllContextIDs() ([]int64, error) {
	return e.selectAllIDs(opSelectAllContextIDs)
}

func (e *Executor) selectAllIDs(op string) ([]int64, error) {
	rs, err := e.Execute(op)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rs.Records))
	for _, rec := range rs.Records {
		id, err := cellInt64(rec.Values[0])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func orderByColumn(f types.OrderByField) (string, error) {
	switch f {
	case types.OrderByID:
		return "id", nil
	case types.OrderByCreateTime:
		return "create_time_since_epoch", nil
	case types.OrderByLastUpdateTime:
		return "last_update_time_since_epoch", nil
	default:
		return "", fmt.Errorf("%w: unsupported order by field %d", types.ErrInvalidArgument, f)
	}
}

// resumeClause positions the scan strictly after the token's last seen
// (order key, id) pair.
func resumeClause(orderColumn string, asc bool, t pageToken) string {
	cmp := "<"
	if asc {
		cmp = ">"
	}
	if orderColumn == "id" {
		return fmt.Sprintf("id %s %d", cmp, t.LastID)
	}
	return fmt.Sprintf("(%[1]s %[2]s %[3]d OR (%[1]s = %[3]d AND id %[2]s %[4]d))",
		orderColumn, cmp, t.LastValue, t.LastID)
}
