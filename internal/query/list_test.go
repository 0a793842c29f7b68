package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

func insertArtifacts(t *testing.T, e *Executor, typeID int64, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id, err := e.InsertArtifact(&types.Artifact{
			TypeID: typeID,
			URI:    fmt.Sprintf("s3://bucket/%d", i),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestListArtifactIDsPagination(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Dataset")
	inserted := insertArtifacts(t, e, typeID, 7)

	opts := types.ListOperationOptions{MaxResultSize: 3, OrderBy: types.OrderByID, IsAsc: true}

	var seen []int64
	for page := 0; ; page++ {
		require.Less(t, page, 10, "pagination did not terminate")
		ids, token, err := e.ListArtifactIDs(opts, nil)
		require.NoError(t, err)
		seen = append(seen, ids...)
		if token == "" {
			break
		}
		assert.Len(t, ids, 3)
		opts.NextPageToken = token
	}

	// Every id exactly once, in ascending order, with a short final page.
	assert.Equal(t, inserted, seen)
}

func TestListArtifactIDsDescending(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Dataset")
	inserted := insertArtifacts(t, e, typeID, 5)

	ids, token, err := e.ListArtifactIDs(types.ListOperationOptions{
		MaxResultSize: 10,
		OrderBy:       types.OrderByID,
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, token)
	require.Len(t, ids, 5)
	for i, id := range ids {
		assert.Equal(t, inserted[len(inserted)-1-i], id)
	}
}

func TestListPageSizeClamping(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Dataset")
	insertArtifacts(t, e, typeID, 25)

	// Zero requests the default page size.
	ids, token, err := e.ListArtifactIDs(types.ListOperationOptions{OrderBy: types.OrderByID, IsAsc: true}, nil)
	require.NoError(t, err)
	assert.Len(t, ids, types.DefaultMaxResultSize)
	assert.NotEmpty(t, token)

	// Oversized requests are clamped to the limit.
	ids, token, err = e.ListArtifactIDs(types.ListOperationOptions{
		MaxResultSize: 10000,
		OrderBy:       types.OrderByID,
		IsAsc:         true,
	}, nil)
	require.NoError(t, err)
	assert.Len(t, ids, 25)
	assert.Empty(t, token)
}

func TestListOrderByTimestamps(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Dataset")
	inserted := insertArtifacts(t, e, typeID, 6)

	for _, orderBy := range []types.OrderByField{types.OrderByCreateTime, types.OrderByLastUpdateTime} {
		opts := types.ListOperationOptions{MaxResultSize: 2, OrderBy: orderBy, IsAsc: true}
		var seen []int64
		for {
			ids, token, err := e.ListArtifactIDs(opts, nil)
			require.NoError(t, err)
			seen = append(seen, ids...)
			if token == "" {
				break
			}
			opts.NextPageToken = token
		}
		// Timestamps may collide; the id tie-break still yields each row
		// exactly once.
		assert.ElementsMatch(t, inserted, seen)
	}
}

func TestListTokenRejectedUnderDifferentOptions(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Dataset")
	insertArtifacts(t, e, typeID, 5)

	_, token, err := e.ListArtifactIDs(types.ListOperationOptions{
		MaxResultSize: 2,
		OrderBy:       types.OrderByID,
		IsAsc:         true,
	}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, _, err = e.ListArtifactIDs(types.ListOperationOptions{
		MaxResultSize: 2,
		OrderBy:       types.OrderByID,
		IsAsc:         false,
		NextPageToken: token,
	}, nil)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, _, err = e.ListArtifactIDs(types.ListOperationOptions{
		MaxResultSize: 2,
		OrderBy:       types.OrderByCreateTime,
		IsAsc:         true,
		NextPageToken: token,
	}, nil)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestListMalformedToken(t *testing.T) {
	e := newTestExecutor(t)

	_, _, err := e.ListArtifactIDs(types.ListOperationOptions{
		OrderBy:       types.OrderByID,
		NextPageToken: "not a token!",
	}, nil)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestListCandidateIntersection(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Dataset")
	inserted := insertArtifacts(t, e, typeID, 5)

	candidates := []int64{inserted[0], inserted[3], 9999}
	ids, token, err := e.ListArtifactIDs(types.ListOperationOptions{
		MaxResultSize: 10,
		OrderBy:       types.OrderByID,
		IsAsc:         true,
	}, candidates)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, []int64{inserted[0], inserted[3]}, ids)
}

func TestListEmptyCandidateSet(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Dataset")
	insertArtifacts(t, e, typeID, 3)

	// A non-nil empty candidate slice means an empty intersection.
	ids, token, err := e.ListArtifactIDs(types.ListOperationOptions{
		OrderBy: types.OrderByID,
		IsAsc:   true,
	}, []int64{})
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, ids)
}

func TestListFilterOnFields(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Dataset")
	otherTypeID := insertArtifactType(t, e, "Model")
	targetID, err := e.InsertArtifact(&types.Artifact{TypeID: typeID, URI: "s3://target", Name: strPtr("it's special")})
	require.NoError(t, err)
	_, err = e.InsertArtifact(&types.Artifact{TypeID: otherTypeID, URI: "s3://other"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		filter string
	}{
		{"by uri", "uri = 's3://target'"},
		{"by type id", fmt.Sprintf("type_id = %d", typeID)},
		{"by name with embedded quote", "name = 'it''s special'"},
		{"conjunction", fmt.Sprintf("uri = 's3://target' AND type_id = %d", typeID)},
		{"like", "uri LIKE 's3://tar%'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ids, _, err := e.ListArtifactIDs(types.ListOperationOptions{
				MaxResultSize: 10,
				OrderBy:       types.OrderByID,
				IsAsc:         true,
				FilterQuery:   tc.filter,
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, []int64{targetID}, ids)
		})
	}
}

func TestListFilterQuotedLiterals(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Dataset")

	byName := make(map[string]int64)
	for _, name := range []string{"black or white", "a (b)", "a=b stuff", "v AND w"} {
		id, err := e.InsertArtifact(&types.Artifact{TypeID: typeID, URI: "s3://x/" + name, Name: strPtr(name)})
		require.NoError(t, err)
		byName[name] = id
	}

	// Keywords, parentheses, and operator characters inside a quoted
	// literal are literal text, not filter syntax.
	cases := []struct {
		filter string
		want   string
	}{
		{"name = 'black or white'", "black or white"},
		{"name = 'a (b)'", "a (b)"},
		{"name LIKE 'a=b%'", "a=b stuff"},
		{"name = 'v AND w'", "v AND w"},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			ids, _, err := e.ListArtifactIDs(types.ListOperationOptions{
				OrderBy:     types.OrderByID,
				IsAsc:       true,
				FilterQuery: tc.filter,
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, []int64{byName[tc.want]}, ids)
		})
	}
}

func TestListFilterOnProperties(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Model")
	matchID, err := e.InsertArtifact(&types.Artifact{TypeID: typeID, URI: "s3://a"})
	require.NoError(t, err)
	otherID, err := e.InsertArtifact(&types.Artifact{TypeID: typeID, URI: "s3://b"})
	require.NoError(t, err)

	require.NoError(t, e.InsertArtifactProperty(matchID, "accuracy", false, types.DoublePropertyValue(0.95)))
	require.NoError(t, e.InsertArtifactProperty(matchID, "framework", true, types.StringPropertyValue("torch")))
	require.NoError(t, e.InsertArtifactProperty(otherID, "accuracy", false, types.DoublePropertyValue(0.5)))

	ids, _, err := e.ListArtifactIDs(types.ListOperationOptions{
		OrderBy:     types.OrderByID,
		IsAsc:       true,
		FilterQuery: "properties.accuracy = 0.95",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{matchID}, ids)

	ids, _, err = e.ListArtifactIDs(types.ListOperationOptions{
		OrderBy:     types.OrderByID,
		IsAsc:       true,
		FilterQuery: "properties.framework = 'torch'",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{matchID}, ids)
}

func TestListFilterRejectsUnsupportedSyntax(t *testing.T) {
	e := newTestExecutor(t)

	for _, filter := range []string{
		"uri = 's3://a' OR uri = 's3://b'",
		"(uri = 's3://a')",
		"nonexistent_field = 1",
		"uri =",
		"type_id = 'abc'",
		"properties.accuracy > 0.9",
		"uri = 's3://unterminated",
	} {
		t.Run(filter, func(t *testing.T) {
			_, _, err := e.ListArtifactIDs(types.ListOperationOptions{
				OrderBy:     types.OrderByID,
				FilterQuery: filter,
			}, nil)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
		})
	}
}

func TestListExecutionAndContextIDs(t *testing.T) {
	e := newTestExecutor(t)
	execTypeID := insertExecutionType(t, e, "Trainer")
	ctxTypeID := insertContextType(t, e, "Pipeline")

	execID, err := e.InsertExecution(&types.Execution{TypeID: execTypeID})
	require.NoError(t, err)
	ctxID, err := e.InsertContext(&types.Context{TypeID: ctxTypeID, Name: "run"})
	require.NoError(t, err)

	ids, _, err := e.ListExecutionIDs(types.ListOperationOptions{OrderBy: types.OrderByID, IsAsc: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{execID}, ids)

	ids, _, err = e.ListContextIDs(types.ListOperationOptions{
		OrderBy:     types.OrderByID,
		IsAsc:       true,
		FilterQuery: "name = 'run'",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{ctxID}, ids)
}

func TestSelectAllIDs(t *testing.T) {
	e := newTestExecutor(t)
	typeID := insertArtifactType(t, e, "Dataset")
	inserted := insertArtifacts(t, e, typeID, 3)

	ids, err := e.SelectAllArtifactIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, inserted, ids)

	ids, err = e.SelectAllExecutionIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = e.SelectAllContextIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListUnsupportedOrderField(t *testing.T) {
	e := newTestExecutor(t)

	_, _, err := e.ListArtifactIDs(types.ListOperationOptions{OrderBy: types.OrderByField(42)}, nil)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}
