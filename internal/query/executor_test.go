package query

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lineage/internal/sqlite"
	"github.com/mesh-intelligence/lineage/pkg/types"
)

// newTestExecutor returns an executor over a fresh file-backed SQLite
// database with the head schema installed and a transaction open. The
// transaction stays open for the duration of the test.
func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	src := sqlite.NewSource(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, src.Connect())
	t.Cleanup(func() { _ = src.Close() })

	e, err := NewExecutor(SQLiteConfig(), src)
	require.NoError(t, err)

	require.NoError(t, src.Begin())
	require.NoError(t, e.InitMetadataSource())
	return e
}

// newEmptyExecutor is newTestExecutor without schema initialization.
func newEmptyExecutor(t *testing.T) *Executor {
	t.Helper()
	src := sqlite.NewSource(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, src.Connect())
	t.Cleanup(func() { _ = src.Close() })

	e, err := NewExecutor(SQLiteConfig(), src)
	require.NoError(t, err)
	require.NoError(t, src.Begin())
	return e
}

func TestExecutorUnreadyWithoutConnection(t *testing.T) {
	src := sqlite.NewSource(filepath.Join(t.TempDir(), "test.db"))
	e, err := NewExecutor(SQLiteConfig(), src)
	require.NoError(t, err)

	_, err = e.Execute(opSelectSchemaVersion)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnready)
}

func TestExecutorUnreadyWithoutTransaction(t *testing.T) {
	src := sqlite.NewSource(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, src.Connect())
	t.Cleanup(func() { _ = src.Close() })

	e, err := NewExecutor(SQLiteConfig(), src)
	require.NoError(t, err)

	_, err = e.Execute(opSelectSchemaVersion)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnready)
}

func TestExecutorUnknownOperation(t *testing.T) {
	e := newTestExecutor(t)

	_, err := e.Execute("no_such_operation")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnsupported)
}

func TestExecutorBackendFailureIsExecutionFailed(t *testing.T) {
	e := newTestExecutor(t)

	_, err := e.ExecuteRaw(`SELECT * FROM NoSuchTable;`)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrExecutionFailed)
}

func TestExecutorInsertReturnsGeneratedIDs(t *testing.T) {
	e := newTestExecutor(t)

	first, err := e.InsertType(&types.Type{Name: "Model", Kind: types.ArtifactTypeKind})
	require.NoError(t, err)
	second, err := e.InsertType(&types.Type{Name: "Dataset", Kind: types.ArtifactTypeKind})
	require.NoError(t, err)

	assert.Greater(t, first, int64(0))
	assert.Equal(t, first+1, second)
}

func TestExecutorResolvesVersionedTemplates(t *testing.T) {
	src := sqlite.NewSource(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, src.Connect())
	t.Cleanup(func() { _ = src.Close() })

	// Version 6 carries Type templates without the descriptor columns.
	e, err := NewExecutor(SQLiteConfig(), src, WithQueryVersion(6))
	require.NoError(t, err)
	require.NoError(t, src.Begin())

	// Build a version 6 database by walking the head schema backward.
	head, err := NewExecutor(SQLiteConfig(), src)
	require.NoError(t, err)
	require.NoError(t, head.InitMetadataSource())
	require.NoError(t, head.DowngradeMetadataSource(6))

	id, err := e.InsertType(&types.Type{Name: "Trainer", Kind: types.ExecutionTypeKind})
	require.NoError(t, err)

	got, err := e.SelectTypeByID(id, types.ExecutionTypeKind)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Trainer", got.Name)
	assert.Nil(t, got.InputType)
	assert.Nil(t, got.OutputType)
}

func TestExecutorRejectsUnknownQueryVersion(t *testing.T) {
	src := sqlite.NewSource(":memory:")
	_, err := NewExecutor(SQLiteConfig(), src, WithQueryVersion(3))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnsupported)
}

func TestSubstitute(t *testing.T) {
	t.Run("replaces positional placeholders", func(t *testing.T) {
		got, err := substitute("SELECT $0, $1 FROM t WHERE a = $0;", []string{"1", "'x'"})
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1, 'x' FROM t WHERE a = 1;", got)
	})

	t.Run("handles multi digit placeholders", func(t *testing.T) {
		params := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
		got, err := substitute("$10 $1", params)
		require.NoError(t, err)
		assert.Equal(t, "k b", got)
	})

	t.Run("missing parameter is internal error", func(t *testing.T) {
		_, err := substitute("SELECT $2;", []string{"1", "2"})
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrInternal)
	})

	t.Run("unused trailing parameters are permitted", func(t *testing.T) {
		got, err := substitute("SELECT $0;", []string{"1", "ignored"})
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1;", got)
	})

	t.Run("bare dollar passes through", func(t *testing.T) {
		got, err := substitute("SELECT '$' || $0;", []string{"'x'"})
		require.NoError(t, err)
		assert.Equal(t, "SELECT '$' || 'x';", got)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(assert.AnError))
}
