package query

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// Executor resolves named template queries for its configured schema
// version, binds parameters, and executes against a MetadataSource. It
// holds no cross-call mutable state beyond the source and the template
// set resolved once at construction.
type Executor struct {
	cfg     *Config
	src     types.MetadataSource
	queries map[string]TemplateQuery
	bind    Binder
	log     *slog.Logger
}

// Option configures an Executor.
type Option func(*options)

type options struct {
	queryVersion int64
	logger       *slog.Logger
}

// WithQueryVersion makes the executor operate against an existing
// database at an earlier schema version instead of the library head.
func WithQueryVersion(v int64) Option {
	return func(o *options) { o.queryVersion = v }
}

// WithLogger sets the logger used by the migration paths.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewExecutor builds an Executor over src using the given dialect
// config. The template set for the active schema version is resolved
// here, not per call.
func NewExecutor(cfg *Config, src types.MetadataSource, opts ...Option) (*Executor, error) {
	o := options{queryVersion: cfg.SchemaVersion, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	queries, err := cfg.resolve(o.queryVersion)
	if err != nil {
		return nil, err
	}
	return &Executor{
		cfg:     cfg,
		src:     src,
		queries: queries,
		bind:    Binder{src: src},
		log:     o.logger,
	}, nil
}

// Binder returns the executor's parameter binder.
func (e *Executor) Binder() Binder {
	return e.bind
}

// checkReady gates every execution on an open connection and an active
// transaction. The executor never begins or ends transactions itself.
func (e *Executor) checkReady() error {
	if !e.src.IsConnected() {
		return fmt.Errorf("%w: no open connection", types.ErrUnready)
	}
	if !e.src.InTransaction() {
		return fmt.Errorf("%w: no active transaction", types.ErrUnready)
	}
	return nil
}

// Execute resolves the named template, substitutes params positionally,
// and runs it, returning the result rows.
func (e *Executor) Execute(op string, params ...string) (*types.RecordSet, error) {
	if err := e.checkReady(); err != nil {
		return nil, err
	}
	tq, ok := e.queries[op]
	if !ok {
		return nil, fmt.Errorf("%w: no template for operation %q", types.ErrUnsupported, op)
	}
	text, err := substitute(tq.Query, params)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", op, err)
	}
	rs, err := e.src.ExecuteQuery(text)
	if err != nil {
		return nil, fmt.Errorf("executing %s: %w: %v", op, types.ErrExecutionFailed, err)
	}
	return rs, nil
}

// ExecuteIgnoreResult runs a template and discards any rows.
func (e *Executor) ExecuteIgnoreResult(op string, params ...string) error {
	_, err := e.Execute(op, params...)
	return err
}

// ExecuteRaw runs already-rendered SQL text under the same readiness
// gate as template execution.
func (e *Executor) ExecuteRaw(query string) (*types.RecordSet, error) {
	if err := e.checkReady(); err != nil {
		return nil, err
	}
	rs, err := e.src.ExecuteQuery(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrExecutionFailed, err)
	}
	return rs, nil
}

// ExecuteInsert runs an insert template and then fetches the backend's
// last generated identifier. The two statements run on the caller's
// transaction, so the id belongs to this insert.
func (e *Executor) ExecuteInsert(op string, params ...string) (int64, error) {
	if err := e.ExecuteIgnoreResult(op, params...); err != nil {
		return 0, err
	}
	rs, err := e.Execute(opSelectLastInsertID)
	if err != nil {
		return 0, err
	}
	if len(rs.Records) == 0 || len(rs.Records[0].Values) == 0 || types.IsNull(rs.Records[0].Values[0]) {
		return 0, fmt.Errorf("%w: insert %s produced no generated id", types.ErrInternal, op)
	}
	id, err := strconv.ParseInt(rs.Records[0].Values[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parsing generated id %q: %v", types.ErrInternal, rs.Records[0].Values[0], err)
	}
	return id, nil
}

// substitute replaces $0..$n placeholders in a template with the
// corresponding parameter. A placeholder with no parameter is an error;
// unused trailing parameters are permitted so one call site can serve
// templates of differing arity across schema versions.
func substitute(template string, params []string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(template))
	for i := 0; i < len(template); {
		c := template[i]
		if c != '$' {
			sb.WriteByte(c)
			i++
			continue
		}
		j := i + 1
		for j < len(template) && template[j] >= '0' && template[j] <= '9' {
			j++
		}
		if j == i+1 {
			sb.WriteByte(c)
			i++
			continue
		}
		idx, err := strconv.Atoi(template[i+1 : j])
		if err != nil || idx >= len(params) {
			return "", fmt.Errorf("%w: template placeholder $%s has no parameter", types.ErrInternal, template[i+1:j])
		}
		sb.WriteString(params[idx])
		i = j
	}
	return sb.String(), nil
}

// isUniqueViolation reports whether a backend error message describes a
// uniqueness-constraint failure, so inserts can surface it as
// ErrAlreadyExists across dialects.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
