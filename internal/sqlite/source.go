// Package sqlite implements the SQLite metadata source backing the
// query executor. Connections use the pure Go driver, so the store
// builds without cgo.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// Source is a MetadataSource over one SQLite database. Statements run on
// the active transaction when one is open, otherwise they are rejected
// upstream by the executor's readiness gate.
type Source struct {
	mu  sync.Mutex
	uri string
	db  *sql.DB
	tx  *sql.Tx
}

var _ types.MetadataSource = (*Source)(nil)

// NewSource returns an unconnected source for the database at uri. Use
// ":memory:" for an in-memory database.
func NewSource(uri string) *Source {
	return &Source{uri: uri}
}

// Connect opens the database. SQLite creates the file on first write.
// The pool is capped at one connection so that last_insert_rowid() and
// transaction state always refer to the same connection.
func (s *Source) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return fmt.Errorf("%w: already connected", types.ErrFailedPrecondition)
	}
	db, err := sql.Open("sqlite", s.uri)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.uri, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("opening %s: %w", s.uri, err)
	}
	s.db = db
	return nil
}

// Close rolls back any open transaction and closes the database.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	if s.tx != nil {
		_ = s.tx.Rollback()
		s.tx = nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// IsConnected reports whether the database is open.
func (s *Source) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}

// InTransaction reports whether a transaction is active.
func (s *Source) InTransaction() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx != nil
}

// Begin starts a transaction. Nested transactions are not supported.
func (s *Source) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return fmt.Errorf("%w: no open connection", types.ErrUnready)
	}
	if s.tx != nil {
		return fmt.Errorf("%w: transaction already active", types.ErrFailedPrecondition)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	s.tx = tx
	return nil
}

// Commit commits the active transaction.
func (s *Source) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return fmt.Errorf("%w: no active transaction", types.ErrUnready)
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Rollback discards the active transaction.
func (s *Source) Rollback() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return fmt.Errorf("%w: no active transaction", types.ErrUnready)
	}
	err := s.tx.Rollback()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	return nil
}

// ExecuteQuery runs one SQL statement on the active transaction and
// returns its rows. Statements that produce no rows return an empty
// record set. NULL cells are rendered as the record set's null sentinel.
func (s *Source) ExecuteQuery(query string) (*types.RecordSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, fmt.Errorf("%w: no open connection", types.ErrUnready)
	}
	if s.tx == nil {
		return nil, fmt.Errorf("%w: no active transaction", types.ErrUnready)
	}
	if returnsRows(query) {
		return s.queryRows(query)
	}
	if _, err := s.tx.Exec(query); err != nil {
		return nil, err
	}
	return &types.RecordSet{}, nil
}

func (s *Source) queryRows(query string) (*types.RecordSet, error) {
	rows, err := s.tx.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	rs := &types.RecordSet{ColumnNames: columns}
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		scan := make([]any, len(columns))
		for i := range cells {
			scan[i] = &cells[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}
		values := make([]string, len(columns))
		for i, c := range cells {
			if c.Valid {
				values[i] = c.String
			} else {
				values[i] = types.NullValue
			}
		}
		rs.Records = append(rs.Records, types.Record{Values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// EscapeString doubles single quotes for embedding s in a SQL string
// literal.
func (s *Source) EscapeString(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

// returnsRows reports whether the statement's leading keyword produces a
// result set. INSERT/UPDATE/DELETE and DDL go through Exec.
func returnsRows(query string) bool {
	trimmed := strings.TrimLeft(query, " \t\r\n")
	if len(trimmed) < 6 {
		return false
	}
	switch strings.ToUpper(trimmed[:6]) {
	case "SELECT", "PRAGMA":
		return true
	}
	return false
}
