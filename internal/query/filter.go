package query

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/lineage/pkg/types"
)

// Filter expression support for the listing engine. Expressions are
// conjunctions of simple predicates:
//
//	type_id = 3 AND name LIKE 'model%' AND create_time_since_epoch > 100
//	properties.accuracy = 0.95
//
// Fields resolve per node kind; property predicates translate to an
// EXISTS probe against the kind's property table. Anything the grammar
// does not cover is ErrInvalidArgument, never passed through to SQL.

type filterField struct {
	column  string
	numeric bool
}

func listableFields(kind types.NodeKind) map[string]filterField {
	fields := map[string]filterField{
		"id":                           {column: "id", numeric: true},
		"type_id":                      {column: "type_id", numeric: true},
		"name":                         {column: "name"},
		"create_time_since_epoch":      {column: "create_time_since_epoch", numeric: true},
		"last_update_time_since_epoch": {column: "last_update_time_since_epoch", numeric: true},
	}
	switch kind {
	case types.ArtifactNode:
		fields["uri"] = filterField{column: "uri"}
		fields["state"] = filterField{column: "state", numeric: true}
	case types.ExecutionNode:
		fields["last_known_state"] = filterField{column: "last_known_state", numeric: true}
	}
	return fields
}

var filterOperators = []string{">=", "<=", "!=", "=", ">", "<"}

// buildFilterClause translates a filter expression into a SQL predicate
// over the node table, with every literal passed through the binder.
func buildFilterClause(b Binder, kind types.NodeKind, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", nil
	}
	// Structural scans run on a masked copy so quoted literals cannot
	// trip them.
	masked := maskQuoted(expr)
	if strings.ContainsAny(masked, "()") || containsWord(masked, "or") {
		return "", fmt.Errorf("%w: only conjunctions of simple predicates are supported in filter %q", types.ErrInvalidArgument, expr)
	}

	fields := listableFields(kind)
	var clauses []string
	for _, cond := range splitConjunction(expr) {
		clause, err := buildPredicate(b, kind, fields, cond)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}
	return strings.Join(clauses, " AND "), nil
}

func buildPredicate(b Binder, kind types.NodeKind, fields map[string]filterField, cond string) (string, error) {
	field, op, rawValue, err := splitPredicate(cond)
	if err != nil {
		return "", err
	}

	if name, ok := strings.CutPrefix(field, "properties."); ok {
		return buildPropertyPredicate(b, kind, name, op, rawValue)
	}

	f, ok := fields[field]
	if !ok {
		return "", fmt.Errorf("%w: unsupported filter field %q", types.ErrInvalidArgument, field)
	}
	value, isString, err := parseLiteral(b, rawValue)
	if err != nil {
		return "", err
	}
	if f.numeric && isString {
		return "", fmt.Errorf("%w: field %q expects a numeric literal", types.ErrInvalidArgument, field)
	}
	if op == "LIKE" {
		if f.numeric || !isString {
			return "", fmt.Errorf("%w: LIKE requires a string field and literal", types.ErrInvalidArgument)
		}
		return fmt.Sprintf("%s LIKE %s", f.column, value), nil
	}
	return fmt.Sprintf("%s %s %s", f.column, op, value), nil
}

// buildPropertyPredicate emits an EXISTS probe against the node kind's
// property table, comparing against the value column matching the
// literal's type.
func buildPropertyPredicate(b Binder, kind types.NodeKind, name, op, rawValue string) (string, error) {
	if op != "=" && op != "!=" {
		return "", fmt.Errorf("%w: property predicates support only = and !=", types.ErrInvalidArgument)
	}
	if name == "" {
		return "", fmt.Errorf("%w: empty property name in filter", types.ErrInvalidArgument)
	}
	value, isString, err := parseLiteral(b, rawValue)
	if err != nil {
		return "", err
	}

	table := nodeTables[kind]
	valueClause := fmt.Sprintf("(int_value %[1]s %[2]s OR double_value %[1]s %[2]s)", op, value)
	if isString {
		valueClause = fmt.Sprintf("string_value %s %s", op, value)
	}
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s WHERE %s = %s.id AND name = %s AND %s)",
		table.propertyTable, table.propertyIDColumn, table.name, b.Text(name), valueClause), nil
}

// maskQuoted blanks the contents of quoted literals, preserving length
// and the quote characters themselves, so structural scans over the
// result cannot match inside a literal. Doubled quotes toggle twice and
// come out unharmed.
func maskQuoted(expr string) string {
	out := []byte(expr)
	inQuote := false
	for i := range out {
		if out[i] == '\'' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			out[i] = '_'
		}
	}
	return string(out)
}

// splitConjunction splits on AND outside quoted literals.
func splitConjunction(expr string) []string {
	var parts []string
	var current strings.Builder
	inQuote := false
	words := strings.Fields(expr)
	for _, w := range words {
		if !inQuote && strings.EqualFold(w, "and") {
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(w)
		if strings.Count(w, "'")%2 == 1 {
			inQuote = !inQuote
		}
	}
	parts = append(parts, current.String())
	return parts
}

func containsWord(expr, word string) bool {
	for _, w := range strings.Fields(expr) {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}

// splitPredicate breaks "field op literal" apart, accepting LIKE as a
// word operator. The operator search runs on the masked form so operator
// characters inside the literal are not split points.
func splitPredicate(cond string) (field, op, value string, err error) {
	cond = strings.TrimSpace(cond)
	masked := maskQuoted(cond)
	for _, candidate := range filterOperators {
		if i := strings.Index(masked, candidate); i > 0 {
			field = strings.TrimSpace(cond[:i])
			value = strings.TrimSpace(cond[i+len(candidate):])
			return field, candidate, value, validPredicateParts(field, value, cond)
		}
	}
	words := strings.Fields(cond)
	if len(words) >= 3 && strings.EqualFold(words[1], "like") {
		field = words[0]
		value = strings.TrimSpace(strings.Join(words[2:], " "))
		return field, "LIKE", value, validPredicateParts(field, value, cond)
	}
	return "", "", "", fmt.Errorf("%w: malformed filter predicate %q", types.ErrInvalidArgument, cond)
}

func validPredicateParts(field, value, cond string) error {
	if field == "" || value == "" {
		return fmt.Errorf("%w: malformed filter predicate %q", types.ErrInvalidArgument, cond)
	}
	return nil
}

// parseLiteral renders a filter literal through the binder. Quoted
// literals pass through the string escaper; everything else must parse
// as a number and is emitted verbatim.
func parseLiteral(b Binder, raw string) (rendered string, isString bool, err error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "'") {
		if len(raw) < 2 || !strings.HasSuffix(raw, "'") {
			return "", false, fmt.Errorf("%w: unterminated string literal %s", types.ErrInvalidArgument, raw)
		}
		inner := raw[1 : len(raw)-1]
		// Callers write standard SQL doubling for embedded quotes; undo
		// it here so the binder is the only escaper.
		inner = strings.ReplaceAll(inner, "''", "'")
		if strings.Contains(strings.ReplaceAll(raw[1:len(raw)-1], "''", ""), "'") {
			return "", false, fmt.Errorf("%w: stray quote in string literal %s", types.ErrInvalidArgument, raw)
		}
		return b.Text(inner), true, nil
	}
	if !isNumericLiteral(raw) {
		return "", false, fmt.Errorf("%w: malformed filter literal %q", types.ErrInvalidArgument, raw)
	}
	return raw, false, nil
}

func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '-' && i == 0:
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return s != "-" && s != "." && s != "-."
}
