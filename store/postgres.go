// ABOUTME: Postgres implementation of the record store gateway
// ABOUTME: Builds parameterized statements with RETURNING and generic row scanning
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"
)

const openTimeout = 5 * time.Second

// Postgres speaks the gateway contract against a hosted Postgres database.
type Postgres struct {
	db *sql.DB
}

// Open connects to the remote store and verifies the connection.
func Open(dsn string) (*Postgres, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, &RemoteStoreError{Message: "empty database DSN"}
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, remoteErr(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, remoteErr(err)
	}
	return &Postgres{db: db}, nil
}

// NewPostgres wraps an existing connection, used by tests and the migrate tool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) Query(ctx context.Context, table string, f Filter) ([]Row, error) {
	stmt, args, err := buildSelect(table, f)
	if err != nil {
		return nil, err
	}
	rows, err := p.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, remoteErr(err)
	}
	defer rows.Close()
	return scanRows(rows)
}

func (p *Postgres) Write(ctx context.Context, table string, rows []Row, mode WriteMode, conflictKey string) ([]Row, error) {
	if conflictKey == "" {
		conflictKey = DefaultConflictKey(table)
	}
	var out []Row
	for _, row := range rows {
		stmt, args, err := buildWrite(table, row, mode, conflictKey)
		if err != nil {
			return nil, err
		}
		returned, err := p.execReturning(ctx, stmt, args)
		if err != nil {
			return nil, err
		}
		out = append(out, returned...)
	}
	return out, nil
}

func (p *Postgres) Patch(ctx context.Context, table, id string, fields Row, key string) ([]Row, error) {
	if key == "" {
		key = DefaultConflictKey(table)
	}
	stmt, args, err := buildPatch(table, id, fields, key)
	if err != nil {
		return nil, err
	}
	return p.execReturning(ctx, stmt, args)
}

func (p *Postgres) Erase(ctx context.Context, table string, sel Selector) ([]Row, error) {
	stmt, args, err := buildErase(table, sel)
	if err != nil {
		return nil, err
	}
	return p.execReturning(ctx, stmt, args)
}

func (p *Postgres) execReturning(ctx context.Context, stmt string, args []any) ([]Row, error) {
	rows, err := p.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, remoteErr(err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// buildSelect renders a SELECT with equality filters and optional ordering.
func buildSelect(table string, f Filter) (string, []any, error) {
	if !ValidTable(table) {
		return "", nil, &RemoteStoreError{Message: fmt.Sprintf("unknown table %q", table)}
	}

	cols := "*"
	if len(f.Columns) > 0 {
		quoted := make([]string, len(f.Columns))
		for i, c := range f.Columns {
			quoted[i] = quoteIdent(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", cols, quoteIdent(table))

	var args []any
	if len(f.Eq) > 0 {
		keys := sortedKeys(f.Eq)
		conds := make([]string, len(keys))
		for i, k := range keys {
			args = append(args, f.Eq[k])
			conds[i] = fmt.Sprintf("%s = $%d", quoteIdent(k), len(args))
		}
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	if f.OrderBy != "" {
		b.WriteString(" ORDER BY " + quoteIdent(f.OrderBy))
	}
	return b.String(), args, nil
}

// buildWrite renders an INSERT, adding an ON CONFLICT DO UPDATE clause in
// upsert mode so repeated writes of the same key converge to one row.
func buildWrite(table string, row Row, mode WriteMode, conflictKey string) (string, []any, error) {
	if !ValidTable(table) {
		return "", nil, &RemoteStoreError{Message: fmt.Sprintf("unknown table %q", table)}
	}
	if len(row) == 0 {
		return "", nil, &RemoteStoreError{Message: "empty row"}
	}

	keys := sortedKeys(row)
	cols := make([]string, len(keys))
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		cols[i] = quoteIdent(k)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[k]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	if mode == WriteUpsert {
		updates := make([]string, 0, len(keys))
		for _, k := range keys {
			if k == conflictKey {
				continue
			}
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", quoteIdent(k), quoteIdent(k)))
		}
		if len(updates) == 0 {
			fmt.Fprintf(&b, " ON CONFLICT (%s) DO NOTHING", quoteIdent(conflictKey))
		} else {
			fmt.Fprintf(&b, " ON CONFLICT (%s) DO UPDATE SET %s",
				quoteIdent(conflictKey), strings.Join(updates, ", "))
		}
	}

	b.WriteString(" RETURNING *")
	return b.String(), args, nil
}

func buildPatch(table, id string, fields Row, key string) (string, []any, error) {
	if !ValidTable(table) {
		return "", nil, &RemoteStoreError{Message: fmt.Sprintf("unknown table %q", table)}
	}
	if len(fields) == 0 {
		return "", nil, &RemoteStoreError{Message: "empty patch"}
	}

	keys := sortedKeys(fields)
	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	for i, k := range keys {
		args = append(args, fields[k])
		sets[i] = fmt.Sprintf("%s = $%d", quoteIdent(k), len(args))
	}
	args = append(args, id)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING *",
		quoteIdent(table), strings.Join(sets, ", "), quoteIdent(key), len(args))
	return stmt, args, nil
}

func buildErase(table string, sel Selector) (string, []any, error) {
	if !ValidTable(table) {
		return "", nil, &RemoteStoreError{Message: fmt.Sprintf("unknown table %q", table)}
	}

	switch {
	case sel.All:
		key := sel.Key
		if key == "" {
			key = DefaultConflictKey(table)
		}
		stmt := fmt.Sprintf("DELETE FROM %s WHERE %s IS NOT NULL RETURNING *",
			quoteIdent(table), quoteIdent(key))
		return stmt, nil, nil
	case len(sel.IDs) > 0:
		key := sel.Key
		if key == "" {
			key = DefaultConflictKey(table)
		}
		stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1) RETURNING *",
			quoteIdent(table), quoteIdent(key))
		return stmt, []any{pq.Array(sel.IDs)}, nil
	case sel.ID != "":
		key := sel.Key
		if key == "" {
			key = DefaultConflictKey(table)
		}
		stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 RETURNING *",
			quoteIdent(table), quoteIdent(key))
		return stmt, []any{sel.ID}, nil
	default:
		return "", nil, &RemoteStoreError{Message: "empty erase selector"}
	}
}

// scanRows converts arbitrary result columns into generic rows.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, remoteErr(err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, remoteErr(err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteErr(err)
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func quoteIdent(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
