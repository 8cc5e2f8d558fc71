// ABOUTME: Record store gateway contract for the hosted relational service
// ABOUTME: Defines Row, Filter, Selector, write modes, and the RemoteStoreError type
package store

import (
	"context"
	"fmt"
)

// Row is a single table row as returned by the remote store.
type Row = map[string]any

// WriteMode selects between plain inserts and conflict-key upserts.
type WriteMode string

const (
	// WriteInsert always creates a new row.
	WriteInsert WriteMode = "insert"
	// WriteUpsert converges repeated writes of the same conflict key to one row.
	WriteUpsert WriteMode = "upsert"
)

// Filter narrows a Query. The zero value selects every row.
type Filter struct {
	Eq      map[string]any
	Columns []string
	OrderBy string
}

// Selector identifies rows for Erase. Exactly one form is used: a single id,
// a list of ids, or All with a key column. The All form deletes every row
// whose key column is not null — a full-table wipe that callers must gate
// behind an explicit confirmation.
type Selector struct {
	ID  string
	IDs []string
	All bool
	Key string
}

// Gateway is the call surface over the hosted relational data service. All
// operations are request/response; there are no retries and no distinction
// between transient and permanent failures.
type Gateway interface {
	Query(ctx context.Context, table string, f Filter) ([]Row, error)
	Write(ctx context.Context, table string, rows []Row, mode WriteMode, conflictKey string) ([]Row, error)
	Patch(ctx context.Context, table, id string, fields Row, key string) ([]Row, error)
	Erase(ctx context.Context, table string, sel Selector) ([]Row, error)
}

// RemoteStoreError wraps any underlying store failure (network, permission,
// constraint) behind a single message. Callers decide whether to alert the
// user or fall back to the local cache.
type RemoteStoreError struct {
	Message string
}

func (e *RemoteStoreError) Error() string {
	return fmt.Sprintf("remote store: %s", e.Message)
}

func remoteErr(err error) error {
	return &RemoteStoreError{Message: err.Error()}
}

// Table names reachable through the gateway.
const (
	TableCaseStudies  = "case_studies"
	TableCategories   = "categories"
	TableTestimonials = "testimonials"
	TableBlogPosts    = "blog_posts"
	TableExtras       = "product_extras"
	TableFacets       = "product_facets"
	TableSettings     = "site_settings"
)

var allowedTables = map[string]bool{
	TableCaseStudies:  true,
	TableCategories:   true,
	TableTestimonials: true,
	TableBlogPosts:    true,
	TableExtras:       true,
	TableFacets:       true,
	TableSettings:     true,
}

// ValidTable reports whether the gateway will touch the named table.
func ValidTable(table string) bool {
	return allowedTables[table]
}

// DefaultConflictKey returns the primary identifier column for a table.
func DefaultConflictKey(table string) string {
	switch table {
	case TableExtras, TableFacets:
		return "product_id"
	default:
		return "id"
	}
}
