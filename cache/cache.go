// ABOUTME: Local write-through cache holding one JSON document per collection
// ABOUTME: SQLite-backed with WAL mode and a ULID-keyed write journal
package cache

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// Collection namespace keys. One JSON document is stored per namespace.
const (
	NSCaseStudies  = "admin-case-studies"
	NSCategories   = "admin-categories"
	NSTestimonials = "admin-testimonials"
	NSBlogPosts    = "admin-blog-posts"
	NSExtras       = "admin-product-extras"
	NSFacets       = "admin-product-facets"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	namespace TEXT PRIMARY KEY,
	doc TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS write_journal (
	id TEXT PRIMARY KEY,
	namespace TEXT NOT NULL,
	written_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_write_journal_namespace ON write_journal(namespace, written_at DESC);
`

// Cache is the persistent mirror of the in-memory admin state. Every
// committed mutation is written through immediately; it is never a
// write-behind buffer.
type Cache struct {
	db *sql.DB
}

// DefaultPath returns the XDG-compliant cache database location.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "siteadmin", "cache.db")
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Single connection avoids database locked errors
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Load returns the stored document for a namespace. The second return is
// false when the namespace has never been written.
func (c *Cache) Load(namespace string) ([]byte, bool, error) {
	var doc string
	err := c.db.QueryRow(`SELECT doc FROM documents WHERE namespace = ?`, namespace).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc), true, nil
}

// Store writes a document through to disk and records a journal entry.
func (c *Cache) Store(namespace string, doc []byte) error {
	now := time.Now()
	_, err := c.db.Exec(`
		INSERT INTO documents (namespace, doc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, namespace, string(doc), now)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", namespace, err)
	}

	_, err = c.db.Exec(`INSERT INTO write_journal (id, namespace, written_at) VALUES (?, ?, ?)`,
		newJournalID(), namespace, now)
	if err != nil {
		return fmt.Errorf("failed to journal %s: %w", namespace, err)
	}
	return nil
}

// Delete removes a namespace document.
func (c *Cache) Delete(namespace string) error {
	_, err := c.db.Exec(`DELETE FROM documents WHERE namespace = ?`, namespace)
	return err
}

// Namespaces lists every stored namespace in lexicographic order.
func (c *Cache) Namespaces() ([]string, error) {
	rows, err := c.db.Query(`SELECT namespace FROM documents ORDER BY namespace`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, err
		}
		out = append(out, ns)
	}
	return out, rows.Err()
}

// JournalCount returns the number of journaled writes for a namespace.
func (c *Cache) JournalCount(namespace string) (int, error) {
	var n int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM write_journal WHERE namespace = ?`, namespace).Scan(&n)
	return n, err
}

// LastWrite returns the time of the most recent write for a namespace.
func (c *Cache) LastWrite(namespace string) (*time.Time, error) {
	var t time.Time
	err := c.db.QueryRow(`SELECT updated_at FROM documents WHERE namespace = ?`, namespace).Scan(&t)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func newJournalID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
