// ABOUTME: Tests for the local write-through cache
// ABOUTME: Covers document roundtrips, namespaces, and journal entries
package cache

import (
	"path/filepath"
	"testing"
)

func setupTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestLoadMissingNamespace(t *testing.T) {
	c := setupTestCache(t)

	_, ok, err := c.Load(NSCaseStudies)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("Expected ok=false for unwritten namespace")
	}
}

func TestStoreAndLoad(t *testing.T) {
	c := setupTestCache(t)

	doc := []byte(`[{"id":"a","title":"Case"}]`)
	if err := c.Store(NSCaseStudies, doc); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, ok, err := c.Load(NSCaseStudies)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected ok=true after store")
	}
	if string(got) != string(doc) {
		t.Errorf("Expected %s, got %s", doc, got)
	}
}

func TestStoreOverwrites(t *testing.T) {
	c := setupTestCache(t)

	if err := c.Store(NSCategories, []byte(`[]`)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := c.Store(NSCategories, []byte(`[{"id":"b"}]`)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, _, err := c.Load(NSCategories)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != `[{"id":"b"}]` {
		t.Errorf("Expected latest document, got %s", got)
	}
}

func TestNamespaces(t *testing.T) {
	c := setupTestCache(t)

	_ = c.Store(NSTestimonials, []byte(`[]`))
	_ = c.Store(NSCaseStudies, []byte(`[]`))

	namespaces, err := c.Namespaces()
	if err != nil {
		t.Fatalf("Namespaces failed: %v", err)
	}
	if len(namespaces) != 2 {
		t.Fatalf("Expected 2 namespaces, got %d", len(namespaces))
	}
	if namespaces[0] != NSCaseStudies {
		t.Errorf("Expected lexicographic order, got %v", namespaces)
	}
}

func TestJournalRecordsEveryWrite(t *testing.T) {
	c := setupTestCache(t)

	_ = c.Store(NSCaseStudies, []byte(`[]`))
	_ = c.Store(NSCaseStudies, []byte(`[{"id":"a"}]`))

	n, err := c.JournalCount(NSCaseStudies)
	if err != nil {
		t.Fatalf("JournalCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 journal entries, got %d", n)
	}
}

func TestDelete(t *testing.T) {
	c := setupTestCache(t)

	_ = c.Store(NSBlogPosts, []byte(`[]`))
	if err := c.Delete(NSBlogPosts); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, _ := c.Load(NSBlogPosts)
	if ok {
		t.Error("Expected namespace gone after delete")
	}
}
