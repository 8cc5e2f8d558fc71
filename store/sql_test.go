// ABOUTME: Tests for gateway statement building
// ABOUTME: Covers insert vs upsert clauses, erase selectors, and table validation
package store

import (
	"strings"
	"testing"
)

func TestBuildWriteInsert(t *testing.T) {
	row := Row{"id": "a", "title": "Case"}

	stmt, args, err := buildWrite(TableCaseStudies, row, WriteInsert, "id")
	if err != nil {
		t.Fatalf("buildWrite failed: %v", err)
	}

	want := `INSERT INTO "case_studies" ("id", "title") VALUES ($1, $2) RETURNING *`
	if stmt != want {
		t.Errorf("Expected %q, got %q", want, stmt)
	}
	if len(args) != 2 || args[0] != "a" || args[1] != "Case" {
		t.Errorf("Unexpected args: %v", args)
	}
	if strings.Contains(stmt, "ON CONFLICT") {
		t.Error("insert mode must not emit a conflict clause")
	}
}

func TestBuildWriteUpsert(t *testing.T) {
	row := Row{"id": "a", "title": "Case", "is_active": true}

	stmt, _, err := buildWrite(TableCaseStudies, row, WriteUpsert, "id")
	if err != nil {
		t.Fatalf("buildWrite failed: %v", err)
	}

	if !strings.Contains(stmt, `ON CONFLICT ("id") DO UPDATE SET`) {
		t.Errorf("upsert must target the conflict key: %s", stmt)
	}
	if strings.Contains(stmt, `"id" = EXCLUDED."id"`) {
		t.Errorf("conflict key must not be rewritten by the update clause: %s", stmt)
	}
	if !strings.Contains(stmt, `"title" = EXCLUDED."title"`) {
		t.Errorf("non-key columns must be updated on conflict: %s", stmt)
	}
}

func TestBuildWriteUpsertKeyOnlyRow(t *testing.T) {
	stmt, _, err := buildWrite(TableCaseStudies, Row{"id": "a"}, WriteUpsert, "id")
	if err != nil {
		t.Fatalf("buildWrite failed: %v", err)
	}
	if !strings.Contains(stmt, "DO NOTHING") {
		t.Errorf("key-only upsert should fall back to DO NOTHING: %s", stmt)
	}
}

func TestBuildWriteRejectsUnknownTable(t *testing.T) {
	_, _, err := buildWrite("users; DROP TABLE users", Row{"id": "a"}, WriteInsert, "id")
	if err == nil {
		t.Fatal("Expected error for unknown table")
	}
	if _, ok := err.(*RemoteStoreError); !ok {
		t.Errorf("Expected RemoteStoreError, got %T", err)
	}
}

func TestBuildSelect(t *testing.T) {
	stmt, args, err := buildSelect(TableCategories, Filter{
		Eq:      map[string]any{"is_active": true},
		OrderBy: "name",
	})
	if err != nil {
		t.Fatalf("buildSelect failed: %v", err)
	}

	want := `SELECT * FROM "categories" WHERE "is_active" = $1 ORDER BY "name"`
	if stmt != want {
		t.Errorf("Expected %q, got %q", want, stmt)
	}
	if len(args) != 1 || args[0] != true {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestBuildSelectColumns(t *testing.T) {
	stmt, _, err := buildSelect(TableCategories, Filter{Columns: []string{"id", "slug"}})
	if err != nil {
		t.Fatalf("buildSelect failed: %v", err)
	}
	if !strings.HasPrefix(stmt, `SELECT "id", "slug" FROM`) {
		t.Errorf("column selection not applied: %s", stmt)
	}
}

func TestBuildEraseAll(t *testing.T) {
	stmt, args, err := buildErase(TableCaseStudies, Selector{All: true, Key: "id"})
	if err != nil {
		t.Fatalf("buildErase failed: %v", err)
	}

	want := `DELETE FROM "case_studies" WHERE "id" IS NOT NULL RETURNING *`
	if stmt != want {
		t.Errorf("Expected %q, got %q", want, stmt)
	}
	if len(args) != 0 {
		t.Errorf("Wipe-all takes no args, got %v", args)
	}
}

func TestBuildEraseByID(t *testing.T) {
	stmt, args, err := buildErase(TableCategories, Selector{ID: "abc"})
	if err != nil {
		t.Fatalf("buildErase failed: %v", err)
	}
	if !strings.Contains(stmt, `WHERE "id" = $1`) {
		t.Errorf("Unexpected statement: %s", stmt)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestBuildEraseByIDs(t *testing.T) {
	stmt, args, err := buildErase(TableExtras, Selector{IDs: []string{"p1", "p2"}})
	if err != nil {
		t.Fatalf("buildErase failed: %v", err)
	}
	if !strings.Contains(stmt, `WHERE "product_id" = ANY($1)`) {
		t.Errorf("Expected default product_id key for extras: %s", stmt)
	}
	if len(args) != 1 {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestBuildEraseEmptySelector(t *testing.T) {
	if _, _, err := buildErase(TableCategories, Selector{}); err == nil {
		t.Fatal("Expected error for empty selector")
	}
}

func TestBuildPatch(t *testing.T) {
	stmt, args, err := buildPatch(TableCategories, "abc", Row{"name": "Tools"}, "id")
	if err != nil {
		t.Fatalf("buildPatch failed: %v", err)
	}

	want := `UPDATE "categories" SET "name" = $1 WHERE "id" = $2 RETURNING *`
	if stmt != want {
		t.Errorf("Expected %q, got %q", want, stmt)
	}
	if len(args) != 2 || args[1] != "abc" {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestDefaultConflictKey(t *testing.T) {
	if key := DefaultConflictKey(TableCaseStudies); key != "id" {
		t.Errorf("Expected id, got %s", key)
	}
	if key := DefaultConflictKey(TableFacets); key != "product_id" {
		t.Errorf("Expected product_id, got %s", key)
	}
}
