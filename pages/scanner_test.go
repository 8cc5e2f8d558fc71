// ABOUTME: Tests for page route derivation
// ABOUTME: Covers grouping segment stripping, api exclusion, and sort order
package pages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, root string, segments ...string) {
	t.Helper()
	dir := filepath.Join(append([]string{root}, segments[:len(segments)-1]...)...)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, segments[len(segments)-1]), []byte("export default null\n"), 0644))
}

func TestScanRouteDerivation(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "page.tsx")
	writePage(t, root, "(marketing)", "blog", "page.tsx")
	writePage(t, root, "admin", "pages", "page.tsx")
	writePage(t, root, "api", "widgets", "route.ts")

	entries, err := Scan(root)
	require.NoError(t, err)

	routes := make([]string, len(entries))
	for i, e := range entries {
		routes[i] = e.Route
	}
	require.Equal(t, []string{"/", "/admin/pages", "/blog"}, routes)
}

func TestScanSkipsHiddenAndInternalDirs(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "tools", "page.tsx")
	writePage(t, root, ".git", "page.tsx")
	writePage(t, root, "_components", "page.tsx")
	writePage(t, root, "node_modules", "pkg", "page.tsx")

	entries, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "/tools", entries[0].Route)
}

func TestScanMarkerlessDirStillRecursed(t *testing.T) {
	root := t.TempDir()
	// "reports" has no marker of its own but contains a routable child.
	writePage(t, root, "reports", "monthly", "page.tsx")

	entries, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "/reports/monthly", entries[0].Route)
}

func TestScanGroupingOnlyPath(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "(site)", "(public)", "pricing", "page.jsx")

	entries, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "/pricing", entries[0].Route)
}

func TestScanAlternateMarkers(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "a", "page.ts")
	writePage(t, root, "b", "page.js")
	writePage(t, root, "c", "layout.tsx") // not a page marker

	entries, err := Scan(root)
	require.NoError(t, err)

	routes := make([]string, len(entries))
	for i, e := range entries {
		routes[i] = e.Route
	}
	require.Equal(t, []string{"/a", "/b"}, routes)
}

func TestScanFilePathPointsAtMarker(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "blog", "page.tsx")

	entries, err := Scan(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "blog", "page.tsx"), entries[0].FilePath)
}
