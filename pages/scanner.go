// ABOUTME: Page discovery scanner for app-router style page trees
// ABOUTME: Walks a directory, derives routes, and strips grouping segments
package pages

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ecommvert/siteadmin/models"
)

// markerPattern matches the files that make a directory routable.
const markerPattern = "page.{tsx,ts,jsx,js}"

const apiPrefix = "/api"

// Scan walks rootDir and returns one entry per routable page, sorted
// lexicographically by route. A scan is a best-effort snapshot; concurrent
// filesystem mutation is not guarded against.
func Scan(rootDir string) ([]models.PageEntry, error) {
	var entries []models.PageEntry
	if err := walk(rootDir, nil, &entries); err != nil {
		return nil, err
	}

	// The api subtree is skipped during the walk; filter again on the
	// derived routes in case a grouping layout reintroduced one.
	filtered := entries[:0]
	for _, e := range entries {
		if e.Route != apiPrefix && !strings.HasPrefix(e.Route, apiPrefix+"/") {
			filtered = append(filtered, e)
		}
	}
	entries = filtered

	sort.Slice(entries, func(i, j int) bool { return entries[i].Route < entries[j].Route })
	return entries, nil
}

func walk(dir string, segments []string, entries *[]models.PageEntry) error {
	items, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.IsDir() {
			continue
		}
		ok, err := doublestar.Match(markerPattern, item.Name())
		if err != nil {
			return err
		}
		if ok {
			*entries = append(*entries, models.PageEntry{
				Route:    routeFromSegments(segments),
				FilePath: filepath.Join(dir, item.Name()),
			})
			break
		}
	}

	for _, item := range items {
		if !item.IsDir() || skipDir(item.Name()) {
			continue
		}
		name := item.Name()
		next := segments
		// Grouping segments organize files without appearing in the URL.
		if !isGroupSegment(name) {
			next = append(append([]string{}, segments...), name)
		}
		if err := walk(filepath.Join(dir, name), next, entries); err != nil {
			return err
		}
	}
	return nil
}

func routeFromSegments(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

func isGroupSegment(name string) bool {
	return strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")")
}

func skipDir(name string) bool {
	switch {
	case strings.HasPrefix(name, "."):
		return true
	case strings.HasPrefix(name, "_"):
		return true
	case name == "api":
		return true
	case name == "node_modules":
		return true
	}
	return false
}
