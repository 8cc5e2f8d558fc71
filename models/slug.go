// ABOUTME: Slug derivation for product categories and blog posts
// ABOUTME: Lowercases, collapses non-alphanumeric runs, and dedupes with numeric suffixes
package models

import (
	"fmt"
	"strings"
)

// Slugify derives a URL slug: ASCII lowercase with non-alphanumeric runs
// collapsed to single hyphens and no leading or trailing hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug derives a slug for name that does not collide with any slug in
// taken, appending -1, -2, ... on collision.
func UniqueSlug(name string, taken map[string]bool) string {
	slug := Slugify(name)
	if slug == "" {
		slug = "untitled"
	}
	if !taken[slug] {
		return slug
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", slug, i)
		if !taken[candidate] {
			return candidate
		}
	}
}
