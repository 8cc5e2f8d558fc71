// ABOUTME: Migration utility for legacy result shapes in the local cache.
// ABOUTME: Rewrites roas/cpa/revenue/conversion results to metric1..metric4 with dry-run and backup.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ecommvert/siteadmin/cache"
	"github.com/ecommvert/siteadmin/models"
)

func main() {
	cachePath := flag.String("cache", "", "Path to cache file (default: standard data dir)")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	backup := flag.Bool("backup", true, "Create backup before migration")
	flag.Parse()

	path := *cachePath
	if path == "" {
		path = cache.DefaultPath()
	}

	if err := migrate(path, *dryRun, *backup); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully")
}

func migrate(path string, dryRun, createBackup bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("cache file does not exist: %s", path)
	}

	if createBackup && !dryRun {
		backupPath := fmt.Sprintf("%s.backup.%s", path, time.Now().Format("20060102-150405"))
		log.Printf("Creating backup: %s", backupPath)

		input, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read cache: %w", err)
		}
		if err := os.WriteFile(backupPath, input, 0644); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		log.Printf("Backup created successfully")
	}

	c, err := cache.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer func() { _ = c.Close() }()

	doc, ok, err := c.Load(cache.NSCaseStudies)
	if err != nil {
		return fmt.Errorf("failed to load case studies: %w", err)
	}
	if !ok {
		log.Printf("No case study document found, nothing to migrate")
		return nil
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(doc, &items); err != nil {
		return fmt.Errorf("failed to decode case study document: %w", err)
	}

	migrated := 0
	for _, item := range items {
		raw, has := item["results"]
		if !has {
			continue
		}
		if !isLegacyShape(raw) {
			continue
		}
		migrated++
		if dryRun {
			log.Printf("[DRY RUN] Would migrate results for case study %s", string(item["id"]))
			continue
		}
		canonical, err := json.Marshal(models.DecodeResults(raw))
		if err != nil {
			return fmt.Errorf("failed to encode migrated results: %w", err)
		}
		item["results"] = canonical
	}

	if migrated == 0 {
		log.Printf("All %d case studies already use the canonical result shape", len(items))
		return nil
	}

	if dryRun {
		log.Printf("[DRY RUN] Would migrate %d of %d case studies", migrated, len(items))
		return nil
	}

	updated, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode case study document: %w", err)
	}
	if err := c.Store(cache.NSCaseStudies, updated); err != nil {
		return fmt.Errorf("failed to store migrated document: %w", err)
	}

	log.Printf("Migrated %d of %d case studies", migrated, len(items))
	return nil
}

// isLegacyShape reports whether a results document still carries the old
// fixed-name metrics. Canonical keys win when both shapes are present, so
// such documents are left alone.
func isLegacyShape(raw json.RawMessage) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	for _, k := range []string{"metric1", "metric2", "metric3", "metric4"} {
		if _, ok := probe[k]; ok {
			return false
		}
	}
	for _, k := range []string{"roas", "cpa", "revenue", "conversion"} {
		if _, ok := probe[k]; !ok {
			return false
		}
	}
	return true
}
