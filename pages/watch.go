// ABOUTME: Watch mode for the page scanner
// ABOUTME: Rescans the page tree on filesystem changes with debouncing
package pages

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ecommvert/siteadmin/models"
)

const debounceDelay = 200 * time.Millisecond

// Watch rescans rootDir whenever its tree changes and hands the fresh
// entries to fn. It blocks until ctx is cancelled. Like Scan, this is
// informational only: rescan failures are logged and watching continues.
func Watch(ctx context.Context, rootDir string, fn func([]models.PageEntry)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := addWatchesRecursive(watcher, rootDir); err != nil {
		return err
	}

	if entries, err := Scan(rootDir); err == nil {
		fn(entries)
	} else {
		log.Printf("pages watch: initial scan failed: %v", err)
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watches before their
			// contents generate events.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addWatchesRecursive(watcher, event.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("pages watch: %v", err)

		case <-pending:
			entries, err := Scan(rootDir)
			if err != nil {
				log.Printf("pages watch: rescan failed: %v", err)
				continue
			}
			fn(entries)
		}
	}
}

func addWatchesRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
