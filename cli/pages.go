// ABOUTME: Page discovery CLI commands
// ABOUTME: Lists derived routes and watches the page tree for changes
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/pages"
)

// PagesListCommand scans the app directory and prints derived routes.
func PagesListCommand(pagesDir string, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	showFiles := fs.Bool("files", false, "Show marker file paths")
	_ = fs.Parse(args)

	entries, err := pages.Scan(pagesDir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", pagesDir, err)
	}

	printEntries(entries, *showFiles)
	return nil
}

// PagesWatchCommand rescans on filesystem changes until interrupted.
func PagesWatchCommand(ctx context.Context, pagesDir string, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	showFiles := fs.Bool("files", false, "Show marker file paths")
	_ = fs.Parse(args)

	fmt.Printf("Watching %s for page changes (ctrl-c to stop)...\n", pagesDir)
	err := pages.Watch(ctx, pagesDir, func(entries []models.PageEntry) {
		fmt.Printf("--- %d routes ---\n", len(entries))
		printEntries(entries, *showFiles)
	})
	if err == context.Canceled {
		return nil
	}
	return err
}

func printEntries(entries []models.PageEntry, showFiles bool) {
	for _, e := range entries {
		if showFiles {
			fmt.Printf("%-40s %s\n", e.Route, e.FilePath)
		} else {
			fmt.Println(e.Route)
		}
	}
}
