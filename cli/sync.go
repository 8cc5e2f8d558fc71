// ABOUTME: Sync CLI commands
// ABOUTME: Handles pull, push, destructive replace with typed confirmation, and status
package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ecommvert/siteadmin/store"
	"github.com/ecommvert/siteadmin/syncer"
)

// SyncPullCommand fetches remote content into local state.
func SyncPullCommand(s *syncer.Syncer, args []string) error {
	fs := flag.NewFlagSet("pull", flag.ExitOnError)
	_ = fs.Parse(args)

	fmt.Println("Pulling content from remote store...")
	if err := s.Pull(context.Background()); err != nil {
		return err
	}
	printStatus(s.CollectStatus())
	return nil
}

// SyncPushCommand upserts local content to the remote store.
func SyncPushCommand(s *syncer.Syncer, args []string) error {
	fs := flag.NewFlagSet("push", flag.ExitOnError)
	_ = fs.Parse(args)

	fmt.Println("Pushing content to remote store...")
	if err := s.Push(context.Background()); err != nil {
		return err
	}
	fmt.Println("✓ Push complete")
	return nil
}

// replaceConfirmPhrase is what the operator must type back before a
// replace runs: the tables it will wipe.
var replaceConfirmPhrase = strings.Join([]string{store.TableCaseStudies, store.TableCategories}, ",")

// SyncReplaceCommand wipes the remote content tables and pushes local
// state into them. Without --confirm it prompts for the table names to be
// typed back.
func SyncReplaceCommand(s *syncer.Syncer, stdin io.Reader, args []string) error {
	fs := flag.NewFlagSet("replace", flag.ExitOnError)
	confirm := fs.String("confirm", "", "Skip the prompt by naming the tables to wipe")
	_ = fs.Parse(args)

	phrase := *confirm
	if phrase == "" {
		fmt.Printf("This will DELETE every remote row in %s and %s, then push local state.\n",
			store.TableCaseStudies, store.TableCategories)
		fmt.Printf("Type %q to continue: ", replaceConfirmPhrase)
		var err error
		phrase, err = readLine(stdin)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
	}
	if !confirmReplace(phrase) {
		return fmt.Errorf("replace aborted: confirmation did not match %q", replaceConfirmPhrase)
	}

	fmt.Println("Replacing remote content...")
	if err := s.Replace(context.Background()); err != nil {
		return err
	}
	fmt.Println("✓ Replace complete")
	return nil
}

// SyncStatusCommand prints collection sizes and last cache writes.
func SyncStatusCommand(s *syncer.Syncer, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	_ = fs.Parse(args)

	printStatus(s.CollectStatus())
	return nil
}

func confirmReplace(phrase string) bool {
	return strings.TrimSpace(phrase) == replaceConfirmPhrase
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func printStatus(st syncer.Status) {
	fmt.Println("Local collections:")
	fmt.Printf("  Case studies:  %d\n", st.CaseStudies)
	fmt.Printf("  Categories:    %d\n", st.Categories)
	fmt.Printf("  Testimonials:  %d\n", st.Testimonials)
	fmt.Printf("  Blog posts:    %d\n", st.BlogPosts)
	fmt.Printf("  Extras:        %d\n", st.Extras)
	fmt.Printf("  Facets:        %d\n", st.Facets)

	for ns, t := range st.LastWrites {
		if t != nil {
			fmt.Printf("  %s last written %s\n", ns, t.Format("2006-01-02 15:04:05"))
		}
	}
}
