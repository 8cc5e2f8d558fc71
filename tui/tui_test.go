// ABOUTME: Tests for the sync dashboard model
// ABOUTME: Drives Update with key and completion messages
package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecommvert/siteadmin/cache"
	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/store"
	"github.com/ecommvert/siteadmin/syncer"
)

type nullGateway struct{}

func (nullGateway) Query(_ context.Context, _ string, _ store.Filter) ([]store.Row, error) {
	return nil, nil
}

func (nullGateway) Write(_ context.Context, _ string, rows []store.Row, _ store.WriteMode, _ string) ([]store.Row, error) {
	return rows, nil
}

func (nullGateway) Patch(_ context.Context, _, _ string, fields store.Row, _ string) ([]store.Row, error) {
	return []store.Row{fields}, nil
}

func (nullGateway) Erase(_ context.Context, _ string, _ store.Selector) ([]store.Row, error) {
	return nil, nil
}

func setupModel(t *testing.T) Model {
	t.Helper()
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	s, err := syncer.New(nullGateway{}, c)
	if err != nil {
		t.Fatalf("Failed to create syncer: %v", err)
	}
	s.AddCaseStudy(models.CaseStudy{Title: "Case"})
	return NewModel(s)
}

func TestViewShowsCollectionCounts(t *testing.T) {
	m := setupModel(t)

	view := m.View()
	if !strings.Contains(view, "Case studies") {
		t.Error("View should list the case study collection")
	}
	if !strings.Contains(view, "1") {
		t.Error("View should show the collection count")
	}
}

func TestPullKeyMarksBusy(t *testing.T) {
	m := setupModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	model := updated.(Model)
	if model.busy != "pull" {
		t.Errorf("Expected busy=pull, got %q", model.busy)
	}
	if cmd == nil {
		t.Error("Expected a command to run the pull")
	}

	// A second trigger while busy is ignored.
	updated, cmd = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	model = updated.(Model)
	if model.busy != "pull" {
		t.Errorf("Busy op should not change, got %q", model.busy)
	}
	if cmd != nil {
		t.Error("No new command while an op is in flight")
	}
}

func TestOpCompleteClearsBusy(t *testing.T) {
	m := setupModel(t)
	m.busy = "push"

	updated, _ := m.Update(opCompleteMsg{op: "push"})
	model := updated.(Model)
	if model.busy != "" {
		t.Errorf("Expected busy cleared, got %q", model.busy)
	}
	if len(model.messages) == 0 || !strings.Contains(model.messages[0], "push completed") {
		t.Errorf("Expected completion message, got %v", model.messages)
	}
}

func TestOpCompleteWithErrorLogsFailure(t *testing.T) {
	m := setupModel(t)
	m.busy = "pull"

	updated, _ := m.Update(opCompleteMsg{op: "pull", err: errors.New("network down")})
	model := updated.(Model)
	if len(model.messages) == 0 || !strings.Contains(model.messages[0], "pull failed") {
		t.Errorf("Expected failure message, got %v", model.messages)
	}
}

func TestQuitKey(t *testing.T) {
	m := setupModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}
