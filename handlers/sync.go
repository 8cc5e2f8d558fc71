// ABOUTME: Sync MCP tool handlers
// ABOUTME: Implements sync_pull, sync_push, sync_replace, and sync_status tools
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ecommvert/siteadmin/store"
	"github.com/ecommvert/siteadmin/syncer"
)

type SyncHandlers struct {
	syncer *syncer.Syncer
}

func NewSyncHandlers(s *syncer.Syncer) *SyncHandlers {
	return &SyncHandlers{syncer: s}
}

type SyncInput struct{}

type SyncStatusOutput struct {
	CaseStudies  int `json:"case_studies"`
	Categories   int `json:"categories"`
	Testimonials int `json:"testimonials"`
	BlogPosts    int `json:"blog_posts"`
	Extras       int `json:"product_extras"`
	Facets       int `json:"product_facets"`
}

func (h *SyncHandlers) SyncStatus(_ context.Context, request *mcp.CallToolRequest, input SyncInput) (*mcp.CallToolResult, SyncStatusOutput, error) {
	return nil, statusToOutput(h.syncer.CollectStatus()), nil
}

func (h *SyncHandlers) SyncPull(ctx context.Context, request *mcp.CallToolRequest, input SyncInput) (*mcp.CallToolResult, SyncStatusOutput, error) {
	if err := h.syncer.Pull(ctx); err != nil {
		return nil, SyncStatusOutput{}, fmt.Errorf("pull failed: %w", err)
	}
	return nil, statusToOutput(h.syncer.CollectStatus()), nil
}

func (h *SyncHandlers) SyncPush(ctx context.Context, request *mcp.CallToolRequest, input SyncInput) (*mcp.CallToolResult, SyncStatusOutput, error) {
	if err := h.syncer.Push(ctx); err != nil {
		return nil, SyncStatusOutput{}, fmt.Errorf("push failed: %w", err)
	}
	return nil, statusToOutput(h.syncer.CollectStatus()), nil
}

type SyncReplaceInput struct {
	Confirm string `json:"confirm" jsonschema:"Must name the tables being wiped: case_studies,categories"`
}

// SyncReplace wipes the remote content tables and pushes local state into
// them. The confirm field must spell out the tables being destroyed.
func (h *SyncHandlers) SyncReplace(ctx context.Context, request *mcp.CallToolRequest, input SyncReplaceInput) (*mcp.CallToolResult, SyncStatusOutput, error) {
	expected := strings.Join([]string{store.TableCaseStudies, store.TableCategories}, ",")
	if input.Confirm != expected {
		return nil, SyncStatusOutput{}, fmt.Errorf("replace wipes remote tables; set confirm to %q", expected)
	}
	if err := h.syncer.Replace(ctx); err != nil {
		return nil, SyncStatusOutput{}, fmt.Errorf("replace failed: %w", err)
	}
	return nil, statusToOutput(h.syncer.CollectStatus()), nil
}

func statusToOutput(st syncer.Status) SyncStatusOutput {
	return SyncStatusOutput{
		CaseStudies:  st.CaseStudies,
		Categories:   st.Categories,
		Testimonials: st.Testimonials,
		BlogPosts:    st.BlogPosts,
		Extras:       st.Extras,
		Facets:       st.Facets,
	}
}
