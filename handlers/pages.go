// ABOUTME: Page discovery MCP tool handler
// ABOUTME: Implements the list_pages tool over the route scanner
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ecommvert/siteadmin/pages"
)

type PageHandlers struct {
	pagesDir string
}

func NewPageHandlers(pagesDir string) *PageHandlers {
	return &PageHandlers{pagesDir: pagesDir}
}

type ListPagesInput struct{}

type PageOutput struct {
	Route    string `json:"route"`
	FilePath string `json:"file_path"`
}

type ListPagesOutput struct {
	Pages []PageOutput `json:"pages"`
}

func (h *PageHandlers) ListPages(_ context.Context, request *mcp.CallToolRequest, input ListPagesInput) (*mcp.CallToolResult, ListPagesOutput, error) {
	entries, err := pages.Scan(h.pagesDir)
	if err != nil {
		return nil, ListPagesOutput{}, fmt.Errorf("failed to scan pages: %w", err)
	}

	var out ListPagesOutput
	for _, e := range entries {
		out.Pages = append(out.Pages, PageOutput{Route: e.Route, FilePath: e.FilePath})
	}
	return nil, out, nil
}
