// ABOUTME: MCP server subcommand
// ABOUTME: Registers admin content tools and runs the server on stdio
package cli

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ecommvert/siteadmin/handlers"
	"github.com/ecommvert/siteadmin/settings"
	"github.com/ecommvert/siteadmin/syncer"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(s *syncer.Syncer, svc *settings.Service, pagesDir string) error {
	log.Println("Starting site admin MCP server...")

	caseStudyHandlers := handlers.NewCaseStudyHandlers(s)
	categoryHandlers := handlers.NewCategoryHandlers(s)
	settingsHandlers := handlers.NewSettingsHandlers(svc)
	pageHandlers := handlers.NewPageHandlers(pagesDir)
	syncHandlers := handlers.NewSyncHandlers(s)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "siteadmin",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_case_studies",
		Description: "List case studies, optionally including inactive ones",
	}, caseStudyHandlers.ListCaseStudies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_case_study",
		Description: "Add a new case study with template result metrics",
	}, caseStudyHandlers.AddCaseStudy)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_case_study",
		Description: "Update an existing case study's fields",
	}, caseStudyHandlers.UpdateCaseStudy)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_case_study_metric",
		Description: "Update one result metric slot of a case study without touching the others",
	}, caseStudyHandlers.UpdateCaseStudyMetric)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_case_study",
		Description: "Delete a case study locally with a best-effort remote delete",
	}, caseStudyHandlers.DeleteCaseStudy)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List product categories",
	}, categoryHandlers.ListCategories)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_category",
		Description: "Add a product category with an auto-deduplicated slug",
	}, categoryHandlers.AddCategory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_category",
		Description: "Update a product category; renaming re-derives the slug",
	}, categoryHandlers.UpdateCategory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_category",
		Description: "Delete a product category locally with a best-effort remote delete",
	}, categoryHandlers.DeleteCategory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_site_settings",
		Description: "Get site settings, falling back to defaults when none are stored",
	}, settingsHandlers.GetSettings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_site_settings",
		Description: "Update site settings fields",
	}, settingsHandlers.UpdateSettings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_pages",
		Description: "List site routes derived from the page tree",
	}, pageHandlers.ListPages)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_status",
		Description: "Report local collection sizes",
	}, syncHandlers.SyncStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_pull",
		Description: "Pull remote content into local state; an empty remote never clobbers local data",
	}, syncHandlers.SyncPull)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_push",
		Description: "Push local content to the remote store as non-destructive upserts",
	}, syncHandlers.SyncPush)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_replace",
		Description: "Wipe remote content tables and push local state; requires explicit confirmation",
	}, syncHandlers.SyncReplace)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
