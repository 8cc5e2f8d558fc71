// ABOUTME: Site settings MCP tool handlers
// ABOUTME: Implements get_site_settings and update_site_settings tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/settings"
)

type SettingsHandlers struct {
	settings *settings.Service
}

func NewSettingsHandlers(svc *settings.Service) *SettingsHandlers {
	return &SettingsHandlers{settings: svc}
}

type GetSettingsInput struct{}

type SettingsOutput struct {
	Autosave        bool   `json:"autosave"`
	ShowInactive    bool   `json:"show_inactive"`
	EnableAnalytics bool   `json:"enable_analytics"`
	GTMContainer    string `json:"gtm_container"`
}

func (h *SettingsHandlers) GetSettings(ctx context.Context, request *mcp.CallToolRequest, input GetSettingsInput) (*mcp.CallToolResult, SettingsOutput, error) {
	return nil, settingsToOutput(h.settings.Get(ctx)), nil
}

type UpdateSettingsInput struct {
	Autosave        *bool   `json:"autosave,omitempty" jsonschema:"Enable autosave in the admin editor"`
	ShowInactive    *bool   `json:"show_inactive,omitempty" jsonschema:"Show inactive content in admin listings"`
	EnableAnalytics *bool   `json:"enable_analytics,omitempty" jsonschema:"Enable analytics tracking on the public site"`
	GTMContainer    *string `json:"gtm_container,omitempty" jsonschema:"Google Tag Manager container id"`
}

func (h *SettingsHandlers) UpdateSettings(ctx context.Context, request *mcp.CallToolRequest, input UpdateSettingsInput) (*mcp.CallToolResult, SettingsOutput, error) {
	saved, err := h.settings.Save(ctx, settings.Patch{
		Autosave:        input.Autosave,
		ShowInactive:    input.ShowInactive,
		EnableAnalytics: input.EnableAnalytics,
		GTMContainer:    input.GTMContainer,
	})
	if err != nil {
		return nil, SettingsOutput{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return nil, settingsToOutput(saved), nil
}

func settingsToOutput(s models.SiteSettings) SettingsOutput {
	return SettingsOutput{
		Autosave:        s.Autosave,
		ShowInactive:    s.ShowInactive,
		EnableAnalytics: s.EnableAnalytics,
		GTMContainer:    s.GTMContainer,
	}
}
