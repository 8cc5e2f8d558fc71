// ABOUTME: Site settings singleton stored as a single fixed-key row
// ABOUTME: Reads fall back to defaults so the admin UI never blocks on the store
package settings

import (
	"context"
	"log"
	"time"

	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/store"
)

// singletonKey is the only id ever written to the settings table.
const singletonKey = "default"

// Service reads and writes the singleton settings row.
type Service struct {
	gateway store.Gateway
}

func NewService(gateway store.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Get returns the stored settings, or the defaults when no row exists or
// the store is unreachable. Consumers never see an error: settings are
// display preferences and a degraded read must not break the admin UI.
func (s *Service) Get(ctx context.Context) models.SiteSettings {
	rows, err := s.gateway.Query(ctx, store.TableSettings, store.Filter{
		Eq: map[string]any{"id": singletonKey},
	})
	if err != nil {
		log.Printf("settings: falling back to defaults: %v", err)
		return models.DefaultSiteSettings()
	}
	if len(rows) == 0 {
		return models.DefaultSiteSettings()
	}
	return settingsFromRow(rows[0])
}

func settingsFromRow(row store.Row) models.SiteSettings {
	defaults := models.DefaultSiteSettings()
	return models.SiteSettings{
		Autosave:        rowBool(row, "autosave", defaults.Autosave),
		ShowInactive:    rowBool(row, "show_inactive", defaults.ShowInactive),
		EnableAnalytics: rowBool(row, "enable_analytics", defaults.EnableAnalytics),
		GTMContainer:    rowString(row, "gtm_container"),
	}
}

func rowBool(row store.Row, key string, fallback bool) bool {
	switch v := row[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case string:
		return v == "true" || v == "t" || v == "1"
	default:
		return fallback
	}
}

func rowString(row store.Row, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// Patch updates individual settings fields. Nil fields keep current values.
type Patch struct {
	Autosave        *bool   `json:"autosave,omitempty"`
	ShowInactive    *bool   `json:"show_inactive,omitempty"`
	EnableAnalytics *bool   `json:"enable_analytics,omitempty"`
	GTMContainer    *string `json:"gtm_container,omitempty"`
}

// Save merges the patch over the current settings and upserts the result
// against the fixed singleton key, so the first save creates the row and
// every later save overwrites it.
func (s *Service) Save(ctx context.Context, patch Patch) (models.SiteSettings, error) {
	current := s.Get(ctx)

	if patch.Autosave != nil {
		current.Autosave = *patch.Autosave
	}
	if patch.ShowInactive != nil {
		current.ShowInactive = *patch.ShowInactive
	}
	if patch.EnableAnalytics != nil {
		current.EnableAnalytics = *patch.EnableAnalytics
	}
	if patch.GTMContainer != nil {
		current.GTMContainer = *patch.GTMContainer
	}

	row := store.Row{
		"id":               singletonKey,
		"autosave":         current.Autosave,
		"show_inactive":    current.ShowInactive,
		"enable_analytics": current.EnableAnalytics,
		"gtm_container":    current.GTMContainer,
		"updated_at":       time.Now(),
	}
	if _, err := s.gateway.Write(ctx, store.TableSettings, []store.Row{row}, store.WriteUpsert, "id"); err != nil {
		return models.SiteSettings{}, err
	}
	return current, nil
}
