// ABOUTME: Site settings CLI commands
// ABOUTME: Gets and sets the settings singleton
package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/settings"
)

// SettingsGetCommand prints the current settings (or defaults).
func SettingsGetCommand(svc *settings.Service, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	_ = fs.Parse(args)

	printSettings(svc.Get(context.Background()))
	return nil
}

// SettingsSetCommand patches individual settings fields. Only flags the
// operator passed are applied; everything else keeps its stored value.
func SettingsSetCommand(svc *settings.Service, args []string) error {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	autosave := fs.String("autosave", "", "Enable autosave (true/false)")
	showInactive := fs.String("show-inactive", "", "Show inactive content in listings (true/false)")
	analytics := fs.String("analytics", "", "Enable analytics (true/false)")
	gtm := fs.String("gtm", "", "Google Tag Manager container id (empty string clears)")
	_ = fs.Parse(args)

	var patch settings.Patch
	var touched bool
	if err := parseBoolFlag(*autosave, &patch.Autosave, &touched); err != nil {
		return fmt.Errorf("invalid --autosave: %w", err)
	}
	if err := parseBoolFlag(*showInactive, &patch.ShowInactive, &touched); err != nil {
		return fmt.Errorf("invalid --show-inactive: %w", err)
	}
	if err := parseBoolFlag(*analytics, &patch.EnableAnalytics, &touched); err != nil {
		return fmt.Errorf("invalid --analytics: %w", err)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "gtm" {
			patch.GTMContainer = gtm
			touched = true
		}
	})
	if !touched {
		return fmt.Errorf("nothing to set; pass at least one flag")
	}

	saved, err := svc.Save(context.Background(), patch)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("✓ Settings saved")
	printSettings(saved)
	return nil
}

func parseBoolFlag(raw string, dst **bool, touched *bool) error {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return err
	}
	*dst = &v
	*touched = true
	return nil
}

func printSettings(s models.SiteSettings) {
	fmt.Printf("  autosave:         %t\n", s.Autosave)
	fmt.Printf("  show inactive:    %t\n", s.ShowInactive)
	fmt.Printf("  analytics:        %t\n", s.EnableAnalytics)
	if s.GTMContainer == "" {
		fmt.Println("  gtm container:    (unset)")
	} else {
		fmt.Printf("  gtm container:    %s\n", s.GTMContainer)
	}
}
