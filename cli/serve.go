// ABOUTME: HTTP admin server subcommand
// ABOUTME: Wires the gateway, syncer, settings, and identity gate into the web server
package cli

import (
	"flag"

	"github.com/ecommvert/siteadmin/auth"
	"github.com/ecommvert/siteadmin/settings"
	"github.com/ecommvert/siteadmin/store"
	"github.com/ecommvert/siteadmin/syncer"
	"github.com/ecommvert/siteadmin/web"
)

// ServeCommand starts the HTTP admin surface.
func ServeCommand(gateway store.Gateway, s *syncer.Syncer, svc *settings.Service, pagesDir string, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 8080, "Port to listen on")
	_ = fs.Parse(args)

	policy := auth.PolicyFromConfig(auth.LoadConfig())
	server := web.NewServer(gateway, s, svc, policy, pagesDir)
	return server.Start(*port)
}
