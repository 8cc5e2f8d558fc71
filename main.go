// ABOUTME: Entry point for the site admin server and CLI
// ABOUTME: Routes to serve, sync, pages, settings, mcp, and tui commands
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ecommvert/siteadmin/cache"
	"github.com/ecommvert/siteadmin/cli"
	"github.com/ecommvert/siteadmin/settings"
	"github.com/ecommvert/siteadmin/store"
	"github.com/ecommvert/siteadmin/syncer"
	"github.com/ecommvert/siteadmin/tui"
)

const version = "0.1.0"

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	cachePath := flag.String("cache-path", "", "Cache database path (default: ~/.local/share/siteadmin/cache.db)")
	pagesDir := flag.String("pages-dir", "app", "Page tree root directory")
	initOnly := flag.Bool("init", false, "Initialize remote schema and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("siteadmin version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	// Page discovery is filesystem-only and works without a remote store.
	if command == "pages" {
		runPagesCommand(*pagesDir, commandArgs)
		return
	}

	gateway := openGateway()

	if *initOnly {
		pg, ok := gateway.(*store.Postgres)
		if !ok {
			log.Fatal("Schema init requires a configured remote store")
		}
		if err := pg.InitSchema(context.Background()); err != nil {
			log.Fatalf("Failed to initialize remote schema: %v", err)
		}
		log.Println("Remote schema initialized successfully")
		os.Exit(0)
	}

	c := openCache(*cachePath)
	defer func() { _ = c.Close() }()

	s, err := syncer.New(gateway, c)
	if err != nil {
		log.Fatalf("Failed to load local state: %v", err)
	}
	svc := settings.NewService(gateway)

	switch command {
	case "serve":
		if err := cli.ServeCommand(gateway, s, svc, *pagesDir, commandArgs); err != nil {
			log.Fatalf("Server failed: %v", err)
		}

	case "mcp":
		if err := cli.MCPCommand(s, svc, *pagesDir); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "tui":
		if err := tui.Run(s); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "sync":
		if len(commandArgs) == 0 {
			fmt.Println("Error: sync requires a subcommand (pull, push, replace, status)")
			printUsage()
			os.Exit(1)
		}
		syncCommand := commandArgs[0]
		syncArgs := commandArgs[1:]

		switch syncCommand {
		case "pull":
			if err := cli.SyncPullCommand(s, syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "push":
			if err := cli.SyncPushCommand(s, syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "replace":
			if err := cli.SyncReplaceCommand(s, os.Stdin, syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "status":
			if err := cli.SyncStatusCommand(s, syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown sync command: %s\n\n", syncCommand)
			printUsage()
			os.Exit(1)
		}

	case "settings":
		if len(commandArgs) == 0 {
			fmt.Println("Error: settings requires a subcommand (get, set)")
			printUsage()
			os.Exit(1)
		}
		settingsCommand := commandArgs[0]
		settingsArgs := commandArgs[1:]

		switch settingsCommand {
		case "get":
			if err := cli.SettingsGetCommand(svc, settingsArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "set":
			if err := cli.SettingsSetCommand(svc, settingsArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown settings command: %s\n\n", settingsCommand)
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runPagesCommand(pagesDir string, commandArgs []string) {
	if len(commandArgs) == 0 {
		fmt.Println("Error: pages requires a subcommand (list, watch)")
		printUsage()
		os.Exit(1)
	}
	pagesCommand := commandArgs[0]
	pagesArgs := commandArgs[1:]

	switch pagesCommand {
	case "list":
		if err := cli.PagesListCommand(pagesDir, pagesArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "watch":
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		if err := cli.PagesWatchCommand(ctx, pagesDir, pagesArgs); err != nil && err != context.Canceled {
			log.Fatalf("Error: %v", err)
		}
	default:
		fmt.Printf("Unknown pages command: %s\n\n", pagesCommand)
		printUsage()
		os.Exit(1)
	}
}

// openGateway connects to the remote store named by SITEADMIN_DATABASE_URL.
func openGateway() store.Gateway {
	dsn := os.Getenv("SITEADMIN_DATABASE_URL")
	if dsn == "" {
		log.Fatal("SITEADMIN_DATABASE_URL is not set")
	}
	gateway, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to remote store: %v", err)
	}
	return gateway
}

func openCache(path string) *cache.Cache {
	if path == "" {
		path = cache.DefaultPath()
	}
	c, err := cache.Open(path)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	return c
}

func printUsage() {
	fmt.Printf(`siteadmin v%s - Marketing site content admin

USAGE:
  siteadmin [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --cache-path <path>    Cache database path (default: ~/.local/share/siteadmin/cache.db)
  --pages-dir <path>     Page tree root directory (default: app)
  --init                 Initialize remote schema and exit

ENVIRONMENT:
  SITEADMIN_DATABASE_URL   Remote store connection string (required)
  SITEADMIN_AUTH_ENABLED   Enable the identity gate on mutating routes
  SITEADMIN_OWNER_EMAILS   Comma-separated owner allow-list
  SITEADMIN_ALLOW_ALL      Explicitly authorize every caller (loud escape hatch)

COMMANDS:
  serve                  Start the HTTP admin server
  mcp                    Start MCP server for Claude Desktop
  tui                    Open the sync dashboard
  sync                   Content sync commands
  pages                  Page discovery commands
  settings               Site settings commands

SERVE:
  siteadmin serve          Start the admin server
    --port <n>               Port to listen on (default: 8080)

SYNC COMMANDS:
  siteadmin sync pull      Pull remote content into local state
  siteadmin sync push      Push local content as non-destructive upserts
  siteadmin sync replace   Wipe remote content tables, then push local state
    --confirm <tables>       Skip the prompt by naming the tables to wipe
  siteadmin sync status    Show local collection sizes

PAGES COMMANDS:
  siteadmin pages list     List routes derived from the page tree
    --files                  Show marker file paths
  siteadmin pages watch    Rescan on filesystem changes
    --files                  Show marker file paths

SETTINGS COMMANDS:
  siteadmin settings get   Print current settings (or defaults)
  siteadmin settings set   Patch settings fields
    --autosave <bool>        Enable autosave
    --show-inactive <bool>   Show inactive content in listings
    --analytics <bool>       Enable analytics
    --gtm <id>               Google Tag Manager container id

EXAMPLES:
  # Start the admin server on port 9000
  siteadmin serve --port 9000

  # Pull remote content
  siteadmin sync pull

  # Replace remote content (prompts for confirmation)
  siteadmin sync replace

  # List discovered routes
  siteadmin pages list

`, version)
}
