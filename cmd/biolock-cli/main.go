package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getkayan/biolock/cache"
	"github.com/getkayan/biolock/config"
	"github.com/getkayan/biolock/events"
	"github.com/getkayan/biolock/flow"
	"github.com/getkayan/biolock/internal/logger"
	"github.com/getkayan/biolock/persistence"
	"github.com/getkayan/biolock/provider"
)

// Version is set at build time
var Version = "dev"

// CLI holds the locally constructed orchestrator the commands operate on.
type CLI struct {
	orch  *flow.Orchestrator
	cache *cache.Cache
	bus   *events.Bus
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if cmd == "version" {
		fmt.Printf("biolock-cli %s\n", Version)
		return
	}
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	cli, err := newCLI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case "status":
		err = cli.statusCommand(args)
	case "test":
		err = cli.testCommand(args)
	case "watch":
		err = cli.watchCommand(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI() (*CLI, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger.InitLogger(cfg.LogLevel)

	var store cache.Store
	if cfg.StoreType == "file" {
		store = persistence.NewFileStore(cfg.CachePath, []byte(cfg.CacheSecret))
	} else {
		store, err = persistence.NewStore(cfg.StoreType, cfg.DSN)
		if err != nil {
			return nil, err
		}
	}

	var p provider.Provider
	switch cfg.Provider {
	case "demo":
		p = provider.NewDemoStub()
	default:
		p = provider.Unsupported()
	}

	bus := events.NewBus()
	bus.SetLogger(logger.Log)
	c := cache.New(cache.SystemClock(), store)
	orch := flow.NewOrchestrator(p, c, bus)
	orch.SetLogger(logger.Log)
	orch.SetDefaultTTL(time.Duration(cfg.DefaultTTLMillis) * time.Millisecond)

	return &CLI{orch: orch, cache: c, bus: bus}, nil
}

func printUsage() {
	fmt.Print(`biolock-cli - BioLock Command Line Interface

Usage:
  biolock-cli <command> [options]

Commands:
  status    Show orchestrator state, availability, and cache status
  test      Run the biometric smoke test (fatal on failure)
  watch     Run direct and cached authentications, printing every event
  version   Print version

Environment Variables:
  STORE_TYPE    Cache snapshot store: file, sqlite, postgres, mysql (default: file)
  DSN           Database connection string for database stores
  CACHE_PATH    Snapshot file path for the file store
  CACHE_SECRET  HMAC key for the signed file snapshot
  PROVIDER      Biometric provider: unsupported, demo (default: unsupported)
  LOG_LEVEL     Logging level (default: info)
`)
}
