// Package cli implements the toolrec CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/toolrec/toolrec/internal/config"
	"github.com/toolrec/toolrec/internal/ema"
	"github.com/toolrec/toolrec/internal/store"
)

var (
	configPath string
	stateDir   string
	dbPath     string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "toolrec",
	Short: "Tool-usage pattern tracker and recommender",
	Long:  "Tracks blocks of tool usage, keeps a bounded frequency table of multi-tool patterns, and recommends the patterns and tools most worth suggesting next.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $TOOLREC_CONFIG or ~/.toolrec/toolrec.yaml)")
	RootCmd.PersistentFlags().StringVar(&stateDir, "state", "", "Engine state directory (overrides config)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Execution log database path (overrides config)")
}

func loadConfig() config.Config {
	path := configPath
	if path == "" {
		if env := os.Getenv("TOOLREC_CONFIG"); env != "" {
			path = env
		} else {
			home, _ := os.UserHomeDir()
			path = filepath.Join(home, ".toolrec", "toolrec.yaml")
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		exitErr("load config", err)
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg
}

// openEngine builds an engine from config and hydrates any saved state.
// A partial load is a warning, not a failure.
func openEngine(cfg config.Config) *ema.Engine {
	e := ema.New(cfg.Params())
	if err := e.Load(cfg.StateDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: partial state load: %v\n", err)
	}
	return e
}

func openLog(cfg config.Config) *store.ExecutionLog {
	l, err := store.NewExecutionLog(cfg.DBPath)
	if err != nil {
		exitErr("open execution log", err)
	}
	return l
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
