package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolrec/toolrec/internal/ema"
	"github.com/toolrec/toolrec/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show engine and execution-log statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	engine := openEngine(cfg)
	l := openLog(cfg)
	defer l.Close()

	logStats, err := l.Stats(cmd.Context(), cfg.DBPath)
	if err != nil {
		exitErr("stats", err)
	}

	out := struct {
		Engine ema.Stats    `json:"engine"`
		Log    *store.Stats `json:"log"`
	}{
		Engine: engine.Stats(),
		Log:    logStats,
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
