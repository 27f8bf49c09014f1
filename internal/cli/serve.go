package cli

import (
	"github.com/spf13/cobra"

	"github.com/toolrec/toolrec/internal/server"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the tool receiver HTTP service",
		Long:  "Serve the receiver API: POST /api/tools records an execution and feeds the recommender; GET /api/recommendations returns the current selections.",
		Run:   runServe,
	}

	cmd.Flags().String("listen", "", "Listen address (overrides config)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	listen, _ := cmd.Flags().GetString("listen")

	cfg := loadConfig()
	if listen != "" {
		cfg.Listen = listen
	}

	engine := openEngine(cfg)
	l := openLog(cfg)
	defer l.Close()

	s := server.New(l, engine, cfg.StateDir)
	if err := s.Run(cfg.Listen); err != nil {
		exitErr("serve", err)
	}
}
