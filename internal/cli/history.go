package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent executions from the log",
		Run:   runHistory,
	}

	cmd.Flags().IntP("limit", "l", 10, "Number of executions to show")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	l := openLog(cfg)
	defer l.Close()

	executions, err := l.Recent(cmd.Context(), limit)
	if err != nil {
		exitErr("history", err)
	}

	b, _ := json.MarshalIndent(executions, "", "  ")
	fmt.Println(string(b))
}
