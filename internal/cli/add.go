package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toolrec/toolrec/internal/ema"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [block]",
		Short: "Feed one usage block",
		Long:  "Feed one block of comma-separated tool names (positional arg or stdin), checkpoint state, and print the updated selections.",
		Run:   runAdd,
	}

	cmd.Flags().Bool("no-log", false, "Skip recording the block in the execution log")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	noLog, _ := cmd.Flags().GetBool("no-log")

	var block string
	if len(args) > 0 {
		block = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			block = string(b)
		}
	}

	names := ema.SplitBlock(block)
	if len(names) == 0 {
		exitErr("add", fmt.Errorf("block is required (positional arg or stdin)"))
	}

	cfg := loadConfig()
	engine := openEngine(cfg)

	if !noLog {
		l := openLog(cfg)
		defer l.Close()
		if _, err := l.Append(cmd.Context(), names); err != nil {
			exitErr("record execution", err)
		}
	}

	engine.AddBlock(block)
	if err := engine.Save(cfg.StateDir); err != nil {
		exitErr("checkpoint state", err)
	}

	b, _ := json.MarshalIndent(engine.Selections(), "", "  ")
	fmt.Println(string(b))
}
