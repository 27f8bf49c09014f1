package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print the three recommendation lists",
		Long:  "Print recent patterns, stable full-history patterns, and recently used single tools as one JSON object.",
		Run:   runRecommend,
	}

	cmd.Flags().StringP("out", "o", "", "Also write one JSON artifact per list to this directory")

	RootCmd.AddCommand(cmd)
}

func runRecommend(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")

	cfg := loadConfig()
	engine := openEngine(cfg)
	sel := engine.Selections()

	if out != "" {
		if err := os.MkdirAll(out, 0o755); err != nil {
			exitErr("create output dir", err)
		}
		artifacts := []struct {
			name string
			v    any
		}{
			{"from_recent.json", sel.FromRecent},
			{"from_frequency.json", sel.FromFrequency},
			{"single_tools.json", sel.SingleTools},
		}
		for _, a := range artifacts {
			b, _ := json.MarshalIndent(a.v, "", "  ")
			if err := os.WriteFile(filepath.Join(out, a.name), b, 0o644); err != nil {
				exitErr("write "+a.name, err)
			}
		}
	}

	b, _ := json.MarshalIndent(sel, "", "  ")
	fmt.Println(string(b))
}
