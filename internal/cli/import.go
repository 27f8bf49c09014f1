package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import pattern blocks from a text file",
		Long:  "Import usage blocks from a text file, one comma-separated block per line. Blank lines and dash separators are skipped.",
		Args:  cobra.ExactArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		exitErr("open file", err)
	}
	defer f.Close()

	blocks, err := readPatterns(f)
	if err != nil {
		exitErr("read file", err)
	}

	cfg := loadConfig()
	engine := openEngine(cfg)

	for _, block := range blocks {
		engine.AddBlock(block)
	}
	if err := engine.Save(cfg.StateDir); err != nil {
		exitErr("checkpoint state", err)
	}

	fmt.Printf(`{"ok":true,"blocks":%d}`+"\n", len(blocks))
}

// readPatterns reads one block per line, skipping blank lines and
// separator lines made only of dashes.
func readPatterns(r io.Reader) ([]string, error) {
	var blocks []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.Trim(line, "-") == "" {
			continue
		}
		blocks = append(blocks, line)
	}
	return blocks, scanner.Err()
}
