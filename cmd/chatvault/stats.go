package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/chatvault/pkg/chatvault"
)

var statsPrometheus bool

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Compute corpus-wide statistics over a chat export file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsPrometheus, "prometheus", false, "render as Prometheus text exposition instead of JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	file := args[0]

	vault, err := chatvault.Open(file, chatvault.Provider(providerFlag), logger, &cfg.Engine)
	if err != nil {
		return err
	}

	totals, err := vault.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	if statsPrometheus {
		text, err := chatvault.RenderPrometheus(totals)
		if err != nil {
			return fmt.Errorf("rendering prometheus output: %w", err)
		}
		_, err = fmt.Fprint(os.Stdout, text)
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(totals)
}
