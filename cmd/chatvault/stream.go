package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/chatvault/pkg/chatvault"
)

var streamCmd = &cobra.Command{
	Use:   "stream <file>",
	Short: "Stream every conversation in a chat export file as JSON lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runStream,
}

func runStream(cmd *cobra.Command, args []string) error {
	file := args[0]

	vault, err := chatvault.Open(file, chatvault.Provider(providerFlag), logger, &cfg.Engine)
	if err != nil {
		return err
	}

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)

	cb := chatvault.Callbacks{
		OnSkip: func(id, reason string) {
			fmt.Fprintf(os.Stderr, "skipped conversation %s: %s\n", id, reason)
		},
	}

	for conv, err := range vault.Stream(ctx, cb) {
		if err != nil {
			return fmt.Errorf("stream: %w", err)
		}
		if err := enc.Encode(conv); err != nil {
			return fmt.Errorf("encoding conversation %s: %w", conv.ID, err)
		}
	}
	return nil
}
