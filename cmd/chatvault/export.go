package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/chatvault/pkg/chatvault"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <file> <conversation-id>",
	Short: "Export a single conversation as Markdown or CSV",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "markdown", "markdown or csv")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file path; defaults to stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	file, convID := args[0], args[1]

	vault, err := chatvault.Open(file, chatvault.Provider(providerFlag), logger, &cfg.Engine)
	if err != nil {
		return err
	}

	ctx := context.Background()
	conv, found, err := vault.GetConversation(ctx, convID)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: conversation %q", chatvault.ErrNotFound, convID)
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch exportFormat {
	case "markdown":
		_, err = fmt.Fprint(out, chatvault.ExportMarkdown(conv, nowUTC()))
		return err
	case "csv":
		return chatvault.ExportMessagesCSV(out, conv)
	default:
		return fmt.Errorf("unknown --format %q: want markdown or csv", exportFormat)
	}
}
