package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/chatvault/pkg/chatvault"
)

var getMessageConversationHint string

var getCmd = &cobra.Command{
	Use:   "get <file> <id>",
	Short: "Look up a single conversation or message by id",
	Args:  cobra.ExactArgs(2),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().StringVar(&getMessageConversationHint, "conversation", "", "conversation id hint for message lookup")
}

func runGet(cmd *cobra.Command, args []string) error {
	file, id := args[0], args[1]

	vault, err := chatvault.Open(file, chatvault.Provider(providerFlag), logger, &cfg.Engine)
	if err != nil {
		return err
	}

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)

	if getMessageConversationHint == "" {
		if conv, found, err := vault.GetConversation(ctx, id); err != nil {
			return fmt.Errorf("get conversation: %w", err)
		} else if found {
			return enc.Encode(conv)
		}
	}

	msg, conv, found, err := vault.GetMessage(ctx, id, getMessageConversationHint)
	if err != nil {
		return fmt.Errorf("get message: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: %q", chatvault.ErrNotFound, id)
	}
	return enc.Encode(struct {
		Message      chatvault.Message      `json:"message"`
		Conversation chatvault.Conversation `json:"conversation"`
	}{msg, conv})
}
