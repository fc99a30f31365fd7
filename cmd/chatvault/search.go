package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/chatvault/pkg/chatvault"
)

var (
	searchKeywords        []string
	searchPhrases         []string
	searchMatchAll        bool
	searchExcludeKeywords []string
	searchRole            string
	searchTitle           string
	searchFrom            string
	searchTo              string
	searchMinMessages     int
	searchMaxMessages     int
	searchSortBy          string
	searchSortOrder       string
	searchLimit           int
)

var searchCmd = &cobra.Command{
	Use:   "search <file>",
	Short: "Search a chat export file and print ranked results as JSON lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchKeywords, "keyword", nil, "keyword to match (repeatable)")
	searchCmd.Flags().StringSliceVar(&searchPhrases, "phrase", nil, "exact phrase to match (repeatable)")
	searchCmd.Flags().BoolVar(&searchMatchAll, "match-all", false, "require all keywords to match instead of any")
	searchCmd.Flags().StringSliceVar(&searchExcludeKeywords, "exclude", nil, "keyword that excludes a conversation (repeatable)")
	searchCmd.Flags().StringVar(&searchRole, "role", "", "restrict matching to one role (user, assistant, system)")
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "substring filter on conversation title")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "inclusive start date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "inclusive end date (YYYY-MM-DD)")
	searchCmd.Flags().IntVar(&searchMinMessages, "min-messages", 0, "minimum message count")
	searchCmd.Flags().IntVar(&searchMaxMessages, "max-messages", 0, "maximum message count")
	searchCmd.Flags().StringVar(&searchSortBy, "sort-by", "", "score, date, title, or messages")
	searchCmd.Flags().StringVar(&searchSortOrder, "sort-order", "", "asc or desc")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results to return")
}

func runSearch(cmd *cobra.Command, args []string) error {
	file := args[0]

	query := chatvault.NewSearchQuery()
	query.Keywords = searchKeywords
	query.Phrases = searchPhrases
	if searchMatchAll {
		query.MatchMode = chatvault.MatchAll
	}
	query.ExcludeKeywords = searchExcludeKeywords
	query.TitleFilter = searchTitle
	if searchRole != "" {
		role := chatvault.Role(strings.ToLower(searchRole))
		query.RoleFilter = &role
	}
	if searchFrom != "" {
		t, err := time.Parse("2006-01-02", searchFrom)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		query.FromDate = &t
	}
	if searchTo != "" {
		t, err := time.Parse("2006-01-02", searchTo)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		query.ToDate = &t
	}
	query.MinMessages = searchMinMessages
	query.MaxMessages = searchMaxMessages
	if searchSortBy != "" {
		query.SortBy = chatvault.SortField(searchSortBy)
	}
	if searchSortOrder != "" {
		query.SortOrder = chatvault.SortOrder(searchSortOrder)
	}
	if searchLimit != 0 {
		query.Limit = searchLimit
	}

	vault, err := chatvault.Open(file, chatvault.Provider(providerFlag), logger, &cfg.Engine)
	if err != nil {
		return err
	}

	ctx := context.Background()
	results, err := vault.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for r, err := range results {
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding result %s: %w", r.Conversation.ID, err)
		}
	}
	return nil
}
