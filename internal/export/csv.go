package export

import (
	"encoding/csv"
	"io"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

var csvConversationHeader = []string{"conversation_id", "title", "created_at", "updated_at", "message_count"}
var csvConversationHeaderWithScore = append(append([]string(nil), csvConversationHeader...), "score")
var csvMessageHeader = []string{"conversation_id", "message_id", "role", "timestamp", "content"}

// ConversationsCSV writes the conversation-level schema to w (spec.md
// §4.4.2). Null updated_at becomes an empty, unquoted field.
func ConversationsCSV(w io.Writer, convs []model.Conversation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvConversationHeader); err != nil {
		return err
	}
	for _, c := range convs {
		if err := cw.Write(conversationRow(c, nil)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SearchResultsCSV writes the conversation-level schema with the score
// column appended (spec.md §4.4.2: "score appended only for search-result
// export"). Row order follows the order of results as given by the
// caller, which must already reflect the search sort order (spec.md
// §4.4.2: "tie-breaking for export order... is the sort order applied in
// §4.3.5").
func SearchResultsCSV(w io.Writer, results []model.SearchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvConversationHeaderWithScore); err != nil {
		return err
	}
	for _, r := range results {
		score := r.Score
		if err := cw.Write(conversationRow(r.Conversation, &score)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MessagesCSV writes the message-level schema for a single conversation's
// primary thread (spec.md §4.4.2). Newlines inside content are preserved
// literally inside quotes by encoding/csv, matching the spec's requirement
// that they not be escaped as "\n".
func MessagesCSV(w io.Writer, conv model.Conversation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvMessageHeader); err != nil {
		return err
	}
	for _, m := range conv.Messages {
		row := []string{conv.ID, m.ID, string(m.Role), isoUTC(m.Timestamp), m.Content}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func conversationRow(c model.Conversation, score *float64) []string {
	updatedAt := ""
	if c.UpdatedAt != nil {
		updatedAt = isoUTC(*c.UpdatedAt)
	}
	row := []string{
		c.ID,
		c.Title,
		isoUTC(c.CreatedAt),
		updatedAt,
		itoa(c.MessageCount()),
	}
	if score != nil {
		row = append(row, formatScore(*score))
	}
	return row
}
