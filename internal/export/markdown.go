// Package export renders a Conversation (or a sequence of SearchResults)
// into the canonical Markdown and CSV forms described in spec.md §4.4.
package export

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

// ExportedBy identifies this tool in Markdown frontmatter.
const ExportedBy = "chatvault"

const timestampLayout = "2006-01-02 15:04:05"

// MarkdownOptions controls Markdown rendering.
type MarkdownOptions struct {
	// IncludeFrontmatter toggles the YAML frontmatter block. Defaults to
	// true via NewMarkdownOptions (spec.md §4.4.1: "enabled by default").
	IncludeFrontmatter bool

	// ExportDate stamps the frontmatter's export_date field. Callers
	// supply it explicitly so exporter output stays deterministic and
	// testable; it is not derived from the wall clock internally.
	ExportDate time.Time
}

// NewMarkdownOptions returns options with frontmatter enabled.
func NewMarkdownOptions(exportDate time.Time) MarkdownOptions {
	return MarkdownOptions{IncludeFrontmatter: true, ExportDate: exportDate}
}

type frontmatter struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	CreatedAt    string `yaml:"created_at"`
	UpdatedAt    string `yaml:"updated_at"`
	MessageCount int    `yaml:"message_count"`
	ExportDate   string `yaml:"export_date"`
	ExportedBy   string `yaml:"exported_by"`
}

// Markdown renders conv into the canonical Markdown form (spec.md §4.4.1).
// Output is byte-identical across independent runs given the same
// ExportDate, satisfying the golden-master requirement in spec.md §8.
func Markdown(conv model.Conversation, opts MarkdownOptions) string {
	var b strings.Builder

	if opts.IncludeFrontmatter {
		fm := frontmatter{
			ID:           conv.ID,
			Title:        conv.Title,
			CreatedAt:    isoUTC(conv.CreatedAt),
			UpdatedAt:    isoUTC(conv.UpdatedAtOrCreated()),
			MessageCount: conv.MessageCount(),
			ExportDate:   isoUTC(opts.ExportDate),
			ExportedBy:   ExportedBy,
		}
		out, err := yaml.Marshal(fm)
		if err != nil {
			// frontmatter is built entirely from plain strings and ints;
			// Marshal cannot fail for this shape.
			panic(err)
		}
		b.WriteString("---\n")
		b.Write(out)
		b.WriteString("---\n\n")
	}

	fmt.Fprintf(&b, "# %s\n\n", conv.Title)

	for i, m := range conv.Messages {
		id := m.ID
		if id == "" {
			id = model.GenerateMessageID(conv.ID, i+1)
		}
		fmt.Fprintf(&b, "## %s (`%s`) - %s UTC\n\n", roleLabel(m.Role), id, m.Timestamp.UTC().Format(timestampLayout))
		b.WriteString(m.Content)
		b.WriteString("\n\n---\n\n")
	}

	return b.String()
}

func roleLabel(r model.Role) string {
	switch r {
	case model.RoleUser:
		return "User"
	case model.RoleAssistant:
		return "Assistant"
	case model.RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

func isoUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
