package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/robertdigital/ml4ir/pkg/registry"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, err }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// FieldsMarkdown renders a registry as a markdown table, one row per field
// in declaration order.
func FieldsMarkdown(model string, reg *registry.FieldRegistry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", model)
	fmt.Fprintf(&b, "%d fields, %d required\n\n", reg.Len(), reg.RequiredCount())
	b.WriteString("| # | Field | DType | Required |\n")
	b.WriteString("|---|-------|-------|----------|\n")
	for i, d := range reg.Fields() {
		required := ""
		if d.Required() {
			required = "yes"
		}
		fmt.Fprintf(&b, "| %d | `%s` | %s | %s |\n", i+1, escapeCell(d.Name()), d.DType(), required)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
