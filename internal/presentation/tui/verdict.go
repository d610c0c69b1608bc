package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/robertdigital/ml4ir/pkg/domain"
)

// PrintVerdict writes a one-line summary of a validation outcome to w.
// Colors follow the terminal profile of w; plain writers get plain text.
func PrintVerdict(w io.Writer, model string, violations []domain.Violation) {
	out := termenv.NewOutput(w)

	if len(violations) == 0 {
		fmt.Fprintln(w, out.String("✔ accepted").Foreground(out.Color("#22c55e")).Bold(), out.String(model).Faint())
		return
	}

	var missing, unknown []string
	for _, v := range violations {
		switch v.Kind {
		case domain.ViolationMissingRequired:
			missing = append(missing, v.Field)
		case domain.ViolationUnknownField:
			unknown = append(unknown, v.Field)
		}
	}

	parts := make([]string, 0, 2)
	if len(missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(missing, ", "))
	}
	if len(unknown) > 0 {
		parts = append(parts, "unknown: "+strings.Join(unknown, ", "))
	}

	fmt.Fprintln(w,
		out.String("✘ rejected").Foreground(out.Color("#ef4444")).Bold(),
		out.String(model).Faint(),
		out.String("("+strings.Join(parts, "; ")+")").Foreground(out.Color("#f59e0b")),
	)
}
