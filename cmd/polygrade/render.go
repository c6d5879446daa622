package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/njchilds90/polygrade"
)

var verdictColors = map[polygrade.Verdict]string{
	polygrade.Correct:       "#22c55e",
	polygrade.NotSimplified: "#eab308",
	polygrade.NotFactored:   "#eab308",
	polygrade.Incorrect:     "#ef4444",
	polygrade.Unparseable:   "#a855f7",
}

// renderResult prints a colored verdict headline followed by a markdown
// report. An empty style lets glamour detect the terminal background.
func renderResult(w io.Writer, res polygrade.Result, style string) error {
	out := termenv.NewOutput(w)
	headline := out.String(strings.ToUpper(string(res.Verdict))).
		Foreground(out.Color(verdictColors[res.Verdict])).
		Bold()
	fmt.Fprintf(w, "%s  %s\n", headline, res.Message)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}
	md, err := r.Render(reportMarkdown(res))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, md)
	return err
}

func reportMarkdown(res polygrade.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Grading report (%s)\n\n", res.Mode)
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Expected | `%s` |\n", res.Expected)
	fmt.Fprintf(&b, "| Answer | `%s` |\n", res.Answer)
	fmt.Fprintf(&b, "| Verdict | **%s** |\n", res.Verdict)

	switch res.Mode {
	case polygrade.ModeFactored:
		if f, err := polygrade.ParseFactored(res.Answer); err == nil {
			fmt.Fprintf(&b, "\nYour factors: `%s`\n", f.LaTeX())
		}
	default:
		fmt.Fprintf(&b, "\nYour answer reads as: `%s`\n", polygrade.ParsePolynomial(res.Answer).LaTeX())
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
