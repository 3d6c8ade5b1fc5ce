package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/dshills/ghrest/internal/github"
)

// TextWriter outputs a human-readable report.
type TextWriter struct {
	// NoColor disables ANSI color regardless of the terminal.
	NoColor bool
}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.printf("%s %s", t.marker(report.Status), report.Action)
	if report.Repository != "" {
		ew.printf(" (%s)", report.Repository)
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	fields := append([]Field(nil), report.Fields...)
	if report.Commit != nil {
		fields = append(fields, commitFields(report.Commit)...)
	}
	if pr := report.PullRequest; pr != nil {
		fields = append(fields, pullRequestFields(pr)...)
	}
	width := 0
	for _, f := range fields {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}
	for _, f := range fields {
		ew.printf("  %-*s  %s\n", width+1, f.Name+":", f.Value)
	}

	if report.Repos != nil {
		if len(report.Repos) == 0 {
			ew.println("No repositories found.")
		} else if ew.err == nil {
			renderRepos(w, report.Repos)
			ew.printf("%d repositories\n", len(report.Repos))
		}
	}

	if report.Error != "" {
		ew.printf("\nError: %s\n", report.Error)
	}
	for _, n := range report.Notes {
		ew.printf("Note: %s\n", n)
	}

	return ew.err
}

func (t *TextWriter) marker(s Status) string {
	var c *color.Color
	switch s {
	case StatusOK:
		c = color.New(color.FgGreen, color.Bold)
	case StatusRefused:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgRed, color.Bold)
	}
	if t.NoColor {
		c.DisableColor()
	}
	return c.Sprintf("[%s]", s)
}

func commitFields(c *github.CommitResult) []Field {
	steps := []Field{
		{"Base commit", c.BaseCommit},
		{"Base tree", c.BaseTree},
		{"Blob", c.Blob},
		{"Tree", c.Tree},
		{"Commit", c.Commit},
	}
	var out []Field
	for _, f := range steps {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return append(out, Field{"Branch updated", strconv.FormatBool(c.Updated)})
}

func pullRequestFields(pr *github.PullRequest) []Field {
	var out []Field
	if pr.Number != 0 {
		out = append(out, Field{"Number", "#" + strconv.Itoa(pr.Number)})
	}
	if pr.State != "" {
		out = append(out, Field{"State", pr.State})
	}
	if pr.HTMLURL != "" {
		out = append(out, Field{"URL", pr.HTMLURL})
	}
	return out
}

func renderRepos(w io.Writer, repos []github.Repo) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Repository", "Visibility", "Default branch", "Description"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetHeaderLine(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range repos {
		visibility := "public"
		if r.Private {
			visibility = "private"
		}
		table.Append([]string{r.FullName, visibility, r.DefaultBranch, truncate(r.Description, 50)})
	}
	table.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
