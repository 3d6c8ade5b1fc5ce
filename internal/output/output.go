package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/ghrest/internal/github"
)

// Status is the outcome of a command.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusRefused Status = "refused"
)

// Field is one labelled value in a report. Fields print in order.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Report is the result of one ghrest command.
type Report struct {
	Tool        string               `json:"tool"`
	Version     string               `json:"version"`
	Action      string               `json:"action"`
	Repository  string               `json:"repository,omitempty"`
	Status      Status               `json:"status"`
	Fields      []Field              `json:"fields,omitempty"`
	Repos       []github.Repo        `json:"repos,omitempty"`
	Commit      *github.CommitResult `json:"commit,omitempty"`
	PullRequest *github.PullRequest  `json:"pullRequest,omitempty"`
	Error       string               `json:"error,omitempty"`
	Notes       []string             `json:"notes,omitempty"`
}

// Add appends a field and returns the report for chaining.
func (r *Report) Add(name, value string) *Report {
	r.Fields = append(r.Fields, Field{Name: name, Value: value})
	return r
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
// Color is only used on stdout.
func WriteReport(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}
	if outPath == "" {
		return writer.Write(os.Stdout, report)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if tw, ok := writer.(*TextWriter); ok {
		tw.NoColor = true
	}
	return writeAndClose(writer, f, report)
}

// writeAndClose writes the report to wc and closes it. A close error is
// returned when the write itself succeeded.
func writeAndClose(writer Writer, wc io.WriteCloser, report *Report) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()
	return writer.Write(wc, report)
}
