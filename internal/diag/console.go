package diag

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
)

// ConsoleReporter prints diagnostics in color and mirrors them to slog.
type ConsoleReporter struct {
	out    io.Writer
	logger *slog.Logger
	min    Severity
}

// NewConsoleReporter writes to stderr, dropping diagnostics below min.
func NewConsoleReporter(logger *slog.Logger, min Severity) *ConsoleReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsoleReporter{out: os.Stderr, logger: logger, min: min}
}

func (r *ConsoleReporter) Report(d Diagnostic) {
	r.logger.With("id", d.ID, "severity", d.Severity.String(), "pos", d.Pos.String()).Debug(d.Text())
	if d.Severity < r.min {
		return
	}
	var marker *color.Color
	switch d.Severity {
	case SeverityError:
		marker = color.New(color.FgRed, color.Bold)
	case SeverityWarning:
		marker = color.New(color.FgYellow, color.Bold)
	default:
		marker = color.New(color.FgCyan)
	}
	_, _ = marker.Fprintf(r.out, "%s %s ", d.ID, d.Severity)
	if d.Pos.IsValid() {
		_, _ = color.New(color.Faint).Fprintf(r.out, "%s ", d.Pos)
	}
	_, _ = io.WriteString(r.out, d.Text()+"\n")
}
