// ABOUTME: Terminal printer for notifications, field errors and JSON output
// ABOUTME: Satisfies the API client's Notifier so each failure prints one line

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/fatih/color"
)

// ColorMode selects when colors are used
type ColorMode int

const (
	// ColorAuto follows NO_COLOR, TERM and the output.colors setting
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses auto, always or never
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides whether to colorize output
func ResolveColors(mode ColorMode, configColors bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return configColors
}

// Printer writes user-facing messages. Results go to out, notifications to err.
type Printer struct {
	mu        sync.Mutex
	out       io.Writer
	err       io.Writer
	useColors bool
	quiet     bool
}

// PrinterOptions configures a Printer
type PrinterOptions struct {
	ColorMode    ColorMode
	ConfigColors bool
	Quiet        bool
	Out          io.Writer // defaults to os.Stdout
	Err          io.Writer // defaults to os.Stderr
}

// NewPrinter creates a printer
func NewPrinter(opts PrinterOptions) *Printer {
	p := &Printer{
		out:       opts.Out,
		err:       opts.Err,
		useColors: ResolveColors(opts.ColorMode, opts.ConfigColors),
		quiet:     opts.Quiet,
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.err == nil {
		p.err = os.Stderr
	}
	return p
}

// Out returns the result writer
func (p *Printer) Out() io.Writer {
	return p.out
}

// Error prints a failure notification. Never suppressed by quiet mode.
func (p *Printer) Error(format string, args ...interface{}) {
	p.line(p.err, color.FgRed, "✗ ", "[ERROR] ", format, args...)
}

// Warning prints a warning to stderr
func (p *Printer) Warning(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	p.line(p.err, color.FgYellow, "⚠ ", "[WARN] ", format, args...)
}

// Success prints a confirmation
func (p *Printer) Success(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	p.line(p.out, color.FgGreen, "✓ ", "[OK] ", format, args...)
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	p.line(p.out, color.FgCyan, "", "", format, args...)
}

// Print prints a plain line
func (p *Printer) Print(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format+"\n", args...)
}

// FieldErrors prints per-field validation messages in field order
func (p *Printer) FieldErrors(fields map[string]string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, name := range names {
		if p.useColors {
			fmt.Fprintf(p.err, "  %s: %s\n", color.New(color.Bold).Sprint(name), fields[name])
		} else {
			fmt.Fprintf(p.err, "  %s: %s\n", name, fields[name])
		}
	}
}

// KeyValue prints an aligned "key: value" line
func (p *Printer) KeyValue(key, value string) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.useColors {
		key = color.New(color.Faint).Sprint(key + ":")
	} else {
		key += ":"
	}
	fmt.Fprintf(p.out, "%-16s %s\n", key, value)
}

// JSON writes v as indented JSON to the result writer
func (p *Printer) JSON(v interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) line(w io.Writer, attr color.Attribute, icon, tag, format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.useColors {
		color.New(attr).Fprintf(w, icon+format+"\n", args...)
		return
	}
	fmt.Fprintf(w, tag+format+"\n", args...)
}
