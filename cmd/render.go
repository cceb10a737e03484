// ABOUTME: Shared output and input helpers for the content commands
// ABOUTME: Lists render as tables or JSON; payloads are read from --data or --file

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/output"
	"github.com/markalston/portfolio-admin/internal/tui/forms"
)

// columns describes how an item renders as a table row
type columns[T any] struct {
	headers []string
	row     func(T) []string
}

func renderList[T any](a *app, noun string, items []T, cols columns[T]) error {
	if IsJSONOutput() {
		if items == nil {
			items = []T{}
		}
		return a.printer.JSON(items)
	}
	if len(items) == 0 {
		a.printer.Info("No %s found", noun)
		return nil
	}
	t := output.NewTable(a.printer.Out(), cols.headers...)
	for _, it := range items {
		t.Append(cols.row(it)...)
	}
	return t.Render()
}

func renderPage[T any](a *app, noun string, page models.Page[T], cols columns[T]) error {
	if IsJSONOutput() {
		return a.printer.JSON(page)
	}
	if err := renderList(a, noun, page.Content, cols); err != nil {
		return err
	}
	if len(page.Content) > 0 && page.TotalElements > int64(len(page.Content)) {
		a.printer.Info("Showing %d of %d %s", len(page.Content), page.TotalElements, noun)
	}
	return nil
}

// renderItem prints one item as aligned key/value lines
func renderItem[T any](a *app, item *T, cols columns[T]) error {
	if IsJSONOutput() {
		return a.printer.JSON(item)
	}
	values := cols.row(*item)
	for i, h := range cols.headers {
		a.printer.KeyValue(h, values[i])
	}
	return nil
}

// readInput decodes a JSON payload from data, or from file ("-" is stdin).
// Unknown fields are rejected so typos do not silently drop changes.
func readInput[In any](a *app, data, file string) (In, error) {
	var in In
	var raw []byte
	switch {
	case data != "" && file != "":
		return in, usageError("use either --data or --file, not both")
	case data != "":
		raw = []byte(data)
	case file == "-":
		b, err := io.ReadAll(a.in)
		if err != nil {
			return in, fmt.Errorf("reading stdin: %w", err)
		}
		raw = b
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return in, usageError("cannot read %s: %v", file, err)
		}
		raw = b
	default:
		return in, usageError("a JSON payload is required: pass --data or --file")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, usageError("invalid JSON payload: %v", err)
	}
	return in, nil
}

// confirmDelete asks before deleting unless yes is set. Without a terminal
// the caller must pass --yes.
func confirmDelete(a *app, what string, yes bool) error {
	if yes {
		return nil
	}
	if !a.interactive() {
		return usageError("refusing to delete %s without confirmation: pass --yes", what)
	}
	ok, err := forms.Confirm(fmt.Sprintf("Delete %s?", what))
	if err != nil {
		return err
	}
	if !ok {
		return forms.ErrAborted
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
