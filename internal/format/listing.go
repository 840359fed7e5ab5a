// Package format writes history listings as plain text, a table or JSON.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/fakeyudi/cdd/internal/direction"
	"github.com/fakeyudi/cdd/internal/resolve"
)

// WriteListing writes l to w in the requested format.
func WriteListing(w io.Writer, l resolve.Listing, format string) error {
	switch strings.ToLower(format) {
	case "", "plain":
		return WriteLines(w, l.Lines())
	case "table":
		return writeListingTable(w, l)
	case "json":
		return writeListingJSON(w, l)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteLines writes each line followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type jsonListing struct {
	Direction string        `json:"direction"`
	Rows      []resolve.Row `json:"rows"`
	Shown     int           `json:"shown"`
	Total     int           `json:"total"`
}

func writeListingJSON(w io.Writer, l resolve.Listing) error {
	rows := l.Rows
	if rows == nil {
		rows = []resolve.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonListing{
		Direction: viewName(l.Sign),
		Rows:      rows,
		Shown:     len(l.Rows),
		Total:     l.Total,
	})
}

func writeListingTable(w io.Writer, l resolve.Listing) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	common := l.Sign == direction.Common
	if common {
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignCenter},
			{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
			{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		})
		tw.AppendHeader(table.Row{"#", "Visits", "Directory"})
	} else {
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignCenter},
			{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		})
		tw.AppendHeader(table.Row{"#", "Directory"})
	}

	for _, row := range l.Rows {
		if common {
			tw.AppendRow(table.Row{fmt.Sprintf(",%d", row.Index), row.Count, row.Path})
			continue
		}
		tw.AppendRow(table.Row{row.Index, row.Path})
	}

	if len(l.Rows) == 0 {
		if common {
			tw.AppendRow(table.Row{"-", 0, "(no history)"})
		} else {
			tw.AppendRow(table.Row{"-", "(no history)"})
		}
	}
	if s := l.Summary(); s != "" {
		tw.SetCaption("%s", strings.TrimSpace(s))
	}

	_ = tw.Render()
	return nil
}

func viewName(sign string) string {
	switch sign {
	case direction.Forwards:
		return "forwards"
	case direction.Common:
		return "common"
	default:
		return "backwards"
	}
}
