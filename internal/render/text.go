package render

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Text renders n for a terminal.
func Text(n Node) string {
	var b strings.Builder

	switch n.Kind {
	case NodeLoading:
		fmt.Fprintf(&b, "%s\n", n.Message)
		return b.String()
	case NodeError:
		fmt.Fprintf(&b, "%s\n%s\n", n.Title, n.Message)
		return b.String()
	}

	fmt.Fprintf(&b, "%s  [%s]\n\n", n.Title, n.Count)

	switch n.Kind {
	case NodeEmpty:
		if n.Style == StyleTable {
			writeTable(&b, n.Headers, nil)
		}
		fmt.Fprintf(&b, "%s\n", n.Message)
	case NodeTable:
		writeTable(&b, n.Headers, n.Rows)
	case NodeCards:
		for i, c := range n.Cards {
			if i > 0 {
				b.WriteString("\n")
			}
			writeCard(&b, c)
		}
	}
	return b.String()
}

func cellText(c Cell) string {
	if c.Badge {
		return "[" + c.Text + "]"
	}
	return c.Text
}

func writeTable(b *strings.Builder, headers []string, rows []Row) {
	w := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = cellText(c)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

func writeCard(b *strings.Builder, c Card) {
	b.WriteString(c.Title.Text)
	if c.Badge != nil {
		b.WriteString("  " + cellText(*c.Badge))
	}
	b.WriteString("\n  " + c.Body.Text + "\n")

	if len(c.Tags) > 0 {
		tags := make([]string, len(c.Tags))
		for i, t := range c.Tags {
			tags[i] = cellText(t)
		}
		b.WriteString("  " + strings.Join(tags, " ") + "\n")
	}
	for _, d := range c.Details {
		fmt.Fprintf(b, "  %s: %s\n", d.Label, cellText(d.Value))
	}
}
