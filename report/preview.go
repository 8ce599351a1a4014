package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"churnsynth/export"
	"churnsynth/models"
)

// PrintPreview writes the first rows of every table. Transactions show twice as
// many rows, and labels show churned customers only.
func PrintPreview(w io.Writer, ds *models.Dataset, rows int) error {
	if rows <= 0 {
		return nil
	}

	for _, table := range export.Tables(ds) {
		var title string
		var indexes []int

		switch table.Name {
		case "transactions":
			title = fmt.Sprintf("Transactions (first %d rows):", 2*rows)
			indexes = firstN(table.Len, 2*rows)
		case "labels":
			title = "Labels (churned customers):"
			for i, l := range ds.Labels {
				if len(indexes) == rows {
					break
				}
				if l.Churned {
					indexes = append(indexes, i)
				}
			}
		default:
			title = fmt.Sprintf("%s (first %d rows):", previewTitles[table.Name], rows)
			indexes = firstN(table.Len, rows)
		}

		if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
			return err
		}
		if err := writeTable(w, table, indexes); err != nil {
			return err
		}
	}
	return nil
}

var previewTitles = map[string]string{
	"customers":  "Customer Info",
	"policies":   "Policy Data",
	"engagement": "Engagement",
}

func firstN(length, n int) []int {
	indexes := make([]int, 0, min(length, n))
	for i := range min(length, n) {
		indexes = append(indexes, i)
	}
	return indexes
}

func writeTable(w io.Writer, table export.Table, indexes []int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Header, "\t"))
	for _, i := range indexes {
		fmt.Fprintln(tw, strings.Join(table.Row(i), "\t"))
	}
	return tw.Flush()
}
