package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"wureport/internal/models"
)

// RenderSummary formats the per-family run counters as an aligned console
// table. Family names can carry wide runes, so column widths are computed
// with runewidth rather than len.
func RenderSummary(s models.RunSummary) string {
	header := []string{"Family", "Extracted", "Kept", "Dropped", "Status"}

	rows := [][]string{header}
	for _, f := range s.Families {
		rows = append(rows, []string{
			f.Family,
			fmt.Sprintf("%d", f.Extracted),
			fmt.Sprintf("%d", f.Kept),
			fmt.Sprintf("%d", f.Dropped),
			f.Status,
		})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	for rowIdx, row := range rows {
		for i, cell := range row {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))

			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}

		b.WriteByte('\n')

		if rowIdx == 0 {
			for i, w := range widths {
				b.WriteString(strings.Repeat("-", w))

				if i < len(widths)-1 {
					b.WriteString("  ")
				}
			}

			b.WriteByte('\n')
		}
	}

	b.WriteString(fmt.Sprintf("\nFamilies fetched: %d, failed: %d. Entries extracted: %d, kept: %d.\n",
		s.Fetched, s.Failed, s.Extracted, s.Kept))

	return b.String()
}
