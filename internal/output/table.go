package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/manifest"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableAddedStyle  = tableCellStyle.Foreground(ColorGreenCheck)
)

// SubpackageTable renders a manifest's subpackage list. The entry at index
// added is highlighted as the one a merge appends; pass -1 for none.
func SubpackageTable(subs []manifest.SubPackage, added int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "ROOT", "PAGES", "INDEPENDENT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return tableHeaderStyle
			case added:
				return tableAddedStyle
			}
			return tableCellStyle
		})

	for i, s := range subs {
		root := s.Root
		if i == added {
			root += " (new)"
		}
		t.Row(strconv.Itoa(i+1), root, strconv.Itoa(len(s.Pages)), strconv.FormatBool(s.Independent))
	}

	return t.String()
}
