package engine

import (
	"io"
	"strings"

	"github.com/atinylittleshell/editline/internal/completion"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/rivo/uniseg"
)

const (
	columnGap = 2
	ellipsis  = "…"
)

// ColumnDisplay lists completion candidates in columns, filled top to bottom
// then left to right, fitted to the terminal width. Candidates ending in "/"
// are rendered with DirStyle.
type ColumnDisplay struct {
	out   io.Writer
	width func() int

	DirStyle lipgloss.Style
}

var _ completion.Displayer = (*ColumnDisplay)(nil)

// NewColumnDisplay creates a display writing to out. width is queried on
// every display; a nil width or a non-positive result means 80 columns.
func NewColumnDisplay(out io.Writer, width func() int) *ColumnDisplay {
	renderer := lipgloss.NewRenderer(out)
	return &ColumnDisplay{
		out:      out,
		width:    width,
		DirStyle: renderer.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	}
}

func (d *ColumnDisplay) Display(candidates []string) {
	if len(candidates) == 0 {
		return
	}
	_, _ = io.WriteString(d.out, d.Render(candidates))
}

// Render returns the listing Display would write, one row per line.
func (d *ColumnDisplay) Render(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	width := defaultWidth
	if d.width != nil {
		if w := d.width(); w > 0 {
			width = w
		}
	}

	cellWidth := 0
	for _, c := range candidates {
		cellWidth = max(cellWidth, uniseg.StringWidth(c))
	}
	cellWidth = min(cellWidth, width)

	cols := max(1, (width+columnGap)/(cellWidth+columnGap))
	rows := (len(candidates) + cols - 1) / cols

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := col*rows + row
			if i >= len(candidates) {
				break
			}
			if col > 0 {
				sb.WriteString(strings.Repeat(" ", columnGap))
			}

			cell := d.renderCell(candidates[i], cellWidth)
			sb.WriteString(cell)

			// Pad all but the last cell of the row.
			if next := (col+1)*rows + row; col+1 < cols && next < len(candidates) {
				sb.WriteString(strings.Repeat(" ", cellWidth-ansi.PrintableRuneWidth(cell)))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (d *ColumnDisplay) renderCell(candidate string, cellWidth int) string {
	text := candidate
	if uniseg.StringWidth(text) > cellWidth {
		text = truncate.StringWithTail(text, uint(cellWidth), ellipsis)
	}
	if strings.HasSuffix(candidate, "/") {
		return d.DirStyle.Render(text)
	}
	return text
}
