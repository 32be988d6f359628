package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"

	"github.com/javanhut/ravenstate/state"
)

var (
	windowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#74b6ff"))
	tabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a2e0c7"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5c2e7"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	treeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#333333"))
)

// truncate folds fullwidth compatibility forms and shortens s to at most
// cells terminal cells
func truncate(s string, cells int) string {
	s = width.Fold.String(s)
	if cells <= 0 || runewidth.StringWidth(s) <= cells {
		return s
	}
	return runewidth.Truncate(s, cells, "…")
}

func paneLine(p state.PaneSnapshot, active bool, width int) string {
	title := fmt.Sprintf("pane %d %q", p.ID, truncate(p.Title, width))
	if active {
		title = activeStyle.Render(title + " *")
	}
	g := p.Geometry
	detail := fmt.Sprintf("vao=%d geom=%d,%d-%d,%d", p.VAO, g.Left, g.Top, g.Right, g.Bottom)
	if p.LayoutDirty {
		detail += " relayout"
	}
	return title + " " + dimStyle.Render(detail)
}

func renderTree(report inspectReport, width int) string {
	var b strings.Builder
	snap := report.Tree
	for _, w := range snap.Windows {
		header := fmt.Sprintf("os window %d", w.ID)
		b.WriteString(windowStyle.Render(header))
		b.WriteString(" " + dimStyle.Render(fmt.Sprintf("%dx%d cell=%dx%d font=%gpt",
			w.Viewport.Width, w.Viewport.Height, w.Cell.Width, w.Cell.Height, w.FontSize)))
		b.WriteString("\n")
		for ti, t := range w.Tabs {
			lastTab := ti == len(w.Tabs)-1
			branch, stem := "├─ ", "│  "
			if lastTab {
				branch, stem = "└─ ", "   "
			}
			label := fmt.Sprintf("tab %d", t.ID)
			if ti == w.ActiveTab {
				label = activeStyle.Render(label + " *")
			} else {
				label = tabStyle.Render(label)
			}
			b.WriteString(treeStyle.Render(branch) + label + " " +
				dimStyle.Render(fmt.Sprintf("borders=%d", t.BorderRects)) + "\n")
			for pi, p := range t.Panes {
				pb := "├─ "
				if pi == len(t.Panes)-1 {
					pb = "└─ "
				}
				b.WriteString(treeStyle.Render(stem+pb) + paneLine(p, pi == t.ActivePane, width) + "\n")
			}
		}
	}
	if len(snap.Detached) > 0 {
		b.WriteString(windowStyle.Render("detached") + "\n")
		for _, p := range snap.Detached {
			b.WriteString(treeStyle.Render("   ") + paneLine(p, false, width) + "\n")
		}
	}
	g := report.GPU
	b.WriteString(dimStyle.Render("theme: "+report.Theme) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"gpu: cell %d/%d border %d/%d live %d, %d context activations",
		g.CellCreated, g.CellReleased, g.BorderCreated, g.BorderReleased, g.Live, g.Activations)))
	b.WriteString("\n")
	return b.String()
}
