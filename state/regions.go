package state

import (
	"math"

	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
)

// Region is an inclusive pixel rectangle. Only regions with Valid set cover
// any pixels, so the zero Region is empty while {0,0,0,0} with Valid set is
// a single pixel.
type Region struct {
	Left   int  `yaml:"left"`
	Top    int  `yaml:"top"`
	Right  int  `yaml:"right"`
	Bottom int  `yaml:"bottom"`
	Valid  bool `yaml:"valid"`
}

// Empty reports whether r covers no pixels
func (r Region) Empty() bool {
	return !r.Valid || r.Right < r.Left || r.Bottom < r.Top
}

func (r Region) Width() int {
	if r.Empty() {
		return 0
	}
	return r.Right - r.Left + 1
}

func (r Region) Height() int {
	if r.Empty() {
		return 0
	}
	return r.Bottom - r.Top + 1
}

// Viewport is the layout of an OS window: where panes go, where the tab
// bar goes, and the sizes they were derived from
type Viewport struct {
	Central Region          `yaml:"central"`
	TabBar  Region          `yaml:"tab_bar"`
	Width   int             `yaml:"width"`
	Height  int             `yaml:"height"`
	Cell    screen.CellSize `yaml:"cell"`
}

// QueryRegions lays out an OS window. For an unknown window it returns
// empty regions over a 100x100 viewport with 1x1 cells, and false.
func (r *Registry) QueryRegions(osWindowID ids.ID) (Viewport, bool) {
	vp := Viewport{Width: 100, Height: 100, Cell: screen.CellSize{Width: 1, Height: 1}}
	ok := r.WithOSWindow(osWindowID, func(w *OSWindow) {
		vp.Central, vp.TabBar = r.regions(w)
		vp.Width, vp.Height = int(w.viewportWidth), int(w.viewportHeight)
		vp.Cell = w.cell
	})
	return vp, ok
}

func (r *Registry) regions(w *OSWindow) (central, tabBar Region) {
	vw, vh := int(w.viewportWidth), int(w.viewportHeight)
	ch := int(w.cell.Height)
	if vw <= 0 || vh <= 0 {
		return Region{}, Region{}
	}
	if r.cfg.TabBarHidden() || w.tabs.len() < r.cfg.TabBar.MinTabs {
		return Region{Right: vw - 1, Bottom: vh - 1, Valid: true}, Region{}
	}
	dpi := r.dpiFor(w)
	outer := ptToPx(r.cfg.TabBar.MarginOuter, dpi)
	inner := ptToPx(r.cfg.TabBar.MarginInner, dpi)

	central = Region{Right: vw - 1, Valid: true}
	tabBar.Valid = true
	if r.cfg.TabBarOnTop() {
		central.Bottom = vh - 1
		central.Top = min(ch+inner+outer, central.Bottom)
		tabBar.Top = outer
	} else {
		central.Bottom = max(0, vh-ch-1-inner-outer)
		tabBar.Top = central.Bottom + 1 + inner
	}
	tabBar.Left, tabBar.Right = central.Left, central.Right
	tabBar.Bottom = tabBar.Top + ch - 1
	return central, tabBar
}

func ptToPx(pt float64, dpi DPI) int {
	mean := (dpi.X + dpi.Y) / 2
	return int(math.Round(pt * mean / 72))
}
