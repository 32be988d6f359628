package cmd

import (
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
	"github.com/javanhut/ravenstate/state"
)

const separatorWidth = 1

// attachScreen gives a pane a screen sized for its window and hands the
// only reference to the registry
func attachScreen(reg *state.Registry, osWindowID, tabID, paneID ids.ID) *screen.Screen {
	cell, ok := reg.CellSizeForWindow(osWindowID)
	if !ok {
		return nil
	}
	s := screen.New(80, 24, cell)
	if !reg.SetRenderData(osWindowID, tabID, paneID, s, state.Geometry{}) {
		s.Release()
		return nil
	}
	s.Release()
	return s
}

// layoutTab splits the central region into equal columns, one per pane,
// with a separator between neighbours
func layoutTab(reg *state.Registry, osWindowID, tabID ids.ID, separatorColor uint32) {
	vp, ok := reg.QueryRegions(osWindowID)
	if !ok {
		return
	}
	reg.AddBordersRect(osWindowID, tabID, 0, 0, 0, 0, 0)
	panes := reg.PaneIDs(osWindowID, tabID)
	c := vp.Central
	if len(panes) == 0 || c.Empty() {
		return
	}
	colWidth := c.Width() / len(panes)
	for i, p := range panes {
		left := c.Left + i*colWidth
		g := state.Geometry{
			Left:   uint32(left),
			Top:    uint32(c.Top),
			Right:  uint32(left + colWidth - 1),
			Bottom: uint32(c.Bottom),
		}
		if i == len(panes)-1 {
			g.Right = uint32(c.Right)
		}
		if i > 0 {
			reg.AddBordersRect(osWindowID, tabID, uint32(left), g.Top, uint32(left+separatorWidth), g.Bottom+1, separatorColor)
			g.Left += separatorWidth
		}

		var s *screen.Screen
		reg.WithPane(osWindowID, tabID, p, func(_ *state.OSWindow, _ *state.Tab, pane *state.Pane) {
			s = pane.RenderData().Screen
		})
		if s == nil {
			continue
		}
		reg.SetRenderData(osWindowID, tabID, p, s, g)
		s.ResizePixels(int(g.Right-g.Left+1), int(g.Bottom-g.Top+1))
	}
}

// layoutWindow lays out every tab of a window
func layoutWindow(reg *state.Registry, osWindowID ids.ID, separatorColor uint32) {
	for _, tab := range reg.TabIDs(osWindowID) {
		layoutTab(reg, osWindowID, tab, separatorColor)
	}
}
