package state

import (
	"testing"

	"github.com/javanhut/ravenstate/config"
	"github.com/javanhut/ravenstate/screen"
)

func TestQueryRegions(t *testing.T) {
	full := Region{Right: 799, Bottom: 599, Valid: true}
	tests := []struct {
		name        string
		mutate      func(*config.Config)
		tabs        int
		wantCentral Region
		wantTabBar  Region
	}{
		{
			name:        "below min tabs",
			tabs:        1,
			wantCentral: full,
		},
		{
			name:        "hidden style",
			mutate:      func(c *config.Config) { c.TabBar.Style = config.StyleHidden },
			tabs:        3,
			wantCentral: full,
		},
		{
			name:        "bottom edge",
			tabs:        2,
			wantCentral: Region{Right: 799, Bottom: 577, Valid: true},
			wantTabBar:  Region{Top: 578, Right: 799, Bottom: 599, Valid: true},
		},
		{
			name: "top edge with margins",
			mutate: func(c *config.Config) {
				c.TabBar.Edge = config.EdgeTop
				c.TabBar.MarginOuter = 3
				c.TabBar.MarginInner = 1.5
			},
			tabs:        2,
			wantCentral: Region{Top: 28, Right: 799, Bottom: 599, Valid: true},
			wantTabBar:  Region{Top: 4, Right: 799, Bottom: 25, Valid: true},
		},
		{
			name: "bottom edge with margins",
			mutate: func(c *config.Config) {
				c.TabBar.MarginOuter = 3
				c.TabBar.MarginInner = 1.5
			},
			tabs:        2,
			wantCentral: Region{Right: 799, Bottom: 571, Valid: true},
			wantTabBar:  Region{Top: 574, Right: 799, Bottom: 595, Valid: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mutate []func(*config.Config)
			if tt.mutate != nil {
				mutate = append(mutate, tt.mutate)
			}
			f := newFixture(t, mutate...)
			counts := make([]int, tt.tabs)
			w, _, _ := f.tree(t, counts...)

			vp, ok := f.r.QueryRegions(w)
			if !ok {
				t.Fatal("window not found")
			}
			if vp.Central != tt.wantCentral {
				t.Errorf("central = %+v, want %+v", vp.Central, tt.wantCentral)
			}
			if vp.TabBar != tt.wantTabBar {
				t.Errorf("tab bar = %+v, want %+v", vp.TabBar, tt.wantTabBar)
			}
			if vp.Width != 800 || vp.Height != 600 {
				t.Errorf("viewport = %dx%d", vp.Width, vp.Height)
			}
			if vp.Cell != (screen.CellSize{Width: 11, Height: 22}) {
				t.Errorf("cell = %+v", vp.Cell)
			}
		})
	}
}

func TestQueryRegions_HiddenTabBarSpansViewport(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.TabBar.Style = config.StyleHidden })
	w, _, _ := f.tree(t, 1, 1)
	vp, _ := f.r.QueryRegions(w)
	if vp.Central.Width() != 800 || vp.Central.Height() != 600 {
		t.Errorf("central = %dx%d", vp.Central.Width(), vp.Central.Height())
	}
	if !vp.TabBar.Empty() || vp.TabBar.Width() != 0 {
		t.Errorf("tab bar = %+v", vp.TabBar)
	}
}

func TestQueryRegions_NotFound(t *testing.T) {
	f := newFixture(t)
	vp, ok := f.r.QueryRegions(42)
	if ok {
		t.Error("unknown window found")
	}
	if vp.Width != 100 || vp.Height != 100 || vp.Cell != (screen.CellSize{Width: 1, Height: 1}) {
		t.Errorf("fallback viewport = %+v", vp)
	}
	if !vp.Central.Empty() || !vp.TabBar.Empty() {
		t.Errorf("fallback regions = %+v", vp)
	}
}

func TestPtToPx(t *testing.T) {
	f := newFixture(t)
	w := f.r.CreateWindow()
	if got := f.r.PtToPx(12, w); got != 16 {
		t.Errorf("default dpi: %d, want 16", got)
	}
	f.r.SetLogicalDPI(w, DPI{X: 144, Y: 144})
	if got := f.r.PtToPx(12, w); got != 24 {
		t.Errorf("144 dpi: %d, want 24", got)
	}
	if got := f.r.PtToPx(12, 999); got != 16 {
		t.Errorf("unknown window: %d, want 16", got)
	}
}

func TestQueryRegions_SinglePixelViewport(t *testing.T) {
	f := newFixture(t)
	w, _, _ := f.tree(t, 1)
	f.r.SetViewportSize(w, 1, 1)
	vp, _ := f.r.QueryRegions(w)
	if vp.Central.Empty() || vp.Central.Width() != 1 || vp.Central.Height() != 1 {
		t.Errorf("central = %+v (%dx%d), want one pixel", vp.Central, vp.Central.Width(), vp.Central.Height())
	}

	f.r.SetViewportSize(w, 0, 0)
	vp, _ = f.r.QueryRegions(w)
	if !vp.Central.Empty() || !vp.TabBar.Empty() {
		t.Errorf("zero viewport regions = %+v", vp)
	}
}
