package render

import (
	"testing"

	"github.com/javanhut/ravenstate/config"
	"github.com/javanhut/ravenstate/state"
)

func TestThemeByName(t *testing.T) {
	if ThemeByName("unknown") != DefaultTheme() {
		t.Error("unknown theme does not fall back to default")
	}
	if ThemeByName("  Crow-Black ") == DefaultTheme() {
		t.Error("theme names are not normalized")
	}
	for _, opt := range config.ThemeOptions() {
		if opt.Name != "raven-blue" && ThemeByName(opt.Name) == DefaultTheme() {
			t.Errorf("theme %q has no colors", opt.Name)
		}
	}
}

func TestClearColor(t *testing.T) {
	theme := Theme{Background: [4]float32{0.5, 1, 0.25, 1}}
	got := theme.ClearColor(0.5)
	want := [4]float32{0.25, 0.5, 0.125, 0.5}
	if got != want {
		t.Errorf("ClearColor = %v, want %v", got, want)
	}
}

func TestPackRGB(t *testing.T) {
	tests := []struct {
		in   [4]float32
		want uint32
	}{
		{[4]float32{1, 0, 0, 1}, 0xff0000},
		{[4]float32{0, 1, 0, 1}, 0x00ff00},
		{[4]float32{0, 0, 1, 1}, 0x0000ff},
		{[4]float32{2, -1, 0.5, 1}, 0xff0080},
	}
	for _, tt := range tests {
		if got := PackRGB(tt.in); got != tt.want {
			t.Errorf("PackRGB(%v) = %#06x, want %#06x", tt.in, got, tt.want)
		}
	}
}

func TestRegionQuad(t *testing.T) {
	got := regionQuad(state.Region{Right: 99, Bottom: 49, Valid: true}, 100, 100)
	if len(got) != 24 {
		t.Fatalf("len = %d", len(got))
	}
	// first vertex is the top left corner, third the bottom right
	if got[0] != -1 || got[1] != 1 || got[8] != 1 || got[9] != 0 {
		t.Errorf("corners = (%v,%v) (%v,%v)", got[0], got[1], got[8], got[9])
	}
	if regionQuad(state.Region{}, 100, 100) != nil {
		t.Error("empty region produced vertices")
	}
}

func TestTabSegment(t *testing.T) {
	bar := state.Region{Top: 578, Right: 799, Bottom: 599, Valid: true}
	first := tabSegment(bar, 3, 0)
	if first.Left != 0 || first.Right != 265 {
		t.Errorf("first = %+v", first)
	}
	last := tabSegment(bar, 3, 2)
	if last.Left != 532 || last.Right != 799 {
		t.Errorf("last = %+v", last)
	}
	if !tabSegment(bar, 3, 3).Empty() {
		t.Error("out of range index produced a segment")
	}
}

func TestBorderVertices(t *testing.T) {
	rects := []state.BorderRect{{Left: -1, Top: 1, Right: 0, Bottom: 0, Color: 0xff00ff}}
	got := borderVertices(rects)
	if len(got) != 30 {
		t.Fatalf("len = %d, want 30", len(got))
	}
	for i := 4; i < len(got); i += 5 {
		if got[i] != float32(0xff00ff) {
			t.Errorf("vertex %d color = %v", i/5, got[i])
		}
	}
}

func TestPaneQuad(t *testing.T) {
	rd := state.RenderData{XStart: -1, YStart: 1, DX: 0.125, DY: 0.25}
	got := paneQuad(rd, 8, 4)
	if got[8] != 0 || got[9] != 0 {
		t.Errorf("bottom right = (%v,%v)", got[8], got[9])
	}
}
