package state

import (
	"testing"

	"github.com/javanhut/ravenstate/config"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
)

func TestCreateWindow_UsesConfig(t *testing.T) {
	f := newFixture(t, func(c *config.Config) {
		c.FontSize = 14
		c.BackgroundOpacity = 0.8
	})
	w := f.r.CreateWindow()
	if w == 0 {
		t.Fatal("CreateWindow returned 0")
	}
	f.r.WithOSWindow(w, func(osw *OSWindow) {
		if osw.FontSize() != 14 {
			t.Errorf("font size = %v", osw.FontSize())
		}
		if osw.CellSize() != (screen.CellSize{Width: 14, Height: 28}) {
			t.Errorf("cell = %+v", osw.CellSize())
		}
		if osw.BackgroundOpacity() != 0.8 {
			t.Errorf("opacity = %v", osw.BackgroundOpacity())
		}
		if !osw.TabBarRenderData().VAO.Valid() {
			t.Error("tab bar has no GPU handle")
		}
		if !osw.NeedsRender() {
			t.Error("new window does not need render")
		}
		if osw.ActiveTab() != nil {
			t.Error("window without tabs has an active tab")
		}
	})
	if f.rec.owner[0] != w {
		t.Errorf("tab bar handle created under %d, want %d", f.rec.owner[0], w)
	}
}

func TestOSWindowFontSize_RelayoutsEveryScreen(t *testing.T) {
	f := newFixture(t)
	w, tabs, panes := f.tree(t, 2, 1)
	cell, _ := f.r.CellSizeForWindow(w)

	var screens []*screen.Screen
	for i, tab := range tabs {
		for _, p := range panes[i] {
			s := screen.New(80, 24, cell)
			f.r.SetRenderData(w, tab, p, s, Geometry{})
			screens = append(screens, s)
		}
	}
	bar := screen.New(80, 1, cell)
	f.r.SetTabBarRenderData(w, bar, Geometry{Top: 578, Right: 799, Bottom: 599})
	screens = append(screens, bar)

	if got := f.r.OSWindowFontSize(w, 11, false); got != 11 {
		t.Errorf("unchanged size returned %v", got)
	}
	for _, s := range screens {
		if s.LayoutDirty() {
			t.Fatal("unchanged size caused a re-layout")
		}
	}

	if got := f.r.OSWindowFontSize(w, 16, false); got != 16 {
		t.Errorf("OSWindowFontSize = %v, want 16", got)
	}
	want := screen.CellSize{Width: 16, Height: 32}
	for i, s := range screens {
		if !s.LayoutDirty() || s.CellSize() != want {
			t.Errorf("screen %d: dirty=%v cell=%+v", i, s.LayoutDirty(), s.CellSize())
		}
		s.Rendered()
	}
	f.r.OSWindowFontSize(w, 16, true)
	for i, s := range screens {
		if !s.LayoutDirty() {
			t.Errorf("screen %d: forced resize did not re-layout", i)
		}
	}
	if f.r.OSWindowFontSize(999, 16, false) != 0 {
		t.Error("unknown window returned a size")
	}
}

func TestGlobalFontSize(t *testing.T) {
	f := newFixture(t)
	w := f.r.CreateWindow()
	if got := f.r.GlobalFontSize(0); got != 11 {
		t.Errorf("GlobalFontSize(0) = %v", got)
	}
	f.r.GlobalFontSize(20)
	if f.r.OSWindowFontSize(w, 0, false) != 11 {
		t.Error("existing window picked up the global size")
	}
	w2 := f.r.CreateWindow()
	if f.r.OSWindowFontSize(w2, 0, false) != 20 {
		t.Error("new window ignored the global size")
	}
}

func TestSetLogicalDPI_ReloadsCellSize(t *testing.T) {
	f := newFixture(t)
	w := f.r.CreateWindow()
	f.r.SetLogicalDPI(w, DPI{X: 192, Y: 192})
	cell, _ := f.r.CellSizeForWindow(w)
	if cell != (screen.CellSize{Width: 22, Height: 44}) {
		t.Errorf("cell = %+v", cell)
	}
}

func TestCloseRequests(t *testing.T) {
	f := newFixture(t)
	w1 := f.r.CreateWindow()
	w2 := f.r.CreateWindow()
	if f.r.HasPendingCloses() {
		t.Error("pending closes on a fresh registry")
	}
	f.r.MarkForClose(w2, ConfirmableCloseRequested)
	if !f.r.HasPendingCloses() {
		t.Error("MarkForClose did not flag pending closes")
	}
	if got := f.r.PendingCloses(); !equalIDs(got, []ids.ID{w2}) {
		t.Errorf("PendingCloses = %v", got)
	}
	if f.r.HasPendingCloses() {
		t.Error("PendingCloses did not clear the flag")
	}
	if f.r.MarkForClose(999, ImperativeCloseRequested) {
		t.Error("marked a missing window")
	}
	f.r.SetQuitRequest(ImperativeCloseRequested)
	if f.r.QuitRequest() != ImperativeCloseRequested || !f.r.HasPendingCloses() {
		t.Error("quit request not recorded")
	}
	_ = w1
}

func TestApplyOptionsUpdate(t *testing.T) {
	f := newFixture(t)
	w := f.r.CreateWindow()
	f.r.WithOSWindow(w, func(osw *OSWindow) { osw.Rendered() })

	cfg := config.DefaultConfig()
	cfg.BackgroundOpacity = 0.5
	f.r.ApplyOptionsUpdate(cfg)
	if o, _ := f.r.BackgroundOpacity(w); o != 0.5 {
		t.Errorf("opacity = %v", o)
	}
	f.r.WithOSWindow(w, func(osw *OSWindow) {
		if !osw.Damaged() || osw.TabBarDataUpdated() {
			t.Error("window not invalidated")
		}
	})
	if f.r.Config() != cfg {
		t.Error("config not replaced")
	}
	f.r.ChangeBackgroundOpacity(w, 0.25)
	if o, _ := f.r.BackgroundOpacity(w); o != 0.25 {
		t.Errorf("opacity = %v", o)
	}
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)
	w, tabs, panes := f.tree(t, 2, 1)
	f.r.DetachPane(w, tabs[0], panes[0][1])
	snap := f.r.Snapshot()
	if len(snap.Windows) != 1 || len(snap.Windows[0].Tabs) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(snap.Windows[0].Tabs[0].Panes) != 1 {
		t.Errorf("tab 0 panes = %+v", snap.Windows[0].Tabs[0].Panes)
	}
	if len(snap.Detached) != 1 || snap.Detached[0].ID != panes[0][1] || snap.Detached[0].VAO.Valid() {
		t.Errorf("detached = %+v", snap.Detached)
	}
	if snap.Quit != "none" {
		t.Errorf("quit = %q", snap.Quit)
	}
}

func TestPaneAttributes(t *testing.T) {
	f := newFixture(t)
	w, tabs, panes := f.tree(t, 1)
	tab, p := tabs[0], panes[0][0]
	f.r.WithOSWindow(w, func(osw *OSWindow) { osw.Rendered(); osw.TabBarUpdated() })

	pad := Padding{Left: 2, Top: 1, Right: 2, Bottom: 1}
	if !f.r.SetPadding(w, tab, p, pad) {
		t.Fatal("SetPadding failed")
	}
	if !f.r.UpdateVisibility(w, tab, p, false) {
		t.Fatal("UpdateVisibility failed")
	}
	if !f.r.SetTitle(w, tab, p, "vim") {
		t.Fatal("SetTitle failed")
	}
	f.r.WithPane(w, tab, p, func(osw *OSWindow, _ *Tab, pane *Pane) {
		if pane.Padding() != pad {
			t.Errorf("padding = %+v", pane.Padding())
		}
		if pane.Visible() {
			t.Error("pane still visible")
		}
		if pane.Title() != "vim" {
			t.Errorf("title = %q", pane.Title())
		}
		if !osw.NeedsRender() {
			t.Error("hiding a pane does not request a render")
		}
		if osw.TabBarDataUpdated() {
			t.Error("renaming a pane does not invalidate tab bar data")
		}
	})

	if f.r.SetPadding(w, tab, 999, pad) || f.r.UpdateVisibility(w, 999, p, true) || f.r.SetTitle(999, tab, p, "x") {
		t.Error("operations on missing panes should report false")
	}
}
