package cmd

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/javanhut/ravenstate/config"
	"github.com/javanhut/ravenstate/gpu"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/state"
)

func defaultInspect() inspectOptions {
	return inspectOptions{format: "yaml", windows: 2, tabs: 2, panes: 2, move: true, fontStep: 2, width: 24}
}

func inspectYAML(t *testing.T, opts inspectOptions) inspectReport {
	t.Helper()
	var buf bytes.Buffer
	if err := inspect(&buf, config.DefaultConfig(), opts); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var report inspectReport
	if err := yaml.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	return report
}

func paneIDs(ps []state.PaneSnapshot) []ids.ID {
	var out []ids.ID
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestInspectMovesPaneAcrossWindows(t *testing.T) {
	report := inspectYAML(t, defaultInspect())
	snap := report.Tree

	if len(snap.Windows) != 2 {
		t.Fatalf("windows = %d, want 2", len(snap.Windows))
	}
	first, last := snap.Windows[0], snap.Windows[1]
	if first.Cell == last.Cell {
		t.Fatalf("font step should give different cells, both %+v", first.Cell)
	}

	if got := paneIDs(first.Tabs[0].Panes); len(got) != 1 || got[0] != 2 {
		t.Errorf("source tab panes = %v, want [2]", got)
	}
	target := last.Tabs[0]
	got := paneIDs(target.Panes)
	want := []ids.ID{5, 6, 1}
	if len(got) != len(want) {
		t.Fatalf("target tab panes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("target tab panes = %v, want %v", got, want)
		}
	}
	if target.ActivePane != 2 {
		t.Errorf("target active pane = %d, want 2", target.ActivePane)
	}
	moved := target.Panes[2]
	if !moved.HasScreen || !moved.LayoutDirty {
		t.Errorf("moved pane = %+v, want a screen with a pending relayout", moved)
	}
	if moved.VAO < 0 {
		t.Errorf("moved pane has no vertex array")
	}
	for _, p := range first.Tabs[1].Panes {
		if p.LayoutDirty {
			t.Errorf("untouched pane %d has a pending relayout", p.ID)
		}
	}
	if len(snap.Detached) != 0 {
		t.Errorf("detached = %v, want none", paneIDs(snap.Detached))
	}
	// one separator in the source tab is gone, two in the target tab
	if first.Tabs[0].BorderRects != 0 || target.BorderRects != 2 {
		t.Errorf("border rects = %d/%d, want 0/2", first.Tabs[0].BorderRects, target.BorderRects)
	}
}

func TestInspectBalancesGPU(t *testing.T) {
	g := inspectYAML(t, defaultInspect()).GPU
	if g.Live != 0 {
		t.Errorf("live handles = %d, want 0", g.Live)
	}
	// 8 panes, 2 tab bars and the re-created handle of the moved pane
	if g.CellCreated != 11 || g.CellReleased != g.CellCreated {
		t.Errorf("cell handles created/released = %d/%d, want 11/11", g.CellCreated, g.CellReleased)
	}
	if g.BorderCreated != 4 || g.BorderReleased != 4 {
		t.Errorf("border handles created/released = %d/%d, want 4/4", g.BorderCreated, g.BorderReleased)
	}
	if g.Activations == 0 {
		t.Error("no context activations recorded")
	}
}

func TestInspectWithoutMove(t *testing.T) {
	opts := defaultInspect()
	opts.move = false
	opts.windows = 1
	snap := inspectYAML(t, opts).Tree
	if len(snap.Windows) != 1 || len(snap.Windows[0].Tabs) != 2 {
		t.Fatalf("unexpected tree: %+v", snap)
	}
	for _, tab := range snap.Windows[0].Tabs {
		if len(tab.Panes) != 2 {
			t.Errorf("tab %d panes = %d, want 2", tab.ID, len(tab.Panes))
		}
	}
}

func TestInspectTreeOutput(t *testing.T) {
	opts := defaultInspect()
	opts.format = "tree"
	opts.width = 6
	var buf bytes.Buffer
	if err := inspect(&buf, config.DefaultConfig(), opts); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"os window 1", "os window 2", "tab 3", "pane 1", "relayout", "live 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "shell 1.1.1") {
		t.Errorf("titles should be truncated to 6 cells:\n%s", out)
	}
}

func TestInspectRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*inspectOptions)
	}{
		{"no windows", func(o *inspectOptions) { o.windows = 0 }},
		{"no panes", func(o *inspectOptions) { o.panes = 0 }},
		{"bad format", func(o *inspectOptions) { o.format = "json" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultInspect()
			tt.mutate(&opts)
			var buf bytes.Buffer
			if err := inspect(&buf, config.DefaultConfig(), opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"shell", 10, "shell"},
		{"shell 1.1.1", 0, "shell 1.1.1"},
		{"shell 1.1.1", 6, "shell…"},
		{"日本語タイトル", 5, "日本…"},
		{"ｓｈｅｌｌ", 0, "shell"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestCheckHandles(t *testing.T) {
	ledger := gpu.NewLedger()
	bar, border, pane := ledger.CreateCellVAO(), ledger.CreateBorderVAO(), ledger.CreateCellVAO()
	snap := state.Snapshot{Windows: []state.WindowSnapshot{{
		ID:        1,
		TabBarVAO: bar,
		Tabs: []state.TabSnapshot{{
			ID:        1,
			BorderVAO: border,
			Panes:     []state.PaneSnapshot{{ID: 1, VAO: pane}},
		}},
	}}}
	if err := checkHandles(snap, ledger); err != nil {
		t.Fatalf("checkHandles: %v", err)
	}

	ledger.RemoveVAO(pane)
	if err := checkHandles(snap, ledger); err == nil || !strings.Contains(err.Error(), "pane 1") {
		t.Errorf("released pane handle not reported: %v", err)
	}

	snap.Windows[0].Tabs[0].Panes = nil
	snap.Detached = []state.PaneSnapshot{{ID: 2, VAO: bar}}
	if err := checkHandles(snap, ledger); err == nil || !strings.Contains(err.Error(), "detached pane 2") {
		t.Errorf("detached pane holding a handle not reported: %v", err)
	}
}
