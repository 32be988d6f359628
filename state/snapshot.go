package state

import (
	"github.com/javanhut/ravenstate/gpu"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
)

// Snapshot is a read-only copy of the registry tree, safe to keep
type Snapshot struct {
	Windows  []WindowSnapshot `yaml:"os_windows"`
	Detached []PaneSnapshot   `yaml:"detached,omitempty"`
	Callback ids.ID           `yaml:"callback_os_window,omitempty"`
	Quit     string           `yaml:"quit_request"`
}

type WindowSnapshot struct {
	ID           ids.ID          `yaml:"id"`
	Focused      bool            `yaml:"focused"`
	ActiveTab    int             `yaml:"active_tab"`
	FontSize     float64         `yaml:"font_size"`
	Cell         screen.CellSize `yaml:"cell"`
	Viewport     Viewport        `yaml:"viewport"`
	Opacity      float32         `yaml:"background_opacity"`
	CloseRequest string          `yaml:"close_request"`
	TabBarVAO    gpu.Handle      `yaml:"tab_bar_vao"`
	Tabs         []TabSnapshot   `yaml:"tabs"`
}

type TabSnapshot struct {
	ID          ids.ID         `yaml:"id"`
	ActivePane  int            `yaml:"active_pane"`
	BorderVAO   gpu.Handle     `yaml:"border_vao"`
	BorderRects int            `yaml:"border_rects"`
	Panes       []PaneSnapshot `yaml:"panes"`
}

type PaneSnapshot struct {
	ID          ids.ID     `yaml:"id"`
	Title       string     `yaml:"title"`
	Visible     bool       `yaml:"visible"`
	VAO         gpu.Handle `yaml:"vao"`
	Geometry    Geometry   `yaml:"geometry"`
	HasScreen   bool       `yaml:"has_screen"`
	LayoutDirty bool       `yaml:"layout_dirty,omitempty"`
}

func snapshotPane(p *Pane) PaneSnapshot {
	ps := PaneSnapshot{
		ID:       p.id,
		Title:    p.title,
		Visible:  p.visible,
		VAO:      p.render.VAO,
		Geometry: p.geometry,
	}
	if s := p.render.Screen; s != nil {
		ps.HasScreen = true
		ps.LayoutDirty = s.LayoutDirty()
	}
	return ps
}

// Snapshot copies the current tree
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		Callback: r.CallbackOSWindowID(),
		Quit:     r.quitRequest.String(),
	}
	for i := range r.windows.items {
		w := r.windows.at(i)
		vp, _ := r.QueryRegions(w.id)
		ws := WindowSnapshot{
			ID:           w.id,
			Focused:      w.focused,
			ActiveTab:    w.activeTab,
			FontSize:     w.fontSize,
			Cell:         w.cell,
			Viewport:     vp,
			Opacity:      w.backgroundOpacity,
			CloseRequest: w.closeRequest.String(),
			TabBarVAO:    w.tabBar.VAO,
		}
		w.EachTab(func(_ int, t *Tab) {
			ts := TabSnapshot{
				ID:          t.id,
				ActivePane:  t.activePane,
				BorderVAO:   t.borders.VAO,
				BorderRects: len(t.borders.Rects),
			}
			t.EachPane(func(_ int, p *Pane) {
				ts.Panes = append(ts.Panes, snapshotPane(p))
			})
			ws.Tabs = append(ws.Tabs, ts)
		})
		snap.Windows = append(snap.Windows, ws)
	}
	for i := range r.detached.items {
		snap.Detached = append(snap.Detached, snapshotPane(r.detached.at(i)))
	}
	return snap
}
