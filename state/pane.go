package state

import (
	"github.com/javanhut/ravenstate/gpu"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
)

// Geometry is a pixel rectangle inside the OS window viewport
type Geometry struct {
	Left   uint32 `yaml:"left"`
	Top    uint32 `yaml:"top"`
	Right  uint32 `yaml:"right"`
	Bottom uint32 `yaml:"bottom"`
}

// Padding is the blank space between a pane's geometry and its cells
type Padding struct {
	Left, Top, Right, Bottom uint32
}

// RenderData binds a screen to its GPU geometry. XStart/YStart is the top
// left corner and DX/DY the cell step, all in GL clip space.
type RenderData struct {
	VAO    gpu.Handle
	Screen *screen.Screen
	XStart float32
	YStart float32
	DX     float32
	DY     float32
}

// Pane is one terminal surface
type Pane struct {
	id       ids.ID
	visible  bool
	title    string
	render   RenderData
	geometry Geometry
	padding  Padding
}

func (p *Pane) ID() ids.ID             { return p.id }
func (p *Pane) Visible() bool          { return p.visible }
func (p *Pane) Title() string          { return p.title }
func (p *Pane) RenderData() RenderData { return p.render }
func (p *Pane) Geometry() Geometry     { return p.geometry }
func (p *Pane) Padding() Padding       { return p.padding }

// destroyPane drops the pane's references and releases its GPU handle
func (r *Registry) destroyPane(p *Pane) {
	if p.render.Screen != nil {
		p.render.Screen.Release()
		p.render.Screen = nil
	}
	p.title = ""
	r.releasePaneGPU(p)
}

// CreatePane adds a pane to a tab and returns its id, or 0 if the tab does
// not exist. The new pane is not made active.
func (r *Registry) CreatePane(osWindowID, tabID ids.ID, title string) ids.ID {
	ref, ok := r.resolveTab(osWindowID, tabID)
	if !ok {
		r.log.Debug("create pane: tab not found", "os_window", osWindowID, "tab", tabID)
		return 0
	}
	r.ctx.MakeContextCurrent(osWindowID)
	t := r.tabAt(ref)
	i := t.panes.add(Pane{
		id:      r.ids.Next(ids.Pane),
		visible: true,
		title:   title,
		render:  RenderData{VAO: gpu.NoHandle},
	})
	p := t.panes.at(i)
	r.createPaneGPU(p)
	r.log.Debug("pane created", "os_window", osWindowID, "tab", tabID, "pane", p.id)
	return p.id
}

// RemovePane destroys a pane
func (r *Registry) RemovePane(osWindowID, tabID, paneID ids.ID) bool {
	ref, ok := r.resolveTab(osWindowID, tabID)
	if !ok {
		return false
	}
	r.ctx.MakeContextCurrent(osWindowID)
	t := r.tabAt(ref)
	if !removeTracked(&t.panes, &t.activePane, paneID, r.destroyPane) {
		return false
	}
	r.log.Debug("pane removed", "os_window", osWindowID, "tab", tabID, "pane", paneID)
	return true
}

// SetActivePane makes a pane the active one of its tab
func (r *Registry) SetActivePane(osWindowID, tabID, paneID ids.ID) bool {
	ref, ok := r.resolvePane(osWindowID, tabID, paneID)
	if !ok {
		return false
	}
	r.tabAt(tabRef{w: ref.w, t: ref.t}).activePane = ref.p
	r.windows.at(ref.w).needsRender = true
	r.WithCallbackWindow(osWindowID, func() {
		r.platform.SetChrome(osWindowID)
	})
	return true
}

// NextPane activates the pane after the active one, wrapping around
func (r *Registry) NextPane(osWindowID, tabID ids.ID) bool {
	return r.cyclePane(osWindowID, tabID, 1)
}

// PrevPane activates the pane before the active one, wrapping around
func (r *Registry) PrevPane(osWindowID, tabID ids.ID) bool {
	return r.cyclePane(osWindowID, tabID, -1)
}

func (r *Registry) cyclePane(osWindowID, tabID ids.ID, delta int) bool {
	ref, ok := r.resolveTab(osWindowID, tabID)
	if !ok {
		return false
	}
	t := r.tabAt(ref)
	if !cycle(&t.activePane, t.panes.len(), delta) {
		return false
	}
	r.windows.at(ref.w).needsRender = true
	return true
}

// SetRenderData installs a screen and geometry on a pane. The registry
// takes its own reference on s and drops the one on the previous screen.
// The pane keeps its GPU handle.
func (r *Registry) SetRenderData(osWindowID, tabID, paneID ids.ID, s *screen.Screen, g Geometry) bool {
	ref, ok := r.resolvePane(osWindowID, tabID, paneID)
	if !ok {
		return false
	}
	osw := r.windows.at(ref.w)
	p := r.paneAt(ref)
	if s != nil {
		s.Retain()
	}
	if p.render.Screen != nil {
		p.render.Screen.Release()
	}
	p.render = osw.screenRenderData(p.render.VAO, s, g)
	p.geometry = g
	return true
}

// SetPadding sets a pane's padding
func (r *Registry) SetPadding(osWindowID, tabID, paneID ids.ID, pad Padding) bool {
	return r.WithPane(osWindowID, tabID, paneID, func(_ *OSWindow, _ *Tab, p *Pane) {
		p.padding = pad
	})
}

// UpdateVisibility shows or hides a pane
func (r *Registry) UpdateVisibility(osWindowID, tabID, paneID ids.ID, visible bool) bool {
	return r.WithPane(osWindowID, tabID, paneID, func(w *OSWindow, _ *Tab, p *Pane) {
		if p.visible != visible {
			w.needsRender = true
		}
		p.visible = visible
	})
}

// SetTitle renames a pane
func (r *Registry) SetTitle(osWindowID, tabID, paneID ids.ID, title string) bool {
	ok := r.WithPane(osWindowID, tabID, paneID, func(_ *OSWindow, _ *Tab, p *Pane) {
		p.title = title
	})
	return ok && r.MarkTabBarDirty(osWindowID)
}

// PaneIDs returns the ids of a tab's panes in order
func (r *Registry) PaneIDs(osWindowID, tabID ids.ID) []ids.ID {
	ref, ok := r.resolveTab(osWindowID, tabID)
	if !ok {
		return nil
	}
	return r.tabAt(ref).panes.idList()
}

// ActivePaneID returns the id of a tab's active pane, or 0
func (r *Registry) ActivePaneID(osWindowID, tabID ids.ID) ids.ID {
	ref, ok := r.resolveTab(osWindowID, tabID)
	if !ok {
		return 0
	}
	t := r.tabAt(ref)
	return t.panes.idAt(t.activePane)
}
