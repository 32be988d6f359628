package state

import (
	"github.com/javanhut/ravenstate/config"
	"github.com/javanhut/ravenstate/gpu"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
)

// CloseRequest is the close state of an OS window or the application
type CloseRequest int

const (
	NoCloseRequested CloseRequest = iota
	ConfirmableCloseRequested
	CloseBeingConfirmed
	ImperativeCloseRequested
)

func (c CloseRequest) String() string {
	switch c {
	case NoCloseRequested:
		return "none"
	case ConfirmableCloseRequested:
		return "confirmable"
	case CloseBeingConfirmed:
		return "being_confirmed"
	case ImperativeCloseRequested:
		return "imperative"
	default:
		return "unknown"
	}
}

// OSWindow is a top-level platform window and everything it owns
type OSWindow struct {
	id        ids.ID
	tabs      store[Tab, *Tab]
	activeTab int

	focused            bool
	lastFocusedCounter uint64
	needsRender        bool
	isDamaged          bool
	tabBarDataUpdated  bool

	viewportWidth  uint32
	viewportHeight uint32
	logicalDPI     DPI
	fontSize       float64
	cell           screen.CellSize

	tabBar            RenderData
	backgroundOpacity float32
	closeRequest      CloseRequest
}

func (w *OSWindow) ID() ids.ID                   { return w.id }
func (w *OSWindow) NumTabs() int                 { return w.tabs.len() }
func (w *OSWindow) ActiveTabIndex() int          { return w.activeTab }
func (w *OSWindow) Focused() bool                { return w.focused }
func (w *OSWindow) NeedsRender() bool            { return w.needsRender }
func (w *OSWindow) Damaged() bool                { return w.isDamaged }
func (w *OSWindow) CellSize() screen.CellSize    { return w.cell }
func (w *OSWindow) FontSize() float64            { return w.fontSize }
func (w *OSWindow) BackgroundOpacity() float32   { return w.backgroundOpacity }
func (w *OSWindow) CloseRequest() CloseRequest   { return w.closeRequest }
func (w *OSWindow) TabBarRenderData() RenderData { return w.tabBar }

// ViewportSize returns the framebuffer size in pixels
func (w *OSWindow) ViewportSize() (width, height uint32) {
	return w.viewportWidth, w.viewportHeight
}

// Tab returns the tab at index i
func (w *OSWindow) Tab(i int) *Tab { return w.tabs.at(i) }

// ActiveTab returns the active tab or nil when there are none
func (w *OSWindow) ActiveTab() *Tab {
	if w.activeTab < 0 || w.activeTab >= w.tabs.len() {
		return nil
	}
	return w.tabs.at(w.activeTab)
}

// EachTab calls fn for every tab in order
func (w *OSWindow) EachTab(fn func(i int, t *Tab)) {
	for i := range w.tabs.items {
		fn(i, w.tabs.at(i))
	}
}

// Rendered clears the render and damage flags after a frame
func (w *OSWindow) Rendered() {
	w.needsRender = false
	w.isDamaged = false
}

// TabBarUpdated marks the tab bar contents as current
func (w *OSWindow) TabBarUpdated() {
	w.tabBarDataUpdated = true
}

// TabBarDataUpdated reports whether the tab bar contents are current
func (w *OSWindow) TabBarDataUpdated() bool {
	return w.tabBarDataUpdated
}

func (w *OSWindow) screenRenderData(vao gpu.Handle, s *screen.Screen, g Geometry) RenderData {
	return RenderData{
		VAO:    vao,
		Screen: s,
		DX:     glSize(w.cell.Width, w.viewportWidth),
		DY:     glSize(w.cell.Height, w.viewportHeight),
		XStart: glPosX(g.Left, w.viewportWidth),
		YStart: glPosY(g.Top, w.viewportHeight),
	}
}

func (r *Registry) dpiFor(w *OSWindow) DPI {
	if w.logicalDPI.X == 0 && w.logicalDPI.Y == 0 {
		return r.defaultDPI
	}
	return w.logicalDPI
}

func (r *Registry) loadCellSize(w *OSWindow) {
	dpi := r.dpiFor(w)
	w.cell = r.fonts.CellSize(w.fontSize, dpi.X, dpi.Y)
}

// CreateWindow registers a new OS window and returns its id. The context
// activator is asked to make the new id current before its tab bar
// geometry is allocated; backends create the platform window at that point.
// After Shutdown it returns 0.
func (r *Registry) CreateWindow() ids.ID {
	if r.shutdown {
		r.log.Debug("create os window after shutdown")
		return 0
	}
	id := r.ids.Next(ids.OSWindow)
	i := r.windows.add(OSWindow{
		id:                id,
		fontSize:          r.cfg.FontSize,
		backgroundOpacity: r.cfg.BackgroundOpacity,
		needsRender:       true,
		tabBar:            RenderData{VAO: gpu.NoHandle},
	})
	w := r.windows.at(i)
	r.loadCellSize(w)
	r.ctx.MakeContextCurrent(id)
	r.createTabBarGPU(r.windows.at(r.windows.find(id)))
	r.log.Debug("os window created", "os_window", id)
	return id
}

func (r *Registry) destroyOSWindow(w *OSWindow) {
	for n := w.tabs.len(); n > 0; n = w.tabs.len() {
		r.removeTabInner(w, w.tabs.idAt(n-1))
	}
	if w.tabBar.Screen != nil {
		w.tabBar.Screen.Release()
		w.tabBar.Screen = nil
	}
	r.ctx.MakeContextCurrent(w.id)
	r.releaseTabBarGPU(w)
	w.tabs.items = nil
}

// DestroyWindow tears down an OS window with all its tabs and panes
func (r *Registry) DestroyWindow(osWindowID ids.ID) bool {
	if _, ok := r.resolveOSWindow(osWindowID); !ok {
		return false
	}
	r.ctx.MakeContextCurrent(osWindowID)
	r.windows.remove(osWindowID, r.destroyOSWindow)
	if r.callbackWindow == osWindowID {
		r.callbackWindow = 0
	}
	r.log.Debug("os window destroyed", "os_window", osWindowID)
	return true
}

// MarkDirty requests a redraw of an OS window
func (r *Registry) MarkDirty(osWindowID ids.ID) bool {
	return r.WithOSWindow(osWindowID, func(w *OSWindow) {
		w.needsRender = true
	})
}

// MarkTabBarDirty requests the tab bar contents be regenerated
func (r *Registry) MarkTabBarDirty(osWindowID ids.ID) bool {
	return r.WithOSWindow(osWindowID, func(w *OSWindow) {
		w.tabBarDataUpdated = false
	})
}

// SetViewportSize records a new framebuffer size
func (r *Registry) SetViewportSize(osWindowID ids.ID, width, height uint32) bool {
	return r.WithOSWindow(osWindowID, func(w *OSWindow) {
		w.viewportWidth, w.viewportHeight = width, height
		w.needsRender = true
		w.isDamaged = true
	})
}

// SetLogicalDPI records a window's DPI and reloads its cell size
func (r *Registry) SetLogicalDPI(osWindowID ids.ID, dpi DPI) bool {
	return r.WithOSWindow(osWindowID, func(w *OSWindow) {
		if w.logicalDPI == dpi {
			return
		}
		w.logicalDPI = dpi
		r.relayoutOSWindow(w)
	})
}

// PtToPx converts points to pixels at a window's DPI. Unknown windows use
// the default DPI.
func (r *Registry) PtToPx(pt float64, osWindowID ids.ID) int {
	dpi := r.defaultDPI
	if ref, ok := r.resolveOSWindow(osWindowID); ok {
		dpi = r.dpiFor(r.windowAt(ref))
	}
	return ptToPx(pt, dpi)
}

// OSWindowFontSize changes a window's font size when size is positive and
// differs from the current one (or force is set), re-laying out every screen
// in the window. It returns the size in effect, or 0 for an unknown window.
func (r *Registry) OSWindowFontSize(osWindowID ids.ID, size float64, force bool) float64 {
	var current float64
	r.WithOSWindow(osWindowID, func(w *OSWindow) {
		if size > 0 && (force || size != w.fontSize) {
			w.fontSize = size
			r.relayoutOSWindow(w)
		}
		current = w.fontSize
	})
	return current
}

func (r *Registry) relayoutOSWindow(w *OSWindow) {
	r.loadCellSize(w)
	if s := w.tabBar.Screen; s != nil {
		s.Relayout(w.cell)
	}
	w.EachTab(func(_ int, t *Tab) {
		t.EachPane(func(_ int, p *Pane) {
			if s := p.render.Screen; s != nil {
				s.Relayout(w.cell)
			}
		})
	})
	w.needsRender = true
}

// GlobalFontSize returns the configured font size, replacing it first when
// size is positive. Existing windows keep their own size.
func (r *Registry) GlobalFontSize(size float64) float64 {
	if size > 0 {
		r.cfg.FontSize = size
	}
	return r.cfg.FontSize
}

// CellSizeForWindow returns a window's cell size
func (r *Registry) CellSizeForWindow(osWindowID ids.ID) (screen.CellSize, bool) {
	var cs screen.CellSize
	ok := r.WithOSWindow(osWindowID, func(w *OSWindow) { cs = w.cell })
	return cs, ok
}

// SetTabBarRenderData installs the screen that draws a window's tab bar
func (r *Registry) SetTabBarRenderData(osWindowID ids.ID, s *screen.Screen, g Geometry) bool {
	return r.WithOSWindow(osWindowID, func(w *OSWindow) {
		if s != nil {
			s.Retain()
		}
		if w.tabBar.Screen != nil {
			w.tabBar.Screen.Release()
		}
		w.tabBar = w.screenRenderData(w.tabBar.VAO, s, g)
	})
}

// MarkForClose records a close request for a window
func (r *Registry) MarkForClose(osWindowID ids.ID, cr CloseRequest) bool {
	return r.WithOSWindow(osWindowID, func(w *OSWindow) {
		r.hasPendingCloses = true
		w.closeRequest = cr
	})
}

// SetQuitRequest records an application-wide close request
func (r *Registry) SetQuitRequest(cr CloseRequest) {
	r.quitRequest = cr
	r.hasPendingCloses = true
}

// QuitRequest returns the application-wide close request
func (r *Registry) QuitRequest() CloseRequest {
	return r.quitRequest
}

// HasPendingCloses reports whether any close request awaits processing
func (r *Registry) HasPendingCloses() bool {
	return r.hasPendingCloses
}

// PendingCloses returns the windows with a close request and clears the
// pending flag
func (r *Registry) PendingCloses() []ids.ID {
	var out []ids.ID
	for i := range r.windows.items {
		if w := r.windows.at(i); w.closeRequest != NoCloseRequested {
			out = append(out, w.id)
		}
	}
	r.hasPendingCloses = false
	return out
}

// ChangeBackgroundOpacity sets a window's background opacity
func (r *Registry) ChangeBackgroundOpacity(osWindowID ids.ID, opacity float32) bool {
	return r.WithOSWindow(osWindowID, func(w *OSWindow) {
		w.backgroundOpacity = opacity
		w.isDamaged = true
	})
}

// BackgroundOpacity returns a window's background opacity
func (r *Registry) BackgroundOpacity(osWindowID ids.ID) (float32, bool) {
	var o float32
	ok := r.WithOSWindow(osWindowID, func(w *OSWindow) { o = w.backgroundOpacity })
	return o, ok
}

// ApplyOptionsUpdate adopts new options. Windows take the new background
// opacity and are marked damaged; font sizes are left to OSWindowFontSize.
func (r *Registry) ApplyOptionsUpdate(cfg *config.Config) {
	if cfg == nil {
		return
	}
	r.cfg = cfg
	for i := range r.windows.items {
		w := r.windows.at(i)
		w.backgroundOpacity = cfg.BackgroundOpacity
		w.isDamaged = true
		w.needsRender = true
		w.tabBarDataUpdated = false
	}
	r.log.Debug("options updated", "windows", r.windows.len())
}
