package state

import (
	"github.com/javanhut/ravenstate/gpu"
	"github.com/javanhut/ravenstate/ids"
)

// BorderRect is one border rectangle in GL clip space
type BorderRect struct {
	Left, Top, Right, Bottom float32
	Color                    uint32
}

// BorderRects is a tab's border geometry
type BorderRects struct {
	VAO   gpu.Handle
	Rects []BorderRect
	Dirty bool
}

// Tab is an ordered group of panes with one active pane
type Tab struct {
	id         ids.ID
	panes      store[Pane, *Pane]
	activePane int
	borders    BorderRects
}

func (t *Tab) ID() ids.ID           { return t.id }
func (t *Tab) NumPanes() int        { return t.panes.len() }
func (t *Tab) ActivePaneIndex() int { return t.activePane }

// Borders returns the border geometry. Rects must be treated as read-only.
func (t *Tab) Borders() BorderRects { return t.borders }

// ClearBordersDirty marks the border geometry as uploaded
func (t *Tab) ClearBordersDirty() { t.borders.Dirty = false }

// Pane returns the pane at index i
func (t *Tab) Pane(i int) *Pane { return t.panes.at(i) }

// ActivePane returns the active pane or nil when the tab is empty
func (t *Tab) ActivePane() *Pane {
	if t.activePane < 0 || t.activePane >= t.panes.len() {
		return nil
	}
	return t.panes.at(t.activePane)
}

// EachPane calls fn for every pane in order
func (t *Tab) EachPane(fn func(i int, p *Pane)) {
	for i := range t.panes.items {
		fn(i, t.panes.at(i))
	}
}

// destroyTab tears down all panes, last first, then the border geometry
func (r *Registry) destroyTab(t *Tab) {
	for n := t.panes.len(); n > 0; n = t.panes.len() {
		removeTracked(&t.panes, &t.activePane, t.panes.idAt(n-1), r.destroyPane)
	}
	r.releaseTabGPU(t)
	t.borders.Rects = nil
	t.panes.items = nil
}

// CreateTab appends a tab to an OS window and returns its id, or 0 if the
// window does not exist. The new tab is not made active.
func (r *Registry) CreateTab(osWindowID ids.ID) ids.ID {
	ref, ok := r.resolveOSWindow(osWindowID)
	if !ok {
		r.log.Debug("create tab: os window not found", "os_window", osWindowID)
		return 0
	}
	r.ctx.MakeContextCurrent(osWindowID)
	w := r.windowAt(ref)
	i := w.tabs.add(Tab{
		id:      r.ids.Next(ids.Tab),
		borders: BorderRects{VAO: gpu.NoHandle, Dirty: true},
	})
	t := w.tabs.at(i)
	r.createTabGPU(t)
	w.tabBarDataUpdated = false
	r.log.Debug("tab created", "os_window", osWindowID, "tab", t.id)
	return t.id
}

func (r *Registry) removeTabInner(w *OSWindow, tabID ids.ID) bool {
	r.ctx.MakeContextCurrent(w.id)
	if !removeTracked(&w.tabs, &w.activeTab, tabID, r.destroyTab) {
		return false
	}
	w.tabBarDataUpdated = false
	w.needsRender = true
	return true
}

// RemoveTab destroys a tab and every pane in it
func (r *Registry) RemoveTab(osWindowID, tabID ids.ID) bool {
	ref, ok := r.resolveOSWindow(osWindowID)
	if !ok {
		return false
	}
	if !r.removeTabInner(r.windowAt(ref), tabID) {
		return false
	}
	r.log.Debug("tab removed", "os_window", osWindowID, "tab", tabID)
	return true
}

// SetActiveTab makes the tab at index active. The index is not validated;
// passing one outside [0, NumTabs) is a caller error.
func (r *Registry) SetActiveTab(osWindowID ids.ID, index int) bool {
	return r.WithOSWindow(osWindowID, func(w *OSWindow) {
		w.activeTab = index
		w.needsRender = true
	})
}

// NextTab activates the tab after the active one, wrapping around
func (r *Registry) NextTab(osWindowID ids.ID) bool {
	return r.cycleTab(osWindowID, 1)
}

// PrevTab activates the tab before the active one, wrapping around
func (r *Registry) PrevTab(osWindowID ids.ID) bool {
	return r.cycleTab(osWindowID, -1)
}

func (r *Registry) cycleTab(osWindowID ids.ID, delta int) bool {
	ref, ok := r.resolveOSWindow(osWindowID)
	if !ok {
		return false
	}
	w := r.windowAt(ref)
	if !cycle(&w.activeTab, w.tabs.len(), delta) {
		return false
	}
	w.needsRender = true
	return true
}

// SwapTabs exchanges the tabs at indices a and b. The active index is left
// alone, so it keeps pointing at a position rather than a tab.
func (r *Registry) SwapTabs(osWindowID ids.ID, a, b int) bool {
	return r.WithOSWindow(osWindowID, func(w *OSWindow) {
		w.tabs.swap(a, b)
		w.tabBarDataUpdated = false
		w.needsRender = true
	})
}

// AddBordersRect appends a border rectangle given in viewport pixels. An
// all-zero rectangle clears the tab's borders instead.
func (r *Registry) AddBordersRect(osWindowID, tabID ids.ID, left, top, right, bottom, color uint32) bool {
	return r.WithTab(osWindowID, tabID, func(w *OSWindow, t *Tab) {
		br := &t.borders
		br.Dirty = true
		if left == 0 && top == 0 && right == 0 && bottom == 0 {
			br.Rects = br.Rects[:0]
			return
		}
		rect := BorderRect{
			Left:  glPosX(left, w.viewportWidth),
			Top:   glPosY(top, w.viewportHeight),
			Color: color,
		}
		rect.Right = rect.Left + glSize(right-left, w.viewportWidth)
		rect.Bottom = rect.Top - glSize(bottom-top, w.viewportHeight)
		br.Rects = append(br.Rects, rect)
	})
}

// TabIDs returns the ids of a window's tabs in order
func (r *Registry) TabIDs(osWindowID ids.ID) []ids.ID {
	ref, ok := r.resolveOSWindow(osWindowID)
	if !ok {
		return nil
	}
	return r.windowAt(ref).tabs.idList()
}

// ActiveTabID returns the id of a window's active tab, or 0
func (r *Registry) ActiveTabID(osWindowID ids.ID) ids.ID {
	ref, ok := r.resolveOSWindow(osWindowID)
	if !ok {
		return 0
	}
	w := r.windowAt(ref)
	return w.tabs.idAt(w.activeTab)
}

// ActiveTabIndex returns a window's active tab index and whether the
// window exists
func (r *Registry) ActiveTabIndex(osWindowID ids.ID) (int, bool) {
	ref, ok := r.resolveOSWindow(osWindowID)
	if !ok {
		return 0, false
	}
	return r.windowAt(ref).activeTab, true
}

// ActivePaneIndex returns a tab's active pane index and whether the tab
// exists
func (r *Registry) ActivePaneIndex(osWindowID, tabID ids.ID) (int, bool) {
	ref, ok := r.resolveTab(osWindowID, tabID)
	if !ok {
		return 0, false
	}
	return r.tabAt(ref).activePane, true
}

func glSize(px, viewport uint32) float32 {
	if viewport == 0 {
		return 0
	}
	return 2 * float32(px) / float32(viewport)
}

func glPosX(px, viewport uint32) float32 {
	return -1 + glSize(px, viewport)
}

func glPosY(px, viewport uint32) float32 {
	return 1 - glSize(px, viewport)
}
