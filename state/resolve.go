package state

import "github.com/javanhut/ravenstate/ids"

// windowRef, tabRef and paneRef are positions valid until the next
// structural change of the stores they index
type windowRef struct {
	w int
}

type tabRef struct {
	w, t int
}

type paneRef struct {
	w, t, p int
}

func (r *Registry) resolveOSWindow(osWindowID ids.ID) (windowRef, bool) {
	w := r.windows.find(osWindowID)
	return windowRef{w: w}, w >= 0
}

func (r *Registry) resolveTab(osWindowID, tabID ids.ID) (tabRef, bool) {
	wr, ok := r.resolveOSWindow(osWindowID)
	if !ok {
		return tabRef{}, false
	}
	t := r.windows.at(wr.w).tabs.find(tabID)
	return tabRef{w: wr.w, t: t}, t >= 0
}

func (r *Registry) resolvePane(osWindowID, tabID, paneID ids.ID) (paneRef, bool) {
	tr, ok := r.resolveTab(osWindowID, tabID)
	if !ok {
		return paneRef{}, false
	}
	p := r.tabAt(tr).panes.find(paneID)
	return paneRef{w: tr.w, t: tr.t, p: p}, p >= 0
}

func (r *Registry) windowAt(ref windowRef) *OSWindow {
	return r.windows.at(ref.w)
}

func (r *Registry) tabAt(ref tabRef) *Tab {
	return r.windows.at(ref.w).tabs.at(ref.t)
}

func (r *Registry) paneAt(ref paneRef) *Pane {
	return r.windows.at(ref.w).tabs.at(ref.t).panes.at(ref.p)
}

// WithOSWindow calls fn with the window if it exists. The pointer must not
// be kept after fn returns.
func (r *Registry) WithOSWindow(osWindowID ids.ID, fn func(w *OSWindow)) bool {
	ref, ok := r.resolveOSWindow(osWindowID)
	if !ok {
		return false
	}
	fn(r.windowAt(ref))
	return true
}

// WithTab calls fn with the tab and its window if both exist
func (r *Registry) WithTab(osWindowID, tabID ids.ID, fn func(w *OSWindow, t *Tab)) bool {
	ref, ok := r.resolveTab(osWindowID, tabID)
	if !ok {
		return false
	}
	fn(r.windows.at(ref.w), r.tabAt(ref))
	return true
}

// WithPane calls fn with the pane, its tab and its window if all exist
func (r *Registry) WithPane(osWindowID, tabID, paneID ids.ID, fn func(w *OSWindow, t *Tab, p *Pane)) bool {
	ref, ok := r.resolvePane(osWindowID, tabID, paneID)
	if !ok {
		return false
	}
	fn(r.windows.at(ref.w), r.tabAt(tabRef{w: ref.w, t: ref.t}), r.paneAt(ref))
	return true
}

// locatePane searches the whole tree for a pane
func (r *Registry) locatePane(paneID ids.ID) (paneRef, bool) {
	for w := range r.windows.items {
		osw := r.windows.at(w)
		for t := range osw.tabs.items {
			if p := osw.tabs.at(t).panes.find(paneID); p >= 0 {
				return paneRef{w: w, t: t, p: p}, true
			}
		}
	}
	return paneRef{}, false
}

// PaneLocation returns the window and tab currently holding paneID
func (r *Registry) PaneLocation(paneID ids.ID) (osWindowID, tabID ids.ID, ok bool) {
	ref, ok := r.locatePane(paneID)
	if !ok {
		return 0, 0, false
	}
	osw := r.windows.at(ref.w)
	return osw.id, osw.tabs.at(ref.t).id, true
}
