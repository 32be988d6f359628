package state

import "github.com/javanhut/ravenstate/ids"

// DetachPane moves a pane out of its tab into the detached pool. Its GPU
// handle is released; its screen, title and geometry travel with it. The
// tab re-selects its active pane as if the pane had been removed.
func (r *Registry) DetachPane(osWindowID, tabID, paneID ids.ID) bool {
	ref, ok := r.resolvePane(osWindowID, tabID, paneID)
	if !ok {
		r.log.Debug("detach: pane not found", "os_window", osWindowID, "tab", tabID, "pane", paneID)
		return false
	}
	r.ctx.MakeContextCurrent(osWindowID)
	p := r.paneAt(ref)
	r.releasePaneGPU(p)
	r.detached.add(*p)

	t := r.tabAt(tabRef{w: ref.w, t: ref.t})
	removeTracked(&t.panes, &t.activePane, paneID, nil)
	w := r.windows.at(ref.w)
	w.needsRender = true
	w.tabBarDataUpdated = false
	r.log.Debug("pane detached", "os_window", osWindowID, "tab", tabID, "pane", paneID)
	return true
}

// AttachPane appends a detached pane to a tab, possibly in another OS
// window, and gives it a fresh GPU handle. A pane whose screen was laid out
// for a different cell size is re-laid out; otherwise only its sprite
// positions are invalidated. Either way the screen re-uploads all GPU data
// on the next frame.
func (r *Registry) AttachPane(osWindowID, tabID, paneID ids.ID) bool {
	ref, ok := r.resolveTab(osWindowID, tabID)
	if !ok {
		return false
	}
	d := r.detached.find(paneID)
	if d < 0 {
		r.log.Debug("attach: pane not detached", "pane", paneID)
		return false
	}
	r.ctx.MakeContextCurrent(osWindowID)
	w := r.windows.at(ref.w)
	t := r.tabAt(ref)
	i := t.panes.add(*r.detached.at(d))
	p := t.panes.at(i)
	r.createPaneGPU(p)

	if s := p.render.Screen; s != nil {
		if s.CellSize() != w.cell {
			s.Relayout(w.cell)
		} else {
			s.DirtySpritePositions()
		}
		s.MarkReloadAllGPUData()
		p.render = w.screenRenderData(p.render.VAO, s, p.geometry)
	}
	r.detached.removeAt(d)
	w.needsRender = true
	w.tabBarDataUpdated = false
	r.log.Debug("pane attached", "os_window", osWindowID, "tab", tabID, "pane", paneID)
	return true
}

// NumDetached returns the number of panes in the detached pool
func (r *Registry) NumDetached() int {
	return r.detached.len()
}
