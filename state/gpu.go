package state

import "github.com/javanhut/ravenstate/gpu"

// The binder pairs each attached pane and each tab with one vertex array.
// Callers make the owning window's context current first.

func (r *Registry) createPaneGPU(p *Pane) {
	p.render.VAO = r.gpu.CreateCellVAO()
}

func (r *Registry) releasePaneGPU(p *Pane) {
	if p.render.VAO.Valid() {
		r.gpu.RemoveVAO(p.render.VAO)
	}
	p.render.VAO = gpu.NoHandle
}

func (r *Registry) createTabGPU(t *Tab) {
	t.borders.VAO = r.gpu.CreateBorderVAO()
}

func (r *Registry) releaseTabGPU(t *Tab) {
	if t.borders.VAO.Valid() {
		r.gpu.RemoveVAO(t.borders.VAO)
	}
	t.borders.VAO = gpu.NoHandle
}

func (r *Registry) createTabBarGPU(w *OSWindow) {
	w.tabBar.VAO = r.gpu.CreateCellVAO()
}

func (r *Registry) releaseTabBarGPU(w *OSWindow) {
	if w.tabBar.VAO.Valid() {
		r.gpu.RemoveVAO(w.tabBar.VAO)
	}
	w.tabBar.VAO = gpu.NoHandle
}
