// Package render draws registry state. It owns no entities: it reads the
// active tab of each window, uploads geometry into the vertex arrays the
// registry bound to tabs and panes, and clears the dirty flags it consumed.
package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/javanhut/ravenstate/gpu"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/state"
)

// Renderer draws OS windows through a gpu.GL allocator
type Renderer struct {
	theme Theme
	vaos  *gpu.GL

	quadProgram   uint32
	colorLoc      int32
	borderProgram uint32

	// vertex counts of uploaded border arrays, kept until the tab's
	// borders are dirty again
	borderCounts map[gpu.Handle]int32
}

// NewRenderer compiles the shaders. A context must be current.
func NewRenderer(vaos *gpu.GL, theme Theme) (*Renderer, error) {
	r := &Renderer{
		theme:        theme,
		vaos:         vaos,
		borderCounts: make(map[gpu.Handle]int32),
	}
	var err error
	r.quadProgram, err = createProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create quad shader: %w", err)
	}
	r.colorLoc = gl.GetUniformLocation(r.quadProgram, gl.Str("color\x00"))

	r.borderProgram, err = createProgram(borderVertexShader, borderFragmentShader)
	if err != nil {
		gl.DeleteProgram(r.quadProgram)
		return nil, fmt.Errorf("failed to create border shader: %w", err)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return r, nil
}

// SetTheme replaces the colors used for the next frames
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
}

// NeedsFrame reports whether a window has anything to redraw
func NeedsFrame(reg *state.Registry, osWindowID ids.ID) bool {
	need := false
	reg.WithOSWindow(osWindowID, func(w *state.OSWindow) {
		need = w.NeedsRender() || w.Damaged() || !w.TabBarDataUpdated()
		if t := w.ActiveTab(); t != nil {
			need = need || t.Borders().Dirty
			t.EachPane(func(_ int, p *state.Pane) {
				if s := p.RenderData().Screen; s != nil {
					need = need || s.LayoutDirty() || s.SpritePositionsDirty() || s.ReloadAllGPUData()
				}
			})
		}
	})
	return need
}

// DrawWindow draws one OS window. The window's context must be current.
func (r *Renderer) DrawWindow(reg *state.Registry, osWindowID ids.ID) bool {
	vp, ok := reg.QueryRegions(osWindowID)
	if !ok {
		return false
	}
	return reg.WithOSWindow(osWindowID, func(w *state.OSWindow) {
		gl.Viewport(0, 0, int32(vp.Width), int32(vp.Height))
		bg := r.theme.ClearColor(w.BackgroundOpacity())
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)

		r.drawTabBar(w, vp)
		if t := w.ActiveTab(); t != nil {
			r.drawPanes(t)
			r.drawBorders(t)
		}
		w.Rendered()
		w.TabBarUpdated()
	})
}

func (r *Renderer) fill(h gpu.Handle, data []float32, color [4]float32) {
	n := r.vaos.Upload(h, data)
	if n == 0 {
		return
	}
	gl.UseProgram(r.quadProgram)
	gl.Uniform4fv(r.colorLoc, 1, &color[0])
	gl.DrawArrays(gl.TRIANGLES, 0, n)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawTabBar(w *state.OSWindow, vp state.Viewport) {
	h := w.TabBarRenderData().VAO
	if vp.TabBar.Empty() || !h.Valid() {
		return
	}
	r.fill(h, regionQuad(vp.TabBar, vp.Width, vp.Height), r.theme.TabBar)
	seg := tabSegment(vp.TabBar, w.NumTabs(), w.ActiveTabIndex())
	r.fill(h, regionQuad(seg, vp.Width, vp.Height), r.theme.TabActive)
}

func (r *Renderer) drawPanes(t *state.Tab) {
	t.EachPane(func(i int, p *state.Pane) {
		rd := p.RenderData()
		if !p.Visible() || rd.Screen == nil || !rd.VAO.Valid() {
			return
		}
		color := r.theme.Background
		if i == t.ActivePaneIndex() && t.NumPanes() > 1 {
			color = r.theme.Selection
		}
		cols, rows := rd.Screen.Size()
		r.fill(rd.VAO, paneQuad(rd, cols, rows), color)
		rd.Screen.Rendered()
	})
}

func (r *Renderer) drawBorders(t *state.Tab) {
	b := t.Borders()
	if !b.VAO.Valid() {
		return
	}
	if b.Dirty {
		r.borderCounts[b.VAO] = r.vaos.Upload(b.VAO, borderVertices(b.Rects))
		t.ClearBordersDirty()
	}
	n := r.borderCounts[b.VAO]
	if n == 0 || !r.vaos.Bind(b.VAO) {
		return
	}
	gl.UseProgram(r.borderProgram)
	gl.DrawArrays(gl.TRIANGLES, 0, n)
	gl.BindVertexArray(0)
}

// Destroy deletes the shader programs
func (r *Renderer) Destroy() {
	gl.DeleteProgram(r.quadProgram)
	gl.DeleteProgram(r.borderProgram)
}
