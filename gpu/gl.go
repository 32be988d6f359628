package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// vertex sizes in floats
const (
	cellVertexFloats   = 4 // <vec2 pos, vec2 tex>
	borderVertexFloats = 5 // <vec4 rect, packed color>
)

type vertexArray struct {
	vao    uint32
	vbo    uint32
	layout Layout
	live   bool
}

// GL allocates real vertex arrays through OpenGL. gl.Init must have run on a
// current context before the first allocation.
type GL struct {
	slots []vertexArray
	free  []Handle
}

// NewGL creates an empty OpenGL allocator
func NewGL() *GL {
	return &GL{}
}

func (g *GL) slot() Handle {
	if n := len(g.free); n > 0 {
		h := g.free[n-1]
		g.free = g.free[:n-1]
		return h
	}
	g.slots = append(g.slots, vertexArray{})
	return Handle(len(g.slots) - 1)
}

func (g *GL) create(layout Layout, floats int32) Handle {
	h := g.slot()
	va := &g.slots[h]
	gl.GenVertexArrays(1, &va.vao)
	gl.GenBuffers(1, &va.vbo)
	if va.vao == 0 || va.vbo == 0 {
		panic(fmt.Sprintf("gpu: failed to allocate %s vertex array", layout))
	}
	gl.BindVertexArray(va.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, int(6*floats*4), nil, gl.DYNAMIC_DRAW)
	switch layout {
	case BorderLayout:
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, floats*4, 0)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, floats*4, 4*4)
	default:
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, floats*4, 0)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	va.layout = layout
	va.live = true
	return h
}

// CreateCellVAO allocates a vertex array for cell/glyph geometry
func (g *GL) CreateCellVAO() Handle {
	return g.create(CellLayout, cellVertexFloats)
}

// CreateBorderVAO allocates a vertex array for border rectangles
func (g *GL) CreateBorderVAO() Handle {
	return g.create(BorderLayout, borderVertexFloats)
}

// RemoveVAO deletes the vertex array and its buffer
func (g *GL) RemoveVAO(h Handle) {
	if !g.live(h) {
		return
	}
	va := &g.slots[h]
	gl.DeleteVertexArrays(1, &va.vao)
	gl.DeleteBuffers(1, &va.vbo)
	*va = vertexArray{}
	g.free = append(g.free, h)
}

func (g *GL) live(h Handle) bool {
	return h.Valid() && int(h) < len(g.slots) && g.slots[h].live
}

// Upload replaces the vertex data of h and leaves its array bound.
// Returns the number of vertices uploaded.
func (g *GL) Upload(h Handle, data []float32) int32 {
	if !g.live(h) || len(data) == 0 {
		return 0
	}
	va := &g.slots[h]
	gl.BindVertexArray(va.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	floats := int32(cellVertexFloats)
	if va.layout == BorderLayout {
		floats = borderVertexFloats
	}
	return int32(len(data)) / floats
}

// Bind binds the vertex array of h
func (g *GL) Bind(h Handle) bool {
	if !g.live(h) {
		return false
	}
	gl.BindVertexArray(g.slots[h].vao)
	return true
}

// Destroy releases every live vertex array
func (g *GL) Destroy() {
	for i := range g.slots {
		g.RemoveVAO(Handle(i))
	}
	g.slots = nil
	g.free = nil
}
