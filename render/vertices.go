package render

import "github.com/javanhut/ravenstate/state"

// quad returns two triangles covering the GL-space rectangle in the cell
// vertex layout <vec2 pos, vec2 tex>
func quad(x0, y0, x1, y1 float32) []float32 {
	return []float32{
		x0, y0, 0, 0,
		x1, y0, 1, 0,
		x1, y1, 1, 1,
		x0, y0, 0, 0,
		x1, y1, 1, 1,
		x0, y1, 0, 1,
	}
}

// paneQuad covers a pane's grid of cols x rows cells
func paneQuad(rd state.RenderData, cols, rows int) []float32 {
	x1 := rd.XStart + rd.DX*float32(cols)
	y1 := rd.YStart - rd.DY*float32(rows)
	return quad(rd.XStart, rd.YStart, x1, y1)
}

// regionQuad converts an inclusive pixel region to GL space
func regionQuad(r state.Region, vw, vh int) []float32 {
	if r.Empty() || vw <= 0 || vh <= 0 {
		return nil
	}
	x0 := -1 + 2*float32(r.Left)/float32(vw)
	x1 := -1 + 2*float32(r.Right+1)/float32(vw)
	y0 := 1 - 2*float32(r.Top)/float32(vh)
	y1 := 1 - 2*float32(r.Bottom+1)/float32(vh)
	return quad(x0, y0, x1, y1)
}

// tabSegment splits the tab bar into count equal segments and returns the
// one at index. The last segment absorbs the remainder.
func tabSegment(bar state.Region, count, index int) state.Region {
	if bar.Empty() || count <= 0 || index < 0 || index >= count {
		return state.Region{}
	}
	w := bar.Width() / count
	seg := bar
	seg.Left = bar.Left + index*w
	if index < count-1 {
		seg.Right = seg.Left + w - 1
	}
	return seg
}

// borderVertices expands border rects into the border vertex layout
// <vec4 rect corner, packed color>. The color is a 24-bit integer stored in
// a float, which represents it exactly.
func borderVertices(rects []state.BorderRect) []float32 {
	out := make([]float32, 0, len(rects)*6*5)
	for _, r := range rects {
		c := float32(r.Color & 0xffffff)
		out = append(out,
			r.Left, r.Top, 0, 0, c,
			r.Right, r.Top, 0, 0, c,
			r.Right, r.Bottom, 0, 0, c,
			r.Left, r.Top, 0, 0, c,
			r.Right, r.Bottom, 0, 0, c,
			r.Left, r.Bottom, 0, 0, c,
		)
	}
	return out
}
