// Package screen holds the content buffer behind a pane. A Screen is shared
// between the registry and whatever produces its content; it stays alive
// until every holder has released it.
package screen

// CellSize is the pixel size of one character cell
type CellSize struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// Screen is the content buffer of one pane
type Screen struct {
	refs  int
	cell  CellSize
	cols  int
	rows  int
	title string

	spritesDirty     bool
	layoutDirty      bool
	reloadAllGPUData bool

	onGeometry func(cols, rows int)
	onFree     func()
}

// New creates a screen owned by the caller (reference count 1)
func New(cols, rows int, cell CellSize) *Screen {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Screen{refs: 1, cols: cols, rows: rows, cell: cell}
}

// Retain adds a reference and returns s
func (s *Screen) Retain() *Screen {
	s.refs++
	return s
}

// Release drops a reference. The free hook runs once the last one is gone.
func (s *Screen) Release() {
	if s.refs <= 0 {
		return
	}
	s.refs--
	if s.refs == 0 && s.onFree != nil {
		s.onFree()
	}
}

// Refs returns the current reference count
func (s *Screen) Refs() int {
	return s.refs
}

// Alive reports whether anyone still holds the screen
func (s *Screen) Alive() bool {
	return s.refs > 0
}

// OnFree installs a hook that runs when the last reference is released
func (s *Screen) OnFree(fn func()) {
	s.onFree = fn
}

// OnGeometryChange installs a hook receiving the new grid size whenever the
// cell size or pixel area changes
func (s *Screen) OnGeometryChange(fn func(cols, rows int)) {
	s.onGeometry = fn
}

// CellSize returns the cell size the content was laid out for
func (s *Screen) CellSize() CellSize {
	return s.cell
}

// Size returns the grid size in cells
func (s *Screen) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Title returns the screen title
func (s *Screen) Title() string {
	return s.title
}

// SetTitle sets the screen title
func (s *Screen) SetTitle(title string) {
	s.title = title
}

// Relayout adopts a new cell size. Everything laid out for the old size is
// invalid, so both the layout and the sprite positions are marked dirty and
// the geometry hook fires with the unchanged grid size.
func (s *Screen) Relayout(cell CellSize) {
	s.cell = cell
	s.layoutDirty = true
	s.spritesDirty = true
	s.notify()
}

// ResizePixels recomputes the grid size for a pixel area
func (s *Screen) ResizePixels(width, height int) {
	if s.cell.Width == 0 || s.cell.Height == 0 {
		return
	}
	cols := width / int(s.cell.Width)
	rows := height / int(s.cell.Height)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == s.cols && rows == s.rows {
		return
	}
	s.cols, s.rows = cols, rows
	s.layoutDirty = true
	s.notify()
}

func (s *Screen) notify() {
	if s.onGeometry != nil {
		s.onGeometry(s.cols, s.rows)
	}
}

// DirtySpritePositions invalidates sprite positions only
func (s *Screen) DirtySpritePositions() {
	s.spritesDirty = true
}

// SpritePositionsDirty reports whether sprite positions need recomputing
func (s *Screen) SpritePositionsDirty() bool {
	return s.spritesDirty
}

// LayoutDirty reports whether a full geometry re-layout is pending
func (s *Screen) LayoutDirty() bool {
	return s.layoutDirty
}

// MarkReloadAllGPUData forces every GPU-visible datum to be uploaded again
func (s *Screen) MarkReloadAllGPUData() {
	s.reloadAllGPUData = true
}

// ReloadAllGPUData reports whether a full upload is pending
func (s *Screen) ReloadAllGPUData() bool {
	return s.reloadAllGPUData
}

// Rendered clears pending layout, sprite and reload flags after a frame
// consumed them
func (s *Screen) Rendered() {
	s.layoutDirty = false
	s.spritesDirty = false
	s.reloadAllGPUData = false
}
