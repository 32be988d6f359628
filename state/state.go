// Package state is the registry of OS windows, their tabs and the panes in
// each tab. Callers address entities by id path (window[, tab[, pane]]) and
// every operation resolves that path afresh: a path that no longer resolves
// means the entity closed while the request was in flight, and the operation
// quietly does nothing.
//
// The registry is not safe for concurrent use. All calls, including platform
// callbacks, must come from the thread that owns the graphics contexts.
package state

import (
	"errors"
	"io"
	"log/slog"
	"runtime"

	"github.com/javanhut/ravenstate/config"
	"github.com/javanhut/ravenstate/gpu"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
)

// ContextActivator makes the graphics context of an OS window current. GPU
// handles may only be created or released while the owning window's
// context is current.
type ContextActivator interface {
	MakeContextCurrent(osWindowID ids.ID)
}

// FontMetrics reports the cell size for a font size at a DPI
type FontMetrics interface {
	CellSize(pt, dpiX, dpiY float64) screen.CellSize
}

// Platform receives requests the registry cannot fulfil itself. They run
// with the target window installed as the callback window.
type Platform interface {
	UpdateIMEFocus(osWindowID ids.ID, focused bool)
	UpdateIMEPosition(osWindowID, paneID ids.ID, s *screen.Screen)
	UpdatePointerShape(osWindowID ids.ID)
	SetChrome(osWindowID ids.ID)
	Focus(osWindowID ids.ID, raise bool)
}

// NopPlatform ignores every platform request
type NopPlatform struct{}

func (NopPlatform) UpdateIMEFocus(ids.ID, bool)                      {}
func (NopPlatform) UpdateIMEPosition(ids.ID, ids.ID, *screen.Screen) {}
func (NopPlatform) UpdatePointerShape(ids.ID)                        {}
func (NopPlatform) SetChrome(ids.ID)                                 {}
func (NopPlatform) Focus(ids.ID, bool)                               {}

// Deps are the collaborators a Registry is built from. Platform, Config and
// Logger are optional.
type Deps struct {
	Context  ContextActivator
	GPU      gpu.Allocator
	Fonts    FontMetrics
	Platform Platform
	Config   *config.Config
	Logger   *slog.Logger
}

// DPI is a horizontal/vertical dots-per-inch pair
type DPI struct {
	X, Y float64
}

// Registry owns every OS window, tab and pane in the process
type Registry struct {
	ctx      ContextActivator
	gpu      gpu.Allocator
	fonts    FontMetrics
	platform Platform
	cfg      *config.Config
	log      *slog.Logger

	ids      ids.Allocator
	windows  store[OSWindow, *OSWindow]
	detached store[Pane, *Pane]

	callbackWindow   ids.ID
	focusCounter     uint64
	defaultDPI       DPI
	quitRequest      CloseRequest
	hasPendingCloses bool
	shutdown         bool
}

// New initializes a registry
func New(deps Deps) (*Registry, error) {
	switch {
	case deps.Context == nil:
		return nil, errors.New("state: missing context activator")
	case deps.GPU == nil:
		return nil, errors.New("state: missing gpu allocator")
	case deps.Fonts == nil:
		return nil, errors.New("state: missing font metrics")
	}
	r := &Registry{
		ctx:      deps.Context,
		gpu:      deps.GPU,
		fonts:    deps.Fonts,
		platform: deps.Platform,
		cfg:      deps.Config,
		log:      deps.Logger,
	}
	if r.platform == nil {
		r.platform = NopPlatform{}
	}
	if r.cfg == nil {
		r.cfg = config.DefaultConfig()
	}
	if r.log == nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r.log = r.log.With("component", "state")

	dpi := 96.0
	if runtime.GOOS == "darwin" {
		dpi = 72.0
	}
	r.defaultDPI = DPI{X: dpi, Y: dpi}
	return r, nil
}

// Shutdown tears down every OS window and every detached pane, releasing all
// GPU handles and screen references. Afterwards no window can be created,
// so every operation reports not found.
func (r *Registry) Shutdown() {
	if r.shutdown {
		return
	}
	for n := r.windows.len(); n > 0; n = r.windows.len() {
		r.DestroyWindow(r.windows.idAt(n - 1))
	}
	for n := r.detached.len(); n > 0; n = r.detached.len() {
		r.detached.remove(r.detached.idAt(n-1), r.destroyPane)
	}
	r.callbackWindow = 0
	r.shutdown = true
	r.log.Debug("registry shut down")
}

// Config returns the options in effect
func (r *Registry) Config() *config.Config {
	return r.cfg
}

// SetDefaultDPI sets the DPI used by windows that report none
func (r *Registry) SetDefaultDPI(dpi DPI) {
	r.defaultDPI = dpi
}

// NextPaneID returns the id the next created pane will get
func (r *Registry) NextPaneID() ids.ID {
	return r.ids.Peek(ids.Pane)
}

// NumOSWindows returns the number of live OS windows
func (r *Registry) NumOSWindows() int {
	return r.windows.len()
}

// OSWindowIDs returns the ids of all OS windows in creation order
func (r *Registry) OSWindowIDs() []ids.ID {
	return r.windows.idList()
}

// DetachedIDs returns the ids of panes waiting to be attached
func (r *Registry) DetachedIDs() []ids.ID {
	return r.detached.idList()
}
