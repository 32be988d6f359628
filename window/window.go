// Package window is the GLFW backend of the registry. It owns one GLFW
// window per registry OS window, switches OpenGL contexts on request and
// routes platform events back through the registry's callback context.
package window

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/javanhut/ravenstate/assets"
	"github.com/javanhut/ravenstate/config"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
	"github.com/javanhut/ravenstate/state"
)

func init() {
	// GLFW event handling must run on the main thread
	runtime.LockOSThread()
}

// KeyHandler receives key presses for an OS window. It runs with that
// window installed as the callback window.
type KeyHandler func(osWindowID ids.ID, key glfw.Key, mods glfw.ModifierKey)

// Backend maps registry OS windows to GLFW windows. It implements both
// state.ContextActivator and state.Platform.
type Backend struct {
	cfg config.WindowConfig
	log *slog.Logger
	reg *state.Registry

	windows map[ids.ID]*glfw.Window
	current ids.ID
	shared  *glfw.Window
	glReady bool
	cursor  *glfw.Cursor

	// OnKey, when set, receives key presses and repeats
	OnKey KeyHandler
	// OnChar, when set, receives text input
	OnChar func(osWindowID ids.ID, char rune, mods glfw.ModifierKey)
}

// New initializes GLFW
func New(cfg config.WindowConfig, log *slog.Logger) (*Backend, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	return &Backend{
		cfg:     cfg,
		log:     log,
		windows: make(map[ids.ID]*glfw.Window),
	}, nil
}

// Bind attaches the registry the backend reports events to. The registry
// is built with the backend as its context activator, so the two are tied
// together after both exist.
func (b *Backend) Bind(reg *state.Registry) {
	b.reg = reg
}

// MakeContextCurrent makes the window's OpenGL context current, creating the
// GLFW window the first time an id is seen.
func (b *Backend) MakeContextCurrent(osWindowID ids.ID) {
	if osWindowID == b.current && osWindowID != 0 {
		return
	}
	win, ok := b.windows[osWindowID]
	if !ok {
		var err error
		win, err = b.create(osWindowID)
		if err != nil {
			// a registry window without a context cannot hold GPU handles
			panic(fmt.Sprintf("window: %v", err))
		}
	}
	win.MakeContextCurrent()
	b.current = osWindowID
	if !b.glReady {
		if err := gl.Init(); err != nil {
			panic(fmt.Sprintf("window: failed to initialize OpenGL: %v", err))
		}
		b.glReady = true
		b.log.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	}
}

func (b *Backend) create(osWindowID ids.ID) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	glfw.WindowHintString(glfw.X11ClassName, "ravenstate")
	glfw.WindowHintString(glfw.X11InstanceName, "ravenstate")

	// programs and buffers are shared with the first window; vertex arrays
	// stay per context
	win, err := glfw.CreateWindow(b.cfg.Width, b.cfg.Height, b.cfg.Title, nil, b.shared)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	if b.shared == nil {
		b.shared = win
	}
	if icons := assets.Icons(); len(icons) > 0 {
		win.SetIcon(icons)
	}
	b.windows[osWindowID] = win
	b.install(osWindowID, win)
	b.log.Debug("glfw window created", "os_window", osWindowID)
	return win, nil
}

func (b *Backend) install(id ids.ID, win *glfw.Window) {
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		b.reg.WithCallbackWindow(id, func() {
			b.reg.SetFocused(id, focused)
		})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		b.reg.WithCallbackWindow(id, func() {
			b.reg.SetViewportSize(id, uint32(width), uint32(height))
		})
	})
	win.SetContentScaleCallback(func(_ *glfw.Window, x, y float32) {
		b.reg.WithCallbackWindow(id, func() {
			b.reg.SetLogicalDPI(id, scaleToDPI(x, y))
		})
	})
	win.SetCloseCallback(func(_ *glfw.Window) {
		b.reg.MarkForClose(id, state.ConfirmableCloseRequested)
	})
	win.SetRefreshCallback(func(_ *glfw.Window) {
		b.reg.MarkDirty(id)
	})
	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if entered {
			b.reg.UpdatePointerShape(id)
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release || b.OnKey == nil {
			return
		}
		b.reg.WithCallbackWindow(id, func() {
			b.OnKey(id, key, mods)
		})
	})
	win.SetCharModsCallback(func(_ *glfw.Window, char rune, mods glfw.ModifierKey) {
		if b.OnChar == nil {
			return
		}
		b.reg.WithCallbackWindow(id, func() {
			b.OnChar(id, char, mods)
		})
	})
}

// Sync pushes the current framebuffer size and content scale of a window
// into the registry. Call it once after CreateWindow.
func (b *Backend) Sync(osWindowID ids.ID) {
	win, ok := b.windows[osWindowID]
	if !ok {
		return
	}
	width, height := win.GetFramebufferSize()
	b.reg.SetViewportSize(osWindowID, uint32(width), uint32(height))
	b.reg.SetLogicalDPI(osWindowID, scaleToDPI(win.GetContentScale()))
}

func scaleToDPI(x, y float32) state.DPI {
	base := 96.0
	if runtime.GOOS == "darwin" {
		base = 72.0
	}
	return state.DPI{X: base * float64(x), Y: base * float64(y)}
}

// Close destroys the registry window and then its GLFW window
func (b *Backend) Close(osWindowID ids.ID) {
	b.reg.DestroyWindow(osWindowID)
	b.destroy(osWindowID)
}

func (b *Backend) destroy(osWindowID ids.ID) {
	win, ok := b.windows[osWindowID]
	if !ok {
		return
	}
	delete(b.windows, osWindowID)
	if b.current == osWindowID {
		glfw.DetachCurrentContext()
		b.current = 0
	}
	// the shared context must outlive the others
	if win == b.shared && len(b.windows) > 0 {
		win.Hide()
		return
	}
	win.Destroy()
}

// SwapBuffers presents the window's back buffer
func (b *Backend) SwapBuffers(osWindowID ids.ID) {
	if win, ok := b.windows[osWindowID]; ok {
		win.SwapBuffers()
	}
}

// SetSwapInterval sets vsync on the current context
func (b *Backend) SetSwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

// WaitEvents blocks until an event arrives or the timeout in seconds expires
func (b *Backend) WaitEvents(timeout float64) {
	glfw.WaitEventsTimeout(timeout)
}

// PostEmptyEvent wakes WaitEvents from another goroutine
func PostEmptyEvent() {
	glfw.PostEmptyEvent()
}

// Terminate destroys every GLFW window and shuts GLFW down. The registry
// must have been shut down first.
func (b *Backend) Terminate() {
	for id, win := range b.windows {
		if win != b.shared {
			win.Destroy()
		}
		delete(b.windows, id)
	}
	if b.shared != nil {
		b.shared.Destroy()
		b.shared = nil
	}
	if b.cursor != nil {
		b.cursor.Destroy()
	}
	glfw.Terminate()
}

// UpdateIMEFocus implements state.Platform
func (b *Backend) UpdateIMEFocus(osWindowID ids.ID, focused bool) {
	b.log.Debug("ime focus", "os_window", osWindowID, "focused", focused)
}

// UpdateIMEPosition implements state.Platform. GLFW 3.3 has no IME API, so
// the cursor cell is only logged.
func (b *Backend) UpdateIMEPosition(osWindowID, paneID ids.ID, s *screen.Screen) {
	cols, rows := s.Size()
	b.log.Debug("ime position", "os_window", osWindowID, "pane", paneID, "cols", cols, "rows", rows)
}

// UpdatePointerShape implements state.Platform
func (b *Backend) UpdatePointerShape(osWindowID ids.ID) {
	win, ok := b.windows[osWindowID]
	if !ok {
		return
	}
	if b.cursor == nil {
		b.cursor = glfw.CreateStandardCursor(glfw.IBeamCursor)
	}
	win.SetCursor(b.cursor)
}

// SetChrome implements state.Platform by titling the window after its
// active pane
func (b *Backend) SetChrome(osWindowID ids.ID) {
	win, ok := b.windows[osWindowID]
	if !ok {
		return
	}
	title := b.cfg.Title
	tab := b.reg.ActiveTabID(osWindowID)
	pane := b.reg.ActivePaneID(osWindowID, tab)
	b.reg.WithPane(osWindowID, tab, pane, func(_ *state.OSWindow, _ *state.Tab, p *state.Pane) {
		if p.Title() != "" {
			title = p.Title() + " - " + b.cfg.Title
		}
	})
	win.SetTitle(title)
}

// Focus implements state.Platform
func (b *Backend) Focus(osWindowID ids.ID, raise bool) {
	win, ok := b.windows[osWindowID]
	if !ok {
		return
	}
	if raise {
		win.Show()
	}
	win.Focus()
}
