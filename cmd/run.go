package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"

	"github.com/javanhut/ravenstate/config"
	"github.com/javanhut/ravenstate/fonts"
	"github.com/javanhut/ravenstate/gpu"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/keybindings"
	"github.com/javanhut/ravenstate/logger"
	"github.com/javanhut/ravenstate/render"
	"github.com/javanhut/ravenstate/shell"
	"github.com/javanhut/ravenstate/state"
	"github.com/javanhut/ravenstate/window"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive front end",
	RunE:  runGUI,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// idleTimeout bounds how long the loop sleeps when nothing wakes it, so
// config reloads are picked up without an event
const idleTimeout = 0.5

// app owns everything the registry does not: shell sessions and the
// channels their output arrives on
type app struct {
	cfg      *config.Config
	reg      *state.Registry
	backend  *window.Backend
	log      *slog.Logger
	sessions map[ids.ID]*shell.Session
	// shells write to shellOut; pump forwards to output and wakes the loop
	shellOut chan shell.Output
	output   chan shell.Output
}

// pump forwards shell output to the UI loop and wakes it from WaitEvents
func (a *app) pump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			window.PostEmptyEvent()
			return
		case out := <-a.shellOut:
			select {
			case a.output <- out:
			case <-ctx.Done():
				return
			}
			window.PostEmptyEvent()
		}
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if cfg.Log.Path != "" {
		if err := logger.Init(cfg.Log.Path); err != nil {
			return err
		}
		defer logger.Close()
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	if debugMode {
		logger.SetDebug(true)
	}
	log := logger.WithComponent("app")

	backend, err := window.New(cfg.Window, logger.WithComponent("window"))
	if err != nil {
		return err
	}
	defer backend.Terminate()

	vaos := gpu.NewGL()
	defer vaos.Destroy()
	metrics, err := fonts.NewProvider(nil)
	if err != nil {
		return err
	}
	reg, err := state.New(state.Deps{
		Context:  backend,
		GPU:      vaos,
		Fonts:    metrics,
		Platform: backend,
		Config:   cfg,
		Logger:   logger.Get(),
	})
	if err != nil {
		return err
	}
	backend.Bind(reg)

	a := &app{
		cfg:      cfg,
		reg:      reg,
		backend:  backend,
		log:      log,
		sessions: make(map[ids.ID]*shell.Session),
		shellOut: make(chan shell.Output, 64),
		output:   make(chan shell.Output, 64),
	}
	defer reg.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go a.pump(ctx)

	if a.newWindow() == 0 {
		return fmt.Errorf("failed to open the first window")
	}
	renderer, err := render.NewRenderer(vaos, render.ThemeByName(cfg.Theme))
	if err != nil {
		return err
	}
	defer renderer.Destroy()
	backend.SetSwapInterval(1)

	dispatcher := keybindings.NewDispatcher(reg, keybindings.Hooks{
		NewWindow: a.newWindow,
		NewPane:   a.newPane,
		Input:     a.input,
	}, logger.Get())
	backend.OnKey = func(id ids.ID, key glfw.Key, mods glfw.ModifierKey) {
		if dispatcher.Handle(id, keybindings.TranslateKey(key, mods)) {
			reg.MarkDirty(id)
			reg.UpdateIMEPositionForPane(reg.ActivePaneID(id, reg.ActiveTabID(id)), false, 0)
		}
	}
	backend.OnChar = func(id ids.ID, char rune, mods glfw.ModifierKey) {
		data := keybindings.TranslateChar(char, mods)
		if data != nil {
			dispatcher.Handle(id, keybindings.KeyResult{Action: keybindings.ActionInput, Data: data})
		}
	}

	watchPath := configPath
	if watchPath == "" {
		watchPath = config.GetConfigPath()
	}
	updates, watchErrs, err := config.Watch(ctx, watchPath)
	if err != nil {
		log.Warn("config watcher disabled", "error", err)
	}

	for {
		backend.WaitEvents(idleTimeout)

		select {
		case <-ctx.Done():
			log.Info("signal received, shutting down")
			return nil
		case next, ok := <-updates:
			if ok {
				log.Info("config reloaded", "path", watchPath, "theme", config.ThemeLabel(next.Theme))
				reg.ApplyOptionsUpdate(next)
				renderer.SetTheme(render.ThemeByName(next.Theme))
				a.cfg = next
			}
		case err, ok := <-watchErrs:
			if ok {
				log.Warn("config reload failed", "error", err)
			}
		default:
		}

		a.drainOutput()
		for _, id := range reg.PendingCloses() {
			backend.Close(id)
		}
		if reg.QuitRequest() != state.NoCloseRequested || reg.NumOSWindows() == 0 {
			log.Info("quitting", "request", reg.QuitRequest())
			return nil
		}

		separator := render.PackRGB(render.ThemeByName(a.cfg.Theme).TabActive)
		for _, id := range reg.OSWindowIDs() {
			if !render.NeedsFrame(reg, id) {
				continue
			}
			layoutWindow(reg, id, separator)
			backend.MakeContextCurrent(id)
			if renderer.DrawWindow(reg, id) {
				backend.SwapBuffers(id)
			}
		}
	}
}

// newWindow opens an OS window with one tab holding one shell pane
func (a *app) newWindow() ids.ID {
	w := a.reg.CreateWindow()
	if w == 0 {
		return 0
	}
	a.backend.Sync(w)
	tab := a.reg.CreateTab(w)
	a.newPane(w, tab)
	return w
}

// newPane creates a pane with a screen and starts a shell behind it
func (a *app) newPane(osWindowID, tabID ids.ID) ids.ID {
	p := a.reg.CreatePane(osWindowID, tabID, "shell")
	if p == 0 {
		return 0
	}
	s := attachScreen(a.reg, osWindowID, tabID, p)
	if s == nil {
		return p
	}
	layoutTab(a.reg, osWindowID, tabID, render.PackRGB(render.ThemeByName(a.cfg.Theme).TabActive))

	cols, rows := s.Size()
	sess, err := shell.Start(p, a.cfg.Shell.Path, uint16(cols), uint16(rows), a.shellOut, logger.WithComponent("shell"))
	if err != nil {
		a.log.Error("failed to start shell", "pane", p, "error", err)
		return p
	}
	sess.Bind(s)
	a.sessions[p] = sess
	return p
}

func (a *app) input(paneID ids.ID, data []byte) {
	sess, ok := a.sessions[paneID]
	if !ok {
		return
	}
	if _, err := sess.Write(data); err != nil {
		a.log.Debug("pty write failed", "pane", paneID, "error", err)
	}
}

// drainOutput marks windows with new shell output dirty and removes panes
// whose shell has exited
func (a *app) drainOutput() {
	for {
		select {
		case out := <-a.output:
			w, t, ok := a.reg.PaneLocation(out.Pane)
			if !ok {
				// detached, or already gone
				continue
			}
			if out.Err == nil {
				a.reg.MarkDirty(w)
				continue
			}
			a.log.Debug("shell exited", "pane", out.Pane, "error", out.Err)
			delete(a.sessions, out.Pane)
			a.reg.RemovePane(w, t, out.Pane)
			if len(a.reg.PaneIDs(w, t)) == 0 {
				a.reg.RemoveTab(w, t)
				if len(a.reg.TabIDs(w)) == 0 {
					a.reg.MarkForClose(w, state.ImperativeCloseRequested)
				}
			}
			a.reg.MarkDirty(w)
		default:
			return
		}
	}
}
