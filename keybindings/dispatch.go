package keybindings

import (
	"io"
	"log/slog"

	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/state"
)

// Font size limits for zooming, in points
const (
	minFontSize = 6.0
	maxFontSize = 48.0
	zoomStep    = 1.0
)

// Hooks let the caller decide how new content is created. Nil hooks fall
// back to bare registry entities.
type Hooks struct {
	// NewWindow creates an OS window with one tab holding one pane
	NewWindow func() ids.ID
	// NewPane creates a pane in a tab and gives it content
	NewPane func(osWindowID, tabID ids.ID) ids.ID
	// Input delivers bytes to a pane's shell
	Input func(paneID ids.ID, data []byte)
}

// Dispatcher applies key actions to the registry
type Dispatcher struct {
	reg   *state.Registry
	hooks Hooks
	log   *slog.Logger
}

// NewDispatcher creates a dispatcher. log may be nil.
func NewDispatcher(reg *state.Registry, hooks Hooks, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{reg: reg, hooks: hooks, log: log.With("component", "keybindings")}
}

func (d *Dispatcher) newPane(osWindowID, tabID ids.ID) ids.ID {
	if d.hooks.NewPane != nil {
		return d.hooks.NewPane(osWindowID, tabID)
	}
	return d.reg.CreatePane(osWindowID, tabID, "")
}

func (d *Dispatcher) newWindow() ids.ID {
	if d.hooks.NewWindow != nil {
		return d.hooks.NewWindow()
	}
	w := d.reg.CreateWindow()
	d.newPane(w, d.reg.CreateTab(w))
	return w
}

// Handle applies res to an OS window. It reports whether anything changed.
func (d *Dispatcher) Handle(osWindowID ids.ID, res KeyResult) bool {
	reg := d.reg
	tab := reg.ActiveTabID(osWindowID)
	pane := reg.ActivePaneID(osWindowID, tab)
	if res.Action != ActionNone && res.Action != ActionInput {
		d.log.Debug("key action", "action", res.Action, "os_window", osWindowID, "tab", tab, "pane", pane)
	}

	switch res.Action {
	case ActionInput:
		if pane == 0 || d.hooks.Input == nil {
			return false
		}
		d.hooks.Input(pane, res.Data)
		return true
	case ActionQuit:
		reg.SetQuitRequest(state.ImperativeCloseRequested)
		return true
	case ActionNewWindow:
		return d.newWindow() != 0
	case ActionCloseWindow:
		return reg.MarkForClose(osWindowID, state.ImperativeCloseRequested)
	case ActionNewTab:
		t := reg.CreateTab(osWindowID)
		if t == 0 {
			return false
		}
		d.newPane(osWindowID, t)
		return reg.SetActiveTab(osWindowID, len(reg.TabIDs(osWindowID))-1)
	case ActionCloseTab:
		return d.closeTab(osWindowID, tab)
	case ActionNextTab:
		return reg.NextTab(osWindowID)
	case ActionPrevTab:
		return reg.PrevTab(osWindowID)
	case ActionMoveTabForward:
		return d.moveTabForward(osWindowID)
	case ActionNewPane:
		if tab == 0 {
			return false
		}
		p := d.newPane(osWindowID, tab)
		return p != 0 && reg.SetActivePane(osWindowID, tab, p)
	case ActionClosePane:
		if !reg.RemovePane(osWindowID, tab, pane) {
			return false
		}
		if len(reg.PaneIDs(osWindowID, tab)) == 0 {
			d.closeTab(osWindowID, tab)
		}
		return true
	case ActionNextPane:
		return reg.NextPane(osWindowID, tab)
	case ActionPrevPane:
		return reg.PrevPane(osWindowID, tab)
	case ActionMovePaneToNextTab:
		return d.movePaneToNextTab(osWindowID, tab, pane)
	case ActionMovePaneToNextWindow:
		return d.movePaneToNextWindow(osWindowID, tab, pane)
	case ActionZoomIn, ActionZoomOut:
		size := reg.OSWindowFontSize(osWindowID, 0, false)
		if res.Action == ActionZoomIn {
			size = min(size+zoomStep, maxFontSize)
		} else {
			size = max(size-zoomStep, minFontSize)
		}
		return reg.OSWindowFontSize(osWindowID, size, false) != 0
	case ActionZoomReset:
		return reg.OSWindowFontSize(osWindowID, reg.GlobalFontSize(0), false) != 0
	}
	return false
}

// closeTab removes a tab and asks for the window to close once it has none
func (d *Dispatcher) closeTab(osWindowID, tabID ids.ID) bool {
	if !d.reg.RemoveTab(osWindowID, tabID) {
		return false
	}
	if len(d.reg.TabIDs(osWindowID)) == 0 {
		d.reg.MarkForClose(osWindowID, state.ImperativeCloseRequested)
	}
	return true
}

func (d *Dispatcher) moveTabForward(osWindowID ids.ID) bool {
	idx, ok := d.reg.ActiveTabIndex(osWindowID)
	n := len(d.reg.TabIDs(osWindowID))
	if !ok || n < 2 {
		return false
	}
	next := (idx + 1) % n
	d.reg.SwapTabs(osWindowID, idx, next)
	return d.reg.SetActiveTab(osWindowID, next)
}

// relocate moves a pane between tabs and cleans up the tab it left
func (d *Dispatcher) relocate(fromWindow, fromTab, paneID, toWindow, toTab ids.ID) bool {
	if !d.reg.DetachPane(fromWindow, fromTab, paneID) {
		return false
	}
	if !d.reg.AttachPane(toWindow, toTab, paneID) {
		// put it back rather than leave it stranded in the pool
		d.reg.AttachPane(fromWindow, fromTab, paneID)
		return false
	}
	if len(d.reg.PaneIDs(fromWindow, fromTab)) == 0 {
		d.closeTab(fromWindow, fromTab)
	}
	tabs := d.reg.TabIDs(toWindow)
	for i, t := range tabs {
		if t == toTab {
			d.reg.SetActiveTab(toWindow, i)
		}
	}
	return d.reg.SetActivePane(toWindow, toTab, paneID)
}

func (d *Dispatcher) movePaneToNextTab(osWindowID, tabID, paneID ids.ID) bool {
	if paneID == 0 {
		return false
	}
	tabs := d.reg.TabIDs(osWindowID)
	var target ids.ID
	for i, t := range tabs {
		if t == tabID && i+1 < len(tabs) {
			target = tabs[i+1]
		}
	}
	if target == 0 {
		if len(tabs) > 1 {
			target = tabs[0]
		} else if len(d.reg.PaneIDs(osWindowID, tabID)) > 1 {
			target = d.reg.CreateTab(osWindowID)
		} else {
			return false
		}
	}
	return d.relocate(osWindowID, tabID, paneID, osWindowID, target)
}

func (d *Dispatcher) movePaneToNextWindow(osWindowID, tabID, paneID ids.ID) bool {
	if paneID == 0 {
		return false
	}
	windows := d.reg.OSWindowIDs()
	var target ids.ID
	for i, w := range windows {
		if w == osWindowID {
			target = windows[(i+1)%len(windows)]
		}
	}
	if target == 0 || target == osWindowID {
		return false
	}
	targetTab := d.reg.ActiveTabID(target)
	if targetTab == 0 {
		targetTab = d.reg.CreateTab(target)
	}
	return d.relocate(osWindowID, tabID, paneID, target, targetTab)
}
