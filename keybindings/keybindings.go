package keybindings

import (
	"unicode/utf8"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// KeyAction represents the action to take for a key press
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionInput
	ActionQuit
	ActionNewWindow
	ActionCloseWindow
	ActionNewTab
	ActionCloseTab
	ActionNextTab
	ActionPrevTab
	ActionMoveTabForward
	ActionNewPane
	ActionClosePane
	ActionNextPane
	ActionPrevPane
	ActionMovePaneToNextTab
	ActionMovePaneToNextWindow
	ActionZoomIn
	ActionZoomOut
	ActionZoomReset
)

var actionNames = map[KeyAction]string{
	ActionNone:                 "none",
	ActionInput:                "input",
	ActionQuit:                 "quit",
	ActionNewWindow:            "new_window",
	ActionCloseWindow:          "close_window",
	ActionNewTab:               "new_tab",
	ActionCloseTab:             "close_tab",
	ActionNextTab:              "next_tab",
	ActionPrevTab:              "prev_tab",
	ActionMoveTabForward:       "move_tab_forward",
	ActionNewPane:              "new_pane",
	ActionClosePane:            "close_pane",
	ActionNextPane:             "next_pane",
	ActionPrevPane:             "prev_pane",
	ActionMovePaneToNextTab:    "move_pane_to_next_tab",
	ActionMovePaneToNextWindow: "move_pane_to_next_window",
	ActionZoomIn:               "zoom_in",
	ActionZoomOut:              "zoom_out",
	ActionZoomReset:            "zoom_reset",
}

func (a KeyAction) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// KeyResult contains the result of processing a key
type KeyResult struct {
	Action KeyAction
	Data   []byte
}

type chord struct {
	ctrl, shift bool
	key         glfw.Key
}

var chords = map[chord]KeyAction{
	{ctrl: true, key: glfw.KeyQ}:                         ActionQuit,
	{ctrl: true, shift: true, key: glfw.KeyN}:            ActionNewWindow,
	{ctrl: true, shift: true, key: glfw.KeyQ}:            ActionCloseWindow,
	{ctrl: true, shift: true, key: glfw.KeyT}:            ActionNewTab,
	{ctrl: true, shift: true, key: glfw.KeyX}:            ActionCloseTab,
	{ctrl: true, key: glfw.KeyTab}:                       ActionNextTab,
	{ctrl: true, shift: true, key: glfw.KeyTab}:          ActionPrevTab,
	{ctrl: true, shift: true, key: glfw.KeyPeriod}:       ActionMoveTabForward,
	{ctrl: true, shift: true, key: glfw.KeyEnter}:        ActionNewPane,
	{ctrl: true, shift: true, key: glfw.KeyW}:            ActionClosePane,
	{ctrl: true, shift: true, key: glfw.KeyRightBracket}: ActionNextPane,
	{ctrl: true, shift: true, key: glfw.KeyLeftBracket}:  ActionPrevPane,
	{ctrl: true, shift: true, key: glfw.KeyM}:            ActionMovePaneToNextTab,
	{ctrl: true, shift: true, key: glfw.KeyD}:            ActionMovePaneToNextWindow,
	{ctrl: true, key: glfw.KeyEqual}:                     ActionZoomIn,
	{ctrl: true, shift: true, key: glfw.KeyEqual}:        ActionZoomIn,
	{ctrl: true, key: glfw.KeyMinus}:                     ActionZoomOut,
	{ctrl: true, key: glfw.Key0}:                         ActionZoomReset,
}

var plainKeys = map[glfw.Key][]byte{
	glfw.KeyEnter:     {'\r'},
	glfw.KeyKPEnter:   {'\r'},
	glfw.KeyBackspace: {0x7f},
	glfw.KeyTab:       {'\t'},
	glfw.KeyEscape:    {0x1b},
	glfw.KeyUp:        []byte("\x1b[A"),
	glfw.KeyDown:      []byte("\x1b[B"),
	glfw.KeyRight:     []byte("\x1b[C"),
	glfw.KeyLeft:      []byte("\x1b[D"),
	glfw.KeyHome:      []byte("\x1b[H"),
	glfw.KeyEnd:       []byte("\x1b[F"),
	glfw.KeyDelete:    []byte("\x1b[3~"),
}

// TranslateKey maps a GLFW key press to a window management action, or to
// bytes for the shell of the active pane
func TranslateKey(key glfw.Key, mods glfw.ModifierKey) KeyResult {
	ctrl := mods&glfw.ModControl != 0
	shift := mods&glfw.ModShift != 0

	if action, ok := chords[chord{ctrl: ctrl, shift: shift, key: key}]; ok {
		return KeyResult{Action: action}
	}

	// Control + letter combinations
	if ctrl && !shift && key >= glfw.KeyA && key <= glfw.KeyZ {
		return KeyResult{Action: ActionInput, Data: []byte{byte(key - glfw.KeyA + 1)}}
	}
	if shift && key == glfw.KeyTab {
		return KeyResult{Action: ActionInput, Data: []byte("\x1b[Z")}
	}
	if seq, ok := plainKeys[key]; ok && !ctrl {
		return KeyResult{Action: ActionInput, Data: seq}
	}
	return KeyResult{Action: ActionNone}
}

// TranslateChar translates a character input to terminal bytes
func TranslateChar(char rune, mods glfw.ModifierKey) []byte {
	buf := make([]byte, 0, utf8.UTFMax+1)
	if mods&glfw.ModAlt != 0 {
		// Alt sends ESC prefix
		buf = append(buf, 0x1b)
	}
	return utf8.AppendRune(buf, char)
}
