package state

import "github.com/javanhut/ravenstate/ids"

// WithCallbackWindow runs fn with osWindowID installed as the callback
// window. The previous value is restored when fn returns or panics, so
// nested platform callbacks see their own window. It returns false without
// calling fn when the window does not exist.
//
// fn may create or destroy entities; it gets an id rather than a pointer
// for that reason.
func (r *Registry) WithCallbackWindow(osWindowID ids.ID, fn func()) bool {
	if r.windows.find(osWindowID) < 0 {
		return false
	}
	saved := r.callbackWindow
	r.callbackWindow = osWindowID
	defer func() { r.callbackWindow = saved }()
	fn()
	return true
}

// CallbackOSWindowID returns the window installed by WithCallbackWindow, or 0
func (r *Registry) CallbackOSWindowID() ids.ID {
	if r.windows.find(r.callbackWindow) < 0 {
		return 0
	}
	return r.callbackWindow
}

// CurrentOSWindow picks the window an action without an explicit target
// applies to: the callback window, then the focused one, then the first.
// It returns 0 when there are no windows.
func (r *Registry) CurrentOSWindow() ids.ID {
	if id := r.CallbackOSWindowID(); id != 0 {
		return id
	}
	for i := range r.windows.items {
		if w := r.windows.at(i); w.focused {
			return w.id
		}
	}
	return r.windows.idAt(0)
}

// SetFocused records a focus change reported by the platform
func (r *Registry) SetFocused(osWindowID ids.ID, focused bool) bool {
	changed := false
	ok := r.WithOSWindow(osWindowID, func(w *OSWindow) {
		if focused == w.focused {
			return
		}
		w.focused = focused
		if focused {
			r.focusCounter++
			w.lastFocusedCounter = r.focusCounter
		}
		w.needsRender = true
		changed = true
	})
	if changed {
		r.WithCallbackWindow(osWindowID, func() {
			r.platform.UpdateIMEFocus(osWindowID, focused)
		})
	}
	return ok
}

// CurrentFocusedOSWindowID returns the window that has focus now, or 0
func (r *Registry) CurrentFocusedOSWindowID() ids.ID {
	for i := range r.windows.items {
		if w := r.windows.at(i); w.focused {
			return w.id
		}
	}
	return 0
}

// LastFocusedOSWindowID returns the window that gained focus most recently,
// whether or not it still has it, or 0
func (r *Registry) LastFocusedOSWindowID() ids.ID {
	var (
		id  ids.ID
		max uint64
	)
	for i := range r.windows.items {
		if w := r.windows.at(i); w.lastFocusedCounter > max {
			id, max = w.id, w.lastFocusedCounter
		}
	}
	return id
}

// FocusOSWindow asks the platform to focus a window
func (r *Registry) FocusOSWindow(osWindowID ids.ID, raise bool) bool {
	return r.WithCallbackWindow(osWindowID, func() {
		r.platform.Focus(osWindowID, raise)
	})
}

// UpdateIMEPositionForPane moves the input method cursor to a pane. Nothing
// happens unless the pane is in the active tab and is its active pane and
// the window is focused, or force is set. A positive updateFocus also
// tells the platform the window gained IME focus, a negative one that it
// lost it.
func (r *Registry) UpdateIMEPositionForPane(paneID ids.ID, force bool, updateFocus int) bool {
	ref, ok := r.locatePane(paneID)
	if !ok {
		return false
	}
	w := r.windows.at(ref.w)
	t := w.tabs.at(ref.t)
	p := t.panes.at(ref.p)
	if p.render.Screen == nil {
		return false
	}
	if !force && !(w.focused && w.activeTab == ref.t && t.activePane == ref.p) {
		return false
	}
	osWindowID, s := w.id, p.render.Screen
	return r.WithCallbackWindow(osWindowID, func() {
		if updateFocus != 0 {
			r.platform.UpdateIMEFocus(osWindowID, updateFocus > 0)
		}
		r.platform.UpdateIMEPosition(osWindowID, paneID, s)
	})
}

// UpdatePointerShape asks the platform to refresh the pointer of a window
func (r *Registry) UpdatePointerShape(osWindowID ids.ID) bool {
	return r.WithCallbackWindow(osWindowID, func() {
		r.platform.UpdatePointerShape(osWindowID)
	})
}
