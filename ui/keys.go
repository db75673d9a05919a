package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// keymap looks shortcuts up by name.
type keymap map[string]func(fyne.Shortcut)

func (k keymap) AddShortcut(s fyne.Shortcut, handler func(fyne.Shortcut)) {
	k[s.ShortcutName()] = handler
}

func (k keymap) handle(s fyne.Shortcut) bool {
	h, ok := k[s.ShortcutName()]
	if ok {
		h(s)
	}
	return ok
}

// editorEntry is the multi-line editor. Custom shortcuts it has no use for
// go to the window keymap, so menu accelerators work while typing.
type editorEntry struct {
	widget.Entry
	forward func(fyne.Shortcut) bool
}

func newEditorEntry(forward func(fyne.Shortcut) bool) *editorEntry {
	e := &editorEntry{forward: forward}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	return e
}

func (e *editorEntry) TypedShortcut(s fyne.Shortcut) {
	if _, ok := s.(*desktop.CustomShortcut); ok && e.forward != nil && e.forward(s) {
		return
	}
	e.Entry.TypedShortcut(s)
}
