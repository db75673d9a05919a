package menu

import (
	"runtime"

	"fyne.io/fyne/v2"
)

// ShortcutBinder is the part of fyne.Canvas that takes keyboard shortcuts.
type ShortcutBinder interface {
	AddShortcut(shortcut fyne.Shortcut, handler func(shortcut fyne.Shortcut))
}

// MainMenu converts the tree into a Fyne menu bar. Every leaf calls activate
// with its identifier.
func (t Tree) MainMenu(activate func(id string)) *fyne.MainMenu {
	menus := make([]*fyne.Menu, 0, len(t.Menus))
	for _, sub := range t.Menus {
		menus = append(menus, fyne.NewMenu(sub.Label, fyneItems(sub.Children, activate)...))
	}
	return fyne.NewMainMenu(menus...)
}

func fyneItems(items []Item, activate func(id string)) []*fyne.MenuItem {
	out := make([]*fyne.MenuItem, 0, len(items))
	for _, it := range items {
		if it.Separator {
			out = append(out, fyne.NewMenuItemSeparator())
			continue
		}

		id := it.ID
		mi := fyne.NewMenuItem(it.Label, func() { activate(id) })
		if it.Accelerator != nil {
			mi.Shortcut = it.Accelerator.Shortcut()
		}
		if len(it.Children) > 0 {
			mi.Action = nil
			mi.ChildMenu = fyne.NewMenu("", fyneItems(it.Children, activate)...)
		}
		// keeps Fyne from adding its own Quit entry
		mi.IsQuit = id == ActionExit.ID()
		out = append(out, mi)
	}
	return out
}

// BindShortcuts registers every accelerator of the tree on b and reports how
// many were bound. Native macOS menus bind their own key equivalents, so
// nothing is added there.
func (t Tree) BindShortcuts(b ShortcutBinder, activate func(id string)) int {
	return t.bindShortcuts(b, activate, runtime.GOOS)
}

func (t Tree) bindShortcuts(b ShortcutBinder, activate func(id string), goos string) int {
	if goos == "darwin" {
		return 0
	}
	n := 0
	for _, it := range t.Leaves() {
		if it.Accelerator == nil {
			continue
		}
		id := it.ID
		b.AddShortcut(it.Accelerator.Shortcut(), func(fyne.Shortcut) { activate(id) })
		n++
	}
	return n
}
