package ui

import (
	"strings"

	"hypernotic/menu"
)

// Shortcut is one row of the keyboard shortcuts dialog.
type Shortcut struct {
	Keys        string
	Description string
}

type ShortcutGroup struct {
	Title     string
	Shortcuts []Shortcut
}

// ShortcutGroups lists every accelerator of the menu tree grouped by submenu,
// followed by the shortcuts that live outside the menu bar.
func ShortcutGroups(tree menu.Tree) []ShortcutGroup {
	var groups []ShortcutGroup
	for _, sub := range tree.Menus {
		g := ShortcutGroup{Title: sub.Label}
		for _, item := range sub.Children {
			if item.Separator || item.Accelerator == nil {
				continue
			}
			g.Shortcuts = append(g.Shortcuts, Shortcut{
				Keys:        item.Accelerator.Display(),
				Description: strings.TrimSuffix(item.Label, "..."),
			})
		}
		if len(g.Shortcuts) > 0 {
			groups = append(groups, g)
		}
	}

	if acc, err := menu.ParseAccelerator(BrowserAccelerator); err == nil {
		groups = append(groups, ShortcutGroup{
			Title:     "Navigation",
			Shortcuts: []Shortcut{{Keys: acc.Display(), Description: "Open directory browser"}},
		})
	}
	return groups
}
