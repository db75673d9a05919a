// Package menu builds the application menu tree and turns menu activations
// into application events.
package menu

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID = errors.New("duplicate menu identifier")
	ErrEmptyID     = errors.New("menu item without identifier")
)

// Item is a single menu entry. Items with children are submenus.
type Item struct {
	ID          string
	Label       string
	Accelerator *Accelerator
	Children    []Item
	Separator   bool
}

func (i Item) IsLeaf() bool {
	return !i.Separator && len(i.Children) == 0
}

// Tree is the immutable menu bar: an ordered list of top-level submenus.
type Tree struct {
	Menus []Item
}

// Leaves returns every selectable item in display order.
func (t Tree) Leaves() []Item {
	var out []Item
	var walk func(items []Item)
	walk = func(items []Item) {
		for _, it := range items {
			switch {
			case it.Separator:
			case len(it.Children) > 0:
				walk(it.Children)
			default:
				out = append(out, it)
			}
		}
	}
	walk(t.Menus)
	return out
}

// Find looks up a leaf by identifier.
func (t Tree) Find(id string) (Item, bool) {
	for _, it := range t.Leaves() {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Validate checks that every leaf carries a unique identifier.
func (t Tree) Validate() error {
	seen := make(map[string]string)
	for _, it := range t.Leaves() {
		if it.ID == "" {
			return fmt.Errorf("%w: %q", ErrEmptyID, it.Label)
		}
		if prev, ok := seen[it.ID]; ok {
			return fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateID, it.ID, prev, it.Label)
		}
		seen[it.ID] = it.Label
	}
	return nil
}

type entry struct {
	action Action
	label  string
	accel  string
}

var separator = entry{}

var layout = []struct {
	label   string
	entries []entry
}{
	{"Main", []entry{
		{ActionExit, "Exit", "CmdOrCtrl+Q"},
	}},
	{"File", []entry{
		{ActionNewFile, "New", "CmdOrCtrl+N"},
		{ActionOpenFile, "Open...", "CmdOrCtrl+O"},
		{ActionOpenFolder, "Open Folder...", "CmdOrCtrl+K"},
		{ActionSaveFile, "Save", "CmdOrCtrl+S"},
	}},
	{"Edit", []entry{
		{ActionUndo, "Undo", "CmdOrCtrl+Z"},
		{ActionRedo, "Redo", "CmdOrCtrl+Shift+Z"},
		separator,
		{ActionCut, "Cut", "CmdOrCtrl+X"},
		{ActionCopy, "Copy", "CmdOrCtrl+C"},
		{ActionPaste, "Paste", "CmdOrCtrl+V"},
	}},
	{"Help", []entry{
		{ActionAbout, "About", ""},
		{ActionKeyboardShortcuts, "Keyboard Shortcuts", "CmdOrCtrl+Shift+K"},
	}},
}

// Build constructs the application menu bar.
func Build() (Tree, error) {
	var tree Tree
	for _, sub := range layout {
		menu := Item{Label: sub.label}
		for _, e := range sub.entries {
			if e == separator {
				menu.Children = append(menu.Children, Item{Separator: true})
				continue
			}
			it, err := newItem(e)
			if err != nil {
				return Tree{}, fmt.Errorf("build %s menu: %w", sub.label, err)
			}
			menu.Children = append(menu.Children, it)
		}
		tree.Menus = append(tree.Menus, menu)
	}
	if err := tree.Validate(); err != nil {
		return Tree{}, err
	}
	return tree, nil
}

func newItem(e entry) (Item, error) {
	it := Item{ID: e.action.ID(), Label: e.label}
	if e.accel != "" {
		acc, err := ParseAccelerator(e.accel)
		if err != nil {
			return Item{}, fmt.Errorf("item %q: %w", it.ID, err)
		}
		it.Accelerator = &acc
	}
	return it, nil
}
