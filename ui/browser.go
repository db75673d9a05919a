package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"hypernotic/plugins"
)

const revealTimeout = 10 * time.Second

var errBadFolderName = errors.New("folder name must be a single path element")

// treeIndex maps tree node ids (entry paths) onto entries. The root id is "".
type treeIndex struct {
	entries  map[string]plugins.Entry
	children map[string][]string
}

func newTreeIndex(roots []plugins.Entry) treeIndex {
	idx := treeIndex{
		entries:  make(map[string]plugins.Entry),
		children: make(map[string][]string),
	}
	idx.add("", roots)
	return idx
}

func (t treeIndex) add(parent string, entries []plugins.Entry) {
	for _, e := range entries {
		t.entries[e.Path] = e
		t.children[parent] = append(t.children[parent], e.Path)
		if e.IsDir {
			t.add(e.Path, e.Children)
		}
	}
}

func (t treeIndex) isBranch(id string) bool {
	if id == "" {
		return true
	}
	return t.entries[id].IsDir
}

// DirectoryBrowser opens the folder browser window. Only one can be open.
// Must be called on the UI goroutine.
func (u *UI) DirectoryBrowser() {
	u.browsermx.Lock()
	defer u.browsermx.Unlock()

	if u.browserWindow != nil {
		return
	}

	window := u.Fyne.NewWindow("Hypernotic: open folder")
	window.Resize(fyne.NewSize(520, 640))
	u.browserWindow = window

	window.SetOnClosed(func() {
		u.browsermx.Lock()
		defer u.browsermx.Unlock()
		u.browserWindow = nil
	})

	var (
		all     []plugins.Entry
		current string
		index   = newTreeIndex(nil)
	)

	dirLabel := widget.NewLabel("No folder selected")
	dirLabel.Truncation = fyne.TextTruncateEllipsis

	tree := widget.NewTree(
		func(id widget.TreeNodeID) []widget.TreeNodeID {
			return index.children[id]
		},
		func(id widget.TreeNodeID) bool {
			return index.isBranch(id)
		},
		func(bool) fyne.CanvasObject {
			return widget.NewLabel("...")
		},
		func(id widget.TreeNodeID, _ bool, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(index.entries[id].Name)
		},
	)

	filterEntry := widget.NewEntry()
	filterEntry.SetPlaceHolder("Filter markdown files...")
	filterEntry.OnChanged = func(query string) {
		index = newTreeIndex(plugins.FilterTree(all, query))
		if query != "" {
			tree.OpenAllBranches()
		}
		tree.Refresh()
	}

	recentSelect := widget.NewSelect(u.recent.List(), nil)
	recentSelect.PlaceHolder = "Recent folders"

	load := func(dir string) {
		entries, err := u.fs.ReadTree(dir)
		if err != nil {
			u.recentFailed(dir, recentSelect)
			u.fail("read folder", err)
			return
		}
		all, current = entries, dir
		recentSelect.Options = u.recent.Add(dir)
		recentSelect.Refresh()
		dirLabel.SetText(dir)
		filterEntry.SetText("")
		index = newTreeIndex(all)
		tree.Refresh()
		u.log.Debug().Str("dir", dir).Int("files", len(plugins.Files(all))).Msg("folder loaded")
	}

	recentSelect.OnChanged = func(dir string) {
		if dir != "" && dir != dirLabel.Text {
			load(dir)
		}
	}

	chooseBtn := widget.NewButton("Choose folder...", func() {
		u.dialogs.OpenFolder(func(path string, err error) {
			if err != nil {
				u.fail("open folder", err)
				return
			}
			if path != "" {
				load(path)
			}
		})
	})

	newFolderBtn := widget.NewButton("New folder", func() {
		if current == "" {
			return
		}
		name := widget.NewEntry()
		dialog.ShowForm("New folder", "Create", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Name", name)},
			func(ok bool) {
				if !ok {
					return
				}
				if _, err := u.createFolder(current, name.Text); err != nil {
					u.fail("create folder", err)
					return
				}
				load(current)
			}, window)
	})

	revealBtn := widget.NewButton("Reveal", func() {
		if current == "" {
			return
		}
		dir := current
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), revealTimeout)
			defer cancel()
			if err := u.shell.Reveal(ctx, dir); err != nil {
				fyne.Do(func() { u.fail("reveal folder", err) })
			}
		}()
	})

	tree.OnSelected = func(id widget.TreeNodeID) {
		e, ok := index.entries[id]
		if !ok || e.IsDir {
			return
		}
		u.openPath(e.Path)
		window.Close()
	}

	header := container.NewVBox(
		container.NewBorder(nil, nil, nil, chooseBtn, recentSelect),
		container.NewBorder(nil, nil, nil, container.NewHBox(newFolderBtn, revealBtn), dirLabel),
		filterEntry,
	)
	window.SetContent(container.NewBorder(header, nil, nil, nil, tree))

	window.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		if k.Name == fyne.KeyEscape {
			fyne.Do(window.Close)
		}
	})

	window.Show()

	if recent := u.recent.List(); len(recent) > 0 {
		recentSelect.SetSelected(recent[0])
	}
}

// recentFailed forgets a recent directory that can no longer be read.
func (u *UI) recentFailed(dir string, sel *widget.Select) {
	sel.Options = u.recent.Remove(dir)
	sel.ClearSelected()
	sel.Refresh()
}

// createFolder makes a new folder called name inside parent.
func (u *UI) createFolder(parent, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", errBadFolderName
	}
	path := filepath.Join(parent, name)
	if err := u.fs.Mkdir(path); err != nil {
		return "", err
	}
	u.log.Info().Str("path", path).Msg("folder created")
	return path, nil
}
