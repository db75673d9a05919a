package ui

import (
	"errors"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"hypernotic/config"
	"hypernotic/editor"
	"hypernotic/events"
	"hypernotic/logging"
	"hypernotic/menu"
	"hypernotic/plugins"
	"hypernotic/theme"
)

const AppName = "Hypernotic"

// BrowserAccelerator opens the directory browser. It has no menu item.
const BrowserAccelerator = "Ctrl+Space"

type (
	// Properties related to UI.
	UI struct {
		Fyne    fyne.App
		window  fyne.Window
		log     zerolog.Logger
		version string
		doc     *editor.Document

		nameEntry *widget.Entry
		textEntry *editorEntry
		savedIcon *widget.Icon
		keys      keymap

		// Directory browser window
		browsermx     sync.Mutex
		browserWindow fyne.Window

		// and...
		withLogicIncluded
	}
	// Properties wired in by Start.
	withLogicIncluded struct {
		bus       *events.Bus
		tree      menu.Tree
		activate  func(id string)
		menuSub   *events.Subscription
		clipboard *plugins.Clipboard
		fs        *plugins.FS
		dialogs   *plugins.Dialogs
		shell     *plugins.Shell
		recent    *plugins.RecentDirs
	}
)

// Bindings connects the window to the rest of the application. Plugins
// must hold initialized clipboard, fs, dialog and shell plugins.
type Bindings struct {
	Bus      *events.Bus
	Tree     menu.Tree
	Activate func(id string)
	Plugins  *plugins.Registry
	Recent   *plugins.RecentDirs
}

// New creates the main window. Nothing is shown until Start.
func New(a fyne.App, cfg config.Config, version string, log zerolog.Logger) *UI {
	a.SetIcon(theme.AppIcon)

	u := &UI{
		Fyne:    a,
		log:     logging.Component(log, "ui"),
		version: version,
		doc:     editor.NewDocument(editor.DefaultHistoryLimit),
		keys:    keymap{},
	}

	u.window = a.NewWindow(AppName)
	u.window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	u.window.SetMaster()

	u.nameEntry = widget.NewEntry()
	u.nameEntry.OnSubmitted = func(string) { u.applyName() }

	u.textEntry = newEditorEntry(u.keys.handle)
	u.textEntry.SetPlaceHolder("Start writing...")
	u.textEntry.OnChanged = u.onTextChanged

	u.savedIcon = widget.NewIcon(theme.UnsavedIcon)

	header := container.NewVBox(
		container.NewBorder(nil, nil, nil, u.savedIcon, u.nameEntry),
		u.formatBar(),
	)
	u.window.SetContent(container.NewBorder(header, nil, nil, nil, u.textEntry))
	u.syncFromDoc()
	return u
}

func (u *UI) Window() fyne.Window {
	return u.window
}

func (u *UI) Document() *editor.Document {
	return u.doc
}

// Start installs the menu bar and its keyboard shortcuts and starts
// listening for menu events.
func (u *UI) Start(b Bindings) error {
	var err error
	logic := withLogicIncluded{
		bus:      b.Bus,
		tree:     b.Tree,
		activate: b.Activate,
		recent:   b.Recent,
	}
	if logic.clipboard, err = plugins.Lookup[*plugins.Clipboard](b.Plugins, plugins.ClipboardName); err != nil {
		return err
	}
	if logic.fs, err = plugins.Lookup[*plugins.FS](b.Plugins, plugins.FSName); err != nil {
		return err
	}
	if logic.dialogs, err = plugins.Lookup[*plugins.Dialogs](b.Plugins, plugins.DialogsName); err != nil {
		return err
	}
	if logic.shell, err = plugins.Lookup[*plugins.Shell](b.Plugins, plugins.ShellName); err != nil {
		return err
	}
	u.withLogicIncluded = logic

	u.window.SetMainMenu(b.Tree.MainMenu(b.Activate))

	// The editor entry keeps focus most of the time and swallows shortcuts
	// the canvas would otherwise see.
	canvas := u.window.Canvas()
	n := b.Tree.BindShortcuts(canvas, b.Activate)
	b.Tree.BindShortcuts(u.keys, b.Activate)
	u.log.Debug().Int("shortcuts", n).Msg("menu shortcuts bound")

	acc, err := menu.ParseAccelerator(BrowserAccelerator)
	if err != nil {
		return fmt.Errorf("browser shortcut: %w", err)
	}
	browse := func(fyne.Shortcut) { u.DirectoryBrowser() }
	canvas.AddShortcut(acc.Shortcut(), browse)
	u.keys.AddShortcut(acc.Shortcut(), browse)

	u.menuSub = b.Bus.Listen(events.MenuEvent, u.onMenuEvent)
	return nil
}

// Run shows the window and blocks until the application quits.
func (u *UI) Run() {
	u.window.ShowAndRun()
	if u.menuSub != nil {
		u.menuSub.Close()
	}
}

func (u *UI) onMenuEvent(ev events.Event) {
	id, _ := ev.Payload.(string)
	action, ok := menu.ParseAction(id)
	if !ok {
		u.log.Debug().Str("id", id).Msg("ignoring unknown menu event")
		return
	}
	fyne.Do(func() {
		u.handle(action)
	})
}

// handle runs on the UI goroutine.
func (u *UI) handle(a menu.Action) {
	switch a {
	case menu.ActionNewFile:
		u.doc.Reset()
		u.syncFromDoc()
		u.publish()
	case menu.ActionOpenFile:
		u.dialogs.OpenFile(func(path string, err error) {
			if err != nil {
				u.fail("open file", err)
				return
			}
			u.openPath(path)
		})
	case menu.ActionOpenFolder:
		u.DirectoryBrowser()
	case menu.ActionSaveFile:
		u.save()
	case menu.ActionUndo:
		if text, ok := u.doc.Undo(); ok {
			u.setText(text)
		}
	case menu.ActionRedo:
		if text, ok := u.doc.Redo(); ok {
			u.setText(text)
		}
	case menu.ActionCut:
		u.textEntry.TypedShortcut(&fyne.ShortcutCut{Clipboard: u.clipboard.Backend()})
	case menu.ActionCopy:
		u.textEntry.TypedShortcut(&fyne.ShortcutCopy{Clipboard: u.clipboard.Backend()})
	case menu.ActionPaste:
		u.paste()
	case menu.ActionAbout:
		u.showAbout()
	case menu.ActionKeyboardShortcuts:
		u.showShortcuts()
	case menu.ActionExit, menu.ActionUnknown:
	}
}

func (u *UI) onTextChanged(text string) {
	if !u.doc.Edit(text) {
		return
	}
	u.updateSaved()
	u.publish()
}

// setText replaces the editor text with content the document already holds.
func (u *UI) setText(text string) {
	u.textEntry.SetText(text)
	u.updateSaved()
	u.publish()
}

func (u *UI) paste() {
	text, err := u.clipboard.ReadText()
	if err != nil || text == "" {
		if err != nil {
			u.log.Warn().Err(err).Msg("clipboard read failed, falling back to entry paste")
		}
		u.textEntry.TypedShortcut(&fyne.ShortcutPaste{Clipboard: u.clipboard.Backend()})
		return
	}

	content, row, col := editor.InsertAt(u.textEntry.Text, u.textEntry.CursorRow, u.textEntry.CursorColumn, text)
	u.replaceText(content, row, col)
}

// selection returns the editor text and the selected span within it.
func (u *UI) selection() (string, editor.Span) {
	content := u.textEntry.Text
	cursor := editor.Offset(content, u.textEntry.CursorRow, u.textEntry.CursorColumn)
	return content, editor.SelectionSpan(content, cursor, u.textEntry.SelectedText())
}

// replaceText records content as an edit and puts the cursor at row:col.
func (u *UI) replaceText(content string, row, col int) {
	if !u.doc.Edit(content) {
		return
	}
	u.textEntry.SetText(content)
	u.textEntry.CursorRow = row
	u.textEntry.CursorColumn = col
	u.textEntry.Refresh()
	u.updateSaved()
	u.publish()
}

func (u *UI) applyName() string {
	name := u.doc.SetName(u.nameEntry.Text)
	u.nameEntry.SetText(name)
	return name
}

func (u *UI) openPath(path string) {
	content, err := u.fs.ReadTextFile(path)
	if err != nil {
		u.fail("open file", err)
		return
	}
	u.doc.Load(path, content)
	u.syncFromDoc()
	u.publish()
	u.log.Info().Str("path", path).Msg("file opened")
}

func (u *UI) save() {
	u.applyName()

	if plan := u.doc.SavePlan(); plan.Kind == editor.PlanDialog {
		u.dialogs.SaveFile(plan.To, func(path string, err error) {
			if err != nil {
				u.fail("save file", err)
				return
			}
			if err := u.doc.SaveAs(u.fs, path); err != nil {
				u.fail("save file", err)
			}
			u.syncName()
		})
		return
	}

	plan, err := u.doc.Save(u.fs)
	u.syncName()
	if err != nil {
		u.fail("save file", err)
		return
	}
	u.log.Info().Str("path", plan.To).Msg("file saved")
}

func (u *UI) syncFromDoc() {
	snap := u.doc.Snapshot()
	u.nameEntry.SetText(snap.Name)
	u.textEntry.SetText(snap.Content)
	u.updateSaved()
}

func (u *UI) syncName() {
	u.nameEntry.SetText(u.doc.Snapshot().Name)
	u.updateSaved()
}

func (u *UI) updateSaved() {
	if u.doc.Snapshot().Saved {
		u.savedIcon.SetResource(theme.SavedIcon)
	} else {
		u.savedIcon.SetResource(theme.UnsavedIcon)
	}
}

// publish tells the preview bridge about the current document.
func (u *UI) publish() {
	if u.bus == nil {
		return
	}
	snap := u.doc.Snapshot()
	err := u.bus.Emit(events.DocumentChanged, events.Document{Name: snap.Name, Content: snap.Content})
	if err != nil && !errors.Is(err, events.ErrNoSubscribers) {
		u.log.Debug().Err(err).Msg("document change not delivered")
	}
}

func (u *UI) fail(op string, err error) {
	u.log.Error().Err(err).Str("op", op).Msg("operation failed")
	if u.dialogs != nil {
		u.dialogs.ShowError(fmt.Errorf("%s: %w", op, err))
	}
}
