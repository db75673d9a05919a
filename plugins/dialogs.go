package plugins

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// Dialogs opens native file and folder pickers. Callbacks only run when the
// user picked something; cancelling is silent.
type Dialogs struct {
	parent fyne.Window
}

func NewDialogs() *Dialogs {
	return &Dialogs{}
}

func (d *Dialogs) Name() string { return DialogsName }

func (d *Dialogs) Init(host *Host) error {
	if host.Window == nil {
		return ErrNotInitialized
	}
	d.parent = host.Window
	return nil
}

func markdownFilter() storage.FileFilter {
	return storage.NewExtensionFileFilter([]string{markdownExt})
}

func (d *Dialogs) OpenFile(picked func(path string, err error)) {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			picked("", err)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		picked(path, nil)
	}, d.parent)
	fd.SetFilter(markdownFilter())
	fd.Show()
}

func (d *Dialogs) SaveFile(suggested string, picked func(path string, err error)) {
	fd := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			picked("", err)
			return
		}
		if w == nil {
			return
		}
		path := w.URI().Path()
		_ = w.Close()
		picked(path, nil)
	}, d.parent)
	fd.SetFilter(markdownFilter())
	fd.SetFileName(suggested)
	fd.Show()
}

func (d *Dialogs) OpenFolder(picked func(path string, err error)) {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			picked("", err)
			return
		}
		if dir == nil {
			return
		}
		picked(dir.Path(), nil)
	}, d.parent)
}

func (d *Dialogs) ShowError(err error) {
	dialog.ShowError(err, d.parent)
}
