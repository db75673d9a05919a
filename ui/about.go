package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	websiteURL = "https://hypernotic.com"
	authorURL  = "https://github.com/hypernotic"
)

func (u *UI) showAbout() {
	title := widget.NewLabel(AppName)
	title.TextStyle.Bold = true

	link := func(label, url string) *widget.Button {
		btn := widget.NewButton(label, func() {
			if err := u.shell.OpenURL(url); err != nil {
				u.fail("open link", err)
			}
		})
		btn.Importance = widget.LowImportance
		return btn
	}

	content := container.NewVBox(
		container.NewCenter(widget.NewIcon(u.Fyne.Icon())),
		container.NewCenter(title),
		container.NewCenter(widget.NewLabel("Version "+u.version)),
		container.NewCenter(widget.NewLabel("A minimal markdown note editor.")),
		container.NewHBox(layout.NewSpacer(), link("Website", websiteURL), link("Author", authorURL), layout.NewSpacer()),
	)
	d := dialog.NewCustom("About "+AppName, "Close", content, u.window)
	d.Show()
}

func (u *UI) showShortcuts() {
	content := container.NewVBox()
	for _, g := range ShortcutGroups(u.tree) {
		header := widget.NewLabel(g.Title)
		header.TextStyle.Bold = true
		content.Add(header)

		grid := container.NewGridWithColumns(2)
		for _, s := range g.Shortcuts {
			keys := widget.NewLabel(s.Keys)
			keys.TextStyle.Monospace = true
			grid.Add(widget.NewLabel(s.Description))
			grid.Add(keys)
		}
		content.Add(grid)
	}

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", container.NewVScroll(content), u.window)
	d.Resize(fyne.NewSize(420, 480))
	d.Show()
}
