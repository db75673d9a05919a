package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"hypernotic/editor"
)

var formatLabels = map[editor.Format]string{
	editor.FormatBold:         "B",
	editor.FormatItalic:       "I",
	editor.FormatCode:         "</>",
	editor.FormatHeading1:     "H1",
	editor.FormatHeading2:     "H2",
	editor.FormatBulletList:   "•",
	editor.FormatNumberedList: "1.",
	editor.FormatQuote:        "❝",
}

// formatBar is the row of markdown formatting buttons above the editor.
func (u *UI) formatBar() fyne.CanvasObject {
	bar := container.NewHBox()
	for _, f := range editor.Formats() {
		btn := widget.NewButton(formatLabels[f], func() { u.applyFormat(f) })
		btn.Importance = widget.LowImportance
		bar.Add(btn)
	}
	link := widget.NewButton("Link", u.showLinkDialog)
	link.Importance = widget.LowImportance
	bar.Add(link)
	return bar
}

func (u *UI) applyFormat(f editor.Format) {
	content, sel := u.selection()
	out, span := editor.ApplyFormat(content, sel, f)
	row, col := editor.Position(out, span.End)
	u.replaceText(out, row, col)
	u.window.Canvas().Focus(u.textEntry)
}

func (u *UI) showLinkDialog() {
	content, sel := u.selection()
	current, _ := editor.LinkAt(content, sel)

	url := widget.NewEntry()
	url.SetPlaceHolder("https://example.com")
	url.SetText(current)

	d := dialog.NewForm("Add Link", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("URL", url)},
		func(ok bool) {
			if ok {
				u.applyLink(content, sel, url.Text)
			}
		}, u.window)
	url.OnSubmitted = func(string) { d.Submit() }
	d.Resize(fyne.NewSize(420, 0))
	d.Show()
	u.window.Canvas().Focus(url)
}

// applyLink links sel of content, which was captured when the dialog opened.
func (u *UI) applyLink(content string, sel editor.Span, rawURL string) {
	out, span := editor.ApplyLink(content, sel, rawURL)
	row, col := editor.Position(out, span.End)
	u.replaceText(out, row, col)
}
