package plugins

import "fyne.io/fyne/v2"

// Clipboard gives text access to the system clipboard.
type Clipboard struct {
	clip fyne.Clipboard
}

func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Name() string { return ClipboardName }

func (c *Clipboard) Init(host *Host) error {
	if c.clip != nil {
		return nil
	}
	if host.App == nil {
		return ErrNotInitialized
	}
	c.clip = host.App.Clipboard()
	return nil
}

// Use swaps the backing clipboard, mainly for tests.
func (c *Clipboard) Use(clip fyne.Clipboard) {
	c.clip = clip
}

// Backend exposes the underlying clipboard for widget shortcuts.
func (c *Clipboard) Backend() fyne.Clipboard {
	return c.clip
}

func (c *Clipboard) ReadText() (string, error) {
	if c.clip == nil {
		return "", ErrNotInitialized
	}
	return c.clip.Content(), nil
}

func (c *Clipboard) WriteText(text string) error {
	if c.clip == nil {
		return ErrNotInitialized
	}
	c.clip.SetContent(text)
	return nil
}
