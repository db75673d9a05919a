package events

// Event names shared between the shell, the editor window and the bridge.
const (
	MenuEvent       = "menu-event"
	DocumentChanged = "document-changed"
)

// Document is the payload of DocumentChanged.
type Document struct {
	Name    string
	Content string
}
