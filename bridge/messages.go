package bridge

const (
	// MessageTypeMenu forwards a menu activation to the browser.
	MessageTypeMenu = "menu-event"
	// MessageTypeRender carries the rendered document.
	MessageTypeRender = "render"
)

type MenuMessage struct {
	Type    string `json:"type"`
	Payload string `json:"payload"`
}

type RenderMessage struct {
	Type     string `json:"type"`
	HTML     string `json:"html"`
	Filename string `json:"filename"`
	Rev      uint64 `json:"rev"`
}
