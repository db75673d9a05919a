package menu

// Action is the closed set of things a menu item can do.
type Action int

const (
	ActionUnknown Action = iota
	ActionExit
	ActionNewFile
	ActionOpenFile
	ActionOpenFolder
	ActionSaveFile
	ActionUndo
	ActionRedo
	ActionCut
	ActionCopy
	ActionPaste
	ActionAbout
	ActionKeyboardShortcuts

	actionCount
)

var actionIDs = [actionCount]string{
	ActionUnknown:           "",
	ActionExit:              "exit",
	ActionNewFile:           "new-file",
	ActionOpenFile:          "open-file",
	ActionOpenFolder:        "open-folder",
	ActionSaveFile:          "save-file",
	ActionUndo:              "undo",
	ActionRedo:              "redo",
	ActionCut:               "cut",
	ActionCopy:              "copy",
	ActionPaste:             "paste",
	ActionAbout:             "about",
	ActionKeyboardShortcuts: "keyboard-shortcuts",
}

// ID returns the stable identifier used on menu items and as event payload.
func (a Action) ID() string {
	if a <= ActionUnknown || a >= actionCount {
		return ""
	}
	return actionIDs[a]
}

func (a Action) String() string {
	if id := a.ID(); id != "" {
		return id
	}
	return "unknown"
}

// Broadcasts reports whether activating a is announced on the event bus.
func (a Action) Broadcasts() bool {
	return a != ActionExit && a.ID() != ""
}

// ParseAction maps an identifier back to its Action.
func ParseAction(id string) (Action, bool) {
	if id == "" {
		return ActionUnknown, false
	}
	for a := ActionUnknown + 1; a < actionCount; a++ {
		if actionIDs[a] == id {
			return a, true
		}
	}
	return ActionUnknown, false
}

// Actions lists every known action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount-1)
	for a := ActionUnknown + 1; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}
