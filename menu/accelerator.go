package menu

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

var ErrInvalidAccelerator = errors.New("invalid accelerator")

// Modifier is a platform independent key modifier set.
type Modifier uint8

const (
	// ModCmdOrCtrl is Command on macOS and Control elsewhere.
	ModCmdOrCtrl Modifier = 1 << iota
	ModCtrl
	ModShift
	ModAlt
)

// Accelerator is a key chord bound to a menu item, e.g. "CmdOrCtrl+Shift+Z".
type Accelerator struct {
	Modifiers Modifier
	Key       fyne.KeyName
}

type modifierName struct {
	mod     Modifier
	name    string
	display string
}

var modifierNames = []modifierName{
	{ModCmdOrCtrl, "CmdOrCtrl", "Cmd/Ctrl"},
	{ModCtrl, "Ctrl", "Ctrl"},
	{ModShift, "Shift", "Shift"},
	{ModAlt, "Alt", "Alt"},
}

var namedKeys = map[string]fyne.KeyName{
	"space":  fyne.KeySpace,
	"escape": fyne.KeyEscape,
	"tab":    fyne.KeyTab,
	"enter":  fyne.KeyReturn,
	"return": fyne.KeyReturn,
}

// ParseAccelerator parses chords such as "CmdOrCtrl+Q" or "Ctrl+Space".
func ParseAccelerator(s string) (Accelerator, error) {
	parts := strings.Split(s, "+")
	if s == "" || len(parts) < 2 {
		return Accelerator{}, fmt.Errorf("%w: %q", ErrInvalidAccelerator, s)
	}

	var acc Accelerator
	for _, part := range parts[:len(parts)-1] {
		mod, ok := parseModifier(strings.TrimSpace(part))
		if !ok || acc.Modifiers&mod != 0 {
			return Accelerator{}, fmt.Errorf("%w: %q", ErrInvalidAccelerator, s)
		}
		acc.Modifiers |= mod
	}
	if acc.Modifiers&ModCmdOrCtrl != 0 && acc.Modifiers&ModCtrl != 0 {
		return Accelerator{}, fmt.Errorf("%w: %q", ErrInvalidAccelerator, s)
	}

	key, ok := parseKey(strings.TrimSpace(parts[len(parts)-1]))
	if !ok {
		return Accelerator{}, fmt.Errorf("%w: %q", ErrInvalidAccelerator, s)
	}
	acc.Key = key
	return acc, nil
}

func parseModifier(s string) (Modifier, bool) {
	switch strings.ToLower(s) {
	case "cmdorctrl", "commandorcontrol":
		return ModCmdOrCtrl, true
	case "ctrl", "control":
		return ModCtrl, true
	case "shift":
		return ModShift, true
	case "alt", "option":
		return ModAlt, true
	}
	return 0, false
}

func parseKey(s string) (fyne.KeyName, bool) {
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return fyne.KeyName(string(c)), true
		}
		return "", false
	}
	key, ok := namedKeys[strings.ToLower(s)]
	return key, ok
}

// String renders the accelerator in the same form ParseAccelerator accepts.
func (a Accelerator) String() string {
	return a.join("+", func(m modifierName) string { return m.name })
}

// Display renders the accelerator for humans, e.g. "Cmd/Ctrl + Shift + Z".
func (a Accelerator) Display() string {
	return a.join(" + ", func(m modifierName) string { return m.display })
}

func (a Accelerator) join(sep string, name func(modifierName) string) string {
	var parts []string
	for _, m := range modifierNames {
		if a.Modifiers&m.mod != 0 {
			parts = append(parts, name(m))
		}
	}
	return strings.Join(append(parts, string(a.Key)), sep)
}

// Shortcut converts the accelerator into a Fyne shortcut for the current OS.
func (a Accelerator) Shortcut() *desktop.CustomShortcut {
	return &desktop.CustomShortcut{KeyName: a.Key, Modifier: a.fyneModifier(runtime.GOOS)}
}

func (a Accelerator) fyneModifier(goos string) fyne.KeyModifier {
	var mod fyne.KeyModifier
	if a.Modifiers&ModCmdOrCtrl != 0 {
		if goos == "darwin" {
			mod |= fyne.KeyModifierSuper
		} else {
			mod |= fyne.KeyModifierControl
		}
	}
	if a.Modifiers&ModCtrl != 0 {
		mod |= fyne.KeyModifierControl
	}
	if a.Modifiers&ModShift != 0 {
		mod |= fyne.KeyModifierShift
	}
	if a.Modifiers&ModAlt != 0 {
		mod |= fyne.KeyModifierAlt
	}
	return mod
}
