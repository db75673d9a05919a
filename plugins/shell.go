package plugins

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"

	"fyne.io/fyne/v2"
)

var (
	ErrCommandNotAllowed = errors.New("command not allowed")
	ErrUnsupportedURL    = errors.New("unsupported url")
)

// Shell runs allow-listed programs and opens links in the default browser.
type Shell struct {
	allow []string
	app   fyne.App
}

func NewShell(allow []string) *Shell {
	return &Shell{allow: slices.Clone(allow)}
}

func (s *Shell) Name() string { return ShellName }

func (s *Shell) Init(host *Host) error {
	s.app = host.App
	return nil
}

func (s *Shell) Allowed(name string) bool {
	return slices.Contains(s.allow, name) || slices.Contains(s.allow, filepath.Base(name))
}

// Execute runs name with args and returns its combined output.
func (s *Shell) Execute(ctx context.Context, name string, args ...string) (string, error) {
	if !s.Allowed(name) {
		return "", fmt.Errorf("%w: %s", ErrCommandNotAllowed, name)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("run %s: %w", name, err)
	}
	return string(output), nil
}

// OpenURL hands http, https and mailto links to the desktop.
func (s *Shell) OpenURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "mailto":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedURL, raw)
	}
	if s.app == nil {
		return ErrNotInitialized
	}
	return s.app.OpenURL(u)
}

// RevealCommand is the program that opens a folder in the desktop file manager.
func RevealCommand(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// Reveal opens dir in the file manager. The opener has to be allow-listed.
func (s *Shell) Reveal(ctx context.Context, dir string) error {
	if _, err := s.Execute(ctx, RevealCommand(runtime.GOOS), dir); err != nil {
		return fmt.Errorf("reveal %s: %w", dir, err)
	}
	return nil
}
