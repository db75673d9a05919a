// Package plugins provides the OS integrations the editor window relies on:
// clipboard, filesystem, native dialogs and shell execution.
package plugins

import (
	"errors"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
)

// Names the built-in plugins register under.
const (
	ClipboardName = "clipboard-manager"
	FSName        = "fs"
	DialogsName   = "dialog"
	ShellName     = "shell"
)

var (
	ErrDuplicatePlugin = errors.New("plugin already registered")
	ErrNotInitialized  = errors.New("plugin not initialized")
	ErrUnknownPlugin   = errors.New("plugin not registered")
)

// Host is what a plugin gets to work with.
type Host struct {
	App    fyne.App
	Window fyne.Window
	Logger zerolog.Logger
}

type Plugin interface {
	Name() string
	Init(host *Host) error
}

// Registry initializes plugins in registration order.
type Registry struct {
	mu     sync.Mutex
	order  []Plugin
	byName map[string]Plugin
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Plugin)}
}

func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[p.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, p.Name())
	}
	r.byName[p.Name()] = p
	r.order = append(r.order, p)
	return nil
}

// InitAll stops at the first plugin that fails to initialize.
func (r *Registry) InitAll(host *Host) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.order {
		log := host.Logger.With().Str("component", "plugins").Str("plugin", p.Name()).Logger()
		if err := p.Init(host); err != nil {
			log.Error().Err(err).Msg("plugin init failed")
			return fmt.Errorf("init plugin %s: %w", p.Name(), err)
		}
		log.Info().Msg("plugin registered")
	}
	return nil
}

func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byName[name]
	return p, ok
}

func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.order))
	for _, p := range r.order {
		names = append(names, p.Name())
	}
	return names
}

// Lookup returns the plugin registered under name as a T.
func Lookup[T Plugin](r *Registry, name string) (T, error) {
	var zero T
	p, ok := r.Get(name)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
	}
	t, ok := p.(T)
	if !ok {
		return zero, fmt.Errorf("plugin %s is a %T", name, p)
	}
	return t, nil
}
