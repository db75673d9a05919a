package menu

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"hypernotic/events"
	"hypernotic/metric"
)

// EmitPolicy decides what happens when a menu event cannot be delivered.
type EmitPolicy string

const (
	// EmitBestEffort logs the failure and keeps running.
	EmitBestEffort EmitPolicy = "best-effort"
	// EmitStrict treats a failed emit as fatal and exits with ExitEmitFailed.
	EmitStrict EmitPolicy = "strict"
)

// Exit codes used by the dispatcher.
const (
	ExitOK         = 0
	ExitEmitFailed = 1
)

func ParseEmitPolicy(s string) (EmitPolicy, error) {
	switch EmitPolicy(s) {
	case "", EmitBestEffort:
		return EmitBestEffort, nil
	case EmitStrict:
		return EmitStrict, nil
	}
	return "", fmt.Errorf("unknown emit policy %q", s)
}

// Exiter terminates the process.
type Exiter interface {
	Exit(code int)
}

// ExitFunc adapts a function to Exiter.
type ExitFunc func(code int)

func (f ExitFunc) Exit(code int) { f(code) }

// Context carries everything the dispatcher talks to. The application shell
// owns all of it.
type Context struct {
	Emitter      events.Emitter
	Exiter       Exiter
	Logger       zerolog.Logger
	Policy       EmitPolicy
	Activations  metric.ActionCounter
	EmitFailures metric.ActionCounter
}

// Dispatcher owns the menu tree and translates activations into events.
type Dispatcher struct {
	ctx        Context
	tree       Tree
	table      map[string]Action
	terminated atomic.Bool
}

// NewDispatcher validates tree and builds the dispatch table from its leaves.
func NewDispatcher(ctx Context, tree Tree) (*Dispatcher, error) {
	if ctx.Emitter == nil {
		return nil, fmt.Errorf("dispatcher: emitter is required")
	}
	if ctx.Exiter == nil {
		return nil, fmt.Errorf("dispatcher: exiter is required")
	}
	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("dispatcher: %w", err)
	}
	if ctx.Policy == "" {
		ctx.Policy = EmitBestEffort
	}
	if ctx.Activations == nil {
		ctx.Activations = metric.Nop{}
	}
	if ctx.EmitFailures == nil {
		ctx.EmitFailures = metric.Nop{}
	}
	ctx.Logger = ctx.Logger.With().Str("component", "menu").Logger()

	table := make(map[string]Action)
	for _, it := range tree.Leaves() {
		if a, ok := ParseAction(it.ID); ok {
			table[it.ID] = a
		}
	}
	return &Dispatcher{ctx: ctx, tree: tree, table: table}, nil
}

func (d *Dispatcher) Tree() Tree {
	return d.tree
}

// Terminated reports whether Exit has been dispatched.
func (d *Dispatcher) Terminated() bool {
	return d.terminated.Load()
}

// Activate handles a click on the menu item with the given identifier.
// Identifiers missing from the dispatch table are ignored.
func (d *Dispatcher) Activate(id string) {
	a, ok := d.table[id]
	if !ok {
		d.ctx.Logger.Debug().Str("id", id).Msg("ignoring unknown menu item")
		return
	}
	d.dispatch(a)
}

func (d *Dispatcher) dispatch(a Action) {
	if d.terminated.Load() {
		return
	}
	d.ctx.Activations.Count(a.ID())

	switch a {
	case ActionExit:
		d.terminated.Store(true)
		d.ctx.Logger.Info().Msg("exit requested from menu")
		d.ctx.Exiter.Exit(ExitOK)
	case ActionNewFile, ActionOpenFile, ActionOpenFolder, ActionSaveFile,
		ActionUndo, ActionRedo, ActionCut, ActionCopy, ActionPaste,
		ActionAbout, ActionKeyboardShortcuts:
		d.emit(a)
	case ActionUnknown, actionCount:
	}
}

func (d *Dispatcher) emit(a Action) {
	err := d.ctx.Emitter.Emit(events.MenuEvent, a.ID())
	if err == nil {
		d.ctx.Logger.Info().Str("action", a.ID()).Msg("menu event emitted")
		return
	}
	if errors.Is(err, events.ErrNoSubscribers) {
		d.ctx.Logger.Debug().Str("action", a.ID()).Msg("menu event has no listeners")
		return
	}
	d.ctx.EmitFailures.Count(a.ID())

	if d.ctx.Policy == EmitStrict {
		d.ctx.Logger.Error().Err(err).Str("action", a.ID()).Msg("menu event not delivered, exiting")
		d.terminated.Store(true)
		d.ctx.Exiter.Exit(ExitEmitFailed)
		return
	}
	d.ctx.Logger.Warn().Err(err).Str("action", a.ID()).Msg("menu event dropped")
}
