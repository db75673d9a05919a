// Package editor holds the state of the open markdown document.
package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

const (
	UntitledName = "untitled.md"
	Extension    = ".md"

	DefaultHistoryLimit = 200
)

// ErrNeedsPath is returned by Save for documents that were never written.
var ErrNeedsPath = errors.New("document has no path yet")

// Files is the subset of the filesystem plugin the document writes through.
type Files interface {
	WriteTextFile(path, content string) error
	Rename(from, to string) error
}

// Snapshot is a consistent copy of the document state.
type Snapshot struct {
	Path    string
	Name    string
	Content string
	Saved   bool
}

type Document struct {
	mu      sync.RWMutex
	path    string
	name    string
	content string
	saved   bool

	limit int
	undo  []string
	redo  []string
}

func NewDocument(historyLimit int) *Document {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	d := &Document{limit: historyLimit}
	d.Reset()
	return d
}

// Reset turns the document into an empty, unsaved untitled file.
func (d *Document) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.path = ""
	d.name = UntitledName
	d.content = ""
	d.saved = false
	d.undo = nil
	d.redo = nil
}

// Load replaces the document with a file read from disk.
func (d *Document) Load(path, content string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.path = path
	d.name = baseName(path)
	d.content = content
	d.saved = true
	d.undo = nil
	d.redo = nil
}

func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{Path: d.path, Name: d.name, Content: d.content, Saved: d.saved}
}

func (d *Document) Content() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

// Edit records new content. It reports false when nothing changed.
func (d *Document) Edit(content string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if content == d.content {
		return false
	}
	d.undo = pushBounded(d.undo, d.content, d.limit)
	d.redo = nil
	d.content = content
	d.saved = false
	return true
}

func (d *Document) Undo() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.undo) == 0 {
		return d.content, false
	}
	prev := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	d.redo = pushBounded(d.redo, d.content, d.limit)
	d.content = prev
	d.saved = false
	return prev, true
}

func (d *Document) Redo() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.redo) == 0 {
		return d.content, false
	}
	next := d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]
	d.undo = pushBounded(d.undo, d.content, d.limit)
	d.content = next
	d.saved = false
	return next, true
}

func pushBounded(stack []string, v string, limit int) []string {
	stack = append(stack, v)
	if len(stack) > limit {
		stack = stack[len(stack)-limit:]
	}
	return stack
}

// SetName changes the file name shown to the user, forcing the .md suffix.
func (d *Document) SetName(name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.name = MarkdownName(name)
	return d.name
}

// MarkdownName appends the markdown extension when it is missing.
func MarkdownName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return UntitledName
	}
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}
	return name
}

func baseName(path string) string {
	if path == "" {
		return UntitledName
	}
	return filepath.Base(path)
}

type PlanKind int

const (
	// PlanDialog means the user has to pick a destination first.
	PlanDialog PlanKind = iota
	PlanWrite
	// PlanRename moves the file to the new name, then writes it.
	PlanRename
)

type Plan struct {
	Kind PlanKind
	From string
	To   string
}

// SavePlan works out what saving the document right now involves.
func (d *Document) SavePlan() Plan {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.planLocked()
}

func (d *Document) planLocked() Plan {
	switch {
	case d.path == "":
		return Plan{Kind: PlanDialog, To: d.name}
	case filepath.Base(d.path) != d.name:
		return Plan{Kind: PlanRename, From: d.path, To: filepath.Join(filepath.Dir(d.path), d.name)}
	default:
		return Plan{Kind: PlanWrite, To: d.path}
	}
}

// Save writes the document to its current location, renaming it first when
// the name was changed. On failure the name goes back to the file on disk.
func (d *Document) Save(files Files) (Plan, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	plan := d.planLocked()
	var err error
	switch plan.Kind {
	case PlanDialog:
		return plan, ErrNeedsPath
	case PlanRename:
		if err = files.Rename(plan.From, plan.To); err == nil {
			err = files.WriteTextFile(plan.To, d.content)
		}
	case PlanWrite:
		err = files.WriteTextFile(plan.To, d.content)
	}
	if err != nil {
		d.saved = false
		d.name = baseName(d.path)
		return plan, fmt.Errorf("save %s: %w", plan.To, err)
	}
	d.path = plan.To
	d.saved = true
	return plan, nil
}

// SaveAs writes the document to a freshly chosen path.
func (d *Document) SaveAs(files Files, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := files.WriteTextFile(path, d.content); err != nil {
		d.saved = false
		return fmt.Errorf("save %s: %w", path, err)
	}
	d.path = path
	d.name = filepath.Base(path)
	d.saved = true
	return nil
}
