package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const markdownExt = ".md"

// Entry is a node of a markdown directory tree.
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	Children []Entry
}

// FS reads and writes text files on behalf of the editor.
type FS struct{}

func NewFS() *FS {
	return &FS{}
}

func (f *FS) Name() string { return FSName }

func (f *FS) Init(*Host) error { return nil }

func (f *FS) ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (f *FS) WriteTextFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (f *FS) Rename(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("rename %s: %w", from, err)
	}
	return nil
}

// Mkdir creates path and any missing parents.
func (f *FS) Mkdir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

// ReadTree lists dir recursively, keeping directories and markdown files.
// Directories come first, then entries by name. Hidden entries are skipped.
func (f *FS) ReadTree(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)

		switch {
		case de.IsDir():
			children, err := f.ReadTree(full)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Name: name, Path: full, IsDir: true, Children: children})
		case strings.HasSuffix(name, markdownExt):
			entries = append(entries, Entry{Name: name, Path: full})
		}
	}

	sortEntries(entries)
	return entries, nil
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		li, lj := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if li != lj {
			return li < lj
		}
		return entries[i].Name < entries[j].Name
	})
}

// FilterTree keeps files whose name contains query and the directories that
// lead to them. Matching is case-insensitive; an empty query keeps everything.
func FilterTree(entries []Entry, query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}

	var filtered []Entry
	for _, e := range entries {
		if !e.IsDir {
			if strings.Contains(strings.ToLower(e.Name), query) {
				filtered = append(filtered, e)
			}
			continue
		}
		children := FilterTree(e.Children, query)
		if len(children) > 0 {
			e.Children = children
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Files flattens a tree into its markdown files in display order.
func Files(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.IsDir {
			out = append(out, Files(e.Children)...)
			continue
		}
		out = append(out, e)
	}
	return out
}
