package plugins

import "slices"

const recentDirsKey = "recent-dirs"

// Preferences is the part of fyne.Preferences used for recent directories.
type Preferences interface {
	StringList(key string) []string
	SetStringList(key string, value []string)
}

// RecentDirs remembers the folders the user opened, most recent first.
type RecentDirs struct {
	prefs Preferences
	limit int
}

func NewRecentDirs(prefs Preferences, limit int) *RecentDirs {
	if limit <= 0 {
		limit = 10
	}
	return &RecentDirs{prefs: prefs, limit: limit}
}

func (r *RecentDirs) List() []string {
	dirs := r.prefs.StringList(recentDirsKey)
	if len(dirs) > r.limit {
		dirs = dirs[:r.limit]
	}
	return dirs
}

// Add moves dir to the front of the list.
func (r *RecentDirs) Add(dir string) []string {
	if dir == "" {
		return r.List()
	}
	dirs := slices.DeleteFunc(slices.Clone(r.prefs.StringList(recentDirsKey)), func(d string) bool {
		return d == dir
	})
	dirs = append([]string{dir}, dirs...)
	if len(dirs) > r.limit {
		dirs = dirs[:r.limit]
	}
	r.prefs.SetStringList(recentDirsKey, dirs)
	return dirs
}

func (r *RecentDirs) Remove(dir string) []string {
	dirs := slices.DeleteFunc(slices.Clone(r.prefs.StringList(recentDirsKey)), func(d string) bool {
		return d == dir
	})
	r.prefs.SetStringList(recentDirsKey, dirs)
	return dirs
}
