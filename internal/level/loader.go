package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the levels shipped with the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("level: builtin levels: %v", err))
	}
	return sub
}

// Loader reads level files from a file system.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// NewDirLoader creates a loader over a directory on disk.
// An empty dir selects the built-in levels.
func NewDirLoader(dir string) *Loader {
	if dir == "" {
		return NewLoader(Builtin())
	}
	return NewLoader(os.DirFS(dir))
}

// LoadAll recursively scans and loads all level files.
// Unparseable files are skipped. Levels are sorted by index.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		lvl, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("level: walking levels: %w", err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Index < levels[j].Index
	})
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("level: reading %s: %w", p, err)
	}
	lvl, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("level: parsing %s: %w", p, err)
	}
	lvl.FilePath = p
	return lvl, nil
}

// Paths maps level index to file path for every loadable level.
// When two files claim one index the first in path order wins.
func (l *Loader) Paths() (map[int]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	paths := make(map[int]string, len(levels))
	for _, lvl := range levels {
		if _, exists := paths[lvl.Index]; !exists {
			paths[lvl.Index] = lvl.FilePath
		}
	}
	return paths, nil
}

// ByIndex loads the level with the given index.
func (l *Loader) ByIndex(index int) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.Index == index {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level: index %d not found", index)
}

func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
