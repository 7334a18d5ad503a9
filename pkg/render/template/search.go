package template

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// BuiltinPrefix marks Dir paths that point into an embedded bundle rather
// than the host filesystem.
const BuiltinPrefix = "builtin:"

// Dir is one entry of a search path.
type Dir struct {
	// Path identifies the directory; absolute for disk directories.
	Path string
	FS   fs.FS
}

// DiskDir returns a Dir for a directory on the host filesystem. The directory
// does not need to exist.
func DiskDir(dir string) Dir {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	return Dir{Path: abs, FS: os.DirFS(abs)}
}

// EmbeddedDir returns a Dir for a bundled filesystem labelled with label.
func EmbeddedDir(label string, fsys fs.FS) Dir {
	return Dir{Path: BuiltinPrefix + strings.Trim(label, "/"), FS: fsys}
}

// Origin describes where a template was found, or where it was looked for.
type Origin struct {
	Name   string
	Dir    string
	Engine string
}

// Path joins the directory and template name.
func (o Origin) Path() string {
	if strings.HasPrefix(o.Dir, BuiltinPrefix) {
		return path.Join(o.Dir, o.Name)
	}
	return filepath.Join(o.Dir, filepath.FromSlash(o.Name))
}

// SearchPath orders the directories an engine searches: cfg.Dirs, then the
// per-application <app>/<appDirname> directories when cfg.AppDirs is set, then
// cfg.FallbackDirs.
func SearchPath(cfg Config, appDirname string) []Dir {
	dirs := make([]Dir, 0, len(cfg.Dirs)+len(cfg.FallbackDirs))
	for _, dir := range cfg.Dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		dirs = append(dirs, DiskDir(dir))
	}
	if cfg.AppDirs && cfg.Apps != nil {
		for _, dir := range cfg.Apps.TemplateDirs(appDirname) {
			dirs = append(dirs, DiskDir(dir))
		}
	}
	for _, dir := range cfg.FallbackDirs {
		if dir.FS == nil {
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

// Find returns the first regular file called name along dirs together with
// its source. Names that are absolute or escape the directory are never
// found.
func Find(dirs []Dir, engine, name string) (Origin, []byte, error) {
	clean, ok := cleanName(name)
	if !ok {
		return Origin{}, nil, &NotFoundError{Name: name}
	}

	tried := make([]Origin, 0, len(dirs))
	for _, dir := range dirs {
		origin := Origin{Name: clean, Dir: dir.Path, Engine: engine}
		info, err := fs.Stat(dir.FS, clean)
		if err != nil || info.IsDir() {
			tried = append(tried, origin)
			continue
		}
		source, err := fs.ReadFile(dir.FS, clean)
		if err != nil {
			return origin, nil, fmt.Errorf("template: read %s: %w", origin.Path(), err)
		}
		return origin, source, nil
	}
	return Origin{}, nil, &NotFoundError{Name: name, Tried: tried}
}

func cleanName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}
	slashed := filepath.ToSlash(trimmed)
	if strings.HasPrefix(slashed, "/") {
		return "", false
	}
	clean := path.Clean(slashed)
	if !fs.ValidPath(clean) || clean == "." {
		return "", false
	}
	return clean, true
}
