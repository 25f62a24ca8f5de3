package locate

import (
	"os"
	"path/filepath"

	"github.com/MfgOpen/industricons/core"
)

// Default names of project files.
const (
	MetaFileName        = "meta.json"
	MappingFileName     = "mapping.json"
	PreviewTemplateName = "preview.hbs"
	StylesTemplateName  = "styles.hbs"
)

// Layout holds the absolute paths of a project's inputs and outputs.
type Layout struct {
	Root            string
	SrcRoot         string // <root>/src
	DistRoot        string // <root>/dist
	IconsSrcDir     string // raw icons
	DistLibDir      string // optimized icons
	TemplatesDir    string
	PreviewTemplate string
	StylesTemplate  string
	MappingFile     string
	MetaFile        string
}

// NewLayout creates the standard layout for a project rooted at root.
// A relative root is resolved against the working directory.
func NewLayout(root string) Layout {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	src := filepath.Join(root, "src")
	dist := filepath.Join(root, "dist")
	tmpl := filepath.Join(src, "templates")
	return Layout{
		Root:            root,
		SrcRoot:         src,
		DistRoot:        dist,
		IconsSrcDir:     filepath.Join(src, "lib"),
		DistLibDir:      filepath.Join(dist, "lib"),
		TemplatesDir:    tmpl,
		PreviewTemplate: filepath.Join(tmpl, PreviewTemplateName),
		StylesTemplate:  filepath.Join(tmpl, StylesTemplateName),
		MappingFile:     filepath.Join(src, MappingFileName),
		MetaFile:        filepath.Join(root, MetaFileName),
	}
}

// DistFile returns the path of a file directly below the output root.
func (l Layout) DistFile(name string) string {
	return filepath.Join(l.DistRoot, name)
}

// ResetDist deletes the output root with all of its contents and creates
// it again, empty.
func (l Layout) ResetDist() error {
	tracer().Debugf("removing %s", l.DistRoot)
	if err := os.RemoveAll(l.DistRoot); err != nil {
		return core.IOError(err, "cannot remove output directory %s", l.DistRoot)
	}
	return EnsureDir(l.DistRoot)
}

// EnsureDir creates dir and any missing parents (permissions 755).
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return core.IOError(err, "cannot create directory %s", dir)
	}
	return nil
}

// RemoveIfExists deletes a single file. A file that does not exist is not
// an error.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return core.IOError(err, "cannot remove %s", path)
}
