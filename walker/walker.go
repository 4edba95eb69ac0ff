// Package walker finds spec files below a base directory.
//
// Directories are visited depth first and the entries of every directory in
// lexical order, so two scans of an unchanged tree yield the same sequence.
// Route precedence depends on that order.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
)

// SpecPattern matches the file names treated as spec files.
const SpecPattern = "**/*.{yaml,yml}"

type (
	// Walker scans a directory tree for spec files.
	Walker struct {
		logger  logrus.FieldLogger
		include string
		ignore  []string
	}

	// Option is a function that can modify a Walker
	Option func(w *Walker)

	badPattern string

	notADir string
)

// Error implements the error interface
func (bp badPattern) Error() string {
	return fmt.Sprintf("invalid glob pattern %q", string(bp))
}

// Error implements the error interface
func (nd notADir) Error() string {
	return fmt.Sprintf("%s is not a directory", string(nd))
}

// WithLogger overrides the default logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *Walker) {
		w.logger = l
	}
}

// WithIgnore excludes files whose slash separated path relative to the base
// directory matches any of the patterns.
func WithIgnore(patterns ...string) Option {
	return func(w *Walker) {
		w.ignore = append(w.ignore, patterns...)
	}
}

// New returns a Walker matching SpecPattern.
func New(options ...Option) (*Walker, error) {
	w := &Walker{
		logger:  logrus.StandardLogger(),
		include: SpecPattern,
	}

	for _, applyOption := range options {
		applyOption(w)
	}

	for _, p := range append([]string{w.include}, w.ignore...) {
		if !doublestar.ValidatePattern(p) {
			return nil, badPattern(p)
		}
	}

	return w, nil
}

// Scan calls fn for every spec file below baseDir. Entries that cannot be
// read are logged and skipped, a failing entry never ends the scan. A
// symlinked baseDir is followed; paths handed to fn stay below baseDir.
func (w *Walker) Scan(baseDir string, fn func(path string)) {
	root, err := resolveBase(baseDir)
	if err != nil {
		w.logger.WithError(err).WithField("base", baseDir).Error("cannot scan base dir")
		return
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.WithError(err).WithField("path", path).Warn("skipping unreadable entry")
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			w.logger.WithError(err).WithField("path", path).Warn("skipping entry outside base dir")
			return nil
		}

		if !w.matches(filepath.ToSlash(rel)) {
			return nil
		}

		path = filepath.Join(baseDir, rel)
		w.logger.WithField("path", path).Debug("found spec file")
		fn(path)

		return nil
	})

	if err != nil {
		w.logger.WithError(err).WithField("base", baseDir).Error("scan aborted")
	}
}

// resolveBase follows symlinks on baseDir and checks that it is a directory.
func resolveBase(baseDir string) (string, error) {
	root, err := filepath.EvalSymlinks(baseDir)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", notADir(baseDir)
	}

	return root, nil
}

// Files collects the result of Scan.
func (w *Walker) Files(baseDir string) []string {
	var files []string
	w.Scan(baseDir, func(path string) {
		files = append(files, path)
	})

	return files
}

func (w *Walker) matches(rel string) bool {
	if ok, _ := doublestar.Match(w.include, rel); !ok {
		return false
	}

	for _, p := range w.ignore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}

	return true
}
