package route

import (
	"path/filepath"

	"github.com/metamemelord/Mockerino/spec"
	"github.com/metamemelord/Mockerino/walker"
	"github.com/sirupsen/logrus"
)

type (
	// Loader builds a Table from every spec file below BaseDir.
	Loader struct {
		BaseDir string
		// FileRoot is joined to relative body file paths. Empty leaves them
		// relative to the working directory.
		FileRoot string
		// Ignore holds doublestar patterns of spec files to leave out.
		Ignore []string
		Logger logrus.FieldLogger
	}

	// LoadResult is the outcome of a Load.
	LoadResult struct {
		Table       *Table
		Files       int
		Diagnostics []Diagnostic
	}
)

// HasErrors reports whether any file or response was left out.
func (r *LoadResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Load scans, parses and compiles the spec tree. Problems with single files
// end up in the diagnostics; the returned error is only set when the loader
// itself is misconfigured.
func (l *Loader) Load() (*LoadResult, error) {
	logger := l.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	w, err := walker.New(walker.WithLogger(logger), walker.WithIgnore(l.Ignore...))
	if err != nil {
		return nil, err
	}

	res := &LoadResult{Table: NewTable()}

	logger.WithField("base", l.BaseDir).Info("looking for spec files")

	w.Scan(l.BaseDir, func(file string) {
		res.Files++

		f, err := spec.ParseFile(file)
		if err == nil {
			err = l.compileInto(res, f, file)
		}
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{File: file, Severity: SeverityError, Err: err})
		}
	})

	for _, d := range res.Diagnostics {
		entry := logger.WithFields(logrus.Fields{"file": d.File, "severity": d.Severity})
		if d.Key.Method != "" {
			entry = entry.WithField("route", d.Key.String())
		}

		switch d.Severity {
		case SeverityError:
			entry.WithError(d.Err).Error("spec problem")
		case SeverityWarning:
			entry.WithError(d.Err).Warn("spec problem")
		default:
			entry.Info(d.Err.Error())
		}
	}

	for _, e := range res.Table.Entries() {
		logger.Info(e.Key.String())
	}

	logger.WithFields(logrus.Fields{"files": res.Files, "routes": res.Table.Len()}).Info("routes compiled")

	return res, nil
}

func (l *Loader) compileInto(res *LoadResult, f *spec.File, file string) error {
	path := Derive(l.BaseDir, file)

	entries, diagnostics, err := Compile(f, file, path)
	if err != nil {
		return err
	}
	res.Diagnostics = append(res.Diagnostics, diagnostics...)

	for _, e := range entries {
		if e.Source == BodyFile && l.FileRoot != "" && !filepath.IsAbs(e.File) {
			e.File = filepath.Join(l.FileRoot, e.File)
		}

		if prev := res.Table.add(e); prev != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				File:     file,
				Key:      e.Key,
				Severity: SeverityWarning,
				Err:      &CollisionError{Method: e.Method, Path: e.Path, Previous: prev.SpecFile},
			})
		}
	}

	return nil
}
