// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/constructdoc/internal/errors"
	"grimm.is/constructdoc/internal/logging"
)

// Writer writes one rendered document to a fixed list of destinations.
//
// Each destination is replaced atomically, but the destinations are written
// one after another: if the second write fails the first file has already
// been updated.
type Writer struct {
	paths  []string
	logger *logging.Logger
}

// Drift describes a destination whose content differs from the rendered document.
type Drift struct {
	Path    string
	Missing bool
	Diff    string // unified diff, current -> generated
}

// NewWriter creates a Writer for paths. A nil logger discards output.
func NewWriter(logger *logging.Logger, paths ...string) *Writer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Writer{
		paths:  append([]string(nil), paths...),
		logger: logger.WithComponent("writer"),
	}
}

// Paths returns the destinations in write order.
func (w *Writer) Paths() []string {
	return append([]string(nil), w.paths...)
}

// Write writes doc to every destination, stopping at the first failure.
// Parent directories must already exist.
func (w *Writer) Write(doc string) error {
	if len(w.paths) == 0 {
		return errors.New(errors.KindConfig, "no output destinations configured")
	}
	for _, path := range w.paths {
		if err := writeFileAtomic(path, []byte(doc)); err != nil {
			return errors.Attr(errors.Wrap(err, errors.KindIO, "write document"), "path", path)
		}
		w.logger.Info("Generated document", "path", path, "bytes", len(doc))
	}
	return nil
}

// Check compares doc with the current content of every destination and
// returns one Drift per destination that is missing or different.
func (w *Writer) Check(doc string) ([]Drift, error) {
	var drifts []Drift
	for _, path := range w.paths {
		current, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				drifts = append(drifts, Drift{Path: path, Missing: true})
				continue
			}
			return nil, errors.Attr(errors.Wrap(err, errors.KindIO, "read document"), "path", path)
		}
		if string(current) == doc {
			w.logger.Debug("Document up to date", "path", path)
			continue
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(current)),
			B:        difflib.SplitLines(doc),
			FromFile: path,
			ToFile:   path + " (generated)",
			Context:  3,
		})
		if err != nil {
			return nil, errors.Attr(errors.Wrap(err, errors.KindInternal, "diff document"), "path", path)
		}
		drifts = append(drifts, Drift{Path: path, Diff: diff})
	}
	return drifts, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a partially written document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
