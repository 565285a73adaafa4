/*
File    : golox/file/file.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package file loads Lox source from disk for the CLI's file-execution
// and watch modes. It replaces the teacher's FileObject/fopen-fclose
// runtime I/O builtins entirely — this language has no file I/O builtins
// of its own (the only stdlib surface is `print`), so the only remaining
// job on the file-system boundary is getting a script's bytes in, and
// watching a script's path for edits.
package file

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

// LoadScript reads the Lox source at path, wrapping any failure with the
// path for a clearer CLI error message.
func LoadScript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Watcher watches a single script path for writes, invoking onChange
// with the script's freshly re-read contents each time. It is grounded
// on fsnotify's recommended single-file watch pattern: watch the
// containing directory (so editors that write via rename/replace are
// still seen) and filter events down to the one path of interest.
type Watcher struct {
	inner *fsnotify.Watcher
	path  string
}

// NewWatcher begins watching path's containing directory.
func NewWatcher(path string) (*Watcher, error) {
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	dir := dirOf(path)
	if err := inner.Add(dir); err != nil {
		inner.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{inner: inner, path: path}, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error { return w.inner.Close() }

// Run blocks, invoking onChange(contents) every time the watched path is
// written or created, until the watcher is closed or an unrecoverable
// error occurs (which is returned).
func (w *Watcher) Run(onChange func(contents string)) error {
	for {
		select {
		case event, ok := <-w.inner.Events:
			if !ok {
				return nil
			}
			if event.Name != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			contents, err := LoadScript(w.path)
			if err != nil {
				continue // transient: editor briefly removed the file mid-save
			}
			onChange(contents)
		case err, ok := <-w.inner.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
