// Package batch provides folder-batch navigation over scope photographs.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	scopeimage "radar-scope/internal/image"
)

// List returns the supported image files in a directory, sorted by name so a
// scanned batch keeps its capture order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if scopeimage.IsSupportedFormat(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// Navigator iterates a fixed list of image paths with a current position.
type Navigator struct {
	files []string
	index int
}

// NewNavigator creates a navigator over the given files, positioned at the
// first one.
func NewNavigator(files []string) *Navigator {
	return &Navigator{files: files}
}

// Len returns the number of files in the batch.
func (n *Navigator) Len() int {
	return len(n.files)
}

// Current returns the path at the current position, or "" for an empty batch.
func (n *Navigator) Current() string {
	if len(n.files) == 0 {
		return ""
	}
	return n.files[n.index]
}

// Position returns the 1-based position and total count for display.
func (n *Navigator) Position() (int, int) {
	if len(n.files) == 0 {
		return 0, 0
	}
	return n.index + 1, len(n.files)
}

// Next advances to the next image and returns its path. At the end of the
// batch it stays put and returns "".
func (n *Navigator) Next() string {
	if n.index+1 >= len(n.files) {
		return ""
	}
	n.index++
	return n.files[n.index]
}

// Prev steps back to the previous image and returns its path. At the start
// of the batch it stays put and returns "".
func (n *Navigator) Prev() string {
	if n.index == 0 || len(n.files) == 0 {
		return ""
	}
	n.index--
	return n.files[n.index]
}

// JumpTo positions the navigator on the given path if it is in the batch.
func (n *Navigator) JumpTo(path string) bool {
	for i, f := range n.files {
		if f == path {
			n.index = i
			return true
		}
	}
	return false
}
