// Package inject implements the marker protocol wren uses to mutate
// aggregator files it does not own outright: named anchor lines before which
// new lines are spliced idempotently, and a sentinel that fences off the
// user-owned tail of a generated file.
package inject

import (
	"fmt"
	"os"
	"strings"

	"github.com/wrenframe/wren/generator"
)

// MarkerNotFoundError reports a missing anchor line. A hand-edited or
// corrupted aggregator file is the usual cause.
type MarkerNotFoundError struct {
	Marker string
	Path   string // empty for the pure InsertBefore form
}

func (e *MarkerNotFoundError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("marker %q not found", e.Marker)
	}
	return fmt.Sprintf("marker %q not found in %s", e.Marker, e.Path)
}

// InsertBefore splices line immediately before the marker anchor in content.
//
// If content already contains line anywhere, the input is returned unchanged,
// so repeated application never duplicates. The file's line-ending convention
// (LF or CRLF) is preserved. Returns *MarkerNotFoundError when the anchor is
// absent.
func InsertBefore(content, marker, line string) (string, error) {
	if strings.Contains(content, line) {
		return content, nil
	}
	idx := strings.Index(content, marker)
	if idx == -1 {
		return "", &MarkerNotFoundError{Marker: marker}
	}

	eol := "\n"
	if strings.Contains(content, "\r\n") {
		eol = "\r\n"
	}

	// Splice at the start of the anchor's line so an indented anchor keeps
	// its indentation; inserted lines carry their own.
	lineStart := strings.LastIndex(content[:idx], "\n") + 1
	return content[:lineStart] + line + eol + content[lineStart:], nil
}

// InsertAtMarker applies InsertBefore to a file on disk, rewriting it
// atomically. Returns whether the file changed: a line that is already
// present is a no-op, does not touch the file, and reports false so callers
// can surface the skip instead of claiming a fresh splice.
func InsertAtMarker(path, marker, line string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	content := string(raw)
	updated, err := InsertBefore(content, marker, line)
	if err != nil {
		if me, ok := err.(*MarkerNotFoundError); ok {
			me.Path = path
		}
		return false, err
	}
	if updated == content {
		return false, nil
	}

	return true, generator.WriteFileAtomic(path, []byte(updated), 0644)
}

// MarkerCheck is one missing anchor found by ValidateMarkers.
type MarkerCheck struct {
	Path   string
	Marker string
}

// ValidateMarkers verifies that every expected anchor is present in its file
// before generation begins, so a run fails loudly up front instead of half
// way through. Files that do not exist are reported the same as files whose
// anchor was removed.
func ValidateMarkers(expected map[string][]string) []MarkerCheck {
	var missing []MarkerCheck

	for path, markers := range expected {
		raw, err := os.ReadFile(path)
		if err != nil {
			for _, m := range markers {
				missing = append(missing, MarkerCheck{Path: path, Marker: m})
			}
			continue
		}
		content := string(raw)
		for _, m := range markers {
			if !strings.Contains(content, m) {
				missing = append(missing, MarkerCheck{Path: path, Marker: m})
			}
		}
	}

	return missing
}
