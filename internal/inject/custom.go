package inject

import (
	"os"
	"strings"

	"github.com/wrenframe/wren/generator"
)

// CustomMarker fences the user-owned tail of a generated file. Everything
// from this line to EOF belongs to the user and survives regeneration
// byte for byte.
const CustomMarker = "// === WREN:CUSTOM ==="

// SplitCustom cuts content at the first occurrence of the custom sentinel.
// The custom part includes the sentinel line itself; when the sentinel is
// absent the whole content is generated and the custom part is empty.
func SplitCustom(content string) (generated, custom string) {
	if pos := strings.Index(content, CustomMarker); pos != -1 {
		return content[:pos], content[pos:]
	}
	return content, ""
}

// MergeCustom reattaches a previously split custom part after fresh generated
// output. The custom part is carried verbatim; it already starts with the
// sentinel line, so merge is plain concatenation.
func MergeCustom(generated, custom string) string {
	return generated + custom
}

// Merged returns what path should contain after regeneration: the fresh
// generated content, with any custom block currently on disk reattached.
func Merged(path string, generated []byte) []byte {
	if raw, err := os.ReadFile(path); err == nil {
		if _, custom := SplitCustom(string(raw)); custom != "" {
			return []byte(MergeCustom(string(generated), custom))
		}
	}
	return generated
}

// WriteGenerated writes generated content to path, preserving any custom
// block already on disk, and returns the bytes actually written so callers
// can fingerprint the real on-disk content. The write is atomic so a crash
// never leaves a half-merged file that would corrupt the next split.
func WriteGenerated(path string, generated []byte) ([]byte, error) {
	content := Merged(path, generated)
	if err := generator.WriteFileAtomic(path, content, 0644); err != nil {
		return nil, err
	}
	return content, nil
}
