// Package fs provides file naming and streaming disk storage for
// downloaded documents.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// maxNameLen caps derived file names; longer names break on some
// filesystems.
const maxNameLen = 200

// illegalChars are characters not allowed in file names on common
// filesystems. Each is replaced with an underscore.
const illegalChars = `<>:"/\|?*`

// Sanitize replaces characters illegal in file names with underscores and
// truncates the result to a safe length.
func Sanitize(name string) string {
	out := strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalChars, r) {
			return '_'
		}
		return r
	}, name)
	if len(out) > maxNameLen {
		out = out[:maxNameLen]
	}
	return out
}

// EnsurePDF appends a .pdf extension when the name doesn't already carry
// one.
func EnsurePDF(name string) string {
	if name != "" && !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return name + ".pdf"
	}
	return name
}

// SafeName derives a file name from the URL's path component. URLs with an
// empty or non-PDF base name fall back to a synthetic name keyed by index.
func SafeName(rawURL string, index int) string {
	var name string
	if u, err := url.Parse(rawURL); err == nil {
		name = path.Base(u.Path)
		if name == "." || name == "/" {
			name = ""
		}
	}
	if name == "" || !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name = fmt.Sprintf("documento_%d.pdf", index)
	}
	return Sanitize(name)
}

// UniquePath joins dir and name, appending a numeric suffix before the
// extension until the path doesn't exist. Existing files are never
// overwritten.
func UniquePath(dir, name string) string {
	full := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for counter := 1; exists(full); counter++ {
		full = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
	}
	return full
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
