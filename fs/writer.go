package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Writer streams document bodies into a destination directory. Bodies are
// written incrementally to a temporary part file and renamed into place on
// success, so a partial file never remains on disk as if complete.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir. The directory is created on
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the destination directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write streams r into the file at dest, which must live under the
// writer's directory. It returns the number of bytes written and the
// xxhash of the body. On any error the part file is removed and nothing
// remains at dest.
func (w *Writer) Write(dest string, r io.Reader) (size int64, hash uint64, err error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return 0, 0, err
	}

	part := dest + "." + uuid.NewString() + ".part"
	f, err := os.Create(part)
	if err != nil {
		return 0, 0, err
	}

	digest := xxhash.New()
	size, err = io.Copy(io.MultiWriter(f, digest), r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(part)
		return 0, 0, err
	}

	if err := os.Rename(part, dest); err != nil {
		_ = os.Remove(part)
		return 0, 0, err
	}
	return size, digest.Sum64(), nil
}

// Remove deletes a previously written file. Used to clean up after
// failures detected outside the write itself.
func (w *Writer) Remove(dest string) error {
	if filepath.Dir(dest) != filepath.Clean(w.dir) {
		return nil
	}
	return os.Remove(dest)
}
