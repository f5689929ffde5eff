package pdfgrab

import "context"

// DownloadResult describes one completed retrieval.
type DownloadResult struct {
	// Path is the final on-disk location of the artifact.
	Path string

	// Attempts is the number of fetch attempts used, including the
	// successful one.
	Attempts int

	// Size is the number of bytes written.
	Size int64

	// Hash is the xxhash of the streamed body, usable for spotting
	// duplicate artifacts served under different URLs.
	Hash uint64
}

// Downloader turns a discovered URL into a uniquely named file on disk.
// It is the unit of idempotence: existing files are never overwritten, and
// a failed attempt never leaves a partial file behind.
type Downloader interface {
	// Download retrieves url into the destination directory. suggestedName,
	// when non-empty, overrides URL-derived naming but still passes through
	// sanitization and extension enforcement.
	Download(ctx context.Context, url string, suggestedName string) (*DownloadResult, error)
}
