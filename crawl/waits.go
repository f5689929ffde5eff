package crawl

import (
	"context"
	"time"

	"github.com/fmaia/pdfgrab"
)

// WaitPolicy names the bounded waits used by the rendered flows. Rendering
// and redirect completion are not observable synchronously, so fixed
// settle delays substitute for a ready signal. This is a known limitation
// of the approach, not a general synchronization primitive.
//
// Tests inject a zero policy to run without real delays.
type WaitPolicy struct {
	// PageSettle is the wait after navigating to a rendered target page.
	PageSettle time.Duration

	// CourseSettle is the wait after navigating to a course index.
	CourseSettle time.Duration

	// LessonSettle is the wait after navigating to a lesson page.
	LessonSettle time.Duration

	// DialogWait bounds the poll for a native dialog's presence.
	DialogWait time.Duration

	// DialogGap is the pause between the two sequential dialog checks.
	DialogGap time.Duration

	// PostClick is the pause after a simulated download click.
	PostClick time.Duration

	// DiscoveryRetry is the pause between lesson-discovery passes.
	DiscoveryRetry time.Duration
}

// DefaultWaits returns the production wait policy.
func DefaultWaits() WaitPolicy {
	return WaitPolicy{
		PageSettle:     8 * time.Second,
		CourseSettle:   10 * time.Second,
		LessonSettle:   5 * time.Second,
		DialogWait:     2 * time.Second,
		DialogGap:      time.Second,
		PostClick:      2 * time.Second,
		DiscoveryRetry: 2 * time.Second,
	}
}

// dismissDialogs accepts at most two sequential transient dialogs. Absence
// of a dialog costs only the bounded DialogWait.
func dismissDialogs(ctx context.Context, browser pdfgrab.Browser, waits WaitPolicy) {
	browser.AcceptDialog(ctx, waits.DialogWait)
	_ = sleep(ctx, waits.DialogGap)
	browser.AcceptDialog(ctx, waits.DialogWait)
}
