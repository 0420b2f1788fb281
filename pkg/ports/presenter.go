package ports

import (
	"context"
	"time"

	"github.com/user/frameview/pkg/pipeline"
)

// Presenter is the presentation surface collaborator: it receives one fully
// composed destination plane per render.
type Presenter interface {
	// Present blits the plane to the surface.
	Present(plane *pipeline.DestinationPlane) error

	// Close releases the surface.
	Close() error
}

// Clock supplies time readings and frame pacing to the host loop.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is done, returning ctx.Err() in
	// the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current time with its monotonic reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep waits on a timer.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
