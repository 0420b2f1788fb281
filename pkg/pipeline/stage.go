// Package pipeline provides the shared data model and stage infrastructure
// for frameview.
package pipeline

import (
	"context"
)

// Stage is a unit of load-time work that may block and can be cancelled.
// Only loading runs as a stage; everything on the render path is
// synchronous and never fails.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}
