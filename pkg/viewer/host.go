// Package viewer runs a playback controller the way a window system
// would: it signals surface readiness, renders at a fixed rate while
// redraws are requested, and forwards resize and close signals one at a
// time in arrival order.
package viewer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/playback"
	"github.com/user/frameview/pkg/ports"
)

// EventKind identifies a host signal.
type EventKind int

const (
	// EventResize reports a new surface size.
	EventResize EventKind = iota
	// EventClose asks the host to stop.
	EventClose
	// EventReload swaps in a controller for a freshly loaded sequence.
	EventReload
)

// Event is a signal queued for the render loop.
type Event struct {
	Kind       EventKind
	Size       pipeline.Dimension   // EventResize
	Controller *playback.Controller // EventReload
}

// ScheduledResize resizes the surface once After has elapsed since start.
type ScheduledResize struct {
	After time.Duration
	Size  pipeline.Dimension
}

// StopReason tells why Run returned.
type StopReason string

const (
	StopDuration    StopReason = "duration"
	StopClosed      StopReason = "closed"
	StopInterrupted StopReason = "interrupted"
)

// Options configures the host loop.
type Options struct {
	Size          pipeline.Dimension
	Format        pipeline.PixelFormat
	FPS           float64
	Duration      time.Duration // 0 runs until closed or interrupted
	Schedule      []ScheduledResize
	SnapshotEvery int // Save every Nth presented plane to the debug sink, 0 = never
}

// DefaultOptions returns a 640x480 XRGB8888 surface refreshed at 30 fps.
func DefaultOptions() Options {
	return Options{
		Size:   pipeline.Dimension{Width: 640, Height: 480},
		Format: pipeline.FormatXRGB8888,
		FPS:    30,
	}
}

// Result describes a finished session.
type Result struct {
	Reason    StopReason
	Presented int
	Elapsed   time.Duration
	FinalSize pipeline.Dimension
	Reloads   int
	Sequence  pipeline.Sequence // Playing when the session ended
	Stats     playback.Stats    // Of the controller active at the end
}

const eventQueueSize = 64

// Host owns the only goroutine that touches the controller.
type Host struct {
	ctrl      *playback.Controller
	presenter ports.Presenter
	sink      ports.DebugSink
	clock     ports.Clock
	logger    ports.Logger
	opts      Options
	events    chan Event
	done      chan struct{}
	stopOnce  sync.Once
}

// New creates a host. Events may be sent before Run starts.
func New(
	ctrl *playback.Controller,
	presenter ports.Presenter,
	sink ports.DebugSink,
	clock ports.Clock,
	opts Options,
	logger ports.Logger,
) *Host {
	if opts.FPS <= 0 {
		opts.FPS = DefaultOptions().FPS
	}
	opts.Schedule = append([]ScheduledResize(nil), opts.Schedule...)
	sort.SliceStable(opts.Schedule, func(i, j int) bool {
		return opts.Schedule[i].After < opts.Schedule[j].After
	})
	return &Host{
		ctrl:      ctrl,
		presenter: presenter,
		sink:      sink,
		clock:     clock,
		logger:    logger.WithComponent("viewer"),
		opts:      opts,
		events:    make(chan Event, eventQueueSize),
		done:      make(chan struct{}),
	}
}

// Send queues an event. It is safe to call from any goroutine and blocks
// only while the queue is full. It returns false once Run has returned.
func (h *Host) Send(ev Event) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.events <- ev:
		return true
	case <-h.done:
		return false
	}
}

// Resize queues a resize signal.
func (h *Host) Resize(size pipeline.Dimension) {
	h.Send(Event{Kind: EventResize, Size: size})
}

// Reload queues a controller to replace the current one. The host takes
// ownership of ctrl and closes the controller it replaces.
func (h *Host) Reload(ctrl *playback.Controller) {
	if !h.Send(Event{Kind: EventReload, Controller: ctrl}) {
		ctrl.Close()
	}
}

// Close queues a close signal.
func (h *Host) Close() {
	h.Send(Event{Kind: EventClose})
}

// session is the mutable state of one Run.
type session struct {
	size      pipeline.Dimension
	dst       *pipeline.DestinationPlane
	dirty     bool
	presented int
	reloads   int
	next      int // next entry of the resize schedule
}

// Run drives the controller until the duration elapses, a close event
// arrives or ctx is cancelled. The controller and presenter are closed
// before returning. Only presentation failures are returned as errors.
func (h *Host) Run(ctx context.Context) (Result, error) {
	start := h.clock.Now()
	s := &session{dirty: true}
	h.setSize(s, h.opts.Size)
	h.ctrl.Ready(s.size, start)

	h.logger.Info("Playing at %dx%d (%s)", s.size.Width, s.size.Height, h.opts.Format.String())

	interval := time.Duration(float64(time.Second) / h.opts.FPS)
	result := Result{}

	defer func() {
		h.stop()
		h.ctrl.Close()
		if err := h.presenter.Close(); err != nil {
			h.logger.Warn("Failed to close presenter: %s", err.Error())
		}
	}()

loop:
	for {
		now := h.clock.Now()
		elapsed := now.Sub(start)

		if h.drain(s, now) {
			result.Reason = StopClosed
			break loop
		}
		h.applySchedule(s, elapsed)

		if h.opts.Duration > 0 && elapsed >= h.opts.Duration {
			result.Reason = StopDuration
			break loop
		}

		if s.dirty {
			if err := h.renderOnce(s, now); err != nil {
				return h.finish(result, s, start), err
			}
		}

		if err := h.clock.Sleep(ctx, interval); err != nil {
			result.Reason = StopInterrupted
			break loop
		}
	}

	result = h.finish(result, s, start)
	h.logger.Info("Playback stopped after %d renders", result.Presented)
	return result, nil
}

func (h *Host) finish(result Result, s *session, start time.Time) Result {
	result.Presented = s.presented
	result.Elapsed = h.clock.Now().Sub(start)
	result.FinalSize = s.size
	result.Reloads = s.reloads
	result.Sequence = h.ctrl.Sequence()
	result.Stats = h.ctrl.Stats()
	return result
}

// stop rejects further events and closes controllers still queued for
// reload.
func (h *Host) stop() {
	h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case ev := <-h.events:
			if ev.Kind == EventReload && ev.Controller != nil && ev.Controller != h.ctrl {
				ev.Controller.Close()
			}
		default:
			return
		}
	}
}

// drain handles every queued event and reports whether a close arrived.
func (h *Host) drain(s *session, now time.Time) bool {
	for {
		select {
		case ev := <-h.events:
			switch ev.Kind {
			case EventClose:
				return true
			case EventResize:
				h.resize(s, ev.Size)
			case EventReload:
				h.reload(s, ev.Controller, now)
			}
		default:
			return false
		}
	}
}

func (h *Host) applySchedule(s *session, elapsed time.Duration) {
	for s.next < len(h.opts.Schedule) && h.opts.Schedule[s.next].After <= elapsed {
		h.resize(s, h.opts.Schedule[s.next].Size)
		s.next++
	}
}

func (h *Host) resize(s *session, size pipeline.Dimension) {
	if size == s.size {
		return
	}
	h.setSize(s, size)
	h.ctrl.Resize(size)
	s.dirty = true
}

// reload retires the current controller. The new one starts its clock at
// now and renders at the current surface size.
func (h *Host) reload(s *session, ctrl *playback.Controller, now time.Time) {
	if ctrl == nil || ctrl == h.ctrl {
		return
	}
	h.ctrl.Close()
	h.ctrl = ctrl
	h.ctrl.Ready(s.size, now)
	s.dirty = true
	s.reloads++

	seq := ctrl.Sequence()
	h.logger.Info("Reloaded %s sequence: %d frames", seq.Kind.String(), seq.Len())
}

func (h *Host) setSize(s *session, size pipeline.Dimension) {
	s.size = size
	if size.Positive() {
		s.dst = pipeline.NewDestinationPlane(size, h.opts.Format)
	} else {
		s.dst = nil
	}
}

func (h *Host) renderOnce(s *session, now time.Time) error {
	before := h.ctrl.Stats().Renders
	s.dirty = h.ctrl.Render(s.size, now, s.dst)
	if h.ctrl.Stats().Renders == before {
		return nil
	}

	if err := h.presenter.Present(s.dst); err != nil {
		h.logger.Error("Failed to present frame: %s", err.Error())
		return fmt.Errorf("present frame %d: %w", s.presented, err)
	}

	if h.sink.Enabled() && h.opts.SnapshotEvery > 0 && s.presented%h.opts.SnapshotEvery == 0 {
		if err := h.sink.SavePresentedFrame(s.presented, s.dst.ToImage()); err != nil {
			h.logger.Warn("Failed to save debug frame: %s", err.Error())
		}
	}
	s.presented++
	return nil
}
