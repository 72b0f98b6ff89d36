// Package breakpoint buckets viewport widths into grid column counts and
// publishes bucket changes to subscribers.
package breakpoint

import (
	"sync"
	"time"
)

// Breakpoint is a named viewport-width bucket
type Breakpoint int

const (
	Narrow Breakpoint = iota
	Medium
	Wide
)

// All lists every breakpoint from narrowest to widest
var All = []Breakpoint{Narrow, Medium, Wide}

// Columns returns the grid column count of the bucket
func (b Breakpoint) Columns() int {
	switch b {
	case Medium:
		return 3
	case Wide:
		return 4
	default:
		return 2
	}
}

func (b Breakpoint) String() string {
	switch b {
	case Medium:
		return "medium"
	case Wide:
		return "wide"
	default:
		return "narrow"
	}
}

// Thresholds are the minimum widths, in CSS pixels, of the medium and wide
// buckets
type Thresholds struct {
	Medium int
	Wide   int
}

// DefaultThresholds matches the stylesheet's grid breakpoints
var DefaultThresholds = Thresholds{Medium: 768, Wide: 1280}

// Classify maps a width to its bucket. A width that could not be measured
// (zero or negative) is treated as the narrowest bucket.
func (t Thresholds) Classify(width int) Breakpoint {
	switch {
	case width <= 0:
		return Narrow
	case width >= t.Wide:
		return Wide
	case width >= t.Medium:
		return Medium
	default:
		return Narrow
	}
}

// Observer tracks the viewport bucket. Resize events are debounced and
// subscribers hear only about bucket changes.
type Observer struct {
	thresholds Thresholds
	debounce   time.Duration

	// notifyMu orders applies so subscribers see bucket changes in the
	// order current takes them. Subscribers must not call Resize or Flush.
	notifyMu sync.Mutex

	mu      sync.Mutex
	current Breakpoint
	width   int
	subs    map[int]func(Breakpoint)
	nextID  int
	stopped bool

	timer      *time.Timer
	pending    int
	hasPending bool
}

// Option configures an Observer
type Option func(*Observer)

// WithThresholds overrides DefaultThresholds
func WithThresholds(t Thresholds) Option {
	return func(o *Observer) { o.thresholds = t }
}

// WithDebounce sets how long resize events must settle before they are
// applied. Zero applies every resize immediately.
func WithDebounce(d time.Duration) Option {
	return func(o *Observer) { o.debounce = d }
}

// NewObserver measures the initial width and returns the observer
func NewObserver(width int, opts ...Option) *Observer {
	o := &Observer{
		thresholds: DefaultThresholds,
		subs:       make(map[int]func(Breakpoint)),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.width = width
	o.current = o.thresholds.Classify(width)
	return o
}

// Current returns the active bucket
func (o *Observer) Current() Breakpoint {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Width returns the last applied width
func (o *Observer) Width() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.width
}

// Subscribe registers fn for bucket changes. The returned func removes it.
func (o *Observer) Subscribe(fn func(Breakpoint)) (unsubscribe func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

// Resize records a new viewport width. With a debounce configured only the
// last width of a burst is applied, once the burst has gone quiet.
func (o *Observer) Resize(width int) {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	if o.debounce <= 0 {
		o.mu.Unlock()
		o.apply(width)
		return
	}
	o.pending = width
	o.hasPending = true
	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = time.AfterFunc(o.debounce, o.fire)
	o.mu.Unlock()
}

// Flush applies a pending debounced resize immediately
func (o *Observer) Flush() {
	o.mu.Lock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.mu.Unlock()
	o.fire()
}

func (o *Observer) fire() {
	o.mu.Lock()
	if !o.hasPending {
		o.mu.Unlock()
		return
	}
	width := o.pending
	o.hasPending = false
	o.timer = nil
	o.mu.Unlock()

	o.apply(width)
}

// Stop cancels any pending resize and drops all subscribers
func (o *Observer) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped = true
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.hasPending = false
	o.subs = make(map[int]func(Breakpoint))
}

func (o *Observer) apply(width int) {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.width = width
	next := o.thresholds.Classify(width)
	if next == o.current {
		o.mu.Unlock()
		return
	}
	o.current = next
	subs := make([]func(Breakpoint), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
