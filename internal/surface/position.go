package surface

import (
	"errors"
	"math/rand"
	"sync"
)

// ErrNoMonitors is returned when placement is requested with no usable
// monitor.
var ErrNoMonitors = errors.New("no active monitors")

// Rect is a monitor's position and size in root coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Placement is a chosen on-screen position for a surface.
type Placement struct {
	X       int
	Y       int
	Monitor int // index into the layout's monitor list
}

// Layout chooses random positions for surfaces across the active monitors.
type Layout struct {
	mu       sync.Mutex
	monitors []Rect
	active   []int
	rng      *rand.Rand
}

// NewLayout creates a layout over the given monitors, all active initially.
func NewLayout(monitors []Rect, seed int64) *Layout {
	l := &Layout{
		monitors: monitors,
		rng:      rand.New(rand.NewSource(seed)),
	}
	for i := range monitors {
		l.active = append(l.active, i)
	}
	return l
}

// SetActive restricts placement to the given monitor indices. Out-of-range
// indices are ignored; an empty selection reactivates all monitors.
func (l *Layout) SetActive(indices []int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = l.active[:0]
	for _, i := range indices {
		if i >= 0 && i < len(l.monitors) {
			l.active = append(l.active, i)
		}
	}
	if len(l.active) == 0 {
		for i := range l.monitors {
			l.active = append(l.active, i)
		}
	}
}

// PositionSurface picks a random active monitor and a random position on it
// for a surface of the given size, keeping the surface fully on screen
// where possible.
func (l *Layout) PositionSurface(width, height int) (Placement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.active) == 0 {
		return Placement{}, ErrNoMonitors
	}
	idx := l.active[l.rng.Intn(len(l.active))]
	mon := l.monitors[idx]

	x := mon.X + l.randSpan(mon.Width-width)
	y := mon.Y + l.randSpan(mon.Height-height)
	return Placement{X: x, Y: y, Monitor: idx}, nil
}

// randSpan returns a random offset in [0, span]. A surface larger than the
// monitor pins to the monitor origin.
func (l *Layout) randSpan(span int) int {
	if span <= 0 {
		return 0
	}
	return l.rng.Intn(span + 1)
}
