package x11

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/popsurface/internal/surface"
)

// Surface is a borderless X11 popup window hosting media content. It
// satisfies surface.Handle. Surfaces are created hidden and mapped only by
// Show.
type Surface struct {
	conn *Connection
	win  *xwindow.Window

	mu       sync.Mutex
	children []*xwindow.Window
}

// Factory creates popup surfaces on one X11 connection. It satisfies
// surface.Factory.
type Factory struct {
	conn   *Connection
	logger *slog.Logger
}

// NewFactory returns a factory creating surfaces on conn.
func NewFactory(conn *Connection, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{conn: conn, logger: logger}
}

// CreateSurface creates a hidden, borderless, topmost-capable window that
// task switchers and pagers skip. Creation failures propagate to the
// caller.
func (f *Factory) CreateSurface() (surface.Handle, error) {
	win, err := xwindow.Generate(f.conn.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	// Override-redirect removes decorations and keeps the window manager
	// from reparenting the popup. Created at 1x1; MoveResize sizes it when
	// content is attached.
	err = win.CreateChecked(f.conn.Root, 0, 0, 1, 1,
		xproto.CwBackPixel|xproto.CwOverrideRedirect, 0x000000, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to create surface window: %w", err)
	}

	// EWMH hints for window managers that still see the popup: no taskbar
	// or pager entry, stack above normal windows.
	if err := ewmh.WmWindowTypeSet(f.conn.XUtil, win.Id, []string{"_NET_WM_WINDOW_TYPE_NOTIFICATION"}); err != nil {
		f.logger.Debug("setting window type failed", "error", err)
	}
	if err := ewmh.WmStateSet(f.conn.XUtil, win.Id, []string{
		"_NET_WM_STATE_ABOVE",
		"_NET_WM_STATE_SKIP_TASKBAR",
		"_NET_WM_STATE_SKIP_PAGER",
	}); err != nil {
		f.logger.Debug("setting window state failed", "error", err)
	}

	return &Surface{conn: f.conn, win: win}, nil
}

// ID returns the X window id backing the surface.
func (s *Surface) ID() xproto.Window {
	return s.win.Id
}

// MoveResize places the surface at the given root coordinates and size.
func (s *Surface) MoveResize(x, y, width, height int) {
	s.win.MoveResize(x, y, width, height)
}

// Show maps the surface and raises it above other windows.
func (s *Surface) Show() error {
	s.win.Map()
	s.win.Stack(xproto.StackModeAbove)
	return nil
}

// Hide unmaps the surface; the window survives for reuse.
func (s *Surface) Hide() error {
	s.win.Unmap()
	return nil
}

// AttachContent creates a mapped child window of the given size to host
// rendered media. The child is tracked and destroyed by ClearContent.
func (s *Surface) AttachContent(width, height int) (*xwindow.Window, error) {
	child, err := xwindow.Generate(s.conn.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate content window id: %w", err)
	}
	err = child.CreateChecked(s.win.Id, 0, 0, width, height,
		xproto.CwBackPixel, 0x000000)
	if err != nil {
		return nil, fmt.Errorf("failed to create content window: %w", err)
	}
	child.Map()

	s.mu.Lock()
	s.children = append(s.children, child)
	s.mu.Unlock()
	return child, nil
}

// ClearContent destroys all child content windows.
func (s *Surface) ClearContent() error {
	s.mu.Lock()
	children := s.children
	s.children = nil
	s.mu.Unlock()

	for _, child := range children {
		child.Destroy()
	}
	return nil
}

// Destroy releases the window and any remaining content.
func (s *Surface) Destroy() error {
	if err := s.ClearContent(); err != nil {
		return err
	}
	s.win.Destroy()
	return nil
}
