// Package wm implements the reparenting window manager loop. The manager
// registers as the sole substructure redirector of the root window, wraps
// every mapped client in a decorated frame and lets the user drag frames
// with the left mouse button.
package wm

import (
	"errors"
	"fmt"

	"larch/internal/log"
	"larch/internal/xcb"
)

// frameHeight is the band of pixels reserved above the client for the frame
// decoration.
const frameHeight = 30

// Conn is the slice of the session layer the manager drives.
type Conn interface {
	WaitForEvent() (xcb.Event, error)
	GrabPointer() *xcb.Result[bool]
	UngrabPointer() *xcb.Result[xcb.Void]
	CreateWindow(r xcb.Rect) (Frame, error)
}

// Frame is an owned decoration window wrapped around a client.
type Frame interface {
	xcb.Window
	Destroy() error
}

// managed pairs a frame with the client reparented into it.
type managed struct {
	frame  Frame
	client xcb.Window
}

// point is a pointer position in root coordinates.
type point struct {
	x, y int16
}

// WM owns the client/frame table and the drag state.
type WM struct {
	conn Conn
	root xcb.Window
	log  *log.Logger

	// Managed windows, in management order. Each frame owns exactly one
	// client and no client appears twice.
	frames []managed

	// dragWindow is the frame being moved, 0 when no drag is active.
	// dragStart stays nil until the first motion event of a drag anchors it.
	dragWindow uint32
	dragStart  *point
}

// New creates a window manager driving the given connection.
func New(conn Conn, root xcb.Window, logger *log.Logger) *WM {
	return &WM{conn: conn, root: root, log: logger}
}

// Clients reports the identifiers of the managed clients in management
// order.
func (m *WM) Clients() []uint32 {
	ids := make([]uint32, 0, len(m.frames))
	for _, pair := range m.frames {
		ids = append(ids, pair.client.ID())
	}
	return ids
}

// Run registers the manager as the substructure redirector of the root
// window and services events until the connection dies or a request fails.
func (m *WM) Run() error {
	mask := m.root.SetEventMask(
		xcb.SubstructureNotify,
		xcb.SubstructureRedirect,
		xcb.ButtonPress,
		xcb.ButtonRelease,
	)
	if _, err := mask.Get(); err != nil {
		return fmt.Errorf("take ownership of root window (is another window manager running?): %w", err)
	}
	m.log.Info("managing root window %d", m.root.ID())

	for {
		ev, err := m.conn.WaitForEvent()
		if err != nil {
			if errors.Is(err, xcb.ErrConnectionClosed) || errors.Is(err, xcb.ErrBadEvent) {
				return err
			}
			// Asynchronous errors from unchecked requests end up here.
			m.log.Warn("X error: %s", err)
			continue
		}
		if err := m.handleEvent(ev); err != nil {
			return err
		}
	}
}

func (m *WM) handleEvent(ev xcb.Event) error {
	switch ev := ev.(type) {
	case xcb.WindowConfigurationRequest:
		// Honor the requested geometry verbatim. The frame, if any, is not
		// resized here.
		if _, err := ev.Window.Configure(ev.Rect).Get(); err != nil {
			return fmt.Errorf("configure window %d: %w", ev.Window.ID(), err)
		}
	case xcb.WindowMappingRequest:
		return m.manage(ev.Window)
	case xcb.WindowUnmapped:
		m.unmapFrameOf(ev.Window)
	case xcb.WindowDestroyed:
		return m.forget(ev.Window)
	case xcb.ButtonPressed:
		return m.beginDrag(ev)
	case xcb.ButtonReleased:
		if ev.Button == xcb.ButtonLeft {
			return m.endDrag()
		}
	case xcb.MotionNotify:
		return m.drag(ev.X, ev.Y)
	default:
		m.log.Debug("ignoring %T", ev)
	}
	return nil
}

// manage wraps a client asking to be mapped in a newly created frame and
// maps both. A client that is already framed gets its frame mapped again
// instead of a second frame.
func (m *WM) manage(client xcb.Window) error {
	for _, pair := range m.frames {
		if pair.client.ID() != client.ID() {
			continue
		}
		if _, err := pair.frame.Map().Get(); err != nil {
			return fmt.Errorf("map frame %d: %w", pair.frame.ID(), err)
		}
		if _, err := client.Map().Get(); err != nil {
			return fmt.Errorf("map window %d: %w", client.ID(), err)
		}
		return nil
	}
	geom, err := client.Geometry().Get()
	if err != nil {
		return fmt.Errorf("query geometry of window %d: %w", client.ID(), err)
	}
	r := geom.Rect
	frame, err := m.conn.CreateWindow(xcb.Rect{
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height + frameHeight,
	})
	if err != nil {
		return fmt.Errorf("create frame for window %d: %w", client.ID(), err)
	}
	if _, err := frame.Map().Get(); err != nil {
		return fmt.Errorf("map frame %d: %w", frame.ID(), err)
	}
	if _, err := frame.SetEventMask(xcb.SubstructureNotify, xcb.SubstructureRedirect).Get(); err != nil {
		return fmt.Errorf("set event mask of frame %d: %w", frame.ID(), err)
	}
	if _, err := client.Reparent(frame, 0, frameHeight).Get(); err != nil {
		return fmt.Errorf("reparent window %d: %w", client.ID(), err)
	}
	if _, err := client.Map().Get(); err != nil {
		return fmt.Errorf("map window %d: %w", client.ID(), err)
	}
	m.frames = append(m.frames, managed{frame: frame, client: client})
	m.log.Info("framed window %d in %d", client.ID(), frame.ID())
	return nil
}

// unmapFrameOf hides the frame of a client that unmapped itself. Unmaps of
// unmanaged windows, including the frames themselves, are ignored: the
// framing may have failed partway earlier.
func (m *WM) unmapFrameOf(client xcb.Window) {
	for _, pair := range m.frames {
		if pair.client.ID() != client.ID() {
			continue
		}
		if _, err := pair.frame.Unmap().Get(); err != nil {
			m.log.Warn("unmap frame %d: %s", pair.frame.ID(), err)
		}
		return
	}
}

// forget drops the table entries of a destroyed client and destroys their
// frames.
func (m *WM) forget(client xcb.Window) error {
	kept := m.frames[:0]
	var orphaned []Frame
	for _, pair := range m.frames {
		if pair.client.ID() == client.ID() {
			orphaned = append(orphaned, pair.frame)
		} else {
			kept = append(kept, pair)
		}
	}
	m.frames = kept
	for _, frame := range orphaned {
		if err := frame.Destroy(); err != nil {
			return err
		}
		m.log.Info("destroyed frame %d", frame.ID())
	}
	return nil
}

// beginDrag starts moving the frame under the pointer. Only a left-button
// press on a child of the root starts a drag, and only if the server grants
// the pointer grab.
func (m *WM) beginDrag(ev xcb.ButtonPressed) error {
	if ev.Button != xcb.ButtonLeft || ev.Child == nil {
		return nil
	}
	ok, err := m.conn.GrabPointer().Get()
	if err != nil {
		return fmt.Errorf("grab pointer: %w", err)
	}
	if !ok {
		m.log.Warn("pointer grab refused")
		return nil
	}
	m.dragWindow = ev.Child.ID()
	m.dragStart = nil
	return nil
}

// endDrag releases the pointer and clears the drag state. A release without
// a preceding successful grab is a no-op.
func (m *WM) endDrag() error {
	if m.dragWindow == 0 {
		return nil
	}
	if _, err := m.conn.UngrabPointer().Get(); err != nil {
		return fmt.Errorf("ungrab pointer: %w", err)
	}
	m.dragWindow = 0
	m.dragStart = nil
	return nil
}

// drag moves the dragged frame by the pointer delta since the last motion.
// The first motion of a drag only anchors the start position.
func (m *WM) drag(x, y int16) error {
	if m.dragWindow == 0 {
		return nil
	}
	if m.dragStart == nil {
		m.dragStart = &point{x: x, y: y}
		return nil
	}
	dx := x - m.dragStart.x
	dy := y - m.dragStart.y
	m.dragStart = &point{x: x, y: y}

	for _, pair := range m.frames {
		if pair.frame.ID() != m.dragWindow {
			continue
		}
		geom, err := pair.frame.Geometry().Get()
		if err != nil {
			return fmt.Errorf("query geometry of frame %d: %w", pair.frame.ID(), err)
		}
		r := geom.Rect
		moved := xcb.Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
		if _, err := pair.frame.Configure(moved).Get(); err != nil {
			return fmt.Errorf("move frame %d: %w", pair.frame.ID(), err)
		}
		return nil
	}
	return nil
}
