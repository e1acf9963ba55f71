package xcb

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
)

// Rect mirrors the wire representation of window geometry: signed position,
// unsigned extent.
type Rect struct {
	X, Y          int16
	Width, Height uint16
}

// Geometry is the reply to a geometry request.
type Geometry struct {
	Rect Rect
}

// Attributes is the reply to a window attributes request. No fields are
// exposed yet.
type Attributes struct{}

// Window is the capability set shared by borrowed handles and owned
// windows. Two windows are the same window iff their identifiers are equal;
// which connection a handle routes through is not part of its identity.
type Window interface {
	ID() uint32
	SetEventMask(masks ...EventMask) *Result[Void]
	Map() *Result[Void]
	Unmap() *Result[Void]
	Configure(r Rect) *Result[Void]
	Attributes() *Result[Attributes]
	Geometry() *Result[Geometry]
	Reparent(parent Window, x, y int16) *Result[Void]
}

// Handle is a borrowed window. It owns nothing: copying it is free and
// discarding it leaves the server-side window alone.
type Handle struct {
	conn *Conn
	id   xproto.Window
}

// Window returns a borrowed handle for a window identifier obtained
// elsewhere, e.g. from an event.
func (c *Conn) Window(id uint32) Handle {
	return Handle{conn: c, id: xproto.Window(id)}
}

// ID returns the server-assigned window identifier.
func (h Handle) ID() uint32 {
	return uint32(h.id)
}

// SetEventMask replaces the window's event mask with the union of the given
// masks.
func (h Handle) SetEventMask(masks ...EventMask) *Result[Void] {
	return voidResult(xproto.ChangeWindowAttributesChecked(
		h.conn.conn,
		h.id,
		xproto.CwEventMask,
		[]uint32{uint32(combine(masks))},
	))
}

// Map makes the window viewable.
func (h Handle) Map() *Result[Void] {
	return voidResult(xproto.MapWindowChecked(h.conn.conn, h.id))
}

// Unmap hides the window.
func (h Handle) Unmap() *Result[Void] {
	return voidResult(xproto.UnmapWindowChecked(h.conn.conn, h.id))
}

// Configure moves and resizes the window. All four of x, y, width and
// height are always written.
func (h Handle) Configure(r Rect) *Result[Void] {
	return voidResult(xproto.ConfigureWindowChecked(
		h.conn.conn,
		h.id,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(r.X), uint32(r.Y), uint32(r.Width), uint32(r.Height)},
	))
}

// Attributes fetches the window's attributes.
func (h Handle) Attributes() *Result[Attributes] {
	cookie := xproto.GetWindowAttributes(h.conn.conn, h.id)
	return NewResult(func() (Attributes, error) {
		if _, err := cookie.Reply(); err != nil {
			return Attributes{}, err
		}
		return Attributes{}, nil
	})
}

// Geometry fetches the window's position and extent.
func (h Handle) Geometry() *Result[Geometry] {
	cookie := xproto.GetGeometry(h.conn.conn, xproto.Drawable(h.id))
	return NewResult(func() (Geometry, error) {
		reply, err := cookie.Reply()
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{
			Rect: Rect{X: reply.X, Y: reply.Y, Width: reply.Width, Height: reply.Height},
		}, nil
	})
}

// Reparent makes the window a child of parent, placed at (x, y) in the
// parent's coordinate space.
func (h Handle) Reparent(parent Window, x, y int16) *Result[Void] {
	return voidResult(xproto.ReparentWindowChecked(
		h.conn.conn,
		h.id,
		xproto.Window(parent.ID()),
		x,
		y,
	))
}

// Owned is a window created by this client. Whoever holds it must
// eventually call Destroy to release the server-side window.
type Owned struct {
	Handle
	destroyed bool
}

// CreateWindow creates a new unmapped window with the given geometry as a
// child of the root window and returns ownership of it.
func (c *Conn) CreateWindow(r Rect) (*Owned, error) {
	id, err := xproto.NewWindowId(c.conn)
	if err != nil {
		return nil, fmt.Errorf("allocate window id: %w", err)
	}
	err = xproto.CreateWindowChecked(
		c.conn,
		0, // depth: copy from parent
		id,
		c.root,
		r.X, r.Y, r.Width, r.Height,
		0, // border width
		xproto.WindowClassInputOutput,
		c.visual,
		0,
		[]uint32{},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	return &Owned{Handle: Handle{conn: c, id: id}}, nil
}

// Destroy releases the server-side window. It must be called exactly once;
// a second call panics.
func (w *Owned) Destroy() error {
	if w.destroyed {
		panic("xcb: window destroyed twice")
	}
	w.destroyed = true
	if err := xproto.DestroyWindowChecked(w.conn.conn, w.id).Check(); err != nil {
		return fmt.Errorf("destroy window %d: %w", w.id, err)
	}
	return nil
}
