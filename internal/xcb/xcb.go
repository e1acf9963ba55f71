// Package xcb provides a typed, request/reply-safe layer over the X11 core
// protocol as implemented by the xgb client library. Requests return pending
// results which must be resolved to observe their reply or their
// asynchronous error.
package xcb

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Conn owns a connection to the X server along with the setup block and
// default screen received during the handshake. Window handles and pending
// results route their requests through it and must not outlive it.
type Conn struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen int

	// Root window and visual of the default screen, resolved once at
	// connection time.
	root   xproto.Window
	visual xproto.Visualid

	closeOnce sync.Once
}

// Connect opens a connection to the display named by the DISPLAY environment
// variable.
func Connect() (*Conn, error) {
	return ConnectDisplay("")
}

// ConnectDisplay opens a connection to the given display, falling back to
// the DISPLAY environment variable when the string is empty.
func ConnectDisplay(display string) (*Conn, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, openError(err)
	}
	c := &Conn{
		conn:   conn,
		setup:  xproto.Setup(conn),
		screen: conn.DefaultScreen,
	}
	screen, err := c.Screen(c.screen)
	if err != nil {
		conn.Close()
		return nil, err
	}
	c.root = screen.Root
	c.visual = screen.RootVisual
	return c, nil
}

// Close disconnects from the X server. Only the first call disconnects;
// further calls do nothing.
func (c *Conn) Close() {
	c.closeOnce.Do(c.conn.Close)
}

// Vendor returns the server vendor string from the setup block.
func (c *Conn) Vendor() (string, error) {
	if !utf8.ValidString(c.setup.Vendor) {
		return "", errors.New("vendor string is not valid UTF-8")
	}
	return c.setup.Vendor, nil
}

// Screen returns the screen at the given index of the setup block's screen
// list.
func (c *Conn) Screen(n int) (*xproto.ScreenInfo, error) {
	if n < 0 || n >= len(c.setup.Roots) {
		return nil, &ScreenNotFoundError{Screen: n}
	}
	return &c.setup.Roots[n], nil
}

// RootWindow returns a borrowed handle to the root window of the default
// screen.
func (c *Conn) RootWindow() Handle {
	return Handle{conn: c, id: c.root}
}

// GrabPointer reserves the pointer for us, diverting motion and button
// release events away from their usual destinations for the duration of the
// grab. The reply reports whether the server granted the grab.
func (c *Conn) GrabPointer() *Result[bool] {
	cookie := xproto.GrabPointer(
		c.conn,
		false,
		c.root,
		uint16(PointerMotion|ButtonRelease),
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		xproto.CursorNone,
		xproto.TimeCurrentTime,
	)
	return NewResult(func() (bool, error) {
		reply, err := cookie.Reply()
		if err != nil {
			return false, err
		}
		return reply.Status == xproto.GrabStatusSuccess, nil
	})
}

// UngrabPointer releases a pointer grab.
func (c *Conn) UngrabPointer() *Result[Void] {
	return voidResult(xproto.UngrabPointerChecked(c.conn, xproto.TimeCurrentTime))
}

// QueryTree returns borrowed handles for the direct children of the given
// window, bottom-most first.
func (c *Conn) QueryTree(w Window) ([]Handle, error) {
	tree, err := xproto.QueryTree(c.conn, xproto.Window(w.ID())).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree of window %d: %w", w.ID(), err)
	}
	children := make([]Handle, 0, len(tree.Children))
	for _, child := range tree.Children {
		children = append(children, Handle{conn: c, id: child})
	}
	return children, nil
}

// WindowName returns the WM_NAME property of the given window. Windows
// without a name yield an empty string.
func (c *Conn) WindowName(w Window) (string, error) {
	reply, err := xproto.GetProperty(
		c.conn,
		false,
		xproto.Window(w.ID()),
		xproto.AtomWmName,
		xproto.AtomString,
		0,
		256,
	).Reply()
	if err != nil {
		return "", err
	}
	return strings.Split(string(reply.Value), "\x00")[0], nil
}
