package xcb

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Button identifies a pointer button.
type Button uint8

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
)

// decodeButton maps a button event's detail field. Details outside the core
// range are a protocol violation.
func decodeButton(detail xproto.Button) (Button, error) {
	if detail < 1 || detail > 5 {
		return 0, fmt.Errorf("%w: unknown mouse button %d", ErrBadEvent, detail)
	}
	return Button(detail), nil
}

// Event is an inbound notification from the server. The concrete types
// below form a closed set; anything unclassified arrives as UnknownEvent.
type Event interface {
	event()
}

// WindowCreated reports that a window came into existence.
type WindowCreated struct{ Window Window }

// WindowDestroyed reports that a window ceased to exist.
type WindowDestroyed struct{ Window Window }

// WindowConfigured reports that a window's geometry changed.
type WindowConfigured struct{ Window Window }

// WindowMapped reports that a window became viewable.
type WindowMapped struct{ Window Window }

// WindowUnmapped reports that a window was hidden.
type WindowUnmapped struct{ Window Window }

// WindowReparented reports that a window moved to a new parent.
type WindowReparented struct{ Window Window }

// WindowConfigurationRequest asks the substructure redirector to apply the
// geometry a client requested for itself.
type WindowConfigurationRequest struct {
	Window Window
	Rect   Rect
}

// WindowMappingRequest asks the substructure redirector to map a client.
type WindowMappingRequest struct{ Window Window }

// MotionNotify reports pointer movement in root coordinates.
type MotionNotify struct {
	Window Window
	X, Y   int16
}

// ButtonPressed reports a pointer button going down. Child is nil when the
// press did not land on a child of the event window.
type ButtonPressed struct {
	Root   Window
	Child  Window
	Button Button
}

// ButtonReleased reports a pointer button going up.
type ButtonReleased struct {
	Root   Window
	Child  Window
	Button Button
}

// UnknownEvent wraps an event the session layer does not classify.
type UnknownEvent struct {
	Raw xgb.Event
}

func (WindowCreated) event()              {}
func (WindowDestroyed) event()            {}
func (WindowConfigured) event()           {}
func (WindowMapped) event()               {}
func (WindowUnmapped) event()             {}
func (WindowReparented) event()           {}
func (WindowConfigurationRequest) event() {}
func (WindowMappingRequest) event()       {}
func (MotionNotify) event()               {}
func (ButtonPressed) event()              {}
func (ButtonReleased) event()             {}
func (UnknownEvent) event()               {}

// WaitForEvent blocks until the server delivers the next event and lifts it
// into its typed representation. Asynchronous protocol errors for unchecked
// requests come back as errors; a dead connection is ErrConnectionClosed.
func (c *Conn) WaitForEvent() (Event, error) {
	ev, err := c.conn.WaitForEvent()
	if ev == nil && err == nil {
		return nil, ErrConnectionClosed
	}
	if err != nil {
		return nil, err
	}
	return c.liftEvent(ev)
}

// liftEvent maps a raw protocol event onto the tagged set. The library has
// already stripped the send-event bit from the response type when it picked
// the concrete struct.
func (c *Conn) liftEvent(ev xgb.Event) (Event, error) {
	switch e := ev.(type) {
	case xproto.CreateNotifyEvent:
		return WindowCreated{Window: c.Window(uint32(e.Window))}, nil
	case xproto.DestroyNotifyEvent:
		return WindowDestroyed{Window: c.Window(uint32(e.Window))}, nil
	case xproto.ConfigureNotifyEvent:
		return WindowConfigured{Window: c.Window(uint32(e.Window))}, nil
	case xproto.MapNotifyEvent:
		return WindowMapped{Window: c.Window(uint32(e.Window))}, nil
	case xproto.UnmapNotifyEvent:
		return WindowUnmapped{Window: c.Window(uint32(e.Window))}, nil
	case xproto.ReparentNotifyEvent:
		return WindowReparented{Window: c.Window(uint32(e.Window))}, nil
	case xproto.ConfigureRequestEvent:
		return WindowConfigurationRequest{
			Window: c.Window(uint32(e.Window)),
			Rect:   Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height},
		}, nil
	case xproto.MapRequestEvent:
		return WindowMappingRequest{Window: c.Window(uint32(e.Window))}, nil
	case xproto.MotionNotifyEvent:
		return MotionNotify{
			Window: c.Window(uint32(e.Event)),
			X:      e.RootX,
			Y:      e.RootY,
		}, nil
	case xproto.ButtonPressEvent:
		button, err := decodeButton(e.Detail)
		if err != nil {
			return nil, err
		}
		return ButtonPressed{
			Root:   c.Window(uint32(e.Root)),
			Child:  c.childWindow(e.Child),
			Button: button,
		}, nil
	case xproto.ButtonReleaseEvent:
		button, err := decodeButton(e.Detail)
		if err != nil {
			return nil, err
		}
		return ButtonReleased{
			Root:   c.Window(uint32(e.Root)),
			Child:  c.childWindow(e.Child),
			Button: button,
		}, nil
	default:
		return UnknownEvent{Raw: ev}, nil
	}
}

// childWindow returns a handle for a child field, or nil when the field is
// unset.
func (c *Conn) childWindow(id xproto.Window) Window {
	if id == 0 {
		return nil
	}
	return c.Window(uint32(id))
}
