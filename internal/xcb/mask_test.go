package xcb

import (
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestMaskValues(t *testing.T) {
	cases := []struct {
		name string
		ours EventMask
		wire int
	}{
		{"NoEvent", NoEvent, xproto.EventMaskNoEvent},
		{"KeyPress", KeyPress, xproto.EventMaskKeyPress},
		{"KeyRelease", KeyRelease, xproto.EventMaskKeyRelease},
		{"ButtonPress", ButtonPress, xproto.EventMaskButtonPress},
		{"ButtonRelease", ButtonRelease, xproto.EventMaskButtonRelease},
		{"EnterWindow", EnterWindow, xproto.EventMaskEnterWindow},
		{"LeaveWindow", LeaveWindow, xproto.EventMaskLeaveWindow},
		{"PointerMotion", PointerMotion, xproto.EventMaskPointerMotion},
		{"PointerMotionHint", PointerMotionHint, xproto.EventMaskPointerMotionHint},
		{"Button1Motion", Button1Motion, xproto.EventMaskButton1Motion},
		{"Button2Motion", Button2Motion, xproto.EventMaskButton2Motion},
		{"Button3Motion", Button3Motion, xproto.EventMaskButton3Motion},
		{"Button4Motion", Button4Motion, xproto.EventMaskButton4Motion},
		{"Button5Motion", Button5Motion, xproto.EventMaskButton5Motion},
		{"ButtonMotion", ButtonMotion, xproto.EventMaskButtonMotion},
		{"KeymapState", KeymapState, xproto.EventMaskKeymapState},
		{"Exposure", Exposure, xproto.EventMaskExposure},
		{"VisibilityChange", VisibilityChange, xproto.EventMaskVisibilityChange},
		{"StructureNotify", StructureNotify, xproto.EventMaskStructureNotify},
		{"ResizeRedirect", ResizeRedirect, xproto.EventMaskResizeRedirect},
		{"SubstructureNotify", SubstructureNotify, xproto.EventMaskSubstructureNotify},
		{"SubstructureRedirect", SubstructureRedirect, xproto.EventMaskSubstructureRedirect},
		{"FocusChange", FocusChange, xproto.EventMaskFocusChange},
		{"PropertyChange", PropertyChange, xproto.EventMaskPropertyChange},
		{"ColorMapChange", ColorMapChange, xproto.EventMaskColorMapChange},
		{"OwnerGrabButton", OwnerGrabButton, xproto.EventMaskOwnerGrabButton},
	}
	for _, c := range cases {
		if uint32(c.ours) != uint32(c.wire) {
			t.Errorf("%s: got %d, want %d", c.name, c.ours, c.wire)
		}
	}
	if OwnerGrabButton != 16777216 {
		t.Errorf("OwnerGrabButton: got %d, want 16777216", OwnerGrabButton)
	}
}

func TestCombineMasks(t *testing.T) {
	cases := []struct {
		masks []EventMask
		want  EventMask
	}{
		{nil, 0},
		{[]EventMask{NoEvent}, 0},
		{[]EventMask{SubstructureNotify, SubstructureRedirect}, 0x180000},
		{[]EventMask{SubstructureNotify, SubstructureRedirect, ButtonPress, ButtonRelease}, 0x18000c},
		// Duplicates do not change the result.
		{[]EventMask{PointerMotion, PointerMotion, ButtonRelease}, 0x48},
	}
	for _, c := range cases {
		if got := combine(c.masks); got != c.want {
			t.Errorf("combine(%v): got %#x, want %#x", c.masks, got, c.want)
		}
	}
}
