package editor

import "github.com/milk9111/levelmaker/common"

// Input is the per-tick snapshot of pointer and key state the shell hands to
// Session.Update. Keeping it a plain value lets tests drive the session
// without a window.
type Input struct {
	Pointer common.Vec

	LeftPressed      bool
	LeftJustPressed  bool
	LeftJustReleased bool
	RightPressed     bool
	MiddlePressed    bool
	// MiddleJustPressed starts a pan gesture.
	MiddleJustPressed bool

	// Wheel is the vertical wheel delta; with Ctrl held it pans vertically.
	Wheel float64
	Ctrl  bool

	NextSelection bool
	PrevSelection bool

	// OverMenu suppresses canvas edits while the pointer is over the palette.
	OverMenu bool
	// MenuSelection is the id picked from the palette this tick, or -1.
	MenuSelection int
}

// NoInput returns an Input with nothing pressed.
func NoInput() Input {
	return Input{MenuSelection: -1}
}
