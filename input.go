package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/levelmaker/common"
	"github.com/milk9111/levelmaker/editor"
)

// pollEditorInput reads mouse and keyboard state into an editor.Input.
// menu is the palette's screen rectangle; picked is the palette click, or -1.
func pollEditorInput(menu Rect, picked int) editor.Input {
	mx, my := ebiten.CursorPosition()
	pointer := common.V(float64(mx), float64(my))
	_, wheelY := ebiten.Wheel()

	in := editor.NoInput()
	in.Pointer = pointer
	in.LeftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	in.RightPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.MiddlePressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	in.MiddleJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle)
	in.Wheel = wheelY
	in.Ctrl = ctrlHeld()
	in.NextSelection = inpututil.IsKeyJustPressed(ebiten.KeyRight)
	in.PrevSelection = inpututil.IsKeyJustPressed(ebiten.KeyLeft)
	in.OverMenu = menu.Contains(pointer)
	in.MenuSelection = picked
	return in
}

func ctrlHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// playInput is the keyboard and gamepad state for the level scene.
type playInput struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX       float64
	JumpPressed bool
}

func pollPlayInput() playInput {
	var in playInput
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.MoveX++
	}
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyUp)

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if x < -0.3 {
			in.MoveX = -1
		} else if x > 0.3 {
			in.MoveX = 1
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			in.JumpPressed = true
		}
	}
	return in
}
