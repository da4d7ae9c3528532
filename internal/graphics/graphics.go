package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the demo window.
type Window struct {
	Title  string
	Width  int32
	Height int32
	FPS    int32
}

// DefaultWindow is a resizable 1280x720 window at 60 FPS.
func DefaultWindow() Window {
	return Window{Title: "hammer2d", Width: 1280, Height: 720, FPS: 60}
}

// Run opens the window and drives the main loop. Each frame it calls update with the
// frame time, then clears the screen and calls draw. ESC or the close button ends it.
func Run(win Window, update func(dt float32), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(win.FPS)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
