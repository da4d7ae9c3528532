// Package termview renders a pathfinding grid, a path and physics bodies in a terminal.
package termview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"hammer2d/internal/pathfinding"
	"hammer2d/internal/physics"
)

const (
	runeOpen    = '.'
	runeBlocked = '#'
	runePath    = '*'
	runeBody    = 'O'
	runeStatic  = '='

	frameInterval = 16 * time.Millisecond
)

var (
	styleOpen    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBlocked = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	stylePath    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// View draws one grid cell per terminal cell, grid y growing downwards like physics Y.
// Physics X/Y map onto the grid's world X/Z.
type View struct {
	screen tcell.Screen
	grid   *pathfinding.Grid
	world  *physics.World
	path   []rl.Vector3
	status string
}

// New returns a view over screen. world may be nil.
func New(screen tcell.Screen, grid *pathfinding.Grid, world *physics.World) *View {
	return &View{screen: screen, grid: grid, world: world}
}

// SetPath replaces the highlighted path.
func (v *View) SetPath(path []rl.Vector3) {
	v.path = append(v.path[:0], path...)
}

// SetStatus sets the text on the line under the grid.
func (v *View) SetStatus(s string) {
	v.status = s
}

// CellOf returns the screen cell showing world position p.
func (v *View) CellOf(p rl.Vector3) (int, int) {
	n := v.grid.Node(v.grid.NodeFromWorldPoint(p))
	return n.GridX, n.GridY
}

// Draw renders the current state and shows it.
func (v *View) Draw() {
	v.screen.Clear()
	cols, rows := v.grid.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			id, _ := v.grid.NodeAt(x, y)
			r, st := runeOpen, styleOpen
			if !v.grid.Node(id).Walkable {
				r, st = runeBlocked, styleBlocked
			}
			v.screen.SetContent(x, y, r, nil, st)
		}
	}
	for _, wp := range v.path {
		x, y := v.CellOf(wp)
		v.screen.SetContent(x, y, runePath, nil, stylePath)
	}
	if v.world != nil {
		for _, id := range v.world.BodyIDs() {
			b, err := v.world.Body(id)
			if err != nil || b.ObjectType == physics.Tilemap {
				continue
			}
			r := runeBody
			if b.MotionType == physics.Static {
				r = runeStatic
			}
			x, y := v.CellOf(rl.NewVector3(b.Position.X, 0, b.Position.Y))
			v.screen.SetContent(x, y, r, nil, styleBody)
		}
	}
	for i, r := range v.status {
		v.screen.SetContent(i, rows, r, nil, styleStatus)
	}
	v.screen.Show()
}

// Run redraws at ~60 FPS, calling step with the frame time before each draw while not
// paused. Space pauses; Esc, q or Ctrl-C quits. Run returns when ctx is done, the user
// quits or the screen is finalized.
func (v *View) Run(ctx context.Context, step func(dt float32)) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pump(v.screen.PollEvent, events, done)

	paused := false
	frames := 0
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					paused = !paused
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			if !paused && step != nil {
				step(dt)
				frames++
			}
			state := "running"
			if paused {
				state = "paused"
			}
			v.SetStatus(fmt.Sprintf("%s  frame %d  [space] pause  [q] quit", state, frames))
			v.Draw()
		}
	}
}

// pump forwards polled events until poll returns nil or done is closed.
func pump(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
