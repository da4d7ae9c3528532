package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// Stats supplies extra overlay lines, e.g. body count and queued path requests.
type Stats func() []string

// Debug draws text overlays in the top-right corner. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool

	stats      Stats
	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns a Debug system with all overlays hidden. stats may be nil.
func New(stats Stats) *Debug {
	return &Debug{stats: stats}
}

// Toggle flips every overlay on or off together.
func (d *Debug) Toggle() {
	on := !(d.ShowFPS || d.ShowMemAlloc || d.ShowStats)
	d.ShowFPS, d.ShowMemAlloc, d.ShowStats = on, on, on
	d.lines = d.lines[:0]
}

// Lines returns the overlay text that the next Draw shows.
func (d *Debug) Lines() []string {
	d.frameCount++
	if d.frameCount%updateInterval != 0 && len(d.lines) > 0 {
		return d.lines
	}
	d.lines = d.lines[:0]
	if d.ShowFPS {
		d.lines = append(d.lines, fmt.Sprintf("FPS: %d", rl.GetFPS()))
	}
	if d.ShowMemAlloc {
		runtime.ReadMemStats(&d.memStats)
		d.lines = append(d.lines, fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024)))
	}
	if d.ShowStats && d.stats != nil {
		d.lines = append(d.lines, d.stats()...)
	}
	return d.lines
}

// Draw renders enabled overlays. Call after the scene in the draw loop.
func (d *Debug) Draw() {
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range d.Lines() {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}
