package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders the response-cube playback frame, wall overlays, listener and
// emitter markers, and the optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.engine.Grid()
	img := make([]byte, gridNodes*gridNodes*4)
	for x := 0; x < gridNodes; x++ {
		for y := 0; y < gridNodes; y++ {
			base := (y*gridNodes + x) * 4
			if *showWallsFlag && g.walls[y*gridNodes+x] {
				img[base] = 30
				img[base+1] = 40
				img[base+2] = 80
				img[base+3] = 255
				continue
			}
			var v float64
			if series, ok := grid.ResponseAtNode(x, y); ok {
				v = float64(series[g.playbackStep].Pr)
			}
			intensity := byte(math.Min(1, math.Abs(v)*12) * 255)
			img[base] = intensity
			img[base+1] = intensity
			img[base+2] = intensity
			img[base+3] = 255
		}
	}
	screen.WritePixels(img)

	drawBlob(screen, int(g.ex), int(g.ey), listenerRad, color.RGBA{255, 0, 0, 255})
	ex, ey := grid.WorldToNode(g.probePos)
	drawBlob(screen, ex, ey, emitterRad, color.RGBA{0, 255, 0, 255})

	if *debugFlag {
		out := g.engine.Output(g.probe)
		status := "invalid"
		if out.Valid() {
			status = fmt.Sprintf("occl %.3f wet %.3f lp %.2f rt60 %.0fms dir (%.2f,%.2f)",
				out.Occlusion, out.WetGain, out.LowpassIntensity, out.RT60*1000,
				out.Direction.X, out.Direction.Y)
		}
		msg := fmt.Sprintf("FPS: %.1f\nSolve: %.1f ms\nStep: %d/%d\nProbe: %s",
			ebiten.ActualFPS(), g.lastSimDuration.Seconds()*1000,
			g.playbackStep, grid.ResponseLength(), status)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return gridNodes, gridNodes }

// drawBlob fills a small disc marker clipped to the screen.
func drawBlob(screen *ebiten.Image, cx, cy, radius int, clr color.Color) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y > radius*radius {
				continue
			}
			px := cx + x
			py := cy + y
			if px >= 0 && px < gridNodes && py >= 0 && py < gridNodes {
				screen.Set(px, py, clr)
			}
		}
	}
}
