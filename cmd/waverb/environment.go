package main

import (
	"math"

	"waverb"
)

// generateWalls procedurally places wall segments, writing each into the
// engine's boundary descriptors and mirroring it into the render overlay.
func (g *Game) generateWalls() error {
	grid := g.engine.Grid()
	grid.ClearBoundaries()
	for i := range g.walls {
		g.walls[i] = false
	}
	absorption := float32(*wallAbsorptionFlag)
	for s := 0; s < wallSegments; s++ {
		lengthRange := wallMaxLen - wallMinLen + 1
		length := wallMinLen + g.levelRand.Intn(lengthRange)
		thickness := 1 + g.levelRand.Intn(2)
		horizontal := g.levelRand.Intn(2) == 0
		x := g.levelRand.Intn(gridNodes-4) + 2
		y := g.levelRand.Intn(gridNodes-4) + 2

		x1, y1 := x, y+length
		if horizontal {
			x1, y1 = x+length, y
		}
		tx, ty := 0, thickness
		if !horizontal {
			tx, ty = thickness, 0
		}
		if g.segmentNearClearing(x, y, x1+tx, y1+ty) {
			continue
		}
		min := waverb.Vec2{X: float32(x) * cellMeters, Y: float32(y) * cellMeters}
		max := waverb.Vec2{X: float32(x1+tx) * cellMeters, Y: float32(y1+ty) * cellMeters}
		if err := grid.AddOccluder(min, max, absorption); err != nil {
			return err
		}
		g.stampWallOverlay(x, y, x1+tx, y1+ty)
	}
	return nil
}

// segmentNearClearing keeps walls away from the listener spawn and the probe
// emitter so neither starts embedded in geometry.
func (g *Game) segmentNearClearing(x0, y0, x1, y1 int) bool {
	px := float64(g.probePos.X / cellMeters)
	py := float64(g.probePos.Y / cellMeters)
	for _, p := range [][2]float64{{g.ex, g.ey}, {px, py}} {
		cx := math.Max(float64(x0), math.Min(p[0], float64(x1)))
		cy := math.Max(float64(y0), math.Min(p[1], float64(y1)))
		if math.Hypot(cx-p[0], cy-p[1]) < wallExclusionRad {
			return true
		}
	}
	return false
}

// stampWallOverlay records wall nodes for rendering, clipped to the grid.
func (g *Game) stampWallOverlay(x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			if x < 0 || x >= gridNodes || y < 0 || y >= gridNodes {
				continue
			}
			g.walls[y*gridNodes+x] = true
		}
	}
}
