package main

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// heading is one frame's requested listener movement in node units.
type heading struct {
	dx, dy float64
}

func (h heading) active() bool { return h.dx != 0 || h.dy != 0 }

// keyHeadings maps the movement keys to unit directions.
var keyHeadings = [...]struct {
	key ebiten.Key
	dx  float64
	dy  float64
}{
	{ebiten.KeyW, 0, -1},
	{ebiten.KeyS, 0, 1},
	{ebiten.KeyA, -1, 0},
	{ebiten.KeyD, 1, 0},
}

// enableAutoWalk drives the listener along random waypoints until the
// deadline passes, so profile capture exercises repeated solves.
func (g *Game) enableAutoWalk(duration time.Duration) {
	g.autoWalkUntil = time.Now().Add(duration)
	g.retargetAutoWalk()
}

// movementVector returns this frame's movement, preferring the scripted
// walk while its deadline holds. Space forces a re-solve in place.
func (g *Game) movementVector() heading {
	if time.Now().Before(g.autoWalkUntil) {
		return g.autoWalkHeading()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.needSolve = true
	}
	var h heading
	for _, k := range keyHeadings {
		if ebiten.IsKeyPressed(k.key) {
			h.dx += k.dx * moveSpeed
			h.dy += k.dy * moveSpeed
		}
	}
	if h.dx != 0 && h.dy != 0 {
		h.dx *= math.Sqrt2 / 2
		h.dy *= math.Sqrt2 / 2
	}
	return h
}

// autoWalkHeading steps toward the current waypoint, picking a fresh one
// when the listener arrives or the next step lands in a wall.
func (g *Game) autoWalkHeading() heading {
	for attempts := 0; attempts < 5; attempts++ {
		tx := g.autoWalkTargetX - g.ex
		ty := g.autoWalkTargetY - g.ey
		dist := math.Hypot(tx, ty)
		if dist < moveSpeed {
			g.retargetAutoWalk()
			continue
		}
		h := heading{dx: tx / dist * moveSpeed, dy: ty / dist * moveSpeed}
		if g.isWall(int(g.ex+h.dx), int(g.ey+h.dy)) {
			g.retargetAutoWalk()
			continue
		}
		return h
	}
	return heading{}
}

// retargetAutoWalk picks a random wall-free node inside the walkable margin.
// Falls back to standing still when the scene leaves nothing to aim at.
func (g *Game) retargetAutoWalk() {
	margin := listenerRad + 1
	span := gridNodes - 2*margin
	for attempts := 0; attempts < 20; attempts++ {
		x := float64(margin + g.autoWalkRand.Intn(span))
		y := float64(margin + g.autoWalkRand.Intn(span))
		if !g.isWall(int(x), int(y)) {
			g.autoWalkTargetX, g.autoWalkTargetY = x, y
			return
		}
	}
	g.autoWalkTargetX, g.autoWalkTargetY = g.ex, g.ey
}
