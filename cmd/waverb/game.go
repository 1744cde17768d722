package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"waverb"
)

// Game owns the engine, the listener state, and the rendering and audio
// pipelines for the demo.
type Game struct {
	engine *waverb.Engine

	ex float64
	ey float64

	stepTimer       int
	needSolve       bool
	lastSimDuration time.Duration

	playbackStep int

	walls     []bool
	levelRand *rand.Rand

	probe    waverb.EmitterID
	probePos waverb.Vec2

	autoWalkUntil   time.Time
	autoWalkRand    *rand.Rand
	autoWalkTargetX float64
	autoWalkTargetY float64

	audioCtx    *audio.Context
	audioStream *irAudioStream
	audioPlayer *audio.Player
}

// newGame constructs a fully initialized Game instance around an engine.
func newGame(engine *waverb.Engine, seed int64) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		engine:       engine,
		ex:           gridNodes / 2,
		ey:           gridNodes / 2,
		walls:        make([]bool, gridNodes*gridNodes),
		levelRand:    rand.New(rand.NewSource(seed)),
		autoWalkRand: rand.New(rand.NewSource(seed + 1)),
		needSolve:    true,
		stepTimer:    stepDelay,
	}
	g.probePos = waverb.Vec2{X: gridNodes * 0.75 * cellMeters, Y: gridNodes * 0.25 * cellMeters}
	g.probe = engine.Emissions().Add(g.probePos)
	return g
}

// listenerWorld converts the listener's node-space position to world space.
func (g *Game) listenerWorld() waverb.Vec2 {
	return waverb.Vec2{X: float32(g.ex) * cellMeters, Y: float32(g.ey) * cellMeters}
}

// Update advances movement, re-solves the field on the step cadence, and
// cycles the response playback.
func (g *Game) Update() error {
	h := g.movementVector()
	oldX, oldY := g.ex, g.ey
	g.ex = math.Max(listenerRad, math.Min(float64(gridNodes-listenerRad-1), g.ex+h.dx))
	g.ey = math.Max(listenerRad, math.Min(float64(gridNodes-listenerRad-1), g.ey+h.dy))
	if g.isWall(int(g.ex), int(g.ey)) {
		g.ex, g.ey = oldX, oldY
	}

	if h.active() {
		g.stepTimer++
		if g.stepTimer >= stepDelay {
			g.stepTimer = 0
			g.needSolve = true
		}
	} else {
		g.stepTimer = stepDelay
	}

	if g.needSolve {
		g.needSolve = false
		start := time.Now()
		if err := g.engine.SetListener(g.listenerWorld()); err != nil {
			return err
		}
		g.lastSimDuration = time.Since(start)
		g.playbackStep = 0
		g.auditionProbe()
	}

	length := g.engine.Grid().ResponseLength()
	if length > 0 {
		g.playbackStep = (g.playbackStep + playbackRate) % length
	}
	return nil
}

// isWall reports whether the node coordinates reference a wall overlay cell.
func (g *Game) isWall(x, y int) bool {
	if x < 0 || x >= gridNodes || y < 0 || y >= gridNodes {
		return true
	}
	return g.walls[y*gridNodes+x]
}
