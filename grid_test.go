package waverb

import (
	"math"
	"testing"
)

// testConfig builds a square CPU grid with dx = 1 m and a timestep at 90% of
// the CFL bound.
func testConfig(size int) Config {
	cfg := Config{SizeX: size, SizeY: size, Dx: 1}
	cfg.Dt = 0.9 * cfg.StableTimestep()
	return cfg
}

func TestNewGridValidation(t *testing.T) {
	pulse := ImpulsePulse(4)
	if _, err := NewGrid(Config{SizeX: 0, SizeY: 4, Dx: 1, Dt: 0.001}, pulse); err != ErrBadGridSize {
		t.Fatalf("expected ErrBadGridSize, got %v", err)
	}
	if _, err := NewGrid(Config{SizeX: 4, SizeY: 4, Dx: 0, Dt: 0.001}, pulse); err != ErrBadGridStep {
		t.Fatalf("expected ErrBadGridStep, got %v", err)
	}
	cfg := testConfig(4)
	if _, err := NewGrid(cfg, nil); err != ErrEmptyPulse {
		t.Fatalf("expected ErrEmptyPulse, got %v", err)
	}
	cfg.Execution = ExecutionGPU
	if _, err := NewGrid(cfg, pulse); err != ErrGPUUnsupported {
		t.Fatalf("expected ErrGPUUnsupported, got %v", err)
	}
	cfg.Execution = ExecutionMode(99)
	if _, err := NewGrid(cfg, pulse); err != ErrBadExecutionMode {
		t.Fatalf("expected ErrBadExecutionMode, got %v", err)
	}
}

func TestCFLHelpers(t *testing.T) {
	cfg := Config{SizeX: 8, SizeY: 8, Dx: 0.25}
	cfg.Dt = cfg.StableTimestep()
	if !cfg.Stable() {
		t.Fatal("timestep at the CFL bound should be stable")
	}
	if got := cfg.Courant(); math.Abs(float64(got-cfg.Dt/cfg.Dx)) > 1e-9 {
		t.Fatalf("Courant() = %v", got)
	}
	cfg.Dt *= 2
	if cfg.Stable() {
		t.Fatal("doubled timestep should violate the CFL bound")
	}
}

func TestWorldToNodeMapping(t *testing.T) {
	cfg := testConfig(10)
	cfg.Dx = 0.5
	cfg.Dt = 0.9 * cfg.StableTimestep()
	cfg.OffsetX = 2
	cfg.OffsetY = 1
	g, err := NewGrid(cfg, ImpulsePulse(2))
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	x, y := g.WorldToNode(Vec2{X: 0, Y: 0})
	if x != 4 || y != 2 {
		t.Fatalf("origin mapped to (%d,%d), want (4,2)", x, y)
	}
	x, y = g.WorldToNode(Vec2{X: 0.74, Y: -0.9})
	if x != 5 || y != 0 {
		t.Fatalf("got (%d,%d), want (5,0)", x, y)
	}
	if !g.NodeInGrid(0, 0) || !g.NodeInGrid(10, 10) {
		t.Fatal("allocated corners must be in grid")
	}
	if g.NodeInGrid(-1, 0) || g.NodeInGrid(11, 0) || g.NodeInGrid(0, 11) {
		t.Fatal("out-of-range nodes reported in grid")
	}

	back := g.NodeToWorld(4, 2)
	if math.Abs(float64(back.X)) > 1e-6 || math.Abs(float64(back.Y)) > 1e-6 {
		t.Fatalf("NodeToWorld(4,2) = %+v, want origin", back)
	}
}

func TestQueryBeforeGenerationAndOutOfBounds(t *testing.T) {
	g, err := NewGrid(testConfig(6), ImpulsePulse(4))
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	if series, ok := g.ResponseAt(Vec2{X: 3, Y: 3}); ok || series != nil {
		t.Fatal("query before generation must yield no data")
	}
	if err := g.GenerateResponse(Vec2{X: 3, Y: 3}); err != nil {
		t.Fatal(err)
	}
	if _, ok := g.ResponseAt(Vec2{X: -1, Y: 3}); ok {
		t.Fatal("query outside grid must yield no data")
	}
	if _, ok := g.ResponseAt(Vec2{X: 3, Y: 100}); ok {
		t.Fatal("query outside grid must yield no data")
	}
	if _, ok := g.ResponseAt(Vec2{X: 3, Y: 3}); !ok {
		t.Fatal("in-grid query after generation must yield data")
	}
}

func TestListenerOutsideGrid(t *testing.T) {
	g, err := NewGrid(testConfig(6), ImpulsePulse(4))
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	if err := g.GenerateResponse(Vec2{X: -2, Y: 3}); err != ErrListenerOutOfGrid {
		t.Fatalf("expected ErrListenerOutOfGrid, got %v", err)
	}
	if err := g.GenerateResponse(Vec2{X: 3, Y: 42}); err != ErrListenerOutOfGrid {
		t.Fatalf("expected ErrListenerOutOfGrid, got %v", err)
	}
}

func TestResponseLengthFollowsPulse(t *testing.T) {
	g, err := NewGrid(testConfig(8), ImpulsePulse(16))
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	listener := Vec2{X: 4, Y: 4}
	if err := g.GenerateResponse(listener); err != nil {
		t.Fatal(err)
	}
	series, ok := g.ResponseAt(listener)
	if !ok || len(series) != 16 {
		t.Fatalf("got %d samples, want 16", len(series))
	}

	// A shorter pulse must resize and invalidate the cube.
	g.SetPulse(ImpulsePulse(9))
	if _, ok := g.ResponseAt(listener); ok {
		t.Fatal("cube must be invalid after SetPulse until regeneration")
	}
	if err := g.GenerateResponse(listener); err != nil {
		t.Fatal(err)
	}
	series, ok = g.ResponseAt(listener)
	if !ok || len(series) != 9 {
		t.Fatalf("got %d samples after SetPulse, want 9", len(series))
	}
	if g.ResponseLength() != 9 {
		t.Fatalf("ResponseLength() = %d, want 9", g.ResponseLength())
	}

	// Longer again, checking every node's series length.
	g.SetPulse(GaussianPulse(25))
	if err := g.GenerateResponse(listener); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 9; x++ {
		for y := 0; y < 9; y++ {
			series, ok := g.ResponseAtNode(x, y)
			if !ok || len(series) != 25 {
				t.Fatalf("node (%d,%d): %d samples, want 25", x, y, len(series))
			}
		}
	}
}

func TestGPUGenerationFailsLoudly(t *testing.T) {
	// Constructing a GPU grid is already rejected; the dispatch path must
	// refuse too, so a mode flipped after construction cannot silently
	// produce CPU results.
	g, err := NewGrid(testConfig(4), ImpulsePulse(2))
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	g.cfg.Execution = ExecutionGPU
	if err := g.GenerateResponse(Vec2{X: 2, Y: 2}); err != ErrGPUUnsupported {
		t.Fatalf("expected ErrGPUUnsupported, got %v", err)
	}
	if g.generated {
		t.Fatal("failed generation must not mark the cube valid")
	}
}
