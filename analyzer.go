package waverb

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// directWindowSeconds bounds the early part of a response treated as the
// direct (dry) arrival; everything after it contributes to the wet field.
const directWindowSeconds = 0.01

// onsetFraction of the peak magnitude marks the first arrival.
const onsetFraction = 0.02

// ResponseResult holds the acoustic descriptors derived from one node's
// recorded time series.
type ResponseResult struct {
	// Occlusion is the dry-path gain: how much of the excitation energy
	// arrives in the direct window. Zero means fully occluded.
	Occlusion float32

	// WetGain is the gain of the late, reverberant part of the response.
	WetGain float32

	// LowpassIntensity estimates how much high-frequency content the path
	// stripped, in [0,1]; larger means duller.
	LowpassIntensity float32

	// RT60 is the reverberation decay time in seconds, zero when the
	// response never decays 25 dB below its early level.
	RT60 float32

	// Direction is the unit arrival direction perceived at the listener,
	// pointing toward the apparent source. Zero when no energy arrived.
	Direction Vec2

	// SourceDirectivity is the unit direction from the source node toward
	// the listener along the direct path.
	SourceDirectivity Vec2
}

// Analyzer turns the grid's response cube into per-node descriptor records.
// One analysis pass covers every node, so any number of emitter queries after
// it are array lookups.
type Analyzer struct {
	grid     *Grid
	workers  int
	results  []ResponseResult
	analyzed bool
	revision uint64
}

// NewAnalyzer builds an analyzer over a grid's response cube, reusing the
// grid's resolved worker count for its own fan-out.
func NewAnalyzer(g *Grid) *Analyzer {
	return &Analyzer{
		grid:    g,
		workers: g.cfg.workers(),
		results: make([]ResponseResult, g.NodeCount()),
	}
}

// AnalyzeResponses derives descriptors for every grid node from the current
// response cube. Must run after GenerateResponse and before Result lookups;
// results for a stale cube are overwritten wholesale.
func (a *Analyzer) AnalyzeResponses(listener Vec2) error {
	g := a.grid
	if !g.generated {
		a.analyzed = false
		return ErrNoResponse
	}
	var eg errgroup.Group
	eg.SetLimit(a.workers)
	rows := g.nodesX
	per := (rows + a.workers - 1) / a.workers
	for x0 := 0; x0 < rows; x0 += per {
		x0 := x0
		x1 := x0 + per
		if x1 > rows {
			x1 = rows
		}
		eg.Go(func() error {
			for x := x0; x < x1; x++ {
				for y := 0; y < g.nodesY; y++ {
					i := g.nodeIndex(x, y)
					a.results[i] = a.analyzeNode(x, y, listener)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	a.analyzed = true
	a.revision = g.revision
	return nil
}

// Result returns the descriptor record for the node containing a world
// position, or ok=false when the position is outside the grid or no analysis
// pass covers the current response cube. Replacing the pulse invalidates the
// cube, so results derived from the discarded cube stop being served.
func (a *Analyzer) Result(pos Vec2) (ResponseResult, bool) {
	if !a.analyzed || !a.grid.generated || a.revision != a.grid.revision {
		return ResponseResult{}, false
	}
	x, y := a.grid.WorldToNode(pos)
	if !a.grid.NodeInGrid(x, y) {
		return ResponseResult{}, false
	}
	return a.results[a.grid.nodeIndex(x, y)], true
}

func (a *Analyzer) analyzeNode(x, y int, listener Vec2) ResponseResult {
	g := a.grid
	series, ok := g.ResponseAtNode(x, y)
	if !ok {
		return ResponseResult{}
	}
	var res ResponseResult

	nodePos := g.NodeToWorld(x, y)
	sdx := float64(listener.X - nodePos.X)
	sdy := float64(listener.Y - nodePos.Y)
	if dist := math.Hypot(sdx, sdy); dist > 0 {
		res.SourceDirectivity = Vec2{
			X: float32(sdx / dist),
			Y: float32(sdy / dist),
		}
	}

	peak := 0.0
	for i := range series {
		if p := math.Abs(float64(series[i].Pr)); p > peak {
			peak = p
		}
	}
	if peak == 0 {
		return res
	}
	onset := 0
	for i := range series {
		if math.Abs(float64(series[i].Pr)) >= peak*onsetFraction {
			onset = i
			break
		}
	}

	dt := float64(g.cfg.Dt)
	window := int(directWindowSeconds / dt)
	if window < 1 {
		window = 1
	}
	directEnd := onset + window
	if directEnd > len(series) {
		directEnd = len(series)
	}

	var dryE, wetE, diffE, ix, iy float64
	for i := onset; i < directEnd; i++ {
		p := float64(series[i].Pr)
		dryE += p * p
		ix += p * float64(series[i].Vx)
		iy += p * float64(series[i].Vy)
		if i > onset {
			d := p - float64(series[i-1].Pr)
			diffE += d * d
		}
	}
	for i := directEnd; i < len(series); i++ {
		p := float64(series[i].Pr)
		wetE += p * p
	}

	pulseE := g.pulseEnergy()
	if pulseE > 0 {
		res.Occlusion = float32(math.Sqrt(dryE / pulseE))
		res.WetGain = float32(math.Sqrt(wetE / pulseE))
	}
	if dryE > 0 {
		// First-difference energy approximates high-band content; a
		// smooth (lowpassed) arrival scores near 1.
		ratio := diffE / (4 * dryE)
		if ratio > 1 {
			ratio = 1
		}
		res.LowpassIntensity = float32(1 - ratio)
	}
	if mag := math.Hypot(ix, iy); mag > 0 {
		res.Direction = Vec2{X: float32(ix / mag), Y: float32(iy / mag)}
	}
	res.RT60 = decayTime(series, onset, dt)
	return res
}

// decayTime estimates RT60 by Schroeder backward integration: the decay curve
// is the reversed cumulative energy, and the -5 dB to -25 dB span of it,
// scaled by 3, extrapolates the 60 dB decay time.
func decayTime(series []Cell, onset int, dt float64) float32 {
	n := len(series) - onset
	if n < 2 {
		return 0
	}
	decay := make([]float64, n)
	sum := 0.0
	for i := n - 1; i >= 0; i-- {
		p := float64(series[onset+i].Pr)
		sum += p * p
		decay[i] = sum
	}
	total := decay[0]
	if total <= 0 {
		return 0
	}
	i5, i25 := -1, -1
	for i := 0; i < n; i++ {
		db := 10 * math.Log10(decay[i]/total)
		if i5 < 0 && db <= -5 {
			i5 = i
		}
		if db <= -25 {
			i25 = i
			break
		}
	}
	if i5 < 0 || i25 < 0 || i25 <= i5 {
		return 0
	}
	return float32(3 * float64(i25-i5) * dt)
}

// pulseEnergy sums the squared excitation samples.
func (g *Grid) pulseEnergy() float64 {
	var e float64
	for _, s := range g.pulse {
		e += float64(s) * float64(s)
	}
	return e
}
