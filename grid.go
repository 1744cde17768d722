package waverb

// Grid owns the dense cell store, the per-node boundary descriptors, the
// excitation pulse, and the response cube filled by GenerateResponse. Nodes
// are laid out x-major: node (x, y) lives at index x*(SizeY+1)+y.
//
// Boundary data is immutable while a generation call runs. The response cube
// is single-writer: never query while a GenerateResponse call is in flight.
type Grid struct {
	cfg    Config
	nodesX int
	nodesY int
	stride int

	// Update constants, fixed at construction. cprv scales the velocity
	// divergence feeding pressure; cv scales the pressure gradient feeding
	// velocity; zInv is the inverse characteristic impedance 1/(rho*c).
	cprv float32
	cv   float32
	zInv float32

	cells  []Cell
	bounds []BoundaryCell

	pulse       []float32
	response    []Cell
	responseLen int
	generated   bool
	revision    uint64

	pool *workerPool
}

// NewGrid allocates a grid for the given configuration and excitation pulse.
// The pulse length fixes the response length. The worker pool is resolved and
// started here; call Close when the grid is no longer needed.
func NewGrid(cfg Config, pulse []float32) (*Grid, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(pulse) == 0 {
		return nil, ErrEmptyPulse
	}
	g := &Grid{
		cfg:    cfg,
		nodesX: cfg.SizeX + 1,
		nodesY: cfg.SizeY + 1,
		stride: cfg.SizeY + 1,
		zInv:   1 / (AirDensity * SoundSpeed),
	}
	courant := cfg.Courant()
	g.cv = SoundSpeed * courant * g.zInv
	g.cprv = courant * AirDensity * SoundSpeed * SoundSpeed
	n := g.nodesX * g.nodesY
	g.cells = make([]Cell, n)
	g.bounds = make([]BoundaryCell, n)
	g.ClearBoundaries()
	g.SetPulse(pulse)
	g.pool = newWorkerPool(cfg.workers(), g.nodesX)
	return g, nil
}

// Close stops the grid's worker goroutines. The grid must not be used after.
func (g *Grid) Close() {
	if g.pool != nil {
		g.pool.close()
	}
}

// Config returns the configuration the grid was built with.
func (g *Grid) Config() Config { return g.cfg }

// NodeCount returns the number of allocated nodes, (SizeX+1)*(SizeY+1).
func (g *Grid) NodeCount() int { return len(g.cells) }

// ResponseLength returns the number of samples recorded per node, equal to
// the excitation pulse length.
func (g *Grid) ResponseLength() int { return g.responseLen }

// SetPulse replaces the excitation sequence. The response cube is resized to
// the new length and invalidated until the next GenerateResponse call. An
// empty pulse is ignored.
func (g *Grid) SetPulse(pulse []float32) {
	if len(pulse) == 0 {
		return
	}
	g.pulse = append(g.pulse[:0], pulse...)
	g.responseLen = len(pulse)
	need := len(g.cells) * g.responseLen
	if cap(g.response) < need {
		g.response = make([]Cell, need)
	} else {
		g.response = g.response[:need]
	}
	g.generated = false
}

// nodeIndex flattens node coordinates into the cell store index.
func (g *Grid) nodeIndex(x, y int) int {
	return x*g.stride + y
}

// WorldToNode maps a world-space position to node coordinates using the
// world offset and spatial step. The arithmetic does no bounds checking;
// pair it with NodeInGrid before indexing.
func (g *Grid) WorldToNode(pos Vec2) (int, int) {
	x := int((pos.X + g.cfg.OffsetX) / g.cfg.Dx)
	y := int((pos.Y + g.cfg.OffsetY) / g.cfg.Dx)
	return x, y
}

// NodeToWorld returns the world-space position of a node, the inverse of
// WorldToNode up to truncation.
func (g *Grid) NodeToWorld(x, y int) Vec2 {
	return Vec2{
		X: float32(x)*g.cfg.Dx - g.cfg.OffsetX,
		Y: float32(y)*g.cfg.Dx - g.cfg.OffsetY,
	}
}

// NodeInGrid reports whether node coordinates fall inside the allocation.
func (g *Grid) NodeInGrid(x, y int) bool {
	return x >= 0 && x < g.nodesX && y >= 0 && y < g.nodesY
}

// ResponseAt returns the recorded time series for the node containing the
// given world position. ok is false when the position falls outside the grid
// or no generation call has completed yet; the returned slice is nil in that
// case, never stale data. The slice aliases the response cube and stays valid
// until the next GenerateResponse or SetPulse call.
func (g *Grid) ResponseAt(pos Vec2) (series []Cell, ok bool) {
	if !g.generated {
		return nil, false
	}
	x, y := g.WorldToNode(pos)
	if !g.NodeInGrid(x, y) {
		return nil, false
	}
	i := g.nodeIndex(x, y)
	return g.response[i*g.responseLen : (i+1)*g.responseLen], true
}

// ResponseAtNode is ResponseAt for callers that already hold node coordinates.
func (g *Grid) ResponseAtNode(x, y int) (series []Cell, ok bool) {
	if !g.generated || !g.NodeInGrid(x, y) {
		return nil, false
	}
	i := g.nodeIndex(x, y)
	return g.response[i*g.responseLen : (i+1)*g.responseLen], true
}
