package waverb

// Output is the fixed-shape descriptor record returned to clients for one
// emitter. When any resolution step fails (nil engine, unknown handle,
// position outside the grid, no simulation yet) Occlusion is set to
// InvalidGain and the remaining fields carry no meaning; callers must check
// Valid before using them.
type Output struct {
	Occlusion         float32
	WetGain           float32
	LowpassIntensity  float32
	RT60              float32
	Direction         Vec2
	SourceDirectivity Vec2
}

// Valid reports whether the record carries real descriptors.
func (o Output) Valid() bool { return o.Occlusion != InvalidGain }

func invalidOutput() Output { return Output{Occlusion: InvalidGain} }

// Engine ties the grid solver, the emitter registry, and the analyzer into
// the consumer-facing surface. An Engine is an ordinary caller-owned value;
// there is no process-global context.
type Engine struct {
	grid      *Grid
	emissions *EmissionManager
	analyzer  *Analyzer
}

// NewEngine allocates a grid for the configuration and excitation pulse and
// wires the emission manager and analyzer around it.
func NewEngine(cfg Config, pulse []float32) (*Engine, error) {
	grid, err := NewGrid(cfg, pulse)
	if err != nil {
		return nil, err
	}
	return &Engine{
		grid:      grid,
		emissions: NewEmissionManager(),
		analyzer:  NewAnalyzer(grid),
	}, nil
}

// Close releases the engine's worker pool.
func (e *Engine) Close() {
	if e != nil && e.grid != nil {
		e.grid.Close()
	}
}

// Grid exposes the simulation grid for scene setup and response queries.
func (e *Engine) Grid() *Grid { return e.grid }

// Emissions exposes the emitter registry.
func (e *Engine) Emissions() *EmissionManager { return e.emissions }

// SetListener regenerates the sound field for a listener position and derives
// descriptors for every node. Call whenever the listener moves, or once per
// simulation frame; latency is proportional to grid area times response
// length, fixed and known in advance.
func (e *Engine) SetListener(pos Vec2) error {
	if err := e.grid.GenerateResponse(pos); err != nil {
		return err
	}
	return e.analyzer.AnalyzeResponses(pos)
}

// Output resolves an emitter handle to its descriptor record. Every soft
// failure yields the InvalidGain sentinel instead of an error so real-time
// call sites can branch on one field.
func (e *Engine) Output(id EmitterID) Output {
	if e == nil || e.grid == nil {
		return invalidOutput()
	}
	pos, known := e.emissions.Position(id)
	if !known {
		return invalidOutput()
	}
	res, ok := e.analyzer.Result(pos)
	if !ok {
		return invalidOutput()
	}
	return Output{
		Occlusion:         res.Occlusion,
		WetGain:           res.WetGain,
		LowpassIntensity:  res.LowpassIntensity,
		RT60:              res.RT60,
		Direction:         res.Direction,
		SourceDirectivity: res.SourceDirectivity,
	}
}

// ImpulseResponse returns the raw recorded time series for a world position
// together with its length, for consumers that post-process responses
// themselves. ok is false outside the grid or before the first generation.
func (e *Engine) ImpulseResponse(pos Vec2) (series []Cell, length int, ok bool) {
	if e == nil || e.grid == nil {
		return nil, 0, false
	}
	series, ok = e.grid.ResponseAt(pos)
	return series, len(series), ok
}
