package waverb

import "errors"

// Hard configuration errors. Soft query failures (unknown emitter, position
// outside the grid, no generation yet) are never errors; they surface as the
// InvalidGain sentinel or an ok=false result so hot audio paths can branch
// cheaply.
var (
	// ErrGPUUnsupported is returned when the GPU execution mode is
	// selected. There is no GPU solver; the error is raised before any
	// simulation work so callers cannot unknowingly get CPU results.
	ErrGPUUnsupported = errors.New("waverb: GPU execution is not supported")

	// ErrBadExecutionMode reports an execution mode outside the declared set.
	ErrBadExecutionMode = errors.New("waverb: unknown execution mode")

	// ErrBadGridSize reports non-positive grid dimensions.
	ErrBadGridSize = errors.New("waverb: grid dimensions must be at least 1x1")

	// ErrBadGridStep reports a non-positive spatial or time step.
	ErrBadGridStep = errors.New("waverb: dx and dt must be positive")

	// ErrEmptyPulse reports an excitation sequence with no samples.
	ErrEmptyPulse = errors.New("waverb: excitation pulse is empty")

	// ErrListenerOutOfGrid reports a listener position that does not map
	// to a node inside the allocated grid.
	ErrListenerOutOfGrid = errors.New("waverb: listener position outside grid")

	// ErrNoResponse reports an analysis request made before any
	// generation call filled the response cube.
	ErrNoResponse = errors.New("waverb: no generated response to analyze")

	// ErrNodeOutOfGrid reports a boundary setup call referencing a node
	// outside the allocated grid.
	ErrNodeOutOfGrid = errors.New("waverb: node index outside grid")

	// ErrNormalOutOfGrid reports a boundary normal whose referenced
	// neighbor lies outside the allocated grid.
	ErrNormalOutOfGrid = errors.New("waverb: boundary normal leaves grid")

	// ErrBadAbsorption reports an absorption coefficient outside [0,1].
	// Values outside the range map to an admittance above 1, which feeds
	// energy into the field at every wall update.
	ErrBadAbsorption = errors.New("waverb: absorption must be in [0,1]")
)
