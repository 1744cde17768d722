package waverb

import (
	"math"
	"runtime"
)

// Physical constants for sound propagation in air. The characteristic
// impedance rho*c couples pressure and particle velocity at boundaries and at
// the absorbing domain edges.
const (
	// SoundSpeed is the propagation speed in air, in meters per second.
	SoundSpeed = 343.21

	// AirDensity is the density of air, in kilograms per cubic meter.
	AirDensity = 1.2041

	// InvalidGain marks a descriptor record whose lookup failed. Callers
	// must test Output.Occlusion against it before reading other fields.
	InvalidGain = -1.0
)

// ExecutionMode selects the solver backend used for response generation.
type ExecutionMode int

const (
	// ExecutionCPU runs the worker-pool FDTD solver.
	ExecutionCPU ExecutionMode = iota

	// ExecutionGPU is declared but unsupported; selecting it is a
	// configuration error, never a silent CPU fallback.
	ExecutionGPU
)

// Config describes a simulation grid before allocation. SizeX and SizeY count
// interior cells; the grid allocates (SizeX+1) x (SizeY+1) nodes.
type Config struct {
	SizeX int
	SizeY int

	// Dx is the spatial step in meters per cell.
	Dx float32

	// Dt is the simulation timestep in seconds. Stability is a caller
	// responsibility: SoundSpeed*Dt/Dx above 1/sqrt(2) grows without
	// bound. See StableTimestep.
	Dt float32

	// OffsetX and OffsetY translate world coordinates onto the grid
	// before dividing by Dx.
	OffsetX float32
	OffsetY float32

	// MaxWorkers bounds the solver's worker pool. Zero means one worker
	// per logical CPU. Resolved once at grid construction.
	MaxWorkers int

	Execution ExecutionMode
}

// Courant returns the Dt/Dx ratio governing the explicit scheme's stability.
func (c Config) Courant() float32 {
	if c.Dx == 0 {
		return 0
	}
	return c.Dt / c.Dx
}

// Stable reports whether the configured timestep satisfies the CFL bound for
// the 2D staggered scheme, SoundSpeed*Dt/Dx <= 1/sqrt(2).
func (c Config) Stable() bool {
	return float64(SoundSpeed)*float64(c.Courant()) <= 1/math.Sqrt2+1e-6
}

// StableTimestep returns the largest timestep the CFL bound allows for the
// configured spatial step.
func (c Config) StableTimestep() float32 {
	return float32(float64(c.Dx) / (SoundSpeed * math.Sqrt2))
}

// workers resolves MaxWorkers into a concrete pool size.
func (c Config) workers() int {
	n := c.MaxWorkers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if rows := c.SizeX + 1; n > rows {
		n = rows
	}
	if n < 1 {
		n = 1
	}
	return n
}

// validate rejects configurations the solver cannot run.
func (c Config) validate() error {
	if c.SizeX < 1 || c.SizeY < 1 {
		return ErrBadGridSize
	}
	if c.Dx <= 0 || c.Dt <= 0 {
		return ErrBadGridStep
	}
	if c.Execution == ExecutionGPU {
		return ErrGPUUnsupported
	}
	if c.Execution != ExecutionCPU {
		return ErrBadExecutionMode
	}
	return nil
}
