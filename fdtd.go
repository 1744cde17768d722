package waverb

// GenerateResponse resets the dynamic field, runs the time-stepped FDTD
// update with the excitation pulse injected at the listener's node, and
// records every node's state for every step into the response cube. By
// acoustic reciprocity each node's recorded series is the impulse response a
// listener at the given position would observe from a source at that node.
//
// The previous response cube contents are overwritten. Not safe to call
// concurrently with itself or with response queries on the same grid.
func (g *Grid) GenerateResponse(listener Vec2) error {
	switch g.cfg.Execution {
	case ExecutionCPU:
		return g.generateResponseCPU(listener)
	case ExecutionGPU:
		return g.generateResponseGPU(listener)
	}
	return ErrBadExecutionMode
}

// generateResponseGPU is a declared stub: there is no GPU solver and the
// failure must be loud so callers cannot mistake CPU output for GPU output.
func (g *Grid) generateResponseGPU(Vec2) error {
	return ErrGPUUnsupported
}

func (g *Grid) generateResponseCPU(listener Vec2) error {
	lx, ly := g.WorldToNode(listener)
	if !g.NodeInGrid(lx, ly) {
		return ErrListenerOutOfGrid
	}
	listenerIdx := g.nodeIndex(lx, ly)

	// Reset pressure and velocity everywhere; boundary flags and
	// descriptors persist across generations.
	for i := range g.cells {
		g.cells[i].Pr = 0
		g.cells[i].Vx = 0
		g.cells[i].Vy = 0
	}

	for t := 0; t < g.responseLen; t++ {
		// Each phase reads only state the previous phase left fully
		// settled, so the barrier between pool dispatches is the only
		// synchronization the step needs.
		g.pool.run(g.stepPressure)
		g.pool.run(g.stepVelocityX)
		g.pool.run(g.stepVelocityY)
		g.absorbEdges()
		g.recordStep(t)
		g.cells[listenerIdx].Pr += g.pulse[t]
	}
	g.generated = true
	g.revision++
	return nil
}

// stepPressure advances pressure from the forward-difference divergence of
// the surrounding velocity components. Medium nodes integrate the divergence;
// boundary nodes instead decay toward the locally-reactive wall condition.
func (g *Grid) stepPressure(x0, x1 int) {
	stride := g.stride
	lastX := g.nodesX - 1
	lastY := g.nodesY - 1
	damp := 1 / (1 + g.cfg.Dt)
	for x := x0; x < x1; x++ {
		base := x * stride
		for y := 0; y <= lastY; y++ {
			i := base + y
			c := &g.cells[i]
			if c.BX == 0 {
				c.Pr *= damp
				continue
			}
			var div float32
			if x < lastX {
				div += g.cells[i+stride].Vx - c.Vx
			}
			if y < lastY {
				div += g.cells[i+1].Vy - c.Vy
			}
			c.Pr -= g.cprv * div
		}
	}
}

// stepVelocityX advances the x velocity for every node with x >= 1. Medium
// nodes take the backward pressure gradient; boundary nodes couple to the
// adjacent medium node named by their normal through the material admittance.
func (g *Grid) stepVelocityX(x0, x1 int) {
	stride := g.stride
	lastY := g.nodesY - 1
	for x := x0; x < x1; x++ {
		if x == 0 {
			continue
		}
		base := x * stride
		for y := 0; y <= lastY; y++ {
			i := base + y
			c := &g.cells[i]
			if c.BX != 0 {
				c.Vx -= g.cv * (c.Pr - g.cells[i-stride].Pr)
				continue
			}
			b := g.bounds[i]
			n := i + int(b.NormalX)*stride + int(b.NormalY)
			c.Vx = admittance(b.Absorption) * g.zInv * g.cells[n].Pr
		}
	}
}

// stepVelocityY mirrors stepVelocityX along the other axis, driven by the
// y-axis boundary flag.
func (g *Grid) stepVelocityY(x0, x1 int) {
	stride := g.stride
	lastY := g.nodesY - 1
	for x := x0; x < x1; x++ {
		base := x * stride
		for y := 1; y <= lastY; y++ {
			i := base + y
			c := &g.cells[i]
			if c.BY != 0 {
				c.Vy -= g.cv * (c.Pr - g.cells[i-1].Pr)
				continue
			}
			b := g.bounds[i]
			n := i + int(b.NormalX)*stride + int(b.NormalY)
			c.Vy = admittance(b.Absorption) * g.zInv * g.cells[n].Pr
		}
	}
}

// absorbEdges applies an impedance-matched condition on the four domain
// edges, independent of any boundary descriptor, so the finite domain does
// not reflect outgoing energy back in as if it were walled.
func (g *Grid) absorbEdges() {
	stride := g.stride
	sizeX := g.cfg.SizeX
	sizeY := g.cfg.SizeY
	zInv := g.zInv
	for y := 0; y < sizeY; y++ {
		lo := y
		hi := sizeX*stride + y
		g.cells[lo].Vx = -g.cells[lo].Pr * zInv
		g.cells[hi].Vx = g.cells[hi-stride].Pr * zInv
	}
	for x := 0; x < sizeX; x++ {
		lo := x * stride
		hi := x*stride + sizeY
		g.cells[lo].Vy = -g.cells[lo].Pr * zInv
		g.cells[hi].Vy = g.cells[hi-1].Pr * zInv
	}
}

// recordStep snapshots the whole cell store into the response cube at time
// index t. Runs after the field is fully updated and before the excitation is
// injected, so the sample injected at step t first shows up in step t+1.
func (g *Grid) recordStep(t int) {
	stride := g.stride
	responseLen := g.responseLen
	g.pool.run(func(x0, x1 int) {
		for x := x0; x < x1; x++ {
			base := x * stride
			for y := 0; y < stride; y++ {
				i := base + y
				g.response[i*responseLen+t] = g.cells[i]
			}
		}
	})
}
