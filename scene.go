package waverb

// Scene setup. Boundary flags and descriptors are written here, before any
// generation call, and stay immutable while the solver steps.

// ClearBoundaries resets every node to free-propagating medium with a zeroed
// boundary descriptor. The four domain edges keep their implicit absorbing
// treatment regardless.
func (g *Grid) ClearBoundaries() {
	for i := range g.cells {
		g.cells[i].BX = 1
		g.cells[i].BY = 1
	}
	for i := range g.bounds {
		g.bounds[i] = BoundaryCell{}
	}
}

// SetBoundary marks one node as boundary on the selected axes and installs
// its material descriptor. The descriptor's normal must reference a node
// inside the grid and its absorption must lie in [0,1]. Passing xAxis=false
// and yAxis=false restores the medium update on both axes.
func (g *Grid) SetBoundary(x, y int, bnd BoundaryCell, xAxis, yAxis bool) error {
	if !g.NodeInGrid(x, y) {
		return ErrNodeOutOfGrid
	}
	if !g.NodeInGrid(x+int(bnd.NormalX), y+int(bnd.NormalY)) {
		return ErrNormalOutOfGrid
	}
	if bnd.Absorption < 0 || bnd.Absorption > 1 {
		return ErrBadAbsorption
	}
	i := g.nodeIndex(x, y)
	c := &g.cells[i]
	c.BX = 1
	c.BY = 1
	if xAxis {
		c.BX = 0
	}
	if yAxis {
		c.BY = 0
	}
	g.bounds[i] = bnd
	return nil
}

// Boundary returns the material descriptor stored for a node.
func (g *Grid) Boundary(x, y int) (BoundaryCell, bool) {
	if !g.NodeInGrid(x, y) {
		return BoundaryCell{}, false
	}
	return g.bounds[g.nodeIndex(x, y)], true
}

// IsBoundary reports whether either axis of a node uses the boundary update.
func (g *Grid) IsBoundary(x, y int) bool {
	if !g.NodeInGrid(x, y) {
		return false
	}
	c := g.cells[g.nodeIndex(x, y)]
	return c.BX == 0 || c.BY == 0
}

// AddOccluder marks every node inside the world-space rectangle [min, max] as
// boundary on both axes with the given absorption coefficient. Normals point
// toward the nearest rectangle face, so perimeter nodes couple to the medium
// node just outside while deeper nodes chain toward the surface. Rectangles
// that leave the grid are clipped; an occluder flush against the domain edge
// gets inward-pointing normals.
func (g *Grid) AddOccluder(min, max Vec2, absorption float32) error {
	if absorption < 0 || absorption > 1 {
		return ErrBadAbsorption
	}
	x0, y0 := g.WorldToNode(min)
	x1, y1 := g.WorldToNode(max)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	x0 = clampInt(x0, 0, g.nodesX-1)
	x1 = clampInt(x1, 0, g.nodesX-1)
	y0 = clampInt(y0, 0, g.nodesY-1)
	y1 = clampInt(y1, 0, g.nodesY-1)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			nx, ny := occluderNormal(x, y, x0, x1, y0, y1)
			if !g.NodeInGrid(x+nx, y+ny) {
				nx, ny = -nx, -ny
			}
			bnd := BoundaryCell{
				Absorption: absorption,
				NormalX:    int16(nx),
				NormalY:    int16(ny),
			}
			if err := g.SetBoundary(x, y, bnd, true, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// occluderNormal picks the unit step from a node toward the nearest face of
// its occluder rectangle.
func occluderNormal(x, y, x0, x1, y0, y1 int) (int, int) {
	dxLo := x - x0 + 1
	dxHi := x1 - x + 1
	dyLo := y - y0 + 1
	dyHi := y1 - y + 1
	minDist := dxLo
	nx, ny := -1, 0
	if dxHi < minDist {
		minDist = dxHi
		nx, ny = 1, 0
	}
	if dyLo < minDist {
		minDist = dyLo
		nx, ny = 0, -1
	}
	if dyHi < minDist {
		nx, ny = 0, 1
	}
	return nx, ny
}

// clampInt constrains v to lie within the inclusive [min, max] range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
