package waverb

// Vec2 is a world-space position or direction on the simulated plane.
type Vec2 struct {
	X float32
	Y float32
}

// Cell holds the acoustic field state of one grid node. BX and BY select the
// update formula per axis: 1 applies the free-propagating medium update, 0 the
// boundary update driven by the node's BoundaryCell. Scene setup writes the
// flags once; the solver never mutates them.
type Cell struct {
	Pr float32
	Vx float32
	Vy float32
	BX int16
	BY int16
}

// BoundaryCell describes the material behind a boundary node. Absorption is
// the coefficient R in [0,1] feeding the admittance; the normal offsets point
// from the boundary node toward the adjacent medium node whose pressure drives
// the boundary velocity update, and must stay inside the grid.
type BoundaryCell struct {
	Absorption float32
	NormalX    int16
	NormalY    int16
}

// admittance derives the relative acoustic admittance Y = (1-R)/(1+R) from an
// absorption coefficient. Y=0 blocks flow entirely (rigid wall); Y=1 matches
// the medium impedance so incident energy passes without echo.
func admittance(r float32) float32 {
	return (1 - r) / (1 + r)
}
