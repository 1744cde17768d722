package main

import "flag"

// Command-line flags controlling optional rendering, simulation, and runtime
// behavior of the demo.
var (
	// workersFlag bounds the solver worker pool; 0 uses all logical CPUs.
	workersFlag = flag.Int("workers", 0, "solver worker count (0 = all logical CPUs)")

	// wallAbsorptionFlag sets the absorption coefficient written into
	// generated wall segments (0 = admittance-matched, 1 = rigid).
	wallAbsorptionFlag = flag.Float64("wall-absorption", defaultAbsorption, "absorption coefficient for generated walls (0-1)")

	// showWallsFlag toggles rendering of wall geometry overlays.
	showWallsFlag = flag.Bool("show-walls", true, "render wall geometry overlays")

	// debugFlag enables the FPS, timing, and descriptor overlay.
	debugFlag = flag.Bool("debug", true, "show FPS, solve timing, and emitter descriptors")

	// enableAudioFlag auditions the probe emitter's impulse response after
	// each regeneration.
	enableAudioFlag = flag.Bool("enable-audio", false, "play the probe emitter's impulse response after each solve")

	// recordDefaultPGO triggers a scripted walk to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "walk randomly for 15s while capturing default.pgo")

	// seedFlag fixes the wall layout for reproducible scenes.
	seedFlag = flag.Int64("seed", 0, "wall generation seed (0 = time-based)")
)
