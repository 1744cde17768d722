package main

import "time"

// Demo configuration constants: grid scale, movement timing, wall generation,
// and audio behavior for the interactive visualization.
const (
	gridCells   = 128
	gridNodes   = gridCells + 1
	cellMeters  = 0.25
	windowScale = 4

	moveSpeed = 1.5
	stepDelay = 12

	pulseLength  = 160
	playbackRate = 2

	listenerRad       = 2
	emitterRad        = 2
	wallSegments      = 14
	wallMinLen        = 10
	wallMaxLen        = 60
	wallExclusionRad  = 8
	defaultAbsorption = 0.95

	pgoRecordDuration = 15 * time.Second

	audioSampleRate    = 48000
	audioGain          = 0.8
	audioPlayerLatency = 80 * time.Millisecond
)
