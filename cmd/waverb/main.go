package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"waverb"
)

func main() {
	flag.Parse()

	cfg := waverb.Config{
		SizeX:      gridCells,
		SizeY:      gridCells,
		Dx:         cellMeters,
		MaxWorkers: *workersFlag,
	}
	cfg.Dt = 0.9 * cfg.StableTimestep()
	if !cfg.Stable() {
		log.Printf("warning: Courant number %.4f violates the CFL bound; expect blowup", cfg.Courant())
	}

	engine, err := waverb.NewEngine(cfg, waverb.GaussianPulse(pulseLength))
	if err != nil {
		log.Fatalf("engine setup failed: %v", err)
	}
	defer engine.Close()

	g := newGame(engine, *seedFlag)
	if err := g.generateWalls(); err != nil {
		log.Fatalf("wall generation failed: %v", err)
	}

	if *enableAudioFlag {
		ctx := audio.NewContext(audioSampleRate)
		g.audioCtx = ctx
		g.audioStream = newIRAudioStream()
		player, err := ctx.NewPlayer(g.audioStream)
		if err != nil {
			log.Printf("audio player creation failed: %v", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.SetBufferSize(audioPlayerLatency)
			g.audioPlayer.Play()
		}
	}

	if *recordDefaultPGO {
		profile, err := os.Create("default.pgo")
		if err != nil {
			log.Fatalf("profile output: %v", err)
		}
		if err := pprof.StartCPUProfile(profile); err != nil {
			log.Fatalf("profile start: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			profile.Close()
		}()
		log.Printf("capturing default.pgo over a %s scripted walk", pgoRecordDuration)
		g.enableAutoWalk(pgoRecordDuration)
	}

	ebiten.SetWindowSize(gridNodes*windowScale, gridNodes*windowScale)
	ebiten.SetWindowTitle("Acoustic Response Explorer")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
