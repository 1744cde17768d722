package main

import (
	"sync"
)

// irAudioStream implements io.Reader for Ebiten's audio player, serving
// queued mono samples as 16-bit stereo frames and silence once drained.
type irAudioStream struct {
	mu    sync.Mutex
	queue []float32
}

func newIRAudioStream() *irAudioStream {
	return &irAudioStream{}
}

// Enqueue replaces any pending audio with a fresh sample burst.
func (s *irAudioStream) Enqueue(samples []float32) {
	s.mu.Lock()
	s.queue = append(s.queue[:0], samples...)
	s.mu.Unlock()
}

func (s *irAudioStream) Read(p []byte) (int, error) {
	// Serve whole stereo frames (4 bytes per frame).
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < frameBytes; i += 4 {
		var sample float32
		if len(s.queue) > 0 {
			sample = s.queue[0]
			s.queue = s.queue[1:]
		}
		if sample > 1 {
			sample = 1
		} else if sample < -1 {
			sample = -1
		}
		v := int16(sample * 32000)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *irAudioStream) Close() error { return nil }

// auditionProbe resamples the probe emitter's impulse response to the audio
// rate and queues it for playback.
func (g *Game) auditionProbe() {
	if g.audioStream == nil {
		return
	}
	series, length, ok := g.engine.ImpulseResponse(g.probePos)
	if !ok || length == 0 {
		return
	}
	dt := float64(g.engine.Grid().Config().Dt)
	ratio := dt * audioSampleRate
	outLen := int(float64(length) * ratio)
	if outLen < 1 {
		return
	}
	var peak float32
	for i := range series {
		if p := series[i].Pr; p > peak {
			peak = p
		} else if -p > peak {
			peak = -p
		}
	}
	if peak == 0 {
		return
	}
	scale := audioGain / peak
	out := make([]float32, outLen)
	for i := range out {
		// Linear interpolation between simulation steps.
		pos := float64(i) / ratio
		j := int(pos)
		if j >= length-1 {
			out[i] = series[length-1].Pr * scale
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = (series[j].Pr*(1-frac) + series[j+1].Pr*frac) * scale
	}
	g.audioStream.Enqueue(out)
}
