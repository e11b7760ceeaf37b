// Package audio plays short synthesized cues for game events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player maps game events to sounds. The zero value is silent; call
// Initialize to open the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a silent player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device. Failure is not fatal for callers; the
// player simply stays silent.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Play queues the cue for an event. Unknown events are ignored.
func (p *Player) Play(e core.Event) {
	s := Cue(e)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Cue builds the sound for an event, or nil if it has none.
func Cue(e core.Event) beep.Streamer {
	switch e {
	case core.EventAte:
		return Blip(880, 60*time.Millisecond)
	case core.EventGameOver:
		return beep.Seq(
			Blip(440, 120*time.Millisecond),
			Blip(330, 120*time.Millisecond),
			Blip(220, 240*time.Millisecond),
		)
	default:
		return nil
	}
}

// Blip returns a quiet sine tone of the given frequency and length.
func Blip(freq float64, d time.Duration) beep.Streamer {
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(d), tone),
		Base:     2,
		Volume:   -2,
	}
}
