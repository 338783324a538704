// Package audio plays square-wave cues and a looping stage phrase through
// the system speaker. When the speaker cannot be opened the player stays
// silent; gameplay never waits on audio.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.2
	musicLevel = 0.08
)

// Note is one tone of a phrase. Freq 0 is a rest.
type Note struct {
	Freq float64
	Dur  time.Duration
}

// Cue is a short effect sound.
type Cue int

const (
	CuePickup Cue = iota
	CueNerf
	CueBossHit
	CueLifeLost
	CueStageClear
	CueWin
	CueGameOver
	CueBattle
)

var cues = map[Cue][]Note{
	CuePickup:     {{880, 50 * time.Millisecond}, {1320, 70 * time.Millisecond}},
	CueNerf:       {{330, 60 * time.Millisecond}, {220, 90 * time.Millisecond}},
	CueBossHit:    {{160, 40 * time.Millisecond}},
	CueLifeLost:   {{440, 90 * time.Millisecond}, {330, 120 * time.Millisecond}},
	CueStageClear: {{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 160 * time.Millisecond}},
	CueWin:        {{523, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {784, 100 * time.Millisecond}, {1047, 300 * time.Millisecond}},
	CueGameOver:   {{392, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {262, 300 * time.Millisecond}},
	CueBattle:     {{220, 60 * time.Millisecond}, {0, 30 * time.Millisecond}, {220, 60 * time.Millisecond}},
}

// tracks are the background phrases; a stage plays tracks[(stage-1) % len].
var tracks = [][]Note{
	{{262, 200 * time.Millisecond}, {330, 200 * time.Millisecond}, {392, 200 * time.Millisecond}, {330, 200 * time.Millisecond}},
	{{294, 150 * time.Millisecond}, {0, 50 * time.Millisecond}, {349, 150 * time.Millisecond}, {440, 250 * time.Millisecond}},
	{{196, 250 * time.Millisecond}, {247, 250 * time.Millisecond}, {294, 250 * time.Millisecond}, {0, 250 * time.Millisecond}},
	{{330, 120 * time.Millisecond}, {392, 120 * time.Millisecond}, {494, 120 * time.Millisecond}, {392, 120 * time.Millisecond}},
	{{220, 180 * time.Millisecond}, {262, 180 * time.Millisecond}, {0, 90 * time.Millisecond}, {196, 270 * time.Millisecond}},
	{{147, 100 * time.Millisecond}, {147, 100 * time.Millisecond}, {175, 100 * time.Millisecond}, {208, 300 * time.Millisecond}},
}

// TrackFor returns the track index for a 1-based stage, -1 for no music.
func TrackFor(stage int) int {
	if stage <= 0 {
		return -1
	}
	return (stage - 1) % len(tracks)
}

// squareWave generates a square wave tone (more retro/8-bit feel).
func squareWave(freq float64, duration time.Duration, level float64) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := level
			if freq == 0 {
				val = 0
			} else if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

func phrase(notes []Note, level float64) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = squareWave(n.Freq, n.Dur, level)
	}
	return beep.Seq(parts...)
}

// loop replays notes forever.
func loop(notes []Note, level float64) beep.Streamer {
	cur := phrase(notes, level)
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for n < len(samples) {
			m, more := cur.Stream(samples[n:])
			n += m
			if !more {
				cur = phrase(notes, level)
			}
		}
		return n, true
	})
}

// Player owns the speaker. Methods are safe to call from any goroutine and
// do nothing when the player is disabled.
type Player struct {
	logger  *log.Logger
	enabled bool

	play   func(beep.Streamer)
	lock   func()
	unlock func()

	mu    sync.Mutex
	music *beep.Ctrl
	track int
}

// New opens the speaker unless mute is set. A speaker failure is logged and
// leaves the player silent.
func New(mute bool, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{logger: logger, track: -1}
	if mute {
		return p
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		logger.Warn("audio disabled", "err", err)
		return p
	}
	p.enabled = true
	p.play = func(s beep.Streamer) { speaker.Play(s) }
	p.lock = speaker.Lock
	p.unlock = speaker.Unlock
	return p
}

// Enabled reports whether sound is produced.
func (p *Player) Enabled() bool {
	return p != nil && p.enabled
}

// Play starts a cue.
func (p *Player) Play(c Cue) {
	if !p.Enabled() {
		return
	}
	notes, ok := cues[c]
	if !ok {
		return
	}
	p.play(phrase(notes, volume))
}

// Music switches the background loop to track, or stops it for -1.
// Asking for the current track keeps it playing.
func (p *Player) Music(track int) {
	if !p.Enabled() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if track == p.track {
		return
	}
	if p.music != nil {
		p.lock()
		p.music.Streamer = nil
		p.unlock()
		p.music = nil
	}
	p.track = track
	if track < 0 || track >= len(tracks) {
		p.track = -1
		return
	}
	p.music = &beep.Ctrl{Streamer: loop(tracks[track], musicLevel)}
	p.play(p.music)
}

// Track returns the playing track, -1 for none.
func (p *Player) Track() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// HandleStep plays the cues for a step's events and keeps the background
// loop on the track of the current stage.
func (p *Player) HandleStep(res core.StepResult) {
	if !p.Enabled() {
		return
	}
	for _, ev := range res.Events {
		if c, ok := cueFor(ev.Kind); ok {
			p.Play(c)
		}
	}

	switch {
	case res.State.GameOver:
		p.Music(-1)
	case !res.State.Paused:
		p.Music(TrackFor(res.State.Stage))
	}
}

func cueFor(k core.EventKind) (Cue, bool) {
	switch k {
	case core.EventPickup:
		return CuePickup, true
	case core.EventNerf:
		return CueNerf, true
	case core.EventBossHit:
		return CueBossHit, true
	case core.EventLifeLost:
		return CueLifeLost, true
	case core.EventStageClear, core.EventBattleWon:
		return CueStageClear, true
	case core.EventWin:
		return CueWin, true
	case core.EventGameOver:
		return CueGameOver, true
	case core.EventBattleStart:
		return CueBattle, true
	default:
		return 0, false
	}
}

// Close stops the music and releases the speaker.
func (p *Player) Close() {
	if !p.Enabled() {
		return
	}
	p.Music(-1)
	speaker.Close()
	p.enabled = false
}
