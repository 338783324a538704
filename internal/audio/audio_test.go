package audio

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

// testPlayer records streamers instead of opening a speaker.
func testPlayer() (*Player, *[]beep.Streamer) {
	var played []beep.Streamer
	p := &Player{
		logger:  log.New(io.Discard),
		enabled: true,
		play:    func(s beep.Streamer) { played = append(played, s) },
		lock:    func() {},
		unlock:  func() {},
		track:   -1,
	}
	return p, &played
}

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestSquareWave(t *testing.T) {
	s := squareWave(441, 10*time.Millisecond, 0.5)
	buf := make([][2]float64, 1000)
	n, ok := s.Stream(buf)

	if n != sampleRate.N(10*time.Millisecond) || ok {
		t.Fatalf("Stream() = %d, %v, expected %d samples then end", n, ok, sampleRate.N(10*time.Millisecond))
	}
	if buf[0][0] != 0.5 || buf[0][1] != 0.5 {
		t.Errorf("first sample = %v, expected +0.5 on both channels", buf[0])
	}
	// 441 Hz at 44100 Hz is 100 samples per period.
	if buf[75][0] != -0.5 {
		t.Errorf("sample 75 = %v, expected the low half", buf[75][0])
	}
}

func TestRestIsSilent(t *testing.T) {
	s := squareWave(0, 5*time.Millisecond, 0.5)
	buf := make([][2]float64, 100)
	s.Stream(buf)
	for i, v := range buf {
		if v[0] != 0 || v[1] != 0 {
			t.Fatalf("rest sample %d = %v", i, v)
		}
	}
}

func TestPhraseLength(t *testing.T) {
	notes := []Note{{440, 20 * time.Millisecond}, {0, 10 * time.Millisecond}, {660, 30 * time.Millisecond}}
	want := 0
	for _, n := range notes {
		want += sampleRate.N(n.Dur)
	}
	if got := drain(phrase(notes, volume)); got != want {
		t.Errorf("phrase produced %d samples, expected %d", got, want)
	}
}

func TestLoopNeverEnds(t *testing.T) {
	s := loop([]Note{{440, time.Millisecond}}, musicLevel)
	buf := make([][2]float64, 10*sampleRate.N(time.Millisecond))
	n, ok := s.Stream(buf)
	if n != len(buf) || !ok {
		t.Errorf("loop Stream() = %d, %v, expected a full buffer", n, ok)
	}
}

func TestTrackFor(t *testing.T) {
	tests := []struct {
		stage int
		want  int
	}{
		{0, -1},
		{1, 0},
		{6, 5},
		{7, 0},
	}
	for _, tt := range tests {
		if got := TrackFor(tt.stage); got != tt.want {
			t.Errorf("TrackFor(%d) = %d, expected %d", tt.stage, got, tt.want)
		}
	}
}

func TestMutedPlayerIsSilent(t *testing.T) {
	p := New(true, log.New(io.Discard))
	if p.Enabled() {
		t.Fatal("muted player should be disabled")
	}
	p.Play(CueWin)
	p.Music(0)
	p.HandleStep(core.StepResult{State: core.GameState{Stage: 1}})
	p.Close()
	if p.Track() != -1 {
		t.Error("muted player should not track music")
	}
}

func TestMusicFollowsStage(t *testing.T) {
	p, played := testPlayer()

	p.HandleStep(core.StepResult{State: core.GameState{Stage: 1}})
	p.HandleStep(core.StepResult{State: core.GameState{Stage: 1}})
	if p.Track() != 0 || len(*played) != 1 {
		t.Fatalf("track = %d with %d streams, expected one loop for stage 1", p.Track(), len(*played))
	}
	first := (*played)[0].(*beep.Ctrl)

	p.HandleStep(core.StepResult{State: core.GameState{Stage: 2}})
	if p.Track() != 1 || len(*played) != 2 {
		t.Fatalf("stage change: track = %d, streams = %d", p.Track(), len(*played))
	}
	if first.Streamer != nil {
		t.Error("the previous loop should be stopped on stage change")
	}

	// Paused keeps the current loop.
	p.HandleStep(core.StepResult{State: core.GameState{Stage: 3, Paused: true}})
	if p.Track() != 1 {
		t.Errorf("paused step changed track to %d", p.Track())
	}

	p.HandleStep(core.StepResult{State: core.GameState{Stage: 2, GameOver: true}})
	if p.Track() != -1 {
		t.Errorf("game over should stop music, track = %d", p.Track())
	}
}

func TestEventCues(t *testing.T) {
	p, played := testPlayer()
	p.HandleStep(core.StepResult{
		State: core.GameState{Stage: 0},
		Events: []core.Event{
			{Kind: core.EventPickup},
			{Kind: core.EventBrickDestroyed},
			{Kind: core.EventStageClear},
		},
	})
	// Two cues; brick destruction is silent and stage 0 has no music.
	if len(*played) != 2 {
		t.Errorf("played %d streams, expected 2", len(*played))
	}

	for c := range cues {
		if len(cues[c]) == 0 {
			t.Errorf("cue %d has no notes", c)
		}
	}
}
