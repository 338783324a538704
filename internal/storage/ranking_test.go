package storage

import (
	"testing"
	"time"
)

func TestRankingInsert(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var r Ranking
	for i, s := range []int{100, 300, 200} {
		var place int
		r, place = r.Insert(s, base.Add(time.Duration(i)*time.Minute))
		if place == 0 {
			t.Fatalf("score %d did not qualify in a short ranking", s)
		}
	}

	want := []int{300, 200, 100}
	for i, e := range r {
		if e.Score != want[i] {
			t.Errorf("r[%d] = %d, expected %d", i, e.Score, want[i])
		}
	}
	if r.Best() != 300 {
		t.Errorf("Best() = %d, expected 300", r.Best())
	}
}

func TestRankingTiesKeepEarlierFirst(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	r, _ := Ranking(nil).Insert(500, first)
	r, place := r.Insert(500, second)

	if place != 2 {
		t.Errorf("tied score took place %d, expected 2", place)
	}
	if !r[0].Timestamp.Equal(first) || !r[1].Timestamp.Equal(second) {
		t.Errorf("tie order = %v, %v", r[0].Timestamp, r[1].Timestamp)
	}
}

func TestRankingCap(t *testing.T) {
	var r Ranking
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range MaxRankingEntries {
		r, _ = r.Insert((i+1)*10, at)
	}

	tests := []struct {
		name  string
		score int
		place int
	}{
		{"new best", 1000, 1},
		{"middle", 55, 6},
		{"ties the last", 10, 0},
		{"below all", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, place := r.Insert(tt.score, at)
			if place != tt.place {
				t.Errorf("place = %d, expected %d", place, tt.place)
			}
			if len(out) != MaxRankingEntries {
				t.Errorf("len = %d, expected %d", len(out), MaxRankingEntries)
			}
			if tt.place > 0 && out[tt.place-1].Score != tt.score {
				t.Errorf("out[%d] = %d, expected %d", tt.place-1, out[tt.place-1].Score, tt.score)
			}
		})
	}

	if len(r) != MaxRankingEntries || r.Best() != 100 {
		t.Error("Insert must not modify the receiver")
	}
}

func TestRankingEmptyBest(t *testing.T) {
	if (Ranking{}).Best() != 0 {
		t.Error("empty ranking should report 0")
	}
}

func TestRecordScoreAndAllRankings(t *testing.T) {
	store := openTest(t)
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return at }

	for _, rec := range []struct {
		ns    string
		score int
	}{
		{"alice", 120},
		{"alice", 450},
		{"bob", 900},
		{GuestNamespace, 30},
	} {
		if _, err := store.RecordScore(rec.ns, rec.score); err != nil {
			t.Fatalf("RecordScore(%s, %d) failed: %v", rec.ns, rec.score, err)
		}
	}

	r, err := store.Ranking("alice")
	if err != nil {
		t.Fatalf("Ranking() failed: %v", err)
	}
	if len(r) != 2 || r[0].Score != 450 || r[1].Score != 120 {
		t.Errorf("alice ranking = %+v", r)
	}
	if !r[0].Timestamp.Equal(at) {
		t.Errorf("timestamp = %v, expected %v", r[0].Timestamp, at)
	}

	all, err := store.AllRankings()
	if err != nil {
		t.Fatalf("AllRankings() failed: %v", err)
	}
	order := []string{"bob", "alice", GuestNamespace}
	if len(all) != len(order) {
		t.Fatalf("AllRankings() returned %d accounts, expected %d", len(all), len(order))
	}
	for i, ns := range order {
		if all[i].Namespace != ns {
			t.Errorf("all[%d] = %s, expected %s", i, all[i].Namespace, ns)
		}
	}
}

func TestRecordScorePlace(t *testing.T) {
	store := openTest(t)

	place, err := store.RecordScore("alice", 10)
	if err != nil || place != 1 {
		t.Fatalf("first score place = %d, %v", place, err)
	}
	place, _ = store.RecordScore("alice", 20)
	if place != 1 {
		t.Errorf("higher score place = %d, expected 1", place)
	}
	place, _ = store.RecordScore("alice", 5)
	if place != 3 {
		t.Errorf("lowest score place = %d, expected 3", place)
	}
}

type savedRun struct {
	Stage int   `json:"stage"`
	Score int   `json:"score"`
	Cells []int `json:"cells"`
}

func TestSavedGameLifecycle(t *testing.T) {
	store := openTest(t)

	has, err := store.HasSavedGame("alice")
	if err != nil || has {
		t.Fatalf("HasSavedGame() on fresh store = %v, %v", has, err)
	}

	in := savedRun{Stage: 3, Score: 1200, Cells: []int{1, 0, 2}}
	if err := store.SaveGame("alice", in); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	if has, _ := store.HasSavedGame("alice"); !has {
		t.Error("HasSavedGame() should be true after SaveGame")
	}
	if has, _ := store.HasSavedGame("bob"); has {
		t.Error("saved games must be per namespace")
	}

	var out savedRun
	found, err := store.LoadGame("alice", &out)
	if err != nil || !found {
		t.Fatalf("LoadGame() = %v, %v", found, err)
	}
	if out.Stage != in.Stage || out.Score != in.Score || len(out.Cells) != len(in.Cells) {
		t.Errorf("LoadGame() = %+v, expected %+v", out, in)
	}

	if err := store.ClearGame("alice"); err != nil {
		t.Fatalf("ClearGame() failed: %v", err)
	}
	if has, _ := store.HasSavedGame("alice"); has {
		t.Error("HasSavedGame() should be false after ClearGame")
	}
}

func TestSavedGameMalformed(t *testing.T) {
	store := openTest(t)
	store.Put("alice", KeySavedGame, []byte("{\"stage\":"))

	if has, err := store.HasSavedGame("alice"); err != nil || has {
		t.Errorf("malformed snapshot: HasSavedGame() = %v, %v", has, err)
	}
}

func TestOptions(t *testing.T) {
	store := openTest(t)

	o, err := store.Options("alice")
	if err != nil || o != DefaultOptions() {
		t.Fatalf("Options() on fresh store = %+v, %v", o, err)
	}

	o.Difficulty = "hard"
	o.Mute = true
	if err := store.PutOptions("alice", o); err != nil {
		t.Fatalf("PutOptions() failed: %v", err)
	}

	got, _ := store.Options("alice")
	if got != o {
		t.Errorf("Options() = %+v, expected %+v", got, o)
	}

	if err := store.PutOptions("alice", Options{}); err == nil {
		t.Error("PutOptions() should reject options without difficulty")
	}
}

func TestOptionsMergeDefaults(t *testing.T) {
	store := openTest(t)
	store.Put("alice", KeyOptions, []byte(`{"mute":true}`))

	o, err := store.Options("alice")
	if err != nil {
		t.Fatalf("Options() failed: %v", err)
	}
	if !o.Mute || o.Difficulty != "normal" || !o.AngleClamp {
		t.Errorf("partial options should keep defaults, got %+v", o)
	}
}
