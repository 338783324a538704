package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// MaxRankingEntries is how many results a ranking keeps.
const MaxRankingEntries = 10

// RankEntry is one ranking row.
type RankEntry struct {
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// Ranking is an account's best results, best first.
type Ranking []RankEntry

// Insert returns the ranking with score added, sorted by score descending
// and capped at MaxRankingEntries. Ties keep the earlier result first.
// place is the 1-based position of the new entry, 0 if it did not qualify.
func (r Ranking) Insert(score int, at time.Time) (out Ranking, place int) {
	out = make(Ranking, 0, len(r)+1)
	out = append(out, r...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	pos := sort.Search(len(out), func(i int) bool { return out[i].Score < score })
	out = append(out, RankEntry{})
	copy(out[pos+1:], out[pos:])
	out[pos] = RankEntry{Score: score, Timestamp: at}

	if len(out) > MaxRankingEntries {
		out = out[:MaxRankingEntries]
	}
	if pos >= MaxRankingEntries {
		return out, 0
	}
	return out, pos + 1
}

// Best returns the top score, 0 for an empty ranking.
func (r Ranking) Best() int {
	if len(r) == 0 {
		return 0
	}
	return r[0].Score
}

// Ranking returns the ranking of a namespace. Missing or malformed data
// yields an empty ranking.
func (s *Store) Ranking(namespace string) (Ranking, error) {
	var r Ranking
	if _, err := s.GetJSON(namespace, KeyRanking, &r); err != nil {
		return nil, err
	}
	return r, nil
}

// RecordScore adds a finished run to a namespace's ranking and returns the
// 1-based place it took, 0 if it did not qualify.
func (s *Store) RecordScore(namespace string, score int) (int, error) {
	r, err := s.Ranking(namespace)
	if err != nil {
		return 0, err
	}
	r, place := r.Insert(score, s.now().UTC())
	if err := s.PutJSON(namespace, KeyRanking, r); err != nil {
		return 0, err
	}
	return place, nil
}

// AccountRanking pairs a namespace with its ranking.
type AccountRanking struct {
	Namespace string
	Ranking   Ranking
}

// AllRankings returns every namespace that has a ranking, best score first.
func (s *Store) AllRankings() ([]AccountRanking, error) {
	names, err := s.NamespacesWith(KeyRanking)
	if err != nil {
		return nil, err
	}
	out := make([]AccountRanking, 0, len(names))
	for _, ns := range names {
		r, err := s.Ranking(ns)
		if err != nil {
			return nil, err
		}
		if len(r) > 0 {
			out = append(out, AccountRanking{Namespace: ns, Ranking: r})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ranking.Best() > out[j].Ranking.Best() })
	return out, nil
}

// SaveGame stores a mid-game snapshot for a namespace.
func (s *Store) SaveGame(namespace string, snapshot any) error {
	return s.PutJSON(namespace, KeySavedGame, snapshot)
}

// LoadGame decodes the namespace's snapshot into dst.
// found is false when there is none or it is malformed.
func (s *Store) LoadGame(namespace string, dst any) (bool, error) {
	return s.GetJSON(namespace, KeySavedGame, dst)
}

// HasSavedGame reports whether a namespace has a snapshot.
func (s *Store) HasSavedGame(namespace string) (bool, error) {
	var raw json.RawMessage
	return s.GetJSON(namespace, KeySavedGame, &raw)
}

// ClearGame removes a namespace's snapshot, e.g. after resuming it.
func (s *Store) ClearGame(namespace string) error {
	return s.Delete(namespace, KeySavedGame)
}

// Options are the per-account preferences set from the options panel.
type Options struct {
	Difficulty string `json:"difficulty"`
	Mute       bool   `json:"mute"`
	AngleClamp bool   `json:"angle_clamp"`
}

// DefaultOptions returns the options used when none were saved.
func DefaultOptions() Options {
	return Options{Difficulty: "normal", AngleClamp: true}
}

// Options returns a namespace's options, or the defaults.
func (s *Store) Options(namespace string) (Options, error) {
	o := DefaultOptions()
	if _, err := s.GetJSON(namespace, KeyOptions, &o); err != nil {
		return DefaultOptions(), err
	}
	return o, nil
}

// PutOptions saves a namespace's options.
func (s *Store) PutOptions(namespace string, o Options) error {
	if o.Difficulty == "" {
		return fmt.Errorf("storage: options without difficulty")
	}
	return s.PutJSON(namespace, KeyOptions, o)
}
