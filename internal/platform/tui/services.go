package tui

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brick-arcade/internal/account"
	"github.com/vovakirdan/brick-arcade/internal/audio"
	"github.com/vovakirdan/brick-arcade/internal/cloudsync"
	"github.com/vovakirdan/brick-arcade/internal/games/brickboss"
	"github.com/vovakirdan/brick-arcade/internal/storage"
)

// errNoStorage is returned by saves when the database could not be opened.
var errNoStorage = errors.New("tui: storage unavailable")

// Services are the collaborators a session talks to. Any of them may be
// nil; the session then skips the feature.
type Services struct {
	Store    *storage.Store
	Accounts *account.Manager
	Audio    *audio.Player
	Mirror   *cloudsync.Mirror
	Logger   *log.Logger

	// Difficulty is the --difficulty flag; it beats account options.
	Difficulty string
}

func (s Services) log() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// options returns the account's options, or the defaults.
func (s Services) options(acc account.Account) storage.Options {
	if s.Store == nil {
		return storage.DefaultOptions()
	}
	o, err := s.Store.Options(acc.Namespace)
	if err != nil {
		s.log().Warn("cannot read options", "account", acc.Namespace, "err", err)
		return storage.DefaultOptions()
	}
	return o
}

// difficulty picks the flag over the account's choice.
func (s Services) difficulty(acc account.Account) string {
	if s.Difficulty != "" {
		return s.Difficulty
	}
	return s.options(acc).Difficulty
}

// forAccount drops audio for accounts that muted it.
func (s Services) forAccount(acc account.Account) Services {
	if s.Audio.Enabled() && s.options(acc).Mute {
		s.Audio.Music(-1)
		s.Audio = nil
	}
	return s
}

// upload mirrors an account's data to the shared document in the background.
func (s Services) upload(acc account.Account) {
	if s.Mirror != nil {
		s.Mirror.UploadAsync(acc.Namespace)
	}
}

// storeRecorder persists Brick Boss results for one account.
type storeRecorder struct {
	svc     Services
	account account.Account
}

func (r *storeRecorder) RecordScore(score int) {
	if r.svc.Store == nil {
		return
	}
	place, err := r.svc.Store.RecordScore(r.account.Namespace, score)
	if err != nil {
		r.svc.log().Warn("cannot record score", "account", r.account.Namespace, "score", score, "err", err)
		return
	}
	r.svc.log().Info("score recorded", "account", r.account.Namespace, "score", score, "place", place)
	r.svc.upload(r.account)
}

func (r *storeRecorder) SaveGame(s brickboss.SavedGame) error {
	if r.svc.Store == nil {
		return errNoStorage
	}
	if err := r.svc.Store.SaveGame(r.account.Namespace, s); err != nil {
		r.svc.log().Warn("cannot save game", "account", r.account.Namespace, "err", err)
		return err
	}
	r.svc.log().Info("game saved", "account", r.account.Namespace, "stage", s.Stage)
	r.svc.upload(r.account)
	return nil
}

// loadSaved returns the account's Brick Boss snapshot, if any.
func (s Services) loadSaved(acc account.Account) (brickboss.SavedGame, bool) {
	var saved brickboss.SavedGame
	if s.Store == nil {
		return saved, false
	}
	found, err := s.Store.LoadGame(acc.Namespace, &saved)
	if err != nil {
		s.log().Warn("cannot load saved game", "account", acc.Namespace, "err", err)
		return saved, false
	}
	return saved, found
}
