package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/brick-arcade/internal/account"
	"github.com/vovakirdan/brick-arcade/internal/audio"
	"github.com/vovakirdan/brick-arcade/internal/cloudsync"
	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/logging"
	"github.com/vovakirdan/brick-arcade/internal/platform/tui"
	"github.com/vovakirdan/brick-arcade/internal/storage"
)

// envOptions select what a command needs.
type envOptions struct {
	Prefix       string
	Audio        bool
	RequireStore bool
	// LogTo receives logs when --log-file is unset. TUI commands leave it
	// nil so nothing is written over the alt screen.
	LogTo io.Writer
}

// env holds the services of one command run.
type env struct {
	svc     tui.Services
	logger  *log.Logger
	closers []func()
}

// newEnv validates the global flags and opens the services.
func newEnv(o envOptions) (*env, error) {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return nil, fmt.Errorf("unknown difficulty %q (use easy, normal or hard)", flagDifficulty)
	}
	switch core.CanvasPreset(flagCanvas) {
	case core.CanvasDesktop, core.CanvasMobile, core.CanvasLandscape:
	default:
		return nil, fmt.Errorf("unknown canvas %q (use desktop, mobile or landscape)", flagCanvas)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:  flagLogLevel,
		File:   flagLogFile,
		Prefix: o.Prefix,
	}, o.LogTo)
	if err != nil {
		return nil, err
	}

	e := &env{logger: logger}
	e.closers = append(e.closers, func() { logCloser.Close() })
	e.svc.Logger = logger
	e.svc.Difficulty = flagDifficulty

	store, err := storage.Open(flagDBPath)
	if err != nil {
		if o.RequireStore {
			e.Close()
			return nil, err
		}
		// Continue without storage - games still work
		logger.Warn("could not open database", "path", flagDBPath, "err", err)
	} else {
		store.SetLogger(logging.With(logger, "storage"))
		e.svc.Store = store
		e.svc.Accounts = account.NewManager(store)
		e.closers = append(e.closers, func() { store.Close() })
	}

	if flagSyncURL != "" && e.svc.Store != nil {
		syncLogger := logging.With(logger, "sync")
		client := cloudsync.NewClient(flagSyncURL)
		client.SetLogger(syncLogger)
		mirror := cloudsync.NewMirror(client, e.svc.Store, syncLogger)
		e.svc.Mirror = mirror
		// Uploads still in flight finish before the store closes.
		e.closers = append(e.closers, mirror.Wait)
	}

	if o.Audio {
		player := audio.New(flagMute, logging.With(logger, "audio"))
		e.svc.Audio = player
		e.closers = append(e.closers, player.Close)
	}

	return e, nil
}

// Close releases the services in reverse order of opening.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

// runtimeConfig builds the game config from the terminal and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.CanvasW, cfg.CanvasH = core.CanvasSize(core.CanvasPreset(flagCanvas))
	return cfg
}

// prompter reads answers from the terminal, hiding secrets when stdin is a
// terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newPrompter() *prompter {
	return &prompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
		fd:  int(os.Stdin.Fd()),
	}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", fmt.Errorf("reading %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *prompter) secret(label string) (string, error) {
	if !term.IsTerminal(p.fd) {
		return p.line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

// loginAs logs name in with a password read from the terminal. An empty
// name plays as guest; a failed login warns and plays as guest.
func loginAs(e *env, name string) account.Account {
	if name == "" {
		return account.Guest
	}
	if e.svc.Accounts == nil {
		fmt.Fprintln(os.Stderr, "Warning: accounts need a database; playing as guest.")
		return account.Guest
	}
	pw, err := newPrompter().secret("Password for " + name + ": ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; playing as guest.\n", err)
		return account.Guest
	}
	acc, err := e.svc.Accounts.Login(name, pw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: login failed: %v; playing as guest.\n", err)
		return account.Guest
	}
	e.logger.Info("logged in", "account", acc.Namespace)
	return acc
}
