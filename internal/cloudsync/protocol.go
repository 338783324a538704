// Package cloudsync keeps one shared remote document with every account's
// game data, so rankings and saved games follow a player across machines.
//
// Clients talk to the server with JSON frames over a websocket. The
// document is split into one section per account namespace; pushing a
// section replaces it whole, so the last write wins.
package cloudsync

import (
	"encoding/json"
	"time"

	"github.com/vovakirdan/brick-arcade/internal/storage"
)

// Frame types.
const (
	FramePull    = "pull"
	FramePush    = "push"
	FrameSection = "section"
	FrameAck     = "ack"
	FrameError   = "error"
)

// Section is one namespace's slice of the shared document.
type Section struct {
	Revision  string                     `json:"revision"`
	UpdatedAt time.Time                  `json:"updated_at"`
	Entries   map[string]json.RawMessage `json:"entries"`
}

// Document is the whole shared document, keyed by namespace.
type Document map[string]Section

// Frame is one websocket message in either direction.
type Frame struct {
	Type      string   `json:"type"`
	Namespace string   `json:"namespace,omitempty"`
	Section   *Section `json:"section,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// SyncedKeys are the storage keys mirrored to the shared document.
var SyncedKeys = []string{storage.KeyRanking, storage.KeySavedGame, storage.KeyOptions}
