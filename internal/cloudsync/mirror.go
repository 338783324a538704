package cloudsync

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brick-arcade/internal/storage"
)

// Mirror copies the synced keys of a namespace between the local store and
// the shared document.
type Mirror struct {
	client *Client
	store  *storage.Store
	logger *log.Logger
	wg     sync.WaitGroup
}

// NewMirror binds a client to a local store.
func NewMirror(client *Client, store *storage.Store, logger *log.Logger) *Mirror {
	if logger == nil {
		logger = log.Default()
	}
	return &Mirror{client: client, store: store, logger: logger}
}

// Upload pushes the local synced keys of namespace.
func (m *Mirror) Upload(ctx context.Context, namespace string) (Section, error) {
	entries := make(map[string]json.RawMessage, len(SyncedKeys))
	for _, key := range SyncedKeys {
		data, found, err := m.store.Get(namespace, key)
		if err != nil {
			return Section{}, err
		}
		if !found || !json.Valid(data) {
			continue
		}
		entries[key] = json.RawMessage(data)
	}
	return m.client.Push(ctx, namespace, entries)
}

// Download pulls namespace's section and writes its keys locally.
// Keys missing from the remote section are left alone.
func (m *Mirror) Download(ctx context.Context, namespace string) (applied bool, err error) {
	sec, found, err := m.client.Pull(ctx, namespace)
	if err != nil || !found {
		return false, err
	}
	for _, key := range SyncedKeys {
		raw, ok := sec.Entries[key]
		if !ok || !json.Valid(raw) {
			continue
		}
		if err := m.store.Put(namespace, key, raw); err != nil {
			return false, err
		}
	}
	m.logger.Debug("downloaded section", "namespace", namespace, "revision", sec.Revision)
	return true, nil
}

// UploadAsync uploads in the background. Failures are logged and dropped.
func (m *Mirror) UploadAsync(namespace string) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
		defer cancel()
		sec, err := m.Upload(ctx, namespace)
		if err != nil {
			m.logger.Warn("cloud upload failed", "namespace", namespace, "err", err)
			return
		}
		m.logger.Debug("uploaded section", "namespace", namespace, "revision", sec.Revision)
	}()
}

// Wait blocks until background uploads finish.
func (m *Mirror) Wait() {
	m.wg.Wait()
}
