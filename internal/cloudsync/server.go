package cloudsync

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/brick-arcade/internal/storage"
)

// Server hosts the shared document and persists it in a storage.Store.
// Document access is serialized so concurrent pushes cannot interleave.
type Server struct {
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	now      func() time.Time

	mu      sync.Mutex
	doc     Document
	clients map[*websocket.Conn]struct{}
}

// NewServer loads the persisted document from store.
func NewServer(store *storage.Store, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		store:    store,
		logger:   logger,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		now:      time.Now,
		doc:      Document{},
		clients:  make(map[*websocket.Conn]struct{}),
	}
	if _, err := store.GetJSON(storage.SystemNamespace, storage.KeyCloudDoc, &s.doc); err != nil {
		return nil, err
	}
	if s.doc == nil {
		s.doc = Document{}
	}
	return s, nil
}

// ServeHTTP upgrades the request and serves frames until the peer leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	count := len(s.clients)
	s.mu.Unlock()
	s.logger.Debug("sync client connected", "remote", r.RemoteAddr, "clients", count)

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		var in Frame
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("sync client read ended", "remote", r.RemoteAddr, "err", err)
			}
			return
		}
		if err := conn.WriteJSON(s.handle(in)); err != nil {
			s.logger.Debug("sync client write failed", "remote", r.RemoteAddr, "err", err)
			return
		}
	}
}

func (s *Server) handle(in Frame) Frame {
	if in.Namespace == "" {
		return Frame{Type: FrameError, Error: "missing namespace"}
	}
	ns := storage.Namespace(in.Namespace)

	switch in.Type {
	case FramePull:
		s.mu.Lock()
		sec, ok := s.doc[ns]
		s.mu.Unlock()
		if !ok {
			return Frame{Type: FrameSection, Namespace: ns}
		}
		return Frame{Type: FrameSection, Namespace: ns, Section: &sec}

	case FramePush:
		if in.Section == nil {
			return Frame{Type: FrameError, Error: "push without section"}
		}
		sec, err := s.replace(ns, in.Section.Entries)
		if err != nil {
			s.logger.Error("cannot persist document", "namespace", ns, "err", err)
			return Frame{Type: FrameError, Error: "cannot persist document"}
		}
		s.logger.Info("section replaced", "namespace", ns, "revision", sec.Revision, "keys", len(sec.Entries))
		return Frame{Type: FrameAck, Namespace: ns, Section: &sec}

	default:
		return Frame{Type: FrameError, Error: "unknown frame type " + in.Type}
	}
}

func (s *Server) replace(ns string, entries map[string]json.RawMessage) (Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec := Section{
		Revision:  uuid.NewString(),
		UpdatedAt: s.now().UTC(),
		Entries:   entries,
	}
	prev, had := s.doc[ns]
	s.doc[ns] = sec
	if err := s.store.PutJSON(storage.SystemNamespace, storage.KeyCloudDoc, s.doc); err != nil {
		if had {
			s.doc[ns] = prev
		} else {
			delete(s.doc, ns)
		}
		return Section{}, err
	}
	return sec, nil
}

// Clients returns the number of connected peers.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ListenAndServe serves the document on addr at /sync until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/sync", s)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("sync server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("stopping sync server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)

	// Hijacked websocket connections are not closed by Shutdown.
	s.mu.Lock()
	for c := range s.clients {
		c.Close()
	}
	s.mu.Unlock()
	return err
}
