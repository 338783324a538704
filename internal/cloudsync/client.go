package cloudsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// ErrRemote is returned when the server answers with an error frame.
var ErrRemote = errors.New("cloudsync: remote error")

// DefaultTimeout bounds one request when the context has no deadline.
const DefaultTimeout = 5 * time.Second

// Client pushes and pulls document sections. Every call opens its own
// connection, so a Client is safe for concurrent use.
type Client struct {
	url     string
	dialer  *websocket.Dialer
	timeout time.Duration
	logger  *log.Logger
}

// NewClient creates a client for a ws:// or wss:// URL of a sync server.
func NewClient(url string) *Client {
	return &Client{
		url:     url,
		dialer:  &websocket.Dialer{HandshakeTimeout: DefaultTimeout},
		timeout: DefaultTimeout,
		logger:  log.Default(),
	}
}

// SetLogger replaces the logger used for connection teardown problems.
func (c *Client) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// URL returns the server address.
func (c *Client) URL() string {
	return c.url
}

// Pull returns the section stored for namespace. found is false when the
// server has none yet.
func (c *Client) Pull(ctx context.Context, namespace string) (sec Section, found bool, err error) {
	resp, err := c.roundTrip(ctx, Frame{Type: FramePull, Namespace: namespace}, FrameSection)
	if err != nil {
		return Section{}, false, err
	}
	if resp.Section == nil {
		return Section{}, false, nil
	}
	return *resp.Section, true, nil
}

// Push replaces namespace's section with entries and returns the stored
// section with its new revision.
func (c *Client) Push(ctx context.Context, namespace string, entries map[string]json.RawMessage) (Section, error) {
	resp, err := c.roundTrip(ctx, Frame{
		Type:      FramePush,
		Namespace: namespace,
		Section:   &Section{Entries: entries},
	}, FrameAck)
	if err != nil {
		return Section{}, err
	}
	if resp.Section == nil {
		return Section{}, fmt.Errorf("cloudsync: ack without section")
	}
	return *resp.Section, nil
}

func (c *Client) roundTrip(ctx context.Context, req Frame, want string) (Frame, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return Frame{}, fmt.Errorf("cloudsync: cannot connect to %s: %w", c.url, err)
	}
	defer conn.Close()

	deadline, _ := ctx.Deadline()
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return Frame{}, fmt.Errorf("cloudsync: set write deadline: %w", err)
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return Frame{}, fmt.Errorf("cloudsync: set read deadline: %w", err)
	}

	if err := conn.WriteJSON(req); err != nil {
		return Frame{}, fmt.Errorf("cloudsync: send %s: %w", req.Type, err)
	}

	var resp Frame
	if err := conn.ReadJSON(&resp); err != nil {
		return Frame{}, fmt.Errorf("cloudsync: read reply: %w", err)
	}

	// The reply is in; a failed close handshake does not undo it.
	if err := conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")); err != nil {
		c.logger.Debug("sync close failed", "url", c.url, "err", err)
	}

	switch resp.Type {
	case want:
		return resp, nil
	case FrameError:
		return Frame{}, fmt.Errorf("%w: %s", ErrRemote, resp.Error)
	default:
		return Frame{}, fmt.Errorf("cloudsync: unexpected %q frame, expected %q", resp.Type, want)
	}
}
