package stream

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/dagimg/prdesk/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Options tunes the reconnect behavior of the stream client.
type Options struct {
	// BackoffBase is the first reconnect delay. Doubles per failure.
	BackoffBase time.Duration
	// BackoffMax caps the reconnect delay.
	BackoffMax time.Duration
}

// DefaultOptions returns the production reconnect settings.
func DefaultOptions() Options {
	return Options{
		BackoffBase: time.Second,
		BackoffMax:  30 * time.Second,
	}
}

// Client maintains the persistent notification push connection. The server
// addresses the stream by the session token passed as a query credential and
// pushes one JSON-encoded Notification per message; the client never sends.
//
// A dropped connection is retried with exponential backoff until Close is
// called or the token provider returns empty (signed out).
type Client struct {
	endpoint string
	token    func() string
	opts     Options
	dialer   *websocket.Dialer
	log      *logrus.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClient creates a stream client for the given ws(s) endpoint. token is
// read at every (re)connect so a refreshed session is picked up.
func NewClient(endpoint string, token func() string, opts Options, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = DefaultOptions().BackoffBase
	}
	if opts.BackoffMax <= 0 {
		opts.BackoffMax = DefaultOptions().BackoffMax
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		opts:     opts,
		dialer:   websocket.DefaultDialer,
		log:      log,
	}
}

// Start opens the connection and returns the channel delivering pushed
// notifications. The channel is closed when the client stops.
func (c *Client) Start(ctx context.Context) <-chan domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	out := make(chan domain.Notification, 16)
	go c.run(ctx, out)
	return out
}

// Close tears the connection down and waits for the run loop to exit.
// Messages arriving after Close are discarded.
func (c *Client) Close() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (c *Client) run(ctx context.Context, out chan<- domain.Notification) {
	defer close(out)
	defer close(c.done)

	delay := c.opts.BackoffBase
	for {
		if ctx.Err() != nil {
			return
		}
		token := c.token()
		if token == "" {
			// Signed out; nothing to stream.
			return
		}

		conn, _, err := c.dialer.DialContext(ctx, c.endpoint+"?token="+url.QueryEscape(token), nil)
		if err != nil {
			c.log.WithError(err).Warn("notification stream connect failed")
			if !sleep(ctx, delay) {
				return
			}
			delay = nextDelay(delay, c.opts.BackoffMax)
			continue
		}
		delay = c.opts.BackoffBase

		if err := c.readLoop(ctx, conn, out); err != nil {
			c.log.WithError(err).Warn("notification stream dropped")
		}
		conn.Close()
	}
}

// readLoop delivers messages until the connection breaks or ctx is done.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, out chan<- domain.Notification) error {
	// Unblock ReadMessage when the context is cancelled.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var n domain.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			c.log.WithError(err).Warn("discarding malformed notification")
			continue
		}

		select {
		case out <- n:
		case <-ctx.Done():
			return nil
		}
	}
}

func nextDelay(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		return max
	}
	return next
}

// sleep waits for d, returning false if ctx finished first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
