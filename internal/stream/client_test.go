package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dagimg/prdesk/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// testStreamServer upgrades each connection and hands it to serve.
func testStreamServer(t *testing.T, serve func(conn *websocket.Conn, dial int)) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		serve(conn, int(dials.Add(1)))
	}))
	t.Cleanup(srv.Close)
	return srv, &dials
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications/"
}

func testOptions() Options {
	return Options{BackoffBase: 10 * time.Millisecond, BackoffMax: 40 * time.Millisecond}
}

func push(t *testing.T, conn *websocket.Conn, n domain.Notification) {
	t.Helper()
	data, err := json.Marshal(n)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func collect(t *testing.T, ch <-chan domain.Notification, n int) []domain.Notification {
	t.Helper()
	var got []domain.Notification
	timeout := time.After(3 * time.Second)
	for len(got) < n {
		select {
		case msg, ok := <-ch:
			if !ok {
				t.Fatalf("stream closed after %d of %d messages", len(got), n)
			}
			got = append(got, msg)
		case <-timeout:
			t.Fatalf("timed out after %d of %d messages", len(got), n)
		}
	}
	return got
}

func TestClient_DeliversPushedNotifications(t *testing.T) {
	srv, _ := testStreamServer(t, func(conn *websocket.Conn, _ int) {
		push(t, conn, domain.Notification{ID: 3, Message: "PR #9 approved", PurchaseRequestID: 9})
		push(t, conn, domain.Notification{ID: 4, Message: "PR #10 submitted", PurchaseRequestID: 10})
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	client := NewClient(wsURL(srv), func() string { return "tok" }, testOptions(), nil)
	ch := client.Start(context.Background())
	defer client.Close()

	got := collect(t, ch, 2)
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, 4, got[1].ID)
}

func TestClient_ReconnectsAfterDrop(t *testing.T) {
	srv, dials := testStreamServer(t, func(conn *websocket.Conn, dial int) {
		if dial == 1 {
			// Simulate a dropped connection before any message arrives.
			conn.Close()
			return
		}
		push(t, conn, domain.Notification{ID: 7, Message: "after reconnect"})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	client := NewClient(wsURL(srv), func() string { return "tok" }, testOptions(), nil)
	ch := client.Start(context.Background())
	defer client.Close()

	got := collect(t, ch, 1)
	assert.Equal(t, 7, got[0].ID)
	assert.GreaterOrEqual(t, dials.Load(), int32(2))
}

func TestClient_CloseStopsDelivery(t *testing.T) {
	srv, _ := testStreamServer(t, func(conn *websocket.Conn, _ int) {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	client := NewClient(wsURL(srv), func() string { return "tok" }, testOptions(), nil)
	ch := client.Start(context.Background())
	client.Close()

	_, open := <-ch
	assert.False(t, open, "channel must be closed after Close")
}

func TestClient_StopsWhenSignedOut(t *testing.T) {
	srv, dials := testStreamServer(t, func(conn *websocket.Conn, _ int) {
		conn.Close()
	})

	client := NewClient(wsURL(srv), func() string { return "" }, testOptions(), nil)
	ch := client.Start(context.Background())

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, int32(0), dials.Load())
	client.Close()
}

func TestClient_MalformedMessageSkipped(t *testing.T) {
	srv, _ := testStreamServer(t, func(conn *websocket.Conn, _ int) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
		push(t, conn, domain.Notification{ID: 12, Message: "valid"})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	client := NewClient(wsURL(srv), func() string { return "tok" }, testOptions(), nil)
	ch := client.Start(context.Background())
	defer client.Close()

	got := collect(t, ch, 1)
	assert.Equal(t, 12, got[0].ID)
}
