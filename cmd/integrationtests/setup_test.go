package integrationtests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auction-room/internal/dispatcher"
	"auction-room/internal/repository"
	"auction-room/internal/server"
	"auction-room/internal/session"
	"auction-room/services/room/handler"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// TestRoom is a running server backed by a fake clock
type TestRoom struct {
	Server     *httptest.Server
	Session    *session.Session
	Clock      *clockwork.FakeClock
	Dispatcher *dispatcher.Dispatcher
	WS         *handler.WSHandler
}

// Frame is one decoded outbound event
type Frame struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

// SetupTestRoom starts the full HTTP and websocket stack with an in-memory repository.
func SetupTestRoom(t *testing.T) *TestRoom {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	d := dispatcher.New(64, nil)
	repo := repository.NewMemoryRepo()
	room := session.New(repo, repo, d, session.Options{
		BidDuration:       60 * time.Second,
		TickInterval:      time.Second,
		HistoryLimit:      50,
		MaxUsernameLength: 32,
		Clock:             clock,
	})

	ws := handler.NewWSHandler(room, d, handler.ConnectionConfig{
		WriteTimeout:   time.Second,
		ReadTimeout:    10 * time.Second,
		PingInterval:   5 * time.Second,
		MaxMessageSize: 4096,
	})
	router := server.SetupRouter(handler.NewRoomHandler(room), ws)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &TestRoom{Server: srv, Session: room, Clock: clock, Dispatcher: d, WS: ws}
}

// Client is a websocket participant
type Client struct {
	t    *testing.T
	conn *websocket.Conn
}

// Connect opens a websocket connection to the room
func (r *TestRoom) Connect(t *testing.T) *Client {
	t.Helper()
	url := "ws" + strings.TrimPrefix(r.Server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &Client{t: t, conn: conn}
}

// Join connects and sets a username, consuming frames up to the roster snapshot
func (r *TestRoom) Join(t *testing.T, username string) *Client {
	t.Helper()
	c := r.Connect(t)
	c.Send("set_username", username)
	c.Expect("users_list")
	return c
}

// Send writes one inbound event
func (c *Client) Send(event string, data any) {
	c.t.Helper()
	msg := map[string]any{"event": event}
	if data != nil {
		msg["data"] = data
	}
	require.NoError(c.t, c.conn.WriteJSON(msg))
}

// Expect reads frames until one named event arrives
func (c *Client) Expect(event string) Frame {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, raw, err := c.conn.ReadMessage()
		require.NoError(c.t, err, "waiting for %s", event)
		var f Frame
		require.NoError(c.t, json.Unmarshal(raw, &f))
		if f.Event == event {
			return f
		}
	}
}

// ExpectClosed reads until the server closes the connection, failing on any
// frame other than the named events
func (c *Client) ExpectClosed(allowed ...string) {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			require.True(c.t, websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived),
				"expected a close frame, got %v", err)
			return
		}
		var f Frame
		require.NoError(c.t, json.Unmarshal(raw, &f))
		require.Contains(c.t, allowed, f.Event)
	}
}

// Close closes the connection from the client side
func (c *Client) Close() {
	require.NoError(c.t, c.conn.Close())
}

// GetJSON executes a GET request against the running server and parses the envelope
func (r *TestRoom) GetJSON(t *testing.T, path string) (map[string]any, int) {
	t.Helper()
	resp, err := http.Get(r.Server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body, resp.StatusCode
}
