package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"lumeaBack/internal/discovery"
)

const (
	wsReadLimit     = 4 * 1024
	wsReadDeadline  = 120 * time.Second
	wsWriteDeadline = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type searchRequest struct {
	Action   string `json:"action,omitempty"`
	Location string `json:"location"`
	Sort     string `json:"sort,omitempty"`
}

type searchError struct {
	Error string `json:"error"`
}

// searchConn wraps one live-search connection. Both the socket writes and the
// engine session are touched by the read loop and by debounced search
// goroutines, so each gets its own mutex. The engine session is single-caller
// by contract; sessionMu is what upholds that here.
type searchConn struct {
	conn      *websocket.Conn
	mu        sync.Mutex
	sessionMu sync.Mutex
}

func (c *searchConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
	return c.conn.WriteJSON(v)
}

// DiscoverWebSocketHandler streams search results as the client types. Each
// keystroke sends a new location; searches are debounced so only the final
// one in a burst reaches the store.
func (app *application) DiscoverWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Println("discover WS upgrade error:", err)
		return
	}

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	})

	go app.handleSearchMessages(&searchConn{conn: conn})
}

func (app *application) handleSearchMessages(c *searchConn) {
	session := app.discoveryService.NewSession()
	debouncer := discovery.NewDebouncer(app.debounceWindow)
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		debouncer.Stop()
		_ = c.conn.Close()
	}()

	for {
		var req searchRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(wsReadDeadline))

		if req.Action == "more" {
			c.sessionMu.Lock()
			resp, err := session.LoadMore(ctx)
			c.sessionMu.Unlock()
			if err != nil {
				_ = c.writeJSON(searchError{Error: err.Error()})
				continue
			}
			if err := c.writeJSON(resp); err != nil {
				return
			}
			continue
		}

		location := req.Location
		sort := discovery.ParseSortKey(req.Sort)
		debouncer.Trigger(ctx, func(runCtx context.Context) {
			c.sessionMu.Lock()
			resp, err := session.Search(runCtx, location, sort)
			c.sessionMu.Unlock()
			if err != nil {
				if runCtx.Err() == nil {
					_ = c.writeJSON(searchError{Error: err.Error()})
				}
				return
			}
			_ = c.writeJSON(resp)
		})
	}
}
