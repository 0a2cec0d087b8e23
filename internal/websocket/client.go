// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package websocket

import (
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/metrics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// inboundLimit fits a {"type":"ping"} frame with room to spare.
	inboundLimit = 512

	// sendBuffer holds pending notifications. Refreshes are demand-driven,
	// so a browser that falls this far behind is dropped by the hub.
	sendBuffer = 16
)

// clientIDCounter orders clients for broadcasts.
var clientIDCounter atomic.Uint64

// Client is one browser subscribed to feed notifications. The server pushes
// feed_refreshed messages; the browser may only send application pings.
type Client struct {
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient wraps an upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		conn: conn,
		send: make(chan Message, sendBuffer),
	}
}

// ID returns the client's identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// Start runs the push and listen loops. The listen loop unregisters the
// client when the browser goes away.
func (c *Client) Start() {
	go c.push()
	go c.listen()
}

// listen consumes inbound frames until the connection fails. Anything other
// than a ping is ignored.
func (c *Client) listen() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(inboundLimit)
	extend := func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
	if err := extend(""); err != nil {
		return
	}
	c.conn.SetPongHandler(extend)

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				metrics.WSErrors.WithLabelValues("read").Inc()
				logging.Debug().Err(err).Uint64("client_id", c.id).Msg("WebSocket client read failed")
			}
			return
		}
		if kind != websocket.TextMessage || !isPing(data) {
			continue
		}
		select {
		case c.send <- Message{Type: MessageTypePong}:
		default:
		}
	}
}

func isPing(data []byte) bool {
	var msg struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(data, &msg) == nil && msg.Type == MessageTypePing
}

// push writes queued messages and keepalive pings. A closed send channel
// means the hub dropped the client.
func (c *Client) push() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				closing := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
				_ = c.conn.WriteControl(websocket.CloseMessage, closing, time.Now().Add(writeWait))
				return
			}
			if err := c.writeMessage(msg); err != nil {
				metrics.WSErrors.WithLabelValues("write").Inc()
				logging.Debug().Err(err).Uint64("client_id", c.id).Str("type", msg.Type).Msg("WebSocket write failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (c *Client) writeMessage(msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}
