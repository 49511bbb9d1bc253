package live

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// client owns one connection. Only writePump writes to the socket.
type client struct {
	conn    *websocket.Conn
	send    chan []byte
	control chan []byte
	done    chan struct{}
	log     *zap.Logger
}

func newClient(conn *websocket.Conn, log *zap.Logger) *client {
	return &client{
		conn:    conn,
		send:    make(chan []byte, 1),
		control: make(chan []byte, 8),
		done:    make(chan struct{}),
		log:     log,
	}
}

func (c *client) encode(msg *ServerMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("encode live event", zap.Error(err))
		return nil
	}
	return data
}

// offer queues a store event, replacing any snapshot still waiting to be
// written. Snapshots are full state, so only the newest one matters. It must
// only be called from the subscription listener.
func (c *client) offer(msg *ServerMessage) {
	data := c.encode(msg)
	if data == nil {
		return
	}
	for {
		select {
		case c.send <- data:
			return
		default:
		}
		select {
		case <-c.send:
		default:
		}
	}
}

// reply queues a control message; it is dropped if the client is not reading.
func (c *client) reply(msg *ServerMessage) {
	data := c.encode(msg)
	if data == nil {
		return
	}
	select {
	case c.control <- data:
	default:
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.send:
			if err := c.write(data); err != nil {
				return
			}
		case data := <-c.control:
			if err := c.write(data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *client) write(data []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// readPump blocks until the peer goes away. Client "ping" messages are
// answered with a "pong" event.
func (c *client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Warn("live connection error", zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(NewErrorEvent("INVALID_JSON", "Failed to parse message"))
			continue
		}
		switch msg.Type {
		case "ping":
			c.reply(NewPongEvent())
		default:
			c.reply(NewErrorEvent("UNKNOWN_TYPE", "Unknown message type: "+msg.Type))
		}
	}
}
