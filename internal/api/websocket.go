package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"gorestaurant/internal/logger"
	"gorestaurant/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventSubscribed   = "subscribed"
	EventOrderCreated = "order_created"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OrderEvent represents a message pushed to order feed subscribers
type OrderEvent struct {
	Type  string        `json:"type"`
	Order *models.Order `json:"order,omitempty"`
}

// OrderFeed fans created orders out to websocket subscribers
type OrderFeed struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	log         *logger.Logger
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

func NewOrderFeed(log *logger.Logger) *OrderFeed {
	return &OrderFeed{
		subscribers: make(map[*subscriber]struct{}),
		log:         log,
	}
}

// Subscribers returns the number of connected clients
func (f *OrderFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}

// Handle upgrades the request and registers the connection until it goes away
func (f *OrderFeed) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.log.Warn("ws_upgrade", requestID(c), "Failed to upgrade connection", slog.String("error", err.Error()))
		return
	}

	sub := &subscriber{
		conn: conn,
		send: make(chan []byte, 256),
	}

	f.mu.Lock()
	f.subscribers[sub] = struct{}{}
	f.mu.Unlock()

	// Registration is acknowledged so clients know broadcasts will reach them
	f.deliver(sub, OrderEvent{Type: EventSubscribed})

	go f.writePump(sub)
	go f.readPump(sub)
}

// Broadcast sends event to every subscriber, dropping it for those whose buffer is full
func (f *OrderFeed) Broadcast(event OrderEvent) {
	f.mu.Lock()
	subs := make([]*subscriber, 0, len(f.subscribers))
	for sub := range f.subscribers {
		subs = append(subs, sub)
	}
	f.mu.Unlock()

	for _, sub := range subs {
		f.deliver(sub, event)
	}
}

// Close disconnects all subscribers
func (f *OrderFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for sub := range f.subscribers {
		delete(f.subscribers, sub)
		close(sub.send)
	}
}

func (f *OrderFeed) deliver(sub *subscriber, event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		f.log.Error("ws_broadcast", "", "Failed to marshal event", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.subscribers[sub]; !ok {
		return
	}
	select {
	case sub.send <- data:
	default:
		f.log.Warn("ws_broadcast", "", "Subscriber buffer full, dropping event", slog.String("type", event.Type))
	}
}

func (f *OrderFeed) unregister(sub *subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.subscribers[sub]; ok {
		delete(f.subscribers, sub)
		close(sub.send)
	}
}

// readPump discards client messages and unregisters the subscriber once the connection drops
func (f *OrderFeed) readPump(sub *subscriber) {
	defer func() {
		f.unregister(sub)
		sub.conn.Close()
	}()

	sub.conn.SetReadLimit(512)
	sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		sub.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				f.log.Warn("ws_read", "", "WebSocket error", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (f *OrderFeed) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case message, ok := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
