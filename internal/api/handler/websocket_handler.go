package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"valet_parking/internal/api/middleware"
	"valet_parking/internal/api/response"
	"valet_parking/internal/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const feedWriteTimeout = 10 * time.Second

type feedClient struct {
	conn          *websocket.Conn
	parkingSpotID int
}

type lotMessage struct {
	parkingSpotID int
	payload       []byte
}

// LotFeed pushes parked-car events to the drivers connected for that lot.
// Only the Run loop writes to connections.
type LotFeed struct {
	clients    map[*feedClient]struct{}
	register   chan *feedClient
	unregister chan *feedClient
	broadcast  chan lotMessage
	mutex      sync.RWMutex
}

func NewLotFeed() *LotFeed {
	return &LotFeed{
		clients:    make(map[*feedClient]struct{}),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		broadcast:  make(chan lotMessage, 64),
	}
}

func (f *LotFeed) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			f.mutex.Lock()
			for client := range f.clients {
				client.conn.Close()
				delete(f.clients, client)
			}
			f.mutex.Unlock()
			return

		case client := <-f.register:
			f.mutex.Lock()
			f.clients[client] = struct{}{}
			total := len(f.clients)
			f.mutex.Unlock()
			log.Printf("LotFeed: driver connected to lot %d. Total: %d", client.parkingSpotID, total)

		case client := <-f.unregister:
			f.mutex.Lock()
			if _, ok := f.clients[client]; ok {
				delete(f.clients, client)
				client.conn.Close()
			}
			total := len(f.clients)
			f.mutex.Unlock()
			log.Printf("LotFeed: driver disconnected. Total: %d", total)

		case msg := <-f.broadcast:
			f.mutex.Lock()
			for client := range f.clients {
				if client.parkingSpotID != msg.parkingSpotID {
					continue
				}
				client.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
				if err := client.conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					log.Printf("LotFeed: write failed: %v", err)
					client.conn.Close()
					delete(f.clients, client)
				}
			}
			f.mutex.Unlock()
		}
	}
}

// Publish queues ev for the drivers of its lot and drops it when the queue is full.
func (f *LotFeed) Publish(_ context.Context, ev domain.ParkedCarEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	select {
	case f.broadcast <- lotMessage{parkingSpotID: ev.ParkingSpotID, payload: payload}:
	default:
		log.Println("LotFeed: broadcast queue is full, dropping event")
	}
	return nil
}

func (f *LotFeed) Clients() int {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return len(f.clients)
}

type WebSocketHandler struct {
	feed *LotFeed
}

func NewWebSocketHandler(feed *LotFeed) *WebSocketHandler {
	return &WebSocketHandler{feed: feed}
}

// GET /api/v1/driver/ws
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	driver := middleware.StaffRecord(c)
	if driver == nil {
		response.Fail(c, http.StatusForbidden, "Driver record required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("LotFeed: failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &feedClient{conn: conn, parkingSpotID: driver.ParkingSpotID}
	h.feed.register <- client

	go func() {
		defer func() {
			h.feed.unregister <- client
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("LotFeed: read error: %v", err)
				}
				return
			}
		}
	}()
}
