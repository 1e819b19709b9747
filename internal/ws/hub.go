package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// Hub fans stock events out to connected websocket clients.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// StockEvent is the payload broadcast after every committed stock change.
type StockEvent struct {
	Type      string    `json:"type"`
	Action    string    `json:"action"`
	SweetID   uint      `json:"sweet_id"`
	SweetName string    `json:"sweet_name"`
	Quantity  int       `json:"quantity"`
	Username  string    `json:"username"`
	At        time.Time `json:"at"`
}

// BroadcastStockEvent is safe to call on a nil hub so services can run
// without the websocket layer (tests, CLI tools).
func (h *Hub) BroadcastStockEvent(action string, sweetID uint, sweetName string, quantity int, username string) {
	if h == nil {
		return
	}
	event := StockEvent{
		Type:      "stock_update",
		Action:    action,
		SweetID:   sweetID,
		SweetName: sweetName,
		Quantity:  quantity,
		Username:  username,
		At:        time.Now(),
	}
	msg, err := json.Marshal(event)
	if err != nil {
		return
	}
	go func() {
		h.Broadcast <- msg
	}()
}
