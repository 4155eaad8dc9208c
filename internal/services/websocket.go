package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/homespace-app/homespace-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a connected chat participant.
type Client struct {
	ID   uint
	Role string
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub
}

// Hub maintains the set of active clients and routes chat events to them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// WebSocketMessage is the envelope for all hub traffic.
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes client registration and cleanup.
func (hub *Hub) Run() {
	for {
		select {
		case client := <-hub.register:
			hub.mutex.Lock()
			hub.clients[client] = true
			hub.mutex.Unlock()
			log.Printf("WebSocket client connected: user %d (%s)", client.ID, client.Role)

		case client := <-hub.unregister:
			hub.mutex.Lock()
			if _, ok := hub.clients[client]; ok {
				delete(hub.clients, client)
				close(client.Send)
			}
			hub.mutex.Unlock()
			log.Printf("WebSocket client disconnected: user %d", client.ID)
		}
	}
}

// HandleWebSocket upgrades an authenticated request and starts the pumps.
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:   userID,
		Role: role,
		Conn: conn,
		Send: make(chan []byte, 256),
		Hub:  hub,
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection. Inbound traffic is limited to typing
// indicators; messages themselves go through the HTTP API so they are
// persisted before delivery.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg WebSocketMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("Error unmarshaling WebSocket message: %v", err)
			continue
		}

		switch msg.Type {
		case "typing":
			c.handleTyping(msg.Data)
		default:
			log.Printf("Unhandled WebSocket message type %q from user %d", msg.Type, c.ID)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

type typingEvent struct {
	ConversationID string `json:"conversationId"`
	RecipientID    uint   `json:"recipientId"`
}

func (c *Client) handleTyping(data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	var event typingEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Printf("Invalid typing event from user %d: %v", c.ID, err)
		return
	}

	payload, err := json.Marshal(WebSocketMessage{
		Type: "typing",
		Data: map[string]interface{}{
			"conversationId": event.ConversationID,
			"userId":         c.ID,
		},
	})
	if err != nil {
		return
	}
	c.Hub.BroadcastToUser(event.RecipientID, payload)
}

// SendChatMessage delivers a persisted message to the other participant.
func (hub *Hub) SendChatMessage(recipientID uint, message *models.Message) {
	payload, err := json.Marshal(WebSocketMessage{
		Type: "chat_message",
		Data: message,
	})
	if err != nil {
		log.Printf("Error marshaling chat message: %v", err)
		return
	}
	hub.BroadcastToUser(recipientID, payload)
}

// BroadcastToUser sends a message to all connections of one user.
func (hub *Hub) BroadcastToUser(userID uint, message []byte) {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()

	for client := range hub.clients {
		if client.ID != userID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			// Client's send channel is full, skip
			log.Printf("Warning: Could not send to user %d (channel full)", client.ID)
		}
	}
}

// BroadcastToAll sends a message to all connected clients
func (hub *Hub) BroadcastToAll(message []byte) {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()

	for client := range hub.clients {
		select {
		case client.Send <- message:
		default:
			log.Printf("Warning: Could not send to user %d (channel full)", client.ID)
		}
	}
}
