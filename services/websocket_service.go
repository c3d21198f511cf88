package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"

	"taskhive/taskhive/broker"
	"taskhive/taskhive/config"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client represents a connected WebSocket client
type Client struct {
	ID     string
	UserID string
	hub    *WebSocketService
	conn   *websocket.Conn
	send   chan []byte
}

// WebSocketServiceInterface defines the operations provided by the WebSocket service
type WebSocketServiceInterface interface {
	Start(cfg config.Config)
	Stop()
	RegisterClient(client *Client)
	Dispatch(msg broker.StandardMessage)
}

// WebSocketService fans task events out to connected clients. Events for
// an unassigned task go to every client; events for an assigned task only
// to its owner and assignee.
type WebSocketService struct {
	clients      map[string]*Client
	clientsMutex sync.RWMutex

	register   chan *Client
	unregister chan *Client

	consumer *broker.Consumer
	stopChan chan struct{}
}

func NewWebSocketService() *WebSocketService {
	return &WebSocketService{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopChan:   make(chan struct{}),
	}
}

// Start subscribes to task events and runs the hub loop in a goroutine.
func (s *WebSocketService) Start(cfg config.Config) {
	consumer, err := broker.InitConsumer(cfg, []string{broker.TaskSubject}, "websocket-hub")
	if err != nil {
		log.Printf("Warning: websocket hub could not subscribe to task events: %v", err)
	} else {
		s.consumer = consumer
	}

	go s.run()
	log.Println("WebSocket hub started")
}

// Stop shuts the hub down and closes all client connections.
func (s *WebSocketService) Stop() {
	close(s.stopChan)
	if s.consumer != nil {
		s.consumer.Close()
	}

	s.clientsMutex.Lock()
	for _, client := range s.clients {
		close(client.send)
	}
	s.clients = make(map[string]*Client)
	s.clientsMutex.Unlock()
}

func (s *WebSocketService) run() {
	var messageChan chan *nats.Msg
	if s.consumer != nil {
		messageChan = s.consumer.GetMessageChannel()
	}

	for {
		select {
		case client := <-s.register:
			s.clientsMutex.Lock()
			s.clients[client.ID] = client
			s.clientsMutex.Unlock()
			log.Printf("WebSocket client %s connected (user %s)", client.ID, client.UserID)

		case client := <-s.unregister:
			s.clientsMutex.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				close(client.send)
			}
			s.clientsMutex.Unlock()

		case msg := <-messageChan:
			var message broker.StandardMessage
			if err := json.Unmarshal(msg.Data, &message); err != nil {
				log.Printf("Failed to decode broker message: %v", err)
				continue
			}
			s.Dispatch(message)

		case <-s.stopChan:
			return
		}
	}
}

// Dispatch delivers a task event to every client allowed to see it.
func (s *WebSocketService) Dispatch(msg broker.StandardMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message for dispatch: %v", err)
		return
	}

	ownerID, _ := msg.Payload["owner_id"].(string)
	assigneeID, hasAssignee := msg.Payload["assignee_id"].(string)

	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	for _, client := range s.clients {
		if hasAssignee && client.UserID != ownerID && client.UserID != assigneeID {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Slow client, skip rather than block the hub.
		}
	}
}

// RegisterClient adds a client to the hub and starts its pumps.
func (s *WebSocketService) RegisterClient(client *Client) {
	client.hub = s
	s.register <- client

	go client.writePump()
	go client.readPump()
}

// NewClient wraps an upgraded connection for a user.
func NewClient(id, userID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		conn:   conn,
		send:   make(chan []byte, 16),
	}
}

// readPump drains client messages; the stream is server-to-client, so
// inbound frames only drive connection liveness.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket client %s read error: %v", c.ID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var WebSocketServiceInstance WebSocketServiceInterface
