package services

import (
	"log"
	"net/http"
	"sync"

	"github.com/ibrahimbiplob75/taskhub/broker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
)

// EventStreamServiceInterface streams entity mutation events to connected
// clients so SPA caches can invalidate without polling.
type EventStreamServiceInterface interface {
	Start(natsURL string)
	Stop()
	HandleConnection(c *gin.Context)
	Broadcast(message []byte)
}

// streamClient is one connected websocket.
type streamClient struct {
	id   string
	send chan []byte
	conn *websocket.Conn
}

type EventStreamService struct {
	clients      map[string]*streamClient
	clientsMutex sync.RWMutex

	register   chan *streamClient
	unregister chan *streamClient
	broadcast  chan []byte
	stopChan   chan struct{}

	consumer *broker.Consumer
	upgrader websocket.Upgrader
}

func NewEventStreamService() *EventStreamService {
	return &EventStreamService{
		clients:    make(map[string]*streamClient),
		register:   make(chan *streamClient),
		unregister: make(chan *streamClient),
		broadcast:  make(chan []byte, 256),
		stopChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Start runs the hub and, when a NATS server is configured, relays every
// entity subject onto the stream. Without NATS the hub still accepts
// connections; only broker-originated events are missing.
func (s *EventStreamService) Start(natsURL string) {
	if natsURL != "" {
		consumer, err := broker.InitConsumer(natsURL, broker.EntitySubjects)
		if err != nil {
			log.Printf("Warning: event stream running without broker: %v", err)
		} else {
			s.consumer = consumer
			go s.relayBrokerEvents(consumer.GetMessageChannel())
		}
	}

	go s.run()
	log.Println("Event stream service started")
}

// Stop signals the hub to shut down. The hub loop owns the client map
// and closes every send channel itself, so no send can race a close.
func (s *EventStreamService) Stop() {
	close(s.stopChan)
	if s.consumer != nil {
		s.consumer.Close()
	}
}

func (s *EventStreamService) run() {
	for {
		select {
		case client := <-s.register:
			s.clientsMutex.Lock()
			s.clients[client.id] = client
			s.clientsMutex.Unlock()
		case client := <-s.unregister:
			s.clientsMutex.Lock()
			if _, ok := s.clients[client.id]; ok {
				delete(s.clients, client.id)
				close(client.send)
			}
			s.clientsMutex.Unlock()
		case message := <-s.broadcast:
			s.clientsMutex.RLock()
			for _, client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Slow client; drop the message rather than block the hub.
				}
			}
			s.clientsMutex.RUnlock()
		case <-s.stopChan:
			s.clientsMutex.Lock()
			for id, client := range s.clients {
				close(client.send)
				delete(s.clients, id)
			}
			s.clientsMutex.Unlock()
			return
		}
	}
}

func (s *EventStreamService) relayBrokerEvents(messages chan *nats.Msg) {
	for {
		select {
		case msg := <-messages:
			s.Broadcast(msg.Data)
		case <-s.stopChan:
			return
		}
	}
}

// Broadcast sends a message to every connected client.
func (s *EventStreamService) Broadcast(message []byte) {
	select {
	case s.broadcast <- message:
	case <-s.stopChan:
	}
}

// HandleConnection upgrades an authenticated request to a websocket and
// keeps it subscribed until it closes.
func (s *EventStreamService) HandleConnection(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket connection: %v", err)
		return
	}

	client := &streamClient{
		id:   uuid.NewString(),
		send: make(chan []byte, 64),
		conn: conn,
	}
	select {
	case s.register <- client:
	case <-s.stopChan:
		conn.Close()
		return
	}

	go s.writePump(client)
	go s.readPump(client)
}

func (s *EventStreamService) writePump(client *streamClient) {
	for message := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
	client.conn.Close()
}

// readPump discards inbound frames; the stream is one-way. Its job is to
// notice the close.
func (s *EventStreamService) readPump(client *streamClient) {
	defer func() {
		select {
		case s.unregister <- client:
		case <-s.stopChan:
		}
		client.conn.Close()
	}()
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

var EventStreamServiceInstance EventStreamServiceInterface
