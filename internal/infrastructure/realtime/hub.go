// Package realtime difunde las notificaciones a los administradores conectados por websocket.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

// sendBuffer mensajes pendientes por cliente; si se llena, el cliente se desconecta.
const sendBuffer = 16

// Conn es el subconjunto de *websocket.Conn que usa el hub.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	conn   Conn
	userID string
	send   chan []byte
}

// Message es lo que recibe el navegador por el socket.
type Message struct {
	Type         string                    `json:"type"`
	Notification *dto.NotificationResponse `json:"notification,omitempty"`
}

var _ ports.Broadcaster = (*Hub)(nil)

// Hub mantiene los clientes conectados. Registro, baja y difusión pasan por el loop de Run.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	stopped    chan struct{}
	log        zerolog.Logger

	mu    sync.RWMutex
	count int
}

// NewHub construye el hub; hay que llamar Run en una goroutine.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		stopped:    make(chan struct{}),
		log:        log,
	}
}

// Run atiende registro, baja y difusión hasta que ctx se cancela; al salir cierra todas las conexiones.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setCount(len(h.clients))
			h.log.Debug().Str("user_id", c.userID).Int("clients", len(h.clients)).Msg("ws: cliente conectado")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.log.Debug().Str("user_id", c.userID).Int("clients", len(h.clients)).Msg("ws: cliente desconectado")
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.log.Warn().Str("user_id", c.userID).Msg("ws: cliente lento, se desconecta")
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.setCount(len(h.clients))
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

// Clients devuelve cuántos clientes hay conectados.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Broadcast implementa ports.Broadcaster. No bloquea: si la cola está llena el mensaje se descarta.
func (h *Hub) Broadcast(n *entity.Notification) {
	resp := dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	raw, err := json.Marshal(Message{Type: "notification", Notification: &resp})
	if err != nil {
		h.log.Error().Err(err).Msg("ws: serializar notificación")
		return
	}
	select {
	case h.broadcast <- raw:
	default:
		h.log.Warn().Str("notification_id", n.ID).Msg("ws: cola de difusión llena, mensaje descartado")
	}
}

// Serve atiende una conexión hasta que el cliente la cierra. Las lecturas solo detectan el cierre.
func (h *Hub) Serve(conn Conn, userID string) {
	c := &client{conn: conn, userID: userID, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.stopped:
		_ = conn.Close()
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug().Err(err).Str("user_id", userID).Msg("ws: error de escritura")
				break
			}
		}
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
	<-done
}
