package ws

import (
	"net/http"
	"sync"

	"github.com/WA-TLE/interstellar-diet/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// OrderHub fans order events (new paid order, reminder) out to every
// connected merchant client. Delivery is best-effort.
type OrderHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// OrderMsg mirrors what the merchant dashboard expects.
type OrderMsg struct {
	Type    int    `json:"type"` // services.NotifyNewOrder / NotifyReminder
	OrderID uint   `json:"orderId"`
	Content string `json:"content"`
}

func NewOrderHub() *OrderHub {
	return &OrderHub{clients: make(map[*websocket.Conn]bool)}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades /ws/orders. Auth ran in middleware; only the
// employee role reaches here.
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn("ws upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Drain reads so pings and close frames are processed; drop the client
	// once the connection dies.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// PushOrderMsg implements services.Notifier.
func (h *OrderHub) PushOrderMsg(typ int, orderID uint, content string) {
	msg := OrderMsg{Type: typ, OrderID: orderID, Content: content}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(msg); err != nil {
			logger.L().Warn("ws write failed, dropping client", zap.Error(err))
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *OrderHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] {
		conn.Close()
		delete(h.clients, conn)
	}
}
