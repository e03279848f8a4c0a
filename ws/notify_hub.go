package ws

import (
	"net/http"
	"sync"

	"backend/entity"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// NotifyHub pushes order events to connected customers over WebSocket.
// Connections are keyed by user id; a user may hold several connections
// (multiple tabs), each one gets every event for that user.
type NotifyHub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> set of connections
	send       chan userEvent
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	log        *zap.Logger
}

type subscription struct {
	Conn   *websocket.Conn
	UserID uint
}

type userEvent struct {
	UserID uint
	Event  NotificationEvent
}

type NotificationEvent struct {
	Type       string             `json:"type"`
	OrderID    uint               `json:"orderId"`
	Status     entity.OrderStatus `json:"status,omitempty"`
	FromStatus entity.OrderStatus `json:"fromStatus,omitempty"`
	Reason     string             `json:"reason,omitempty"`
}

func NewNotifyHub(log *zap.Logger) *NotifyHub {
	return &NotifyHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		send:       make(chan userEvent, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		log:        log,
	}
}

func (h *NotifyHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.UserID][sub.Conn]; ok {
				delete(h.clients[sub.UserID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.send:
			h.mu.Lock()
			for conn := range h.clients[ev.UserID] {
				if err := conn.WriteJSON(ev.Event); err != nil {
					h.log.Warn("ws write error", zap.Error(err))
					conn.Close()
					delete(h.clients[ev.UserID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/notifications (authenticated)
func (h *NotifyHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade error", zap.Error(err))
		return
	}

	sub := subscription{Conn: conn, UserID: userID}
	h.register <- sub
	go h.drain(sub)
}

// drain keeps the read side alive so close frames are noticed; clients do not
// send application data on this socket.
func (h *NotifyHub) drain(sub subscription) {
	defer func() { h.unregister <- sub }()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *NotifyHub) push(userID uint, ev NotificationEvent) {
	select {
	case h.send <- userEvent{UserID: userID, Event: ev}:
	default:
		h.log.Warn("notification dropped", zap.Uint("userId", userID))
	}
}

// The hub satisfies services.Notifier.

func (h *NotifyHub) OrderConfirmed(order *entity.Order) {
	h.push(order.CustomerID, NotificationEvent{
		Type:    "order.confirmed",
		OrderID: order.ID,
		Status:  order.Status,
	})
}

func (h *NotifyHub) OrderStatusChanged(order *entity.Order, from, to entity.OrderStatus) {
	h.push(order.CustomerID, NotificationEvent{
		Type:       "order.status_changed",
		OrderID:    order.ID,
		Status:     to,
		FromStatus: from,
	})
}

func (h *NotifyHub) PaymentFailed(order *entity.Order, reason string) {
	h.push(order.CustomerID, NotificationEvent{
		Type:    "payment.failed",
		OrderID: order.ID,
		Reason:  reason,
	})
}
