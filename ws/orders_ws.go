package ws

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/utils"
)

// FeedAccess decides whether a panel user may subscribe to a store's
// order feed.
type FeedAccess interface {
	CanAccessFeed(userID uint, role string, tenantID uint) (bool, error)
}

// OrderHub pushes freshly committed orders to the panel clients of each
// store. The order service talks to it through a buffered channel only:
// a full buffer drops the event instead of ever blocking a commit.
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // tenantID -> connections
	events     chan orderEvent
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	access     FeedAccess
}

type subscription struct {
	Conn     *websocket.Conn
	TenantID uint
}

type orderEvent struct {
	TenantID uint
	Payload  OrderNotice
}

// OrderNotice is the wire payload the panel receives.
type OrderNotice struct {
	OrderID   uint   `json:"orderId"`
	OrderType string `json:"orderType"`
	Total     string `json:"total"`
	Customer  string `json:"customer"`
	Status    string `json:"status"`
}

func NewOrderHub(access FeedAccess) *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		events:     make(chan orderEvent, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		access:     access,
	}
}

func (h *OrderHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.TenantID] == nil {
				h.clients[sub.TenantID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.TenantID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.TenantID][sub.Conn]; ok {
				delete(h.clients[sub.TenantID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.events:
			h.mu.Lock()
			for conn := range h.clients[ev.TenantID] {
				if err := conn.WriteJSON(ev.Payload); err != nil {
					logrus.WithError(err).Warn("ws write failed, dropping client")
					conn.Close()
					delete(h.clients[ev.TenantID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyNewOrder implements services.OrderNotifier. Non-blocking by
// construction: if nobody is draining the channel the notice is lost,
// never the order.
func (h *OrderHub) NotifyNewOrder(tenantID uint, order *entity.Order) {
	ev := orderEvent{
		TenantID: tenantID,
		Payload: OrderNotice{
			OrderID:   order.ID,
			OrderType: order.OrderType,
			Total:     order.TotalValue.StringFixed(2),
			Customer:  order.CustomerName,
			Status:    order.Status,
		},
	}
	select {
	case h.events <- ev:
	default:
		logrus.WithField("tenant", tenantID).Warn("order feed buffer full, notice dropped")
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/stores/:id/orders
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	tenantID64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid store id"})
		return
	}
	tenantID := uint(tenantID64)

	// ownership gate before the upgrade: a valid token alone must not
	// open another tenant's feed
	ok, err := h.access.CanAccessFeed(utils.CurrentUserID(c), utils.CurrentRole(c), tenantID)
	if err != nil {
		logrus.WithError(err).Error("feed access check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "could not verify store access"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("ws upgrade failed")
		return
	}

	sub := subscription{Conn: conn, TenantID: tenantID}
	h.register <- sub

	// the panel only listens; reads just detect disconnects
	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
