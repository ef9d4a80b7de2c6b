package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/lib/sl"
	"github.com/aeg58/crm-v2/internal/metrics"
)

// Event types pushed to CRM clients.
const (
	EventCustomerNew    = "customer:new"
	EventMessageNew     = "message:new"
	EventMessageUpdated = "message:updated"
	EventLeadNew        = "lead:new"
	EventLeadUpdate     = "lead:update"
)

// Event is the wire envelope for everything the hub pushes.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// broadcastMsg pairs an event with the customer it concerns, so the
// hub can route it to room subscribers.
type broadcastMsg struct {
	customerID string
	event      *Event
}

// Hub maintains the set of active WebSocket clients and fans events
// out to them. Clients subscribed to customer rooms receive only
// events for those customers; clients with no subscriptions receive
// everything.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *broadcastMsg
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *broadcastMsg, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log.With(sl.Module("ws")),
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.WsClientConnected()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WsClientDisconnected()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.event)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				if !client.wantsCustomer(msg.customerID) {
					continue
				}
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
					metrics.WsClientDisconnected()
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount reports how many clients are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) emit(customerID, eventType string, data any) {
	h.broadcast <- &broadcastMsg{
		customerID: customerID,
		event: &Event{
			Type: eventType,
			Data: data,
		},
	}
}

// BroadcastCustomerNew announces a customer created by ingestion or by
// hand.
func (h *Hub) BroadcastCustomerNew(customer *entity.Customer) {
	h.emit(customer.ID, EventCustomerNew, customer)
}

func (h *Hub) BroadcastMessageNew(message *entity.Message) {
	h.emit(message.CustomerID, EventMessageNew, message)
}

// BroadcastMessageUpdated announces enrichment results landing on a
// message.
func (h *Hub) BroadcastMessageUpdated(message *entity.Message) {
	h.emit(message.CustomerID, EventMessageUpdated, message)
}

func (h *Hub) BroadcastLeadNew(lead *entity.Lead) {
	h.emit(lead.CustomerID, EventLeadNew, lead)
}

func (h *Hub) BroadcastLeadUpdate(lead *entity.Lead) {
	h.emit(lead.CustomerID, EventLeadUpdate, lead)
}

// clientEvent is an incoming WebSocket message from a CRM client.
type clientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleClientMessage parses and dispatches an incoming client
// message. Clients join and leave customer rooms with
// {"type":"join","data":{"customer_id":"..."}}.
func (h *Hub) HandleClientMessage(client *Client, raw []byte) {
	var event clientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		h.log.Warn("failed to parse client ws message",
			slog.String("user", client.user.Email), sl.Err(err))
		return
	}

	switch event.Type {
	case "join", "leave":
		var data struct {
			CustomerID string `json:"customer_id"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.log.Warn("failed to parse room data", sl.Err(err))
			return
		}
		if data.CustomerID == "" {
			return
		}
		if event.Type == "join" {
			client.joinRoom(data.CustomerID)
		} else {
			client.leaveRoom(data.CustomerID)
		}
	}
}
