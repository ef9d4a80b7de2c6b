package ws

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/aeg58/crm-v2/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient() *Client {
	return &Client{
		user:  &entity.UserAuth{UserID: "user-1", Email: "agent@example.com", Role: entity.UserRole},
		rooms: make(map[string]bool),
	}
}

// stubAuthenticator accepts exactly one token.
type stubAuthenticator struct{}

func (stubAuthenticator) AuthenticateByToken(token string) (*entity.UserAuth, error) {
	if token != "valid-token" {
		return nil, errors.New("invalid token")
	}
	return &entity.UserAuth{UserID: "user-1", Email: "agent@example.com", Role: entity.UserRole}, nil
}

func TestClientRoomSubscriptions(t *testing.T) {
	client := testClient()

	assert.True(t, client.wantsCustomer("cus-1"), "no subscriptions means watch everything")
	assert.True(t, client.wantsCustomer("cus-2"))

	client.joinRoom("cus-1")
	assert.True(t, client.wantsCustomer("cus-1"))
	assert.False(t, client.wantsCustomer("cus-2"))

	client.joinRoom("cus-2")
	client.leaveRoom("cus-1")
	assert.False(t, client.wantsCustomer("cus-1"))
	assert.True(t, client.wantsCustomer("cus-2"))

	client.leaveRoom("cus-2")
	assert.True(t, client.wantsCustomer("cus-1"), "leaving the last room reverts to watch-everything")
}

func TestHandleClientMessageJoin(t *testing.T) {
	hub := NewHub(discardLogger())
	client := testClient()

	hub.HandleClientMessage(client, []byte(`{"type":"join","data":{"customer_id":"cus-1"}}`))

	assert.True(t, client.wantsCustomer("cus-1"))
	assert.False(t, client.wantsCustomer("cus-2"))
}

func TestHandleClientMessageLeave(t *testing.T) {
	hub := NewHub(discardLogger())
	client := testClient()
	client.joinRoom("cus-1")
	client.joinRoom("cus-2")

	hub.HandleClientMessage(client, []byte(`{"type":"leave","data":{"customer_id":"cus-1"}}`))

	assert.False(t, client.wantsCustomer("cus-1"))
	assert.True(t, client.wantsCustomer("cus-2"))
}

func TestHandleClientMessageIgnoresGarbage(t *testing.T) {
	hub := NewHub(discardLogger())
	client := testClient()

	hub.HandleClientMessage(client, []byte(`not json`))
	hub.HandleClientMessage(client, []byte(`{"type":"join","data":"oops"}`))
	hub.HandleClientMessage(client, []byte(`{"type":"join","data":{"customer_id":""}}`))
	hub.HandleClientMessage(client, []byte(`{"type":"dance","data":{}}`))

	assert.True(t, client.wantsCustomer("cus-1"), "bad messages must not change subscriptions")
	assert.Equal(t, 0, len(client.rooms))
}

func TestServeWsRejectsBadToken(t *testing.T) {
	hub := NewHub(discardLogger())
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, stubAuthenticator{}, discardLogger(), w, r)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL+"?token=forged", nil)
	assert.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	_, resp, err = websocket.DefaultDialer.Dial(wsURL, nil)
	assert.Error(t, err, "missing token must not upgrade")
	if resp != nil {
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubDeliversBroadcasts(t *testing.T) {
	hub := NewHub(discardLogger())
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, stubAuthenticator{}, discardLogger(), w, r)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?token=valid-token"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	if err != nil {
		return
	}
	defer conn.Close()

	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond, "client should register after the handshake")

	hub.BroadcastCustomerNew(&entity.Customer{ID: "cus-1", Name: "Maria"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	assert.NoError(t, err)

	var event struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, EventCustomerNew, event.Type)

	var customer entity.Customer
	assert.NoError(t, json.Unmarshal(event.Data, &customer))
	assert.Equal(t, "cus-1", customer.ID)
	assert.Equal(t, "Maria", customer.Name)

	conn.Close()
	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond, "disconnect should unregister the client")
}

func TestHubSkipsClientsOutsideRoom(t *testing.T) {
	hub := NewHub(discardLogger())
	go hub.Run()

	subscribed := testClient()
	subscribed.send = make(chan []byte, 8)
	subscribed.joinRoom("cus-1")

	elsewhere := testClient()
	elsewhere.send = make(chan []byte, 8)
	elsewhere.joinRoom("cus-2")

	hub.register <- subscribed
	hub.register <- elsewhere
	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 2
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastMessageNew(&entity.Message{ID: "msg-1", CustomerID: "cus-1", Content: "hello"})

	select {
	case raw := <-subscribed.send:
		var event Event
		assert.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, EventMessageNew, event.Type)
	case <-time.After(time.Second):
		t.Error("subscribed client never received the event")
	}

	select {
	case <-elsewhere.send:
		t.Error("client in another room must not receive the event")
	case <-time.After(100 * time.Millisecond):
	}
}
