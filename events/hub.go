package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to connected clients.
const (
	EventNotification = "notification"
	EventTicketUpdate = "ticket_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	userID uint
	role   string
}

// Hub tracks connected clients so ticket and notification events reach
// the browsers that should see them without polling.
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]client),
}

func RegisterClient(conn *websocket.Conn, userID uint, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = client{userID: userID, role: role}
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// NotifyUser pushes a notification event to every connection belonging
// to the given user.
func NotifyUser(userID uint, data interface{}) {
	send(Message{Event: EventNotification, Data: data}, func(cl client) bool {
		return cl.userID == userID
	})
}

// BroadcastTicketUpdate pushes a ticket event to every connected client.
func BroadcastTicketUpdate(data interface{}) {
	send(Message{Event: EventTicketUpdate, Data: data}, func(client) bool {
		return true
	})
}

func send(msg Message, match func(client) bool) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}

	for conn, cl := range hub.clients {
		if !match(cl) {
			continue
		}
		// Best effort only: a dead connection is cleaned up when its
		// read loop in the handler exits.
		_ = conn.WriteMessage(websocket.TextMessage, raw)
	}
}
