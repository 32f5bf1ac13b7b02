package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to dashboard clients.
const (
	EventRecordCreated = "record_created"
	EventRecordUpdated = "record_updated"
	EventRecordDeleted = "record_deleted"
	EventNotification  = "notification"
	EventReportUpdate  = "report_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// RecordEvent describes one lifecycle change of a scoped record. Only the
// identifiers travel over the wire; clients refetch what they are allowed
// to see.
type RecordEvent struct {
	EntityType   string `json:"entity_type"`
	EntityID     uint   `json:"entity_id"`
	BusinessArea string `json:"business_area"`
}

// Hub holds the connected dashboard clients. Each connection is tagged with
// the business areas its user may see; broadcasts are filtered per client.
type Hub struct {
	clients map[*websocket.Conn][]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn][]string),
}

// RegisterClient adds a connection with the areas it is scoped to.
func RegisterClient(conn *websocket.Conn, areas []string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = areas
}

// UnregisterClient drops the connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastRecordChange pushes a lifecycle event to every client whose
// scope contains the record's business area.
func BroadcastRecordChange(event string, entityType string, entityID uint, businessArea string) {
	broadcast(Message{
		Event: event,
		Data: RecordEvent{
			EntityType:   entityType,
			EntityID:     entityID,
			BusinessArea: businessArea,
		},
	}, businessArea)
}

// BroadcastNotification pushes an alert message for one business area.
func BroadcastNotification(businessArea, title, message string) {
	broadcast(Message{
		Event: EventNotification,
		Data: map[string]string{
			"business_area": businessArea,
			"title":         title,
			"message":       message,
		},
	}, businessArea)
}

func broadcast(msg Message, businessArea string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, areas := range hub.clients {
		if !contains(areas, businessArea) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
		}
	}
}

func contains(areas []string, area string) bool {
	for _, a := range areas {
		if a == area {
			return true
		}
	}
	return false
}
