package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex // conn.WriteJSON is not safe for concurrent use
	tableID string
}

// ConnectionManager tracks open sockets and which table each one watches.
type ConnectionManager struct {
	clients  map[string]*client            // connID → client
	watchers map[string]map[string]*client // tableID → connID → client
	mu       sync.RWMutex                  // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients:  make(map[string]*client),
		watchers: make(map[string]map[string]*client),
	}
}

func (cm *ConnectionManager) AddConnection(connID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.clients[connID] = &client{conn: conn}
}

// RemoveConnection closes the socket and drops it from its table.
func (cm *ConnectionManager) RemoveConnection(connID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	c, exists := cm.clients[connID]
	if !exists {
		return
	}
	cm.unwatchLocked(connID, c)
	delete(cm.clients, connID)
	c.conn.Close()
}

// Watch moves a connection onto tableID; a socket watches one table at a time.
func (cm *ConnectionManager) Watch(connID, tableID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	c, exists := cm.clients[connID]
	if !exists {
		return
	}
	cm.unwatchLocked(connID, c)

	set, ok := cm.watchers[tableID]
	if !ok {
		set = make(map[string]*client)
		cm.watchers[tableID] = set
	}
	set[connID] = c
	c.tableID = tableID
}

func (cm *ConnectionManager) Unwatch(connID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if c, exists := cm.clients[connID]; exists {
		cm.unwatchLocked(connID, c)
	}
}

func (cm *ConnectionManager) unwatchLocked(connID string, c *client) {
	if c.tableID == "" {
		return
	}
	if set, ok := cm.watchers[c.tableID]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(cm.watchers, c.tableID)
		}
	}
	c.tableID = ""
}

// WatchedTable returns the table a connection currently watches.
func (cm *ConnectionManager) WatchedTable(connID string) string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if c, exists := cm.clients[connID]; exists {
		return c.tableID
	}
	return ""
}

func (cm *ConnectionManager) Watchers(tableID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.watchers[tableID])
}

// SendMessage sends a JSON message to one connection
func (cm *ConnectionManager) SendMessage(connID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	c, exists := cm.clients[connID]
	cm.mu.RUnlock()

	if !exists {
		return nil // disconnected, ignore
	}
	return c.send(message)
}

// Broadcast sends a message to everyone watching tableID
func (cm *ConnectionManager) Broadcast(tableID string, message domain.ServerMessage) {
	cm.mu.RLock()
	targets := make([]*client, 0, len(cm.watchers[tableID]))
	for _, c := range cm.watchers[tableID] {
		targets = append(targets, c)
	}
	cm.mu.RUnlock()

	for _, c := range targets {
		// a dead socket is cleaned up by its own read loop
		_ = c.send(message)
	}
}

func (c *client) send(message domain.ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(message)
}

func (c *client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
}

func (cm *ConnectionManager) Ping(connID string) error {
	cm.mu.RLock()
	c, exists := cm.clients[connID]
	cm.mu.RUnlock()

	if !exists {
		return websocket.ErrCloseSent
	}
	return c.ping()
}
