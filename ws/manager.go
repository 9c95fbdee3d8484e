package ws

import (
	"context"
	"sync"

	"taskify_backend/internal/logger"
)

// envelope - сообщение для всех подключений одного пользователя
type envelope struct {
	userID  string
	payload any
}

// WebSocketManager хранит подключения по userID. У пользователя может быть
// несколько подключений (вкладки, устройства).
type WebSocketManager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	publish    chan envelope
	done       chan struct{}
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan envelope, 256),
		done:       make(chan struct{}),
	}
}

// Run обслуживает регистрацию и рассылку до отмены ctx.
func (manager *WebSocketManager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(manager.done)
			manager.closeAll()
			return

		case client := <-manager.register:
			manager.mu.Lock()
			set, ok := manager.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				manager.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			manager.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID, "connections", len(set))

		case client := <-manager.unregister:
			manager.remove(client)

		case msg := <-manager.publish:
			manager.deliver(msg)
		}
	}
}

// PublishToUser ставит сообщение в очередь доставки. Не блокирует вызывающего:
// при переполненной очереди сообщение отбрасывается, оно уже сохранено в БД.
func (manager *WebSocketManager) PublishToUser(userID string, payload any) {
	select {
	case manager.publish <- envelope{userID: userID, payload: payload}:
	default:
		logger.Warn("ws publish queue is full, message dropped", "user_id", userID)
	}
}

// join и leave не блокируются после остановки Run.
func (manager *WebSocketManager) join(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.done:
		return false
	}
}

func (manager *WebSocketManager) leave(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

// GetClientCount возвращает количество подключений
func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	total := 0
	for _, set := range manager.clients {
		total += len(set)
	}
	return total
}

// IsUserConnected проверяет, есть ли у пользователя открытое подключение
func (manager *WebSocketManager) IsUserConnected(userID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients[userID]) > 0
}

func (manager *WebSocketManager) deliver(msg envelope) {
	manager.mu.RLock()
	var slow []*Client
	for client := range manager.clients[msg.userID] {
		select {
		case client.Send <- msg.payload:
		default:
			slow = append(slow, client)
		}
	}
	manager.mu.RUnlock()

	// клиент не успевает читать - отключаем
	for _, client := range slow {
		logger.Warn("ws client send buffer is full, disconnecting", "user_id", client.UserID)
		manager.remove(client)
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	set, ok := manager.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.Send)
	if len(set) == 0 {
		delete(manager.clients, client.UserID)
	}
	logger.Debug("ws client unregistered", "user_id", client.UserID)
}

func (manager *WebSocketManager) closeAll() {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	for userID, set := range manager.clients {
		for client := range set {
			close(client.Send)
		}
		delete(manager.clients, userID)
	}
}
