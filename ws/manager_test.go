package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startManager(t *testing.T) (*WebSocketManager, context.CancelFunc) {
	t.Helper()
	manager := NewWebSocketManager()
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Run(ctx)
	t.Cleanup(cancel)
	return manager, cancel
}

func fakeClient(manager *WebSocketManager, userID string, buffer int) *Client {
	return &Client{UserID: userID, Send: make(chan any, buffer), Manager: manager}
}

func receive(t *testing.T, client *Client) any {
	t.Helper()
	select {
	case msg := <-client.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatalf("no message for %s", client.UserID)
		return nil
	}
}

func TestManager_DeliversToAllUserConnections(t *testing.T) {
	manager, _ := startManager(t)
	phone := fakeClient(manager, "user-1", 4)
	laptop := fakeClient(manager, "user-1", 4)
	other := fakeClient(manager, "user-2", 4)

	require.True(t, manager.join(phone))
	require.True(t, manager.join(laptop))
	require.True(t, manager.join(other))
	require.Eventually(t, func() bool { return manager.GetClientCount() == 3 }, time.Second, 5*time.Millisecond)
	assert.True(t, manager.IsUserConnected("user-1"))

	manager.PublishToUser("user-1", "hello")

	assert.Equal(t, "hello", receive(t, phone))
	assert.Equal(t, "hello", receive(t, laptop))
	assert.Empty(t, other.Send)
}

func TestManager_LeaveClosesSendChannel(t *testing.T) {
	manager, _ := startManager(t)
	client := fakeClient(manager, "user-1", 1)
	require.True(t, manager.join(client))

	manager.leave(client)
	require.Eventually(t, func() bool { return !manager.IsUserConnected("user-1") }, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open)
}

// Клиент с заполненным буфером отключается, остальные получают сообщение.
func TestManager_DropsSlowClient(t *testing.T) {
	manager, _ := startManager(t)
	slow := fakeClient(manager, "user-1", 1)
	fast := fakeClient(manager, "user-1", 4)
	require.True(t, manager.join(slow))
	require.True(t, manager.join(fast))
	slow.Send <- "backlog"

	manager.PublishToUser("user-1", "fresh")

	assert.Equal(t, "fresh", receive(t, fast))
	require.Eventually(t, func() bool { return manager.GetClientCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "backlog", <-slow.Send)
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestManager_StopClosesEverything(t *testing.T) {
	manager, cancel := startManager(t)
	client := fakeClient(manager, "user-1", 1)
	require.True(t, manager.join(client))

	cancel()

	_, open := <-client.Send
	assert.False(t, open)
	assert.False(t, manager.join(fakeClient(manager, "user-2", 1)))
	assert.Equal(t, 0, manager.GetClientCount())
}

func TestOriginChecker(t *testing.T) {
	allowAll := originChecker(nil)
	restricted := originChecker([]string{"https://app.example.com"})

	req := httptestRequest("https://evil.example.com")
	assert.True(t, allowAll(req))
	assert.False(t, restricted(req))
	assert.True(t, restricted(httptestRequest("https://app.example.com")))
	assert.True(t, restricted(httptestRequest("")))
}

func httptestRequest(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/ws/notifications", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}
