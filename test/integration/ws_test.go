package integration_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"taskify_backend/internal/models"
	"taskify_backend/internal/services/dto"
	"taskify_backend/test/helpers"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWebSocket_ReceivesDirectNotification - личное сообщение приходит
// получателю по открытому websocket-подключению.
func TestWebSocket_ReceivesDirectNotification(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	senderToken, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("sender"))
	receiverToken, receiver := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("receiver"))

	wsURL := "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/ws/notifications?token=" + receiverToken
	conn, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, res.StatusCode)

	// регистрация в менеджере асинхронна: повторяем отправку, пока сообщение не придет
	received := make(chan dto.NotificationResponse, 1)
	go func() {
		var msg dto.NotificationResponse
		if err := conn.ReadJSON(&msg); err == nil {
			received <- msg
		}
	}()

	deadline := time.After(3 * time.Second)
	for {
		sendRes, body := ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/users/"+receiver.ID, senderToken,
			map[string]interface{}{"message": "ping"})
		require.Equal(t, http.StatusCreated, sendRes.StatusCode, body)

		select {
		case msg := <-received:
			assert.Equal(t, models.NotificationTypeDirect, msg.Type)
			assert.Equal(t, "ping", msg.Message)
			assert.Equal(t, receiver.ID, msg.ReceiverID)
			return
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("notification was not pushed over websocket")
		}
	}
}

func TestWebSocket_RequiresToken(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/ws/notifications"
	_, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
