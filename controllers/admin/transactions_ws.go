// transactions_ws.go
package adminController

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vampconnoisseur/fabels/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var wsClients = make(map[*websocket.Conn]bool)

// TransactionWebSocketHandler streams newly paid transactions to the
// admin dashboard.
// GET /admin/ws/transactions
func TransactionWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	wsClients[conn] = true

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			delete(wsClients, conn)
			break
		}
	}
}

// BroadcastTransaction pushes a settled transaction to connected clients.
func BroadcastTransaction(transaction models.Transaction) {
	data, err := json.Marshal(transaction)
	if err != nil {
		return
	}
	for client := range wsClients {
		client.WriteMessage(websocket.TextMessage, data)
	}
}
