/*
Package handler provides the HTTP handler function for WebSocket connection upgrading.

HandleWebSocket upgrades the request, wraps the socket in a chat.Client, joins it
to the coordinator, and then runs the client's read pump on the request goroutine.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"relaychat/internal/app/chat"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc that turns each request into one chat session.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Coordinator.Stopped() {
			logx.Info("WebSocket connection rejected: coordinator stopped.")
			resp.RespondError(w, errs.NewError(errs.ErrRelayUnavailable))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(deps.Coordinator, conn)

		go client.WritePump()

		if !deps.Coordinator.Connect(client) {
			logx.Info("Coordinator stopped during upgrade, closing connection.", "conn_id", client.ID())
			client.Close()
			return
		}

		logx.Debug("WebSocket connection established", "conn_id", client.ID())

		client.ReadPump()
	}
}
