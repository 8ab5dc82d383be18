package chat

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

type errorFrame struct {
	Error string `json:"error"`
}

// websocketHandler 在长连接上逐条收发聊天消息
type websocketHandler struct {
	chatSvc  Service
	upgrader websocket.Upgrader
}

func newWebsocketHandler(chatSvc Service) *websocketHandler {
	return &websocketHandler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *websocketHandler) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	log.Printf("[ws] connection opened id=%s", connID)
	defer log.Printf("[ws] connection closed id=%s", connID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go pingLoop(ctx, conn)

	for {
		var msg chatRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error id=%s: %v", connID, err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		reply, err := respond(context.WithoutCancel(ctx), h.chatSvc, msg.Message)
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err != nil {
			log.Printf("[ws] reply failed id=%s: %v", connID, err)
			if writeErr := conn.WriteJSON(errorFrame{Error: "failed to store conversation"}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(chatResponse{Response: reply}); err != nil {
			log.Printf("[ws] write failed id=%s: %v", connID, err)
			return
		}
	}
}

// pingLoop 定期发送ping控制帧
func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
