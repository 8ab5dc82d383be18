package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ouwenyi03/Jay-Agent/internal/model/chat"
	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
	"github.com/ouwenyi03/Jay-Agent/pkg/utils"
)

// Service 是处理器依赖的聊天编排能力
type Service interface {
	Reply(ctx context.Context, message string) (string, error)
	History(ctx context.Context) ([]chat.Turn, error)
	Profile() persona.Profile
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc Service
	ws      *websocketHandler
}

// New 创建聊天处理器
func New(chatSvc Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		ws:      newWebsocketHandler(chatSvc),
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/chat/ws", h.ws.handle)
	r.Get("/history", h.handleHistory)
}

// handleChat 回复一条用户消息
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		// 无法解析的请求体按空消息处理
		payload.Message = ""
	}

	// 客户端断开不会中断模型调用，回复照常写入历史；上限只由 LLM_TIMEOUT 控制
	reply, err := respond(context.WithoutCancel(r.Context()), h.chatSvc, payload.Message)
	if err != nil {
		log.Printf("[chat] reply failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to store conversation")
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{Response: reply})
}

// handleHistory 返回默认会话的全部轮次
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.chatSvc.History(r.Context())
	if err != nil {
		log.Printf("[chat] load history failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	utils.RespondJSON(w, http.StatusOK, history)
}

// respond 空消息直接返回提示语，不读写存储也不调用模型
func respond(ctx context.Context, svc Service, message string) (string, error) {
	if message == "" {
		return svc.Profile().EmptyMessageReply, nil
	}
	return svc.Reply(ctx, message)
}
