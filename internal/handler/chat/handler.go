package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/studybuddy/assistant/backend/internal/model/chat"
	"github.com/studybuddy/assistant/backend/internal/model/provider"
	chatService "github.com/studybuddy/assistant/backend/internal/service/chat"
	"github.com/studybuddy/assistant/backend/internal/service/gateway"
	"github.com/studybuddy/assistant/backend/pkg/utils"
)

// Responder produces the assistant reply for a message.
type Responder interface {
	Respond(ctx context.Context, req gateway.Request) (gateway.Result, error)
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc   *chatService.Service
	responder Responder
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, responder Responder, logger *zap.Logger) *Handler {
	return &Handler{
		chatSvc:   chatSvc,
		responder: responder,
		logger:    logger.Named("chat"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/chat/ws", h.handleWebSocket)
	r.Get("/chat/history/{sessionID}", h.handleGetHistory)
	r.Delete("/chat/history/{sessionID}", h.handleClearHistory)
}

// Request is the chat payload accepted over HTTP and WebSocket.
type Request struct {
	Message      string      `json:"message"`
	SessionID    string      `json:"sessionId,omitempty"`
	History      []chat.Turn `json:"history,omitempty"`
	UseRetrieval bool        `json:"useRetrieval,omitempty"`
}

// Response is returned for every answered message.
type Response struct {
	Reply              string        `json:"reply"`
	ProviderUsed       provider.Name `json:"providerUsed"`
	Fallback           string        `json:"fallback,omitempty"`
	SessionID          string        `json:"sessionId"`
	ConversationLength int           `json:"conversationLength"`
}

// handleChat 处理一次问答
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload Request
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.exchange(r.Context(), payload)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidInput) {
			utils.RespondError(w, http.StatusBadRequest, "message is required")
			return
		}
		h.logger.Error("chat exchange failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "something went wrong on the server")
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// exchange runs one question through the gateway and records both turns. When the caller
// sends no history the stored transcript for the session is used.
func (h *Handler) exchange(ctx context.Context, payload Request) (Response, error) {
	sessionID := strings.TrimSpace(payload.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history := payload.History
	if len(history) == 0 {
		history = h.chatSvc.Get(ctx, sessionID)
	}

	result, err := h.responder.Respond(ctx, gateway.Request{
		Message:      payload.Message,
		History:      history,
		UseRetrieval: payload.UseRetrieval,
	})
	if err != nil {
		return Response{}, err
	}

	if err := h.chatSvc.Append(ctx, sessionID, chat.RoleUser, payload.Message); err != nil {
		h.logger.Warn("failed to save user turn", zap.String("session", sessionID), zap.Error(err))
	}
	if err := h.chatSvc.Append(ctx, sessionID, chat.RoleAssistant, result.Reply); err != nil {
		h.logger.Warn("failed to save assistant turn", zap.String("session", sessionID), zap.Error(err))
	}

	return Response{
		Reply:              result.Reply,
		ProviderUsed:       result.ProviderUsed,
		Fallback:           result.Fallback,
		SessionID:          sessionID,
		ConversationLength: h.chatSvc.Len(ctx, sessionID),
	}, nil
}

// handleGetHistory 返回会话历史
func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	turns := h.chatSvc.Get(r.Context(), sessionID)

	utils.RespondJSON(w, http.StatusOK, chat.History{
		SessionID:    sessionID,
		Turns:        turns,
		MessageCount: len(turns),
	})
}

// handleClearHistory 清空会话历史
func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.chatSvc.Clear(r.Context(), sessionID)

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message":   "Chat history cleared successfully",
		"sessionId": sessionID,
	})
}
