package chat

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/studybuddy/assistant/backend/internal/service/gateway"
)

const (
	maxFrameBytes = 64 << 10
	writeWait     = 10 * time.Second
)

type outgoingFrame struct {
	Type      string    `json:"type"`
	SessionID string    `json:"sessionId,omitempty"`
	Data      *Response `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

// handleWebSocket keeps a connection open and answers each JSON frame in order.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxFrameBytes)
	ctx := r.Context()

	for {
		var payload Request
		if err := conn.ReadJSON(&payload); err != nil {
			if isDecodeError(err) {
				if writeErr := h.writeFrame(conn, outgoingFrame{Type: "error", Error: "invalid message frame"}); writeErr != nil {
					return
				}
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		resp, err := h.exchange(ctx, payload)
		frame := outgoingFrame{Type: "reply", SessionID: resp.SessionID, Data: &resp}
		if err != nil {
			frame = outgoingFrame{Type: "error", SessionID: payload.SessionID, Error: "internal error"}
			if errors.Is(err, gateway.ErrInvalidInput) {
				frame.Error = "message is required"
			}
		}

		if err := h.writeFrame(conn, frame); err != nil {
			h.logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (h *Handler) writeFrame(conn *websocket.Conn, frame outgoingFrame) error {
	frame.Timestamp = time.Now().UnixMilli()
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}

// isDecodeError reports a bad frame payload. Empty and truncated frames surface as
// io.ErrUnexpectedEOF from ReadJSON; close frames come back as *websocket.CloseError.
func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
