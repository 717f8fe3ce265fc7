package rag

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/studybuddy/assistant/backend/internal/metrics"
	"github.com/studybuddy/assistant/backend/internal/service/knowledge"
	"github.com/studybuddy/assistant/backend/pkg/utils"
)

// Handler serves keyword retrieval over the study corpus.
type Handler struct {
	index  *knowledge.Index
	topN   int
	logger *zap.Logger
}

// New 创建检索处理器
func New(index *knowledge.Index, topN int, logger *zap.Logger) *Handler {
	if topN <= 0 {
		topN = 3
	}
	return &Handler{index: index, topN: topN, logger: logger.Named("rag")}
}

// RegisterRoutes exposes both the /ask and the /generate answer shapes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleHealth)
	r.Post("/ask", h.handleAsk)
	r.Post("/generate", h.handleGenerate)
}

type query struct {
	Question string `json:"question"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "simple-rag-api",
	})
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	answer, ok := h.answer(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	answer, ok := h.answer(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"response": answer,
		"status":   "success",
	})
}

func (h *Handler) answer(w http.ResponseWriter, r *http.Request) (string, bool) {
	var q query
	if err := utils.DecodeJSON(w, r, &q); err != nil {
		utils.RespondError(w, http.StatusUnprocessableEntity, "invalid request body")
		return "", false
	}
	if strings.TrimSpace(q.Question) == "" {
		utils.RespondError(w, http.StatusUnprocessableEntity, "question is required")
		return "", false
	}

	answer, matched := h.index.Answer(q.Question, h.topN)
	metrics.RetrievalQueries.WithLabelValues(strconv.FormatBool(matched)).Inc()
	h.logger.Debug("answered query", zap.Bool("matched", matched), zap.Int("length", len(answer)))
	return answer, true
}
