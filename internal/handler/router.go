package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/studybuddy/assistant/backend/internal/config"
	"github.com/studybuddy/assistant/backend/internal/handler/chat"
	"github.com/studybuddy/assistant/backend/internal/handler/rag"
	chatService "github.com/studybuddy/assistant/backend/internal/service/chat"
	"github.com/studybuddy/assistant/backend/internal/service/knowledge"
	"github.com/studybuddy/assistant/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(serverCfg config.ServerConfig, chatSvc *chatService.Service, responder chat.Responder, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(newCORS(serverCfg.AllowedOrigins).Handler)

	r.Get("/", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	chatHandler := chat.New(chatSvc, responder, logger)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
	})

	return r
}

func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Study assistant backend is running",
	})
}

// NewRAGRouter wires the local retrieval service.
func NewRAGRouter(serverCfg config.ServerConfig, index *knowledge.Index, topN int, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(newCORS(serverCfg.AllowedOrigins).Handler)

	r.Handle("/metrics", promhttp.Handler())
	rag.New(index, topN, logger).RegisterRoutes(r)

	return r
}
