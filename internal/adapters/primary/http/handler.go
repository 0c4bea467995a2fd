package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/vibin/chat-relay/config"
	"github.com/vibin/chat-relay/internal/core/domain"
	"github.com/vibin/chat-relay/internal/core/ports"
	"github.com/vibin/chat-relay/internal/logger"
	"github.com/vibin/chat-relay/internal/metrics"
)

// Pinger verifies connectivity to an external dependency. The readiness
// endpoint uses it when a shared breaker store is configured.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the HTTP handler for the chat relay
type Handler struct {
	service ports.ChatPort
	logger  logger.Logger
	router  *chi.Mux
	config  *config.Config
	metrics *metrics.Metrics
	ready   Pinger
	limiter *rate.Limiter
}

// NewHandler creates a new HTTP handler. ready may be nil when no shared
// store is configured; the readiness endpoint then always reports ready.
func NewHandler(service ports.ChatPort, cfg *config.Config, m *metrics.Metrics, ready Pinger, log logger.Logger) *Handler {
	h := &Handler{
		service: service,
		logger:  log,
		config:  cfg,
		metrics: m,
		ready:   ready,
		limiter: rate.NewLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst),
	}

	h.setupRouter()
	return h
}

// setupRouter sets up the Chi router with middleware and routes
func (h *Handler) setupRouter() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(h.logger))
	r.Use(h.recoverer)
	r.Use(h.countRequests)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Get("/health", h.Health)
		r.Post("/message", h.SendMessage)
		r.Post("/chat", h.Chat)
	})

	r.Get("/ready", h.Ready)
	r.Handle("/metrics", h.metrics.Handler())

	h.router = r
}

// ServeHTTP implements the http.Handler interface
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Health handles the health check request
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles the readiness check request. When a shared breaker store is
// configured, its connectivity is verified.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ready.Ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed", "error", err)
			h.respondWithJSON(w, http.StatusServiceUnavailable, map[string]bool{"ready": false})
			return
		}
	}
	h.respondWithJSON(w, http.StatusOK, map[string]bool{"ready": true})
}

// Chat handles the chat request by routing the message through the
// provider tiers
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	message, ok := h.decodeMessage(w, r)
	if !ok {
		return
	}

	reply := h.service.Chat(r.Context(), message)
	h.respondWithJSON(w, http.StatusOK, domain.ChatReply{Reply: reply})
}

// SendMessage handles the legacy synchronous endpoint, answering from the
// deterministic responder only
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	message, ok := h.decodeMessage(w, r)
	if !ok {
		return
	}

	reply := h.service.Respond(message)
	h.respondWithJSON(w, http.StatusOK, domain.ChatReply{Reply: reply})
}

// decodeMessage parses and validates the request body. It writes the 400
// response itself and reports false when validation fails.
func (h *Handler) decodeMessage(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Message *string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return "", false
	}
	if req.Message == nil {
		h.respondWithError(w, http.StatusBadRequest, "message is required")
		return "", false
	}

	message := strings.TrimSpace(*req.Message)
	if message == "" {
		h.respondWithError(w, http.StatusBadRequest, "message cannot be empty")
		return "", false
	}
	if len(message) > h.config.Server.MaxMessageLength {
		h.respondWithError(w, http.StatusBadRequest, "message is too long")
		return "", false
	}

	return message, true
}

// respondWithError sends an error response
func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response
func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
