package watch_orders

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// heartbeatInterval период keep-alive комментариев, чтобы прокси
// не закрывали простаивающее соединение
const heartbeatInterval = 30 * time.Second

type Handler struct {
	source EventSource
	logger Logger
}

func NewHandler(source EventSource, logger Logger) *Handler {
	return &Handler{
		source: source,
		logger: logger,
	}
}

// Handle GET /api/v1/orders/events
//
// Отдает поток изменений заказов как Server-Sent Events. Гранулярность
// событий грубая: op, id, номер и статус - клиент в ответ перечитывает
// список целиком.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /orders/events - Streaming not supported by response writer")
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, unsubscribe := h.source.Subscribe()
	defer unsubscribe()

	h.logger.Info("GET /orders/events - Client connected: remote=%s", r.RemoteAddr)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /orders/events - Client disconnected: remote=%s", r.RemoteAddr)
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("GET /orders/events - Failed to marshal event: %v", err)
				continue
			}

			fmt.Fprintf(w, "event: orders\ndata: %s\n\n", payload)
			flusher.Flush()

		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
