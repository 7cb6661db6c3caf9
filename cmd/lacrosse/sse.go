package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.org/carrierlabs/go-lacrosse/lacrosse"
)

// SSEHandler implements lacrosse.Handler and streams readings to HTTP clients
type SSEHandler struct {
	clients map[chan sseEvent]bool
	names   map[int]string
	mu      sync.RWMutex
	logger  *zap.SugaredLogger
}

type sseEvent struct {
	Event   string
	Message string
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(logger *zap.SugaredLogger, names map[int]string) *SSEHandler {
	return &SSEHandler{
		clients: make(map[chan sseEvent]bool),
		names:   names,
		logger:  logger,
	}
}

// HandleReading implements lacrosse.Handler
func (h *SSEHandler) HandleReading(r lacrosse.Reading) error {
	data, err := json.Marshal(newPayload(r, h.names))
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}

	sse := sseEvent{
		Event:   "sensor-" + strconv.Itoa(r.SensorID),
		Message: string(data),
	}

	// Broadcast to all connected clients
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client <- sse:
		default:
			// Client buffer full, skip
			h.logger.Warnf("Client buffer full, dropping reading for sensor %d", r.SensorID)
		}
	}
	return nil
}

func (h *SSEHandler) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleHTTP handles HTTP SSE connections
func (h *SSEHandler) HandleHTTP(w http.ResponseWriter, r *http.Request) {
	// Check connection supports streaming
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Connection does not support streaming", http.StatusBadRequest)
		return
	}

	// Create channel for this client
	clientChan := make(chan sseEvent, 100)

	h.mu.Lock()
	h.clients[clientChan] = true
	clientCount := len(h.clients)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, clientChan)
		h.mu.Unlock()
	}()

	// Set SSE headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	h.logger.Infof("SSE client connected from %s (total: %d)", r.RemoteAddr, clientCount)

	// Stream readings
	for {
		select {
		case <-r.Context().Done():
			h.logger.Infof("SSE client disconnected: %s", r.RemoteAddr)
			return

		case sse := <-clientChan:
			fmt.Fprintf(w, "event: %s\n", sse.Event)
			fmt.Fprintf(w, "data: %s\n\n", sse.Message)
			flusher.Flush()
		}
	}
}
