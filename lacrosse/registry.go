package lacrosse

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Registry maps sensor ids to the handlers interested in them
type Registry struct {
	mu       sync.RWMutex
	handlers map[int][]Handler
	all      []Handler
	logger   *zap.SugaredLogger
	metrics  *Metrics
}

// NewRegistry creates an empty registry. Handler failures are reported to logger.
func NewRegistry(logger *zap.SugaredLogger, metrics *Metrics) *Registry {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Registry{
		handlers: make(map[int][]Handler),
		logger:   logger,
		metrics:  metrics,
	}
}

// Register appends h to the handlers for sensorID. Registering the same
// handler twice gets it called twice.
func (r *Registry) Register(sensorID int, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[sensorID] = append(r.handlers[sensorID], h)
}

// RegisterAll adds a handler called for every reading, after the
// handlers registered for its sensor id
func (r *Registry) RegisterAll(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, h)
}

// Unregister removes every handler registered for sensorID
func (r *Registry) Unregister(sensorID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, sensorID)
}

// Len returns the number of handlers registered for sensorID
func (r *Registry) Len(sensorID int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[sensorID])
}

// Dispatch calls the handlers registered for the reading's sensor id, in
// registration order, followed by the catch-all handlers. It returns the
// number of handlers called.
func (r *Registry) Dispatch(reading Reading) int {
	r.mu.RLock()
	byID := r.handlers[reading.SensorID]
	handlers := make([]Handler, 0, len(byID)+len(r.all))
	handlers = append(handlers, byID...)
	handlers = append(handlers, r.all...)
	r.mu.RUnlock()

	for _, h := range handlers {
		if err := r.call(h, reading); err != nil {
			r.metrics.handlerFailure(reading.SensorID)
			r.logger.Errorf("Handler for sensor %d failed: %s", reading.SensorID, err)
		}
	}

	return len(handlers)
}

// call runs one handler, turning a panic into an error
func (r *Registry) call(h Handler, reading Reading) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return h.HandleReading(reading)
}
