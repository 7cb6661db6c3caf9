package lacrosse

// Handler receives readings for the sensors it is registered for
type Handler interface {
	HandleReading(r Reading) error
}

// HandlerFunc is a function adapter for Handler interface
type HandlerFunc func(Reading) error

// HandleReading calls the function
func (f HandlerFunc) HandleReading(r Reading) error {
	return f(r)
}
