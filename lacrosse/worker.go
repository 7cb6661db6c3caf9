package lacrosse

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Transport is the byte stream to the receiver. ReadLine returns one line
// without its terminator, or "" when no data is available yet. ReadLine
// must return within a bounded time so Stop can take effect; a transport
// that blocks until data arrives has to be released by Device.Close. The
// reader goroutine calls ReadLine while other goroutines call Write.
type Transport interface {
	ReadLine() (string, error)
	Write(p []byte) (int, error)
}

// State is the reader lifecycle state
type State int

const (
	Stopped State = iota
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return "stopped"
	}
}

const defaultPollInterval = 10 * time.Millisecond

// worker owns the read loop of one Device
type worker struct {
	transport    Transport
	registry     *Registry
	logger       *zap.SugaredLogger
	metrics      *Metrics
	pollInterval time.Duration
	onInfo       func(DeviceInfo)

	mu    sync.Mutex
	state State
	stop  chan struct{}
	done  chan struct{}
	err   error
}

// start launches the read loop. It fails with ErrAlreadyRunning unless the
// worker is stopped.
func (w *worker) start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != Stopped {
		return ErrAlreadyRunning
	}

	w.state = Running
	w.err = nil
	w.stop = make(chan struct{})
	w.done = make(chan struct{})

	go w.run(w.stop, w.done)

	return nil
}

// halt signals the read loop and waits for it to exit
func (w *worker) halt() {
	w.join(w.signal())
}

// signal asks a running read loop to exit and returns the channel closed
// when it has. A run that ended on its own may still be unwinding, so its
// channel is returned too.
func (w *worker) signal() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == Running {
		w.state = Stopping
		close(w.stop)
	}
	return w.done
}

// join waits on done and completes a pending stop
func (w *worker) join(done <-chan struct{}) {
	if done == nil {
		return
	}
	<-done

	w.mu.Lock()
	if w.state == Stopping {
		w.state = Stopped
	}
	w.mu.Unlock()
}

func (w *worker) getState() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *worker) getErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *worker) run(stop, done chan struct{}) {
	defer close(done)

	err := w.listen(stop)
	if err == nil {
		return
	}

	w.mu.Lock()
	stopping := w.state != Running
	if !stopping {
		w.err = err
		w.state = Stopped
	}
	w.mu.Unlock()

	// Closing the transport during a stop fails the pending read
	if stopping {
		return
	}

	w.metrics.readError()
	w.logger.Errorf("Reader stopped: %s", err)
}

// listen reads and handles lines until stop is closed or the transport fails
func (w *worker) listen(stop <-chan struct{}) error {
	var idle *time.Timer
	defer func() {
		if idle != nil {
			idle.Stop()
		}
	}()

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		line, err := w.transport.ReadLine()
		if err != nil {
			return err
		}

		if line == "" {
			if w.pollInterval <= 0 {
				continue
			}
			if idle == nil {
				idle = time.NewTimer(w.pollInterval)
			} else {
				idle.Reset(w.pollInterval)
			}
			select {
			case <-stop:
				return nil
			case <-idle.C:
			}
			continue
		}

		w.handle(line)
	}
}

// handle classifies one line and acts on it
func (w *worker) handle(line string) {
	l := ParseLine(line)
	w.metrics.line(l.Kind)

	switch l.Kind {
	case LineReading:
		w.logger.Debugf("Reading: %s", l.Reading)
		w.metrics.reading(l.Reading.SensorID)
		w.registry.Dispatch(l.Reading)
	case LineInfo:
		w.logger.Infof("Receiver: %s %s (%d radio(s))", l.Info.Name, l.Info.Version, len(l.Info.Radios))
		if w.onInfo != nil {
			w.onInfo(l.Info)
		}
	default:
		w.logger.Debugf("Ignored line: %q", line)
	}
}
