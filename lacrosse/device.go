// Package lacrosse drives a LaCrosse/JeeLink sensor receiver over its line protocol.
package lacrosse

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Device drives one receiver: a background reader dispatching readings to
// registered handlers, and setters writing configuration commands.
type Device struct {
	transport Transport
	registry  *Registry
	worker    *worker
	logger    *zap.SugaredLogger
	metrics   *Metrics

	infoMu    sync.Mutex
	info      *DeviceInfo
	infoReady chan struct{}
}

type options struct {
	logger       *zap.SugaredLogger
	metrics      *Metrics
	pollInterval time.Duration
}

// Option configures a Device
type Option func(*options)

// WithLogger sets a custom logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records receiver traffic in m
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithPollInterval sets how long the reader idles after an empty read (default: 10ms, 0 to poll continuously)
func WithPollInterval(interval time.Duration) Option {
	return func(o *options) {
		o.pollInterval = interval
	}
}

// New creates a Device on top of t. The reader is not started.
func New(t Transport, opts ...Option) *Device {
	o := options{
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		// Default logger
		logger, _ := zap.NewDevelopment()
		o.logger = logger.Sugar()
	}

	d := &Device{
		transport: t,
		registry:  NewRegistry(o.logger, o.metrics),
		logger:    o.logger,
		metrics:   o.metrics,
		infoReady: make(chan struct{}),
	}
	d.worker = &worker{
		transport:    t,
		registry:     d.registry,
		logger:       o.logger,
		metrics:      o.metrics,
		pollInterval: o.pollInterval,
		onInfo:       d.setInfo,
	}

	return d
}

// RegisterCallback adds h to the handlers of sensorID
func (d *Device) RegisterCallback(sensorID int, h Handler) {
	d.registry.Register(sensorID, h)
}

// RegisterAll adds h as a handler for every sensor
func (d *Device) RegisterAll(h Handler) {
	d.registry.RegisterAll(h)
}

// UnregisterCallback removes all handlers of sensorID
func (d *Device) UnregisterCallback(sensorID int) {
	d.registry.Unregister(sensorID)
}

// Start begins reading lines and dispatching readings. Calling Start on a
// device that is not stopped returns ErrAlreadyRunning.
func (d *Device) Start() error {
	if err := d.worker.start(); err != nil {
		return err
	}
	d.logger.Debug("Reader started")
	return nil
}

// Stop signals the reader and returns once it has exited. No handler is
// called after Stop returns. Stopping a stopped device does nothing.
// Stop waits for the pending ReadLine; use Close for a transport whose
// reads only end when it is closed.
func (d *Device) Stop() {
	d.worker.halt()
	d.logger.Debug("Reader stopped")
}

// State returns the reader state
func (d *Device) State() State {
	return d.worker.getState()
}

// Err returns the read error that ended the last reader run, if any
func (d *Device) Err() error {
	return d.worker.getErr()
}

// Close stops the reader and closes the transport when it is closable.
// The transport is closed before the reader is joined, so a blocked
// ReadLine is released.
func (d *Device) Close() error {
	done := d.worker.signal()

	var err error
	if c, ok := d.transport.(io.Closer); ok {
		err = c.Close()
	}

	d.worker.join(done)
	d.logger.Debug("Reader stopped")
	return err
}

// SetFrequency sets the radio frequency of bank
func (d *Device) SetFrequency(v Value, bank Bank) error {
	return d.configure(OpFrequency, v, bank)
}

// SetDataRate sets the data rate of bank
func (d *Device) SetDataRate(v Value, bank Bank) error {
	return d.configure(OpDataRate, v, bank)
}

// SetToggleInterval sets the data rate toggle interval of bank
func (d *Device) SetToggleInterval(v Value, bank Bank) error {
	return d.configure(OpToggleInterval, v, bank)
}

// SetToggleMask sets the data rate toggle mask of bank
func (d *Device) SetToggleMask(v Value, bank Bank) error {
	return d.configure(OpToggleMask, v, bank)
}

// SetLedMode switches the receiver's activity LED
func (d *Device) SetLedMode(enabled bool) error {
	return d.write("led", EncodeLedMode(enabled))
}

// Info returns the last banner received, if any
func (d *Device) Info() (DeviceInfo, bool) {
	d.infoMu.Lock()
	defer d.infoMu.Unlock()
	if d.info == nil {
		return DeviceInfo{}, false
	}
	info := *d.info
	info.Radios = append([]RadioInfo(nil), d.info.Radios...)
	return info, true
}

// RequestInfo asks the receiver for its banner and waits for it to arrive.
// The reader must be running.
func (d *Device) RequestInfo(ctx context.Context) (DeviceInfo, error) {
	d.worker.mu.Lock()
	running := d.worker.state == Running
	done := d.worker.done
	d.worker.mu.Unlock()
	if !running {
		return DeviceInfo{}, ErrNotRunning
	}

	d.infoMu.Lock()
	ready := d.infoReady
	d.infoMu.Unlock()

	if err := d.write("info", EncodeInfoRequest()); err != nil {
		return DeviceInfo{}, err
	}

	select {
	case <-ready:
		info, _ := d.Info()
		return info, nil
	case <-done:
		return DeviceInfo{}, ErrNotRunning
	case <-ctx.Done():
		return DeviceInfo{}, ctx.Err()
	}
}

// setInfo stores a banner and wakes RequestInfo callers
func (d *Device) setInfo(info DeviceInfo) {
	d.infoMu.Lock()
	defer d.infoMu.Unlock()
	d.info = &info
	close(d.infoReady)
	d.infoReady = make(chan struct{})
}

func (d *Device) configure(op Op, v Value, bank Bank) error {
	cmd, err := Encode(op, v, bank)
	if err != nil {
		return err
	}
	return d.write(op.String(), cmd)
}

// write sends a command to the receiver
func (d *Device) write(name string, cmd []byte) error {
	n, err := d.transport.Write(cmd)
	if err == nil && n < len(cmd) {
		err = io.ErrShortWrite
	}
	d.metrics.command(name, err)
	if err != nil {
		d.logger.Errorf("Failed to write %q to receiver: %s", cmd, err)
		return fmt.Errorf("write %q: %w", cmd, err)
	}
	d.logger.Debugf("Sent %s command %q", name, cmd)
	return nil
}
