package lacrosse

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// DefaultBaudRate is the LaCrosse firmware's serial speed
const DefaultBaudRate = 57600

const (
	readTimeout   = 100 * time.Millisecond
	maxLineLength = 1024
)

// lineReader assembles lines from a reader that may return partial data,
// or no data at all when its read times out
type lineReader struct {
	r     io.Reader
	buf   []byte
	chunk []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r:     r,
		chunk: make([]byte, 256),
	}
}

// ReadLine returns the next complete line, or "" if none is buffered after one read
func (l *lineReader) ReadLine() (string, error) {
	if line, ok := l.next(); ok {
		return line, nil
	}

	n, err := l.r.Read(l.chunk)
	if n > 0 {
		l.buf = append(l.buf, l.chunk[:n]...)
	}

	// Lines completed by this read come before its error
	if line, ok := l.next(); ok {
		return line, nil
	}
	if err != nil {
		return "", err
	}

	// Drop runaway data that never ends a line
	if len(l.buf) > maxLineLength {
		l.buf = l.buf[:0]
	}

	return "", nil
}

// next pops the first non-blank buffered line
func (l *lineReader) next() (string, bool) {
	for {
		i := bytes.IndexByte(l.buf, '\n')
		if i < 0 {
			return "", false
		}
		line := strings.TrimSpace(string(l.buf[:i]))
		l.buf = l.buf[i+1:]
		if line != "" {
			return line, true
		}
	}
}

// SerialTransport is a Transport over a serial port
type SerialTransport struct {
	port  serial.Port
	name  string
	lines *lineReader
}

// OpenSerial opens a serial port in 8N1 mode at baud
func OpenSerial(name string, baud int) (*SerialTransport, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}

	// Configure Serial (RS232) Mode
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	// Bounded reads let the reader notice Stop
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}

	return &SerialTransport{
		port:  port,
		name:  name,
		lines: newLineReader(port),
	}, nil
}

// Name returns the port path
func (s *SerialTransport) Name() string {
	return s.name
}

// ReadLine returns the next line from the port, or "" after a read timeout
func (s *SerialTransport) ReadLine() (string, error) {
	return s.lines.ReadLine()
}

// Write sends raw bytes to the port
func (s *SerialTransport) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// Close closes the port
func (s *SerialTransport) Close() error {
	return s.port.Close()
}

// Open opens the serial port name and creates a Device on it
func Open(name string, baud int, opts ...Option) (*Device, error) {
	t, err := OpenSerial(name, baud)
	if err != nil {
		return nil, err
	}
	return New(t, opts...), nil
}

// PortInfo describes a serial port found on the system
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
	Receiver     bool // USB id matches a known receiver bridge
}

// ScanPorts enumerates serial ports, flagging those that look like a receiver
func ScanPorts() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate ports: %w", err)
	}

	infos := make([]PortInfo, 0, len(ports))
	for _, port := range ports {
		infos = append(infos, PortInfo{
			Name:         port.Name,
			IsUSB:        port.IsUSB,
			VID:          port.VID,
			PID:          port.PID,
			SerialNumber: port.SerialNumber,
			Product:      port.Product,
			Receiver:     port.IsUSB && isReceiverUSB(port.VID, port.PID),
		})
	}
	return infos, nil
}

// isReceiverUSB returns true if a USB id matches a serial bridge used by receivers
func isReceiverUSB(vid, pid string) bool {
	// JeeLink and clones use one of the following:
	// VID 0403: Future Technology Devices (FT232R 6001, FT230X 6015)
	// VID 10c4: Silicon Labs (CP210x ea60)
	// VID 1a86: QinHeng (CH340 7523)
	switch strings.ToLower(vid) {
	case "0403":
		switch strings.ToLower(pid) {
		case "6001", "6015":
			return true
		}
	case "10c4":
		return strings.ToLower(pid) == "ea60"
	case "1a86":
		return strings.ToLower(pid) == "7523"
	}

	return false
}
