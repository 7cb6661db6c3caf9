package lacrosse

import (
	"errors"
	"sync"
)

var errPortClosed = errors.New("port closed")

// fakeTransport replays scripted lines, then reports no data (or err)
type fakeTransport struct {
	mu       sync.Mutex
	lines    []string
	err      error
	writes   []string
	writeErr error
	onWrite  func(p []byte)
}

func (f *fakeTransport) push(lines ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, lines...)
}

func (f *fakeTransport) ReadLine() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lines) > 0 {
		line := f.lines[0]
		f.lines = f.lines[1:]
		return line, nil
	}
	if f.err != nil {
		return "", f.err
	}
	return "", nil
}

func (f *fakeTransport) Write(p []byte) (int, error) {
	f.mu.Lock()
	if f.writeErr != nil {
		f.mu.Unlock()
		return 0, f.writeErr
	}
	f.writes = append(f.writes, string(p))
	hook := f.onWrite
	f.mu.Unlock()

	if hook != nil {
		hook(p)
	}
	return len(p), nil
}

func (f *fakeTransport) written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

func (f *fakeTransport) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.writes) == 0 {
		return ""
	}
	return f.writes[len(f.writes)-1]
}

// blockingTransport blocks in ReadLine until it is closed
type blockingTransport struct {
	once   sync.Once
	closed chan struct{}
}

func newBlockingTransport() *blockingTransport {
	return &blockingTransport{closed: make(chan struct{})}
}

func (b *blockingTransport) ReadLine() (string, error) {
	<-b.closed
	return "", errPortClosed
}

func (b *blockingTransport) Write(p []byte) (int, error) {
	return len(p), nil
}

func (b *blockingTransport) Close() error {
	b.once.Do(func() { close(b.closed) })
	return nil
}
