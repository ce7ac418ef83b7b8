package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit flushes once 4KB of output has accumulated.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit flushes pending output every 50ms.
	DefaultTimeLimit = 50 * time.Millisecond
)

// BatchWriter coalesces small writes before handing them to a flush
// callback. Compiler output arrives in tiny chunks; batching keeps the
// renderer from redrawing per chunk.
type BatchWriter struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu     sync.Mutex
	buffer *bytes.Buffer
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewBatchWriter returns a writer that flushes at sizeLimit bytes or after
// timeLimit, whichever comes first. Zero values select the defaults.
// Call Close to stop the background ticker.
func NewBatchWriter(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *BatchWriter {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	w := &BatchWriter{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
		buffer:    new(bytes.Buffer),
		stopCh:    make(chan struct{}),
	}

	w.ticker = time.NewTicker(timeLimit)
	go w.run()

	return w
}

// Write buffers p, flushing when the size limit is reached.
func (w *BatchWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, errors.New("BatchWriter is closed")
	}

	n, err = w.buffer.Write(p)
	if err != nil {
		return n, err
	}

	if w.buffer.Len() >= w.sizeLimit {
		w.flushLocked()
		w.ticker.Reset(w.timeLimit)
	}

	return n, nil
}

// Flush forces any buffered data to the callback.
func (w *BatchWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.flushLocked()
}

// Close stops the background flusher and performs a final flush.
func (w *BatchWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	w.closed = true
	close(w.stopCh)
	w.flushLocked()
	return nil
}

func (w *BatchWriter) run() {
	for {
		select {
		case <-w.ticker.C:
			w.Flush()
		case <-w.stopCh:
			w.ticker.Stop()
			return
		}
	}
}

// flushLocked must be called with mu held. The callback runs under the
// lock, so it must be fast (a channel send).
func (w *BatchWriter) flushLocked() {
	if w.buffer.Len() == 0 {
		return
	}

	data := make([]byte, w.buffer.Len())
	copy(data, w.buffer.Bytes())
	w.buffer.Reset()

	if w.onFlush != nil {
		w.onFlush(data)
	}
}
