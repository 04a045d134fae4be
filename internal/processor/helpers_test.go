package processor

import (
	"bytes"
	"sync"
)

// syncBuffer guards a bytes.Buffer written from the notification goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}
