package telemetry_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.alchm.dev/scullery/internal/adapters/telemetry"
)

type flushCollector struct {
	mu      sync.Mutex
	flushes [][]byte
}

func (c *flushCollector) collect(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushes = append(c.flushes, data)
}

func (c *flushCollector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.flushes)
}

func TestBatchWriter_FlushesAtSizeLimit(t *testing.T) {
	collector := &flushCollector{}
	writer := telemetry.NewBatchWriter(8, time.Hour, collector.collect)
	defer func() { _ = writer.Close() }()

	_, err := writer.Write([]byte("12345678"))
	require.NoError(t, err)

	assert.Equal(t, 1, collector.count())
}

func TestBatchWriter_FlushesOnTimer(t *testing.T) {
	collector := &flushCollector{}
	writer := telemetry.NewBatchWriter(1<<20, 10*time.Millisecond, collector.collect)
	defer func() { _ = writer.Close() }()

	_, err := writer.Write([]byte("partial"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return collector.count() > 0
	}, time.Second, 5*time.Millisecond)
}

func TestBatchWriter_CloseFlushesAndRejectsWrites(t *testing.T) {
	collector := &flushCollector{}
	writer := telemetry.NewBatchWriter(1<<20, time.Hour, collector.collect)

	_, err := writer.Write([]byte("tail"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	assert.Equal(t, 1, collector.count())

	_, err = writer.Write([]byte("late"))
	assert.Error(t, err)
}
