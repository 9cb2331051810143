package worker

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_RunsAllTasks(t *testing.T) {
	pool := NewPool(4)

	var count int64
	for i := 0; i < 50; i++ {
		pool.Submit(func() {
			atomic.AddInt64(&count, 1)
		})
	}
	pool.Wait()

	assert.Equal(t, int64(50), count)
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const size = 3
	pool := NewPool(size)

	var mu sync.Mutex
	var running, peak int

	for i := 0; i < 30; i++ {
		pool.Submit(func() {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()

			mu.Lock()
			running--
			mu.Unlock()
		})
	}
	pool.Wait()

	assert.LessOrEqual(t, peak, size)
}

func TestPool_MinimumSize(t *testing.T) {
	pool := NewPool(0)

	done := false
	pool.Submit(func() { done = true })
	pool.Wait()

	assert.True(t, done)
}
