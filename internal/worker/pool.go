// internal/worker/pool.go
package worker

import (
	"sync"
)

// Pool bounds the number of concurrently running tasks
type Pool struct {
	wg    sync.WaitGroup
	slots chan struct{}
}

// NewPool creates a pool allowing size concurrent tasks
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		slots: make(chan struct{}, size),
	}
}

// Submit blocks until a slot is free, then runs task on its own goroutine
func (p *Pool) Submit(task func()) {
	p.slots <- struct{}{}
	p.wg.Add(1)

	go func() {
		defer func() {
			<-p.slots
			p.wg.Done()
		}()

		task()
	}()
}

// Wait blocks until all submitted tasks have finished
func (p *Pool) Wait() {
	p.wg.Wait()
}
