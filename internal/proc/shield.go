package proc

import (
	"os"
	"os/signal"
	"sync"
)

// Shield keeps keyboard interrupts from terminating the shell. The signals
// are caught rather than ignored, so children started later still get the
// default disposition. Received signals are counted and dropped.
type Shield struct {
	ch   chan os.Signal
	done chan struct{}
	wg   sync.WaitGroup

	mu    sync.Mutex
	count int
}

func NewShield() *Shield {
	s := &Shield{
		ch:   make(chan os.Signal, 4),
		done: make(chan struct{}),
	}
	notify(s.ch)
	s.wg.Add(1)
	go s.drain()
	return s
}

func (s *Shield) drain() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ch:
			s.mu.Lock()
			s.count++
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// Received reports how many signals were swallowed so far.
func (s *Shield) Received() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Stop restores default signal handling.
func (s *Shield) Stop() {
	signal.Stop(s.ch)
	close(s.done)
	s.wg.Wait()
}
