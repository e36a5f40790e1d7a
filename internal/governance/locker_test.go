package governance

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocker_SerializesSameID(t *testing.T) {
	l := NewLocker()

	var running, maxRunning int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Do("p1", func() error {
				n := atomic.AddInt32(&running, 1)
				for {
					m := atomic.LoadInt32(&maxRunning)
					if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxRunning)
	assert.Zero(t, l.size())
}

func TestLocker_DifferentIDsRunConcurrently(t *testing.T) {
	l := NewLocker()
	entered := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = l.Do("p1", func() error {
			close(entered)
			<-done
			return nil
		})
	}()
	<-entered

	finished := make(chan struct{})
	go func() {
		_ = l.Do("p2", func() error { return nil })
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("p2 blocked behind p1")
	}
	close(done)
}

func TestLocker_ReturnsError(t *testing.T) {
	l := NewLocker()
	boom := errors.New("boom")

	err := l.Do("p1", func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, l.size())
}
