package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocksSerialiseOneSession(t *testing.T) {
	locks := NewLocks()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("s1")
			defer unlock()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, locks.size())
}

func TestLocksAreIndependentPerSession(t *testing.T) {
	locks := NewLocks()
	unlockA := locks.Lock("a")
	unlockB := locks.Lock("b")
	assert.Equal(t, 2, locks.size())

	unlockA()
	unlockA()
	unlockB()
	assert.Equal(t, 0, locks.size())
}
