package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGameLocksSerializeSameGame(t *testing.T) {
	locks := newGameLocks()

	unlock := locks.lock("game_1")
	acquired := make(chan struct{})
	go func() {
		release := locks.lock("game_1")
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while the first was held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired")
	}
}

func TestGameLocksIndependentGames(t *testing.T) {
	locks := newGameLocks()

	unlock := locks.lock("game_1")
	defer unlock()

	done := make(chan struct{})
	go func() {
		locks.lock("game_2")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("different games should not block each other")
	}
}

func TestGameLocksAreReleased(t *testing.T) {
	locks := newGameLocks()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("game_1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Zero(t, locks.size())
}
