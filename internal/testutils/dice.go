package testutils

import (
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// SequenceRoller replays a fixed list of values, cycling when exhausted.
// Values larger than the die size wrap into [1, size].
type SequenceRoller struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequenceRoller returns a roller that yields values in order
func NewSequenceRoller(values ...int) *SequenceRoller {
	if len(values) == 0 {
		values = []int{1}
	}
	return &SequenceRoller{values: values}
}

var _ dice.Roller = (*SequenceRoller)(nil)

// Roll returns the next value folded into [1, size]
func (r *SequenceRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := r.values[r.next%len(r.values)]
	r.next++
	if size <= 0 {
		return 0, nil
	}
	return ((v-1)%size+size)%size + 1, nil
}

// RollN returns count successive values
func (r *SequenceRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
