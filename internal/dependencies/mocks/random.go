package mocks

import (
	"github.com/mcoot/playeradmin/internal/dependencies/random"
)

// MockRandom replays queued values. An exhausted queue yields the zero value.
type MockRandom struct {
	ints   []int
	int63s []int64
	bools  []bool
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates an empty MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Intn(n int) int {
	return next(&r.ints)
}

func (r *MockRandom) Int63n(n int64) int64 {
	return next(&r.int63s)
}

func (r *MockRandom) Bool() bool {
	return next(&r.bools)
}

// QueueIntn queues results for Intn
func (r *MockRandom) QueueIntn(values ...int) {
	r.ints = append(r.ints, values...)
}

// QueueInt63n queues results for Int63n
func (r *MockRandom) QueueInt63n(values ...int64) {
	r.int63s = append(r.int63s, values...)
}

// QueueBool queues results for Bool
func (r *MockRandom) QueueBool(values ...bool) {
	r.bools = append(r.bools, values...)
}

func next[T any](queue *[]T) T {
	var zero T
	if len(*queue) == 0 {
		return zero
	}
	v := (*queue)[0]
	*queue = (*queue)[1:]
	return v
}
