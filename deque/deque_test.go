package deque

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roastsim/model"
)

func sample(sec int) model.SamplePushData {
	return model.SamplePushData{Second: sec, Temperature: float64(sec) * 0.5}
}

func TestArrDeque_AddLastEvicts(t *testing.T) {
	deque := NewArrDeque(3)
	for i := 0; i < 5; i++ {
		deque.AddLast(sample(i))
	}
	assert.True(t, deque.IsFull())
	assert.Equal(t, 3, deque.Size())
	assert.Equal(t, []model.SamplePushData{sample(2), sample(3), sample(4)}, deque.Slice())
}

func TestArrDeque_Funcs(t *testing.T) {
	var deque Deque = NewArrDeque(4)
	deque.RemoveFirst()
	assert.Equal(t, 0, deque.Size())
	assert.Empty(t, deque.Slice())

	deque.AddLast(sample(0))
	deque.AddLast(sample(1))
	deque.AddLast(sample(2))
	deque.RemoveFirst()
	assert.Equal(t, []model.SamplePushData{sample(1), sample(2)}, deque.Slice())
	assert.False(t, deque.IsFull())

	deque.Clear()
	assert.Equal(t, 0, deque.Size())
	deque.AddLast(sample(7))
	assert.Equal(t, []model.SamplePushData{sample(7)}, deque.Slice())
}

func TestArrDeque_Traverse(t *testing.T) {
	deque := NewArrDeque(8)
	for i := 0; i < 20; i++ {
		deque.AddLast(sample(i))
	}
	seen := 0
	deque.Traverse(func(i int, item model.SamplePushData) {
		assert.Equal(t, 12+i, item.Second)
		seen++
	})
	assert.Equal(t, 8, seen)
}

func BenchmarkArrDeque_AddLast(b *testing.B) {
	deque := NewArrDeque(4000)
	for i := 0; i < b.N; i++ {
		deque.AddLast(sample(i))
	}
}
