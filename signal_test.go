package rgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewSignal(0)
		assert.Equal(t, 0, count.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
	})

	t.Run("zero values", func(t *testing.T) {
		err := NewSignal[error](nil)
		assert.Nil(t, err.Read())

		err.Write(errors.New("oops"))
		assert.EqualError(t, err.Read(), "oops")

		err.Write(nil)
		assert.Nil(t, err.Read())
	})

	t.Run("same value write is a no-op", func(t *testing.T) {
		count := NewSignal(5)
		runs := 0

		NewEffect(func() {
			count.Read()
			runs++
		})
		assert.Equal(t, 1, runs)

		count.Write(5)
		assert.Equal(t, 1, runs, "writing the already-current value must not enqueue the effect")
	})

	t.Run("peek does not track", func(t *testing.T) {
		count := NewSignal(1)
		runs := 0

		NewEffect(func() {
			count.Peek()
			runs++
		})
		assert.Equal(t, 1, runs)

		count.Write(2)
		assert.Equal(t, 1, runs, "peek must not subscribe the effect")
		assert.Equal(t, 2, count.Peek())
	})

	t.Run("custom equal collapses writes of equivalent values", func(t *testing.T) {
		type point struct{ x, y int }
		eq := func(a, b point) bool { return a.x == b.x && a.y == b.y }

		p := NewSignalWithEqual(point{1, 1}, eq)
		runs := 0

		NewEffect(func() {
			p.Read()
			runs++
		})
		assert.Equal(t, 1, runs)

		p.Write(point{1, 1})
		assert.Equal(t, 1, runs, "an equal struct value must not retrigger the effect")

		p.Write(point{2, 2})
		assert.Equal(t, 2, runs)
	})

	t.Run("has subscribers", func(t *testing.T) {
		count := NewSignal(0)
		assert.False(t, count.HasSubscribers())

		e := NewEffect(func() { count.Read() })
		assert.True(t, count.HasSubscribers())

		e.Stop()
		assert.False(t, count.HasSubscribers())
	})
}
