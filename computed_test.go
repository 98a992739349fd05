package rgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputed(t *testing.T) {
	t.Run("derives value from signal", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		double := NewComputed(func() int {
			log = append(log, "doubling")
			return count.Read() * 2
		})
		plustwo := NewComputed(func() int {
			log = append(log, "adding")
			return double.Read() + 2
		})

		assert.Equal(t, 1, count.Read())
		assert.Equal(t, 2, double.Read())
		assert.Equal(t, 4, plustwo.Read())

		count.Write(10)
		assert.Equal(t, 20, double.Read())
		assert.Equal(t, 22, plustwo.Read())

		assert.Equal(t, []string{
			"doubling",
			"adding",
			"doubling",
			"adding",
		}, log)
	})

	t.Run("does not propagate past an unchanged value", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		a := NewComputed(func() int {
			log = append(log, "running a")
			return count.Read() * 0 // always 0
		})
		b := NewComputed(func() int {
			log = append(log, "running b")
			return a.Read() + 1
		})

		a.Read()
		b.Read()

		count.Write(10)
		b.Read() // a recomputes to the same 0, so b must not recompute

		assert.Equal(t, []string{
			"running a",
			"running b",
			"running a",
		}, log)
	})

	t.Run("lazy: does not recompute until read", func(t *testing.T) {
		runs := 0
		count := NewSignal(1)
		double := NewComputed(func() int {
			runs++
			return count.Read() * 2
		})

		double.Read()
		assert.Equal(t, 1, runs)

		count.Write(2)
		count.Write(3)
		assert.Equal(t, 1, runs, "no effect watches double, so it must not recompute eagerly")

		assert.Equal(t, 6, double.Read())
		assert.Equal(t, 2, runs)
	})

	t.Run("unwatched computed releases its own deps", func(t *testing.T) {
		count := NewSignal(0)
		double := NewComputed(func() int { return count.Read() * 2 })

		e := NewEffect(func() { double.Read() })
		assert.True(t, count.HasSubscribers())

		e.Stop()
		assert.False(t, count.HasSubscribers())
		assert.False(t, double.HasSubscribers())
	})

	t.Run("with prev: folds over its own last value", func(t *testing.T) {
		count := NewSignal(1)
		running := NewComputedWithPrev(func(prev int) int {
			return prev + count.Read()
		})

		assert.Equal(t, 1, running.Read()) // prev starts at zero value

		count.Write(2)
		assert.Equal(t, 3, running.Read())

		count.Write(5)
		assert.Equal(t, 8, running.Read())
	})

	t.Run("custom equal", func(t *testing.T) {
		type box struct{ n int }
		count := NewSignal(1)
		runs := 0

		b := NewComputedWithEqual(func() box {
			return box{count.Read() % 2}
		}, func(a, c box) bool { return a.n == c.n })

		NewEffect(func() {
			b.Read()
			runs++
		})
		assert.Equal(t, 1, runs)

		count.Write(3) // parity unchanged: 1 -> 1
		assert.Equal(t, 1, runs)

		count.Write(4) // parity changes: 1 -> 0
		assert.Equal(t, 2, runs)
	})
}
