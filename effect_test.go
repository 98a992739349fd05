package rgraph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs on signal change with cleanup", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		log = append(log, fmt.Sprintf("%d", count.Read()))

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)
		log = append(log, fmt.Sprintf("%d", count.Read()))
		count.Write(20)

		assert.Equal(t, []string{
			"0",
			"changed 0",
			"cleanup",
			"changed 10",
			"10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("writes to another signal", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewSignal(0)

		NewEffect(func() {
			double.Write(count.Read() * 2)
		})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", double.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("nested effects", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		NewEffect(func() {
			count.Read()
			log = append(log, "running")

			NewEffect(func() {
				log = append(log, "running nested")

				OnCleanup(func() {
					log = append(log, "cleanup nested")
				})
			})

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running",
			"running nested",
			"cleanup nested",
			"cleanup",
			"running",
			"running nested",
		}, log)
	})

	t.Run("deps change between runs", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		initialized := false
		NewEffect(func() {
			log = append(log, "running")
			if !initialized {
				count.Read()
			}
			initialized = true
		})

		count.Write(1)
		count.Write(2) // no longer depended on, must not trigger

		assert.Equal(t, []string{
			"running",
			"running",
		}, log)
	})

	t.Run("stop prevents further runs", func(t *testing.T) {
		log := []int{}

		count := NewSignal(0)

		e := NewEffect(func() {
			log = append(log, count.Read())
		})

		count.Write(1)
		e.Stop()
		count.Write(2)

		assert.Equal(t, []int{0, 1}, log)
	})

	t.Run("stop during own execution", func(t *testing.T) {
		log := []int{}

		count := NewSignal(0)
		var e *EffectHandle

		e = NewEffect(func() {
			if count.Read() > 0 {
				e.Stop()
				return
			}
			log = append(log, count.Read())
		})

		count.Write(1)

		assert.Equal(t, []int{0}, log)
	})

	t.Run("OnError catches a panic from the effect body", func(t *testing.T) {
		log := []string{}

		errSignal := NewSignal[error](nil)

		e := NewEffect(func() {
			if err := errSignal.Read(); err != nil {
				panic(err)
			}
		})
		e.OnError(func(v any) {
			log = append(log, fmt.Sprintf("caught %v", v))
		})

		errSignal.Write(errors.New("oops"))

		assert.Equal(t, []string{"caught oops"}, log)
	})

	t.Run("double stop is a no-op", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0

		e := NewEffect(func() {
			count.Read()
			runs++
		})

		e.Stop()
		assert.NotPanics(t, func() { e.Stop() })

		count.Write(1)
		assert.Equal(t, 1, runs)
	})
}
