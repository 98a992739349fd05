//go:build ignore

// This demo shares its directory with package rgraph, so it is left out
// of the package build; run it with `go run main.go`.
package main

import (
	"fmt"
	"time"

	"github.com/anatolelucet/rgraph"
)

func main() {
	a := rgraph.NewSignal(1)
	b := rgraph.NewSignal(2)

	sum := rgraph.NewComputed(func() int {
		result := a.Read() + b.Read()
		fmt.Println("  [COMPUTED] summing:", result)
		return result
	})

	rgraph.NewEffect(func() {
		fmt.Println("  [EFFECT] sum is:", sum.Read())
	})

	fmt.Println("\nUpdating both a and b in a batch...")
	rgraph.Batch(func() {
		a.Write(10)
		b.Write(20)
	})

	fmt.Println("\nsum recomputes once, and the effect above runs exactly once more (30).")

	time.Sleep(1 * time.Second)
}
