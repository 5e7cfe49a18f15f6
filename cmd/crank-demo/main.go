// Command crank-demo is a small benchmark program showing how a binary
// embeds the harness.
package main

import (
	"sort"

	"github.com/crank-bench/crank"
)

func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}

func benchFib(arg int) func(n int) {
	return func(n int) {
		for i := 0; i < n; i++ {
			fib(arg)
		}
	}
}

func benchSort(size int) func(n int) {
	base := make([]int, size)
	for i := range base {
		base[i] = (i * 2654435761) % size
	}
	scratch := make([]int, size)
	return func(n int) {
		for i := 0; i < n; i++ {
			copy(scratch, base)
			sort.Ints(scratch)
		}
	}
}

func main() {
	crank.Main(
		crank.Group("fib",
			crank.Bench("fib 10", benchFib(10)),
			crank.Bench("fib 20", benchFib(20)),
		),
		crank.Group("sort",
			crank.Bench("sort 100", benchSort(100)),
			crank.Bench("sort 1000", benchSort(1000)),
		),
	)
}
