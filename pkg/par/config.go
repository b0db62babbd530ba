// Package par implements the placement search: an initial assignment,
// a cost function counting unroutable required edges, and a bounded
// simulated-annealing-style local search over swap/move mutations.
//
// It is a bounded-loop-with-a-per-iteration-score-and-convergence-check
// shape: the engine converges toward score zero over a bounded number of
// iterations and gives up cleanly, returning the last state, rather than
// looping forever.
package par

// Config controls the search. Seed defaults to a fixed value so that runs
// are reproducible — the same netlist, part and seed always yield the same
// placement — and tests that want a specific seed set it explicitly.
type Config struct {
	Seed          uint64
	MaxIterations int
}

// DefaultConfig returns the engine defaults: a fixed seed and a generous
// iteration budget.
func DefaultConfig() Config {
	return Config{Seed: 1, MaxIterations: 20000}
}
