package par

import (
	"math"
	"math/rand/v2"

	"github.com/parforge/gopar/pkg/diag"
	"github.com/parforge/gopar/pkg/pargraph"
)

// Result summarizes one Run.
type Result struct {
	Score      int
	Iterations int
	Solved     bool
}

// Run places every netlist node onto a device node (InitialPlacement), then
// repeatedly mutates the placement, keeping the mutation whenever it
// strictly improves the score and probabilistically keeping it otherwise.
// It stops as soon as the score reaches zero or the iteration budget is
// exhausted, whichever comes first; it never returns early just because a
// particular iteration found no legal mutation, since a later candidate or
// a later temperature may still resolve it.
//
// Run is deterministic: given the same N, D and cfg.Seed it always
// produces the same sequence of accepted mutations, because every source
// of ordering it touches — Nodes() iteration, unroutableEndpoints,
// candidate lists inside mutate — is sorted by NodeID rather than left to
// Go's randomized map order, and the only randomness is the seeded rng
// below.
func Run(n, d *pargraph.Graph, cfg Config, sink diag.Sink) (Result, error) {
	if err := InitialPlacement(n, d); err != nil {
		return Result{}, err
	}

	score := Score(n)
	sink.Info("par.initial", "", "initial placement score %d", score)

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	iter := 0
	for ; iter < cfg.MaxIterations && score > 0; iter++ {
		candidates := unroutableEndpoints(n)
		if len(candidates) == 0 {
			// Score > 0 but no endpoint is unroutable is a contradiction:
			// Score and unroutableEndpoints walk the same edge set.
			break
		}
		a := candidates[rng.IntN(len(candidates))]

		revert := mutate(rng, n, d, a)
		if revert == nil {
			continue
		}
		newScore := Score(n)
		if accept(rng, score, newScore, iter, cfg.MaxIterations) {
			score = newScore
		} else {
			revert()
		}
	}

	solved := score == 0
	if solved {
		sink.Info("par.converged", "", "converged after %d iterations", iter)
	} else {
		sink.Warning("par.exhausted", "", "iteration budget exhausted at score %d after %d iterations", score, iter)
	}
	return Result{Score: score, Iterations: iter, Solved: solved}, nil
}

// accept implements the simulated-annealing decision: always take a
// strictly improving mutation, and take a non-improving one with
// probability that shrinks as the temperature cools toward the end of the
// iteration budget.
func accept(rng *rand.Rand, oldScore, newScore, iter, maxIter int) bool {
	delta := newScore - oldScore
	if delta < 0 {
		return true
	}
	temp := coolingTemp(iter, maxIter)
	if delta == 0 {
		return rng.Float64() < temp
	}
	prob := math.Exp(-float64(delta) / temp)
	return rng.Float64() < prob
}

// coolingTemp is a linear schedule from 1.0 at iteration 0 down to a floor
// of 0.01, so the search explores freely early on and only accepts
// genuinely improving moves by the end of the budget.
func coolingTemp(iter, maxIter int) float64 {
	if maxIter <= 0 {
		return 0.01
	}
	frac := float64(iter) / float64(maxIter)
	temp := 1.0 - frac
	if temp < 0.01 {
		return 0.01
	}
	return temp
}
