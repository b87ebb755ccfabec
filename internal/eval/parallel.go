package eval

import "github.com/glim-lang/glim/internal/ast"

// evalParallel runs a `parallel { ... }` block's statements concurrently as
// independent workers (spec §5), grounded on the errgroup-based fan-out
// Tangerg-lynx's flow.Batch uses for concurrent segment processing. Each
// worker gets a private clone of vars, Funcs, and Records so its
// assignments, deletes, and declarations never race with the enclosing
// evaluation or with each other on the underlying Go maps — a `def`/
// `struct`/`class` statement is ordinary glim source and the grammar
// permits one as a parallel block's top-level statement just as well as an
// assignment, so Funcs/Records need the same per-worker isolation vars
// already gets. Declarations made inside a worker are therefore local to
// that worker and never visible to the parent or to sibling workers, the
// same rule spec §5 already gives plain variables.
//
// Per spec §5's option (a), the body's statements are the workers — each
// top-level statement of the block runs in its own goroutine over its own
// vars snapshot — rather than splitting the block as a single unit. The
// enclosing statement yields immediately: completion is only awaited when
// the whole program finishes (Evaluator.Run joins ev.parallelGroup before
// returning), so workers of one block may still be running while later
// statements and later parallel blocks execute. Output ordering within and
// across blocks' workers is unspecified and tests must accept any
// permutation.
func (ev *Evaluator) evalParallel(s *ast.ParallelStatement) {
	for _, stmt := range s.Body.Statements {
		stmt := stmt
		worker := &Evaluator{
			Env: &Environment{
				vars:    cloneCells(ev.Env.Snapshot()),
				Funcs:   cloneFuncs(ev.Env.Funcs),
				Records: cloneRecords(ev.Env.Records),
			},
			Out:          ev.Out,
			Input:        parallelInputDisabled,
			ShortCircuit: ev.ShortCircuit,
		}
		ev.parallelGroup.Go(func() error {
			_, _, _ = worker.evalStatement(stmt)
			return nil
		})
	}
}

func cloneFuncs(src map[string]*ast.FuncDecl) map[string]*ast.FuncDecl {
	dst := make(map[string]*ast.FuncDecl, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneRecords(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// parallelInputDisabled rejects input() inside a parallel worker. The
// suspend/resume channel exchange a host.Session relies on is built for a
// single evaluation in flight; multiple workers racing to request input
// concurrently has no defined resolution in spec §5, so glim simply
// disallows it rather than guessing at an ordering.
func parallelInputDisabled(int) (string, bool) { return "", false }
