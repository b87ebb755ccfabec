// Package host implements glim's embeddable Host Interface (spec §6): a
// session-oriented wrapper around the lexer/parser/evaluator pipeline that
// a surrounding application drives with new_session/run/supply_input/
// dispose, exactly the shape the teacher's pkg/dwscript.Engine exposes for
// DWScript (engine, then session.Eval), adapted to glim's suspend/resume
// input model.
package host

import "github.com/glim-lang/glim/internal/eval"

// Option configures an Engine, mirroring the functional-option pattern the
// teacher's dwscript.New(dwscript.WithTypeCheck(false)) uses.
type Option func(*Engine)

// WithShortCircuit selects and/or evaluation strategy for every session the
// Engine creates (spec §4.3's open question; see eval.Evaluator.ShortCircuit).
func WithShortCircuit(enabled bool) Option {
	return func(e *Engine) { e.shortCircuit = enabled }
}

// Engine holds configuration and registered host functions shared across
// every Session it creates.
type Engine struct {
	shortCircuit bool
	hostFuncs    map[string]eval.HostFunc
}

// NewEngine builds an Engine with the given options applied.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{hostFuncs: make(map[string]eval.HostFunc)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterHostFunction exposes a native Go function to glim source under
// name, callable as an ordinary function call (spec §8's FFI supplement).
// Registration is only visible to sessions created afterward.
func (e *Engine) RegisterHostFunction(name string, fn eval.HostFunc) {
	e.hostFuncs[name] = fn
}
