package eval

import (
	"golang.org/x/sync/errgroup"

	"github.com/glim-lang/glim/internal/ast"
)

// InputFunc supplies the value for one input() evaluation. It blocks until
// a value is available and returns ok=false if the caller should treat the
// program as abandoned (the host session was disposed mid-suspension).
type InputFunc func(line int) (value string, ok bool)

// HostFunc is a native Go function exposed to glim source as an ordinary
// callable name (spec §8's FFI supplement, grounded on the teacher's
// pkg/dwscript Engine.RegisterFunction + examples/ffi). Host functions
// resolve after declared `def` functions of the same name and before a
// variable holding a Lambda, so script code can shadow a host binding but
// a plain call still falls through to it.
type HostFunc func(args []Value) (Value, error)

// Evaluator walks an AST against a single flat Environment (spec §4.4).
// Unlike the teacher's lexically-chained interpreter, a glim Evaluator has
// exactly one active vars map at a time; calls swap it out and restore it
// rather than pushing a child scope onto a chain.
type Evaluator struct {
	Env *Environment

	// Out receives each print() argument's rendered text, one call per
	// print statement. The CLI writes straight to stdout; host.Session
	// appends to a buffer drained between steps.
	Out func(string)

	// Input is called for every input() expression with no value already
	// available. See InputFunc.
	Input InputFunc

	// ShortCircuit selects and/or evaluation strategy. Spec §4.3 leaves
	// short-circuiting an open question; the baseline (false) evaluates
	// both operands unconditionally, matching original_source's
	// interpreter.py, which never special-cases early exit for boolean
	// operators. Set true to skip the right operand once the left side
	// already determines the result.
	ShortCircuit bool

	// HostFuncs holds names registered via RegisterHostFunction, consulted
	// by evalCall between declared functions and Lambda-holding variables.
	HostFuncs map[string]HostFunc

	parallelGroup *errgroup.Group
}

// New builds an Evaluator over a fresh Environment.
func New(out func(string), input InputFunc) *Evaluator {
	return &Evaluator{
		Env:       NewEnvironment(),
		Out:       out,
		Input:     input,
		HostFuncs: make(map[string]HostFunc),
	}
}

// ctrlKind is the non-local control signal a statement evaluation can
// produce. Only Return exists: glim has no break/continue (spec §4.2's
// keyword list omits them).
type ctrlKind int

const (
	ctrlNone ctrlKind = iota
	ctrlReturn
)

type ctrl struct {
	kind  ctrlKind
	value Value
}

// Run evaluates every top-level statement in order. A Return at the top
// level is not an error (spec §4.2): it simply ends the program early with
// that value. The final value is whichever statement executed last, or
// null for an empty program.
func (ev *Evaluator) Run(program *ast.Program) (Value, *RuntimeError) {
	ev.parallelGroup = &errgroup.Group{}

	var last Value = NullValue{}
	for _, stmt := range program.Statements {
		v, c, err := ev.evalStatement(stmt)
		if err != nil {
			ev.parallelGroup.Wait() //nolint:errcheck // parallel workers never return an error worth surfacing here
			return nil, err
		}
		if c.kind == ctrlReturn {
			ev.parallelGroup.Wait() //nolint:errcheck
			return c.value, nil
		}
		last = v
	}

	ev.parallelGroup.Wait() //nolint:errcheck
	return last, nil
}

func (ev *Evaluator) evalStatement(stmt ast.Statement) (Value, ctrl, *RuntimeError) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v, err := ev.evalExpression(s.Expression)
		return v, ctrl{}, err

	case *ast.Assignment:
		v, err := ev.evalExpression(s.Value)
		if err != nil {
			return nil, ctrl{}, err
		}
		ev.Env.Assign(s.Name, v)
		return v, ctrl{}, nil

	case *ast.FieldAssignment:
		obj, err := ev.evalExpression(s.Object)
		if err != nil {
			return nil, ctrl{}, err
		}
		rec, ok := obj.(*RecordValue)
		if !ok {
			return nil, ctrl{}, newError(s.Line(), "type-error", "cannot assign field %q on a non-record value", s.Field)
		}
		if _, declared := rec.Values[s.Field]; !declared {
			return nil, ctrl{}, newError(s.Line(), "undefined-field", "undefined field %q on %s", s.Field, rec.TypeName)
		}
		v, err := ev.evalExpression(s.Value)
		if err != nil {
			return nil, ctrl{}, err
		}
		rec.Values[s.Field] = v
		return v, ctrl{}, nil

	case *ast.PrintStatement:
		v, err := ev.evalExpression(s.Value)
		if err != nil {
			return nil, ctrl{}, err
		}
		if ev.Out != nil {
			ev.Out(v.String())
		}
		return NullValue{}, ctrl{}, nil

	case *ast.DeleteStatement:
		ev.Env.Delete(s.Name)
		return NullValue{}, ctrl{}, nil

	case *ast.BlockStatement:
		return ev.evalBlock(s)

	case *ast.IfStatement:
		return ev.evalIf(s)

	case *ast.ForStatement:
		return ev.evalFor(s)

	case *ast.WhileStatement:
		return ev.evalWhile(s)

	case *ast.FuncDecl:
		ev.Env.Funcs[s.Name] = s
		return NullValue{}, ctrl{}, nil

	case *ast.StructDecl:
		ev.Env.Records[s.Name] = s.Fields
		return NullValue{}, ctrl{}, nil

	case *ast.ClassDecl:
		ev.Env.Records[s.Name] = s.Fields
		for _, m := range s.Methods {
			ev.Env.Funcs[s.Name+"."+m.Name] = m
		}
		return NullValue{}, ctrl{}, nil

	case *ast.ParallelStatement:
		ev.evalParallel(s)
		return NullValue{}, ctrl{}, nil

	case *ast.ReturnStatement:
		if s.Value == nil {
			return NullValue{}, ctrl{kind: ctrlReturn, value: NullValue{}}, nil
		}
		v, err := ev.evalExpression(s.Value)
		if err != nil {
			return nil, ctrl{}, err
		}
		return v, ctrl{kind: ctrlReturn, value: v}, nil

	default:
		return nil, ctrl{}, newError(stmt.Line(), "internal-error", "unhandled statement type %T", stmt)
	}
}

// evalBlock evaluates statements in order; the first Return propagates
// immediately. A block's value is its last statement's value, or null if
// the block is empty (spec §4.2).
func (ev *Evaluator) evalBlock(b *ast.BlockStatement) (Value, ctrl, *RuntimeError) {
	var last Value = NullValue{}
	for _, stmt := range b.Statements {
		v, c, err := ev.evalStatement(stmt)
		if err != nil {
			return nil, ctrl{}, err
		}
		if c.kind == ctrlReturn {
			return c.value, c, nil
		}
		last = v
	}
	return last, ctrl{}, nil
}

func (ev *Evaluator) evalIf(s *ast.IfStatement) (Value, ctrl, *RuntimeError) {
	condV, err := ev.evalExpression(s.Condition)
	if err != nil {
		return nil, ctrl{}, err
	}
	cond, ok := condV.(BoolValue)
	if !ok {
		return nil, ctrl{}, newError(s.Line(), "type-error", "if condition must be a bool, got %s", condV.Type())
	}
	if cond.V {
		return ev.evalBlock(s.Then)
	}
	if s.Else != nil {
		return ev.evalBlock(s.Else)
	}
	return NullValue{}, ctrl{}, nil
}

func (ev *Evaluator) evalFor(s *ast.ForStatement) (Value, ctrl, *RuntimeError) {
	if s.Init != nil {
		_, c, err := ev.evalStatement(s.Init)
		if err != nil {
			return nil, ctrl{}, err
		}
		if c.kind == ctrlReturn {
			return c.value, c, nil
		}
	}

	var last Value = NullValue{}
	for {
		if s.Cond != nil {
			condV, err := ev.evalExpression(s.Cond)
			if err != nil {
				return nil, ctrl{}, err
			}
			cond, ok := condV.(BoolValue)
			if !ok {
				return nil, ctrl{}, newError(s.Line(), "type-error", "for condition must be a bool, got %s", condV.Type())
			}
			if !cond.V {
				break
			}
		}

		v, c, err := ev.evalBlock(s.Body)
		if err != nil {
			return nil, ctrl{}, err
		}
		if c.kind == ctrlReturn {
			return c.value, c, nil
		}
		last = v

		if s.Update != nil {
			_, c, err := ev.evalStatement(s.Update)
			if err != nil {
				return nil, ctrl{}, err
			}
			if c.kind == ctrlReturn {
				return c.value, c, nil
			}
		}
	}
	return last, ctrl{}, nil
}

func (ev *Evaluator) evalWhile(s *ast.WhileStatement) (Value, ctrl, *RuntimeError) {
	var last Value = NullValue{}
	for {
		condV, err := ev.evalExpression(s.Cond)
		if err != nil {
			return nil, ctrl{}, err
		}
		cond, ok := condV.(BoolValue)
		if !ok {
			return nil, ctrl{}, newError(s.Line(), "type-error", "while condition must be a bool, got %s", condV.Type())
		}
		if !cond.V {
			break
		}
		v, c, err := ev.evalBlock(s.Body)
		if err != nil {
			return nil, ctrl{}, err
		}
		if c.kind == ctrlReturn {
			return c.value, c, nil
		}
		last = v
	}
	return last, ctrl{}, nil
}
