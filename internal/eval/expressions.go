package eval

import (
	"math"
	"strconv"

	"github.com/glim-lang/glim/internal/ast"
)

func (ev *Evaluator) evalExpression(expr ast.Expression) (Value, *RuntimeError) {
	switch e := expr.(type) {
	case *ast.Identifier:
		v, status := ev.Env.Lookup(e.Value)
		switch status {
		case Found:
			return v, nil
		case WasDeleted:
			return nil, newError(e.Line(), "deleted-variable", "deleted variable %q", e.Value)
		default:
			return nil, newError(e.Line(), "undefined-variable", "undefined variable %q", e.Value)
		}

	case *ast.NumberLiteral:
		return NumberValue{e.Value}, nil

	case *ast.StringLiteral:
		return StringValue{e.Value}, nil

	case *ast.BoolLiteral:
		return BoolValue{e.Value}, nil

	case *ast.NullLiteral:
		return NullValue{}, nil

	case *ast.GroupedExpression:
		return ev.evalExpression(e.Expression)

	case *ast.UnaryExpression:
		return ev.evalUnary(e)

	case *ast.BinaryExpression:
		return ev.evalBinary(e)

	case *ast.ArrayLiteral:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := ev.evalExpression(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &ArrayValue{Elements: elems}, nil

	case *ast.Lambda:
		return &LambdaValue{Params: e.Params, Body: e.Body, Captured: ev.Env.Snapshot()}, nil

	case *ast.CallExpression:
		return ev.evalCall(e)

	case *ast.FieldAccess:
		return ev.evalFieldAccess(e)

	case *ast.MethodCall:
		return ev.evalMethodCall(e)

	case *ast.InputExpression:
		return ev.evalInput(e)

	default:
		return nil, newError(expr.Line(), "internal-error", "unhandled expression type %T", expr)
	}
}

func (ev *Evaluator) evalUnary(e *ast.UnaryExpression) (Value, *RuntimeError) {
	right, err := ev.evalExpression(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "-":
		n, ok := right.(NumberValue)
		if !ok {
			return nil, newError(e.Line(), "type-error", "unary '-' requires a number, got %s", right.Type())
		}
		return NumberValue{-n.V}, nil
	case "+":
		n, ok := right.(NumberValue)
		if !ok {
			return nil, newError(e.Line(), "type-error", "unary '+' requires a number, got %s", right.Type())
		}
		return NumberValue{n.V}, nil
	case "not":
		b, ok := right.(BoolValue)
		if !ok {
			return nil, newError(e.Line(), "type-error", "'not' requires a bool, got %s", right.Type())
		}
		return BoolValue{!b.V}, nil
	default:
		return nil, newError(e.Line(), "internal-error", "unknown unary operator %q", e.Operator)
	}
}

func (ev *Evaluator) evalBinary(e *ast.BinaryExpression) (Value, *RuntimeError) {
	// and/or evaluate both operands unconditionally by default (spec §4.3's
	// open question on short-circuiting); ShortCircuit opts into early exit.
	if e.Operator == "and" || e.Operator == "or" {
		return ev.evalLogical(e)
	}

	left, err := ev.evalExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpression(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "==":
		return BoolValue{equalValues(left, right)}, nil
	case "!=":
		return BoolValue{!equalValues(left, right)}, nil
	case "+":
		if ln, lok := left.(NumberValue); lok {
			rn, rok := right.(NumberValue)
			if !rok {
				return nil, newError(e.Line(), "type-error", "cannot add %s and %s", left.Type(), right.Type())
			}
			return NumberValue{ln.V + rn.V}, nil
		}
		if ls, lok := left.(StringValue); lok {
			rs, rok := right.(StringValue)
			if !rok {
				return nil, newError(e.Line(), "type-error", "cannot concatenate %s and %s", left.Type(), right.Type())
			}
			return StringValue{ls.V + rs.V}, nil
		}
		return nil, newError(e.Line(), "type-error", "'+' requires two numbers or two strings, got %s and %s", left.Type(), right.Type())
	case "-", "*", "/", "%", "^", "<", ">", "<=", ">=":
		ln, lok := left.(NumberValue)
		rn, rok := right.(NumberValue)
		if !lok || !rok {
			return nil, newError(e.Line(), "type-error", "'%s' requires two numbers, got %s and %s", e.Operator, left.Type(), right.Type())
		}
		return ev.evalNumericBinary(e.Line(), e.Operator, ln.V, rn.V)
	default:
		return nil, newError(e.Line(), "internal-error", "unknown binary operator %q", e.Operator)
	}
}

func (ev *Evaluator) evalNumericBinary(line int, op string, l, r float64) (Value, *RuntimeError) {
	switch op {
	case "-":
		return NumberValue{l - r}, nil
	case "*":
		return NumberValue{l * r}, nil
	case "/":
		if r == 0 {
			return nil, newError(line, "division-by-zero", "division by zero")
		}
		return NumberValue{l / r}, nil
	case "%":
		if r == 0 {
			return nil, newError(line, "division-by-zero", "modulus by zero")
		}
		return NumberValue{math.Mod(l, r)}, nil
	case "^":
		return NumberValue{math.Pow(l, r)}, nil
	case "<":
		return BoolValue{l < r}, nil
	case ">":
		return BoolValue{l > r}, nil
	case "<=":
		return BoolValue{l <= r}, nil
	case ">=":
		return BoolValue{l >= r}, nil
	default:
		return nil, newError(line, "internal-error", "unknown numeric operator %q", op)
	}
}

func (ev *Evaluator) evalLogical(e *ast.BinaryExpression) (Value, *RuntimeError) {
	left, err := ev.evalExpression(e.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(BoolValue)
	if !ok {
		return nil, newError(e.Line(), "type-error", "'%s' requires two bools, got %s on the left", e.Operator, left.Type())
	}

	if ev.ShortCircuit {
		if e.Operator == "and" && !lb.V {
			return BoolValue{false}, nil
		}
		if e.Operator == "or" && lb.V {
			return BoolValue{true}, nil
		}
	}

	right, err := ev.evalExpression(e.Right)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(BoolValue)
	if !ok {
		return nil, newError(e.Line(), "type-error", "'%s' requires two bools, got %s on the right", e.Operator, right.Type())
	}

	if e.Operator == "and" {
		return BoolValue{lb.V && rb.V}, nil
	}
	return BoolValue{lb.V || rb.V}, nil
}

func (ev *Evaluator) evalFieldAccess(e *ast.FieldAccess) (Value, *RuntimeError) {
	objV, err := ev.evalExpression(e.Object)
	if err != nil {
		return nil, err
	}
	rec, ok := objV.(*RecordValue)
	if !ok {
		return nil, newError(e.Line(), "type-error", "cannot access field %q on a non-record value", e.Field)
	}
	v, declared := rec.Values[e.Field]
	if !declared {
		return nil, newError(e.Line(), "undefined-field", "undefined field %q on %s", e.Field, rec.TypeName)
	}
	return v, nil
}

func (ev *Evaluator) evalInput(e *ast.InputExpression) (Value, *RuntimeError) {
	if ev.Input == nil {
		return nil, newError(e.Line(), "internal-error", "no input source configured")
	}
	raw, ok := ev.Input(e.Line())
	if !ok {
		return nil, newError(e.Line(), "input-abandoned", "input() was never supplied a value")
	}
	if n, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
		return NumberValue{n}, nil
	}
	return StringValue{raw}, nil
}
