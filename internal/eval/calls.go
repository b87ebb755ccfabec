package eval

import "github.com/glim-lang/glim/internal/ast"

// evalCall resolves `name(args)` or `<expr>(args)` (spec §4.3): a bare
// identifier is tried, in order, as a record type (construction), a
// declared function (call), a registered host function, then a variable
// holding a Lambda (invocation).
// Any other callee expression is evaluated and must itself produce a
// Lambda.
func (ev *Evaluator) evalCall(e *ast.CallExpression) (Value, *RuntimeError) {
	if ident, ok := e.Function.(*ast.Identifier); ok {
		name := ident.Value

		if fields, isRecord := ev.Env.Records[name]; isRecord {
			return ev.constructRecord(e.Line(), name, fields, e.Arguments)
		}
		if def, isFunc := ev.Env.Funcs[name]; isFunc {
			args, err := ev.evalArgs(e.Arguments)
			if err != nil {
				return nil, err
			}
			return ev.callFunction(e.Line(), def, args)
		}
		if hostFn, isHost := ev.HostFuncs[name]; isHost {
			args, err := ev.evalArgs(e.Arguments)
			if err != nil {
				return nil, err
			}
			v, hostErr := hostFn(args)
			if hostErr != nil {
				return nil, newError(e.Line(), "host-function-error", "%s: %s", name, hostErr.Error())
			}
			return v, nil
		}
		if v, status := ev.Env.Lookup(name); status == Found {
			if lambda, isLambda := v.(*LambdaValue); isLambda {
				args, err := ev.evalArgs(e.Arguments)
				if err != nil {
					return nil, err
				}
				return ev.callLambda(e.Line(), lambda, args)
			}
			return nil, newError(e.Line(), "type-error", "%q is not callable", name)
		}
		return nil, newError(e.Line(), "undefined-callable", "undefined function or record %q", name)
	}

	fnV, err := ev.evalExpression(e.Function)
	if err != nil {
		return nil, err
	}
	lambda, ok := fnV.(*LambdaValue)
	if !ok {
		return nil, newError(e.Line(), "type-error", "value of type %s is not callable", fnV.Type())
	}
	args, err := ev.evalArgs(e.Arguments)
	if err != nil {
		return nil, err
	}
	return ev.callLambda(e.Line(), lambda, args)
}

func (ev *Evaluator) evalArgs(exprs []ast.Expression) ([]Value, *RuntimeError) {
	args := make([]Value, len(exprs))
	for i, a := range exprs {
		v, err := ev.evalExpression(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// constructRecord builds a record instance. Zero arguments is always legal
// (spec §4.3): every field is bound to null regardless of how many fields
// the type declares. Otherwise the argument count must exactly match the
// declared field count, filled positionally in declaration order.
func (ev *Evaluator) constructRecord(line int, typeName string, fields []string, argExprs []ast.Expression) (Value, *RuntimeError) {
	values := make(map[string]Value, len(fields))
	if len(argExprs) == 0 {
		for _, f := range fields {
			values[f] = NullValue{}
		}
		return &RecordValue{TypeName: typeName, Fields: fields, Values: values}, nil
	}
	if len(argExprs) != len(fields) {
		return nil, newError(line, "arity-mismatch", "%s takes %d field(s), got %d argument(s)", typeName, len(fields), len(argExprs))
	}
	for i, f := range fields {
		v, err := ev.evalExpression(argExprs[i])
		if err != nil {
			return nil, err
		}
		values[f] = v
	}
	return &RecordValue{TypeName: typeName, Fields: fields, Values: values}, nil
}

// callFunction executes a `def`-declared function under the call-frame
// discipline of spec §4.4: snapshot vars, bind parameters over a clone of
// that snapshot, evaluate the body, then restore the original vars
// unconditionally — discarding the parameter bindings and overwriting any
// mutation the body made to a pre-existing name.
func (ev *Evaluator) callFunction(line int, def *ast.FuncDecl, args []Value) (Value, *RuntimeError) {
	if len(args) != len(def.Params) {
		return nil, newError(line, "arity-mismatch", "%s takes %d argument(s), got %d", def.Name, len(def.Params), len(args))
	}
	bodyVars := cloneCells(ev.Env.Snapshot())
	bindParams(bodyVars, def.Params, args)

	restore := ev.Env.installVars(bodyVars)
	defer restore()

	v, c, err := ev.evalBlock(def.Body)
	if err != nil {
		return nil, err
	}
	if c.kind == ctrlReturn {
		return c.value, nil
	}
	return v, nil
}

// callLambda invokes a closure. Unlike callFunction, the body starts from
// the snapshot captured at construction time, not the caller's current
// vars — that is what makes it a lexical closure rather than another
// dynamic-scope call frame (spec §3, §4.3).
func (ev *Evaluator) callLambda(line int, l *LambdaValue, args []Value) (Value, *RuntimeError) {
	if len(args) != len(l.Params) {
		return nil, newError(line, "arity-mismatch", "lambda takes %d argument(s), got %d", len(l.Params), len(args))
	}
	bodyVars := cloneCells(l.Captured)
	bindParams(bodyVars, l.Params, args)

	restore := ev.Env.installVars(bodyVars)
	defer restore()

	return ev.evalExpression(l.Body)
}

// evalMethodCall dispatches `obj.method(args)`. The receiver must be a
// plain variable so it can remain bound under its own name while the
// method body runs (spec §4.3) — arbitrary receiver expressions (e.g. a
// call result) are rejected without being evaluated, since there would be
// no name to rebind the receiver under.
func (ev *Evaluator) evalMethodCall(e *ast.MethodCall) (Value, *RuntimeError) {
	ident, ok := e.Object.(*ast.Identifier)
	if !ok {
		return nil, newError(e.Line(), "invalid-receiver", "method call receiver must be a variable")
	}
	recvV, status := ev.Env.Lookup(ident.Value)
	if status != Found {
		return nil, newError(e.Line(), "undefined-variable", "undefined variable %q", ident.Value)
	}

	if arr, isArray := recvV.(*ArrayValue); isArray {
		args, err := ev.evalArgs(e.Arguments)
		if err != nil {
			return nil, err
		}
		return ev.callArrayMethod(e.Line(), arr, e.Method, args)
	}

	rec, ok := recvV.(*RecordValue)
	if !ok {
		return nil, newError(e.Line(), "type-error", "cannot call method %q on a non-record value", e.Method)
	}
	qualified := rec.TypeName + "." + e.Method
	def, ok := ev.Env.Funcs[qualified]
	if !ok {
		return nil, newError(e.Line(), "undefined-method", "undefined method %q on %s", e.Method, rec.TypeName)
	}
	args, err := ev.evalArgs(e.Arguments)
	if err != nil {
		return nil, err
	}
	if len(args) != len(def.Params) {
		return nil, newError(e.Line(), "arity-mismatch", "%s takes %d argument(s), got %d", qualified, len(def.Params), len(args))
	}

	bodyVars := cloneCells(ev.Env.Snapshot())
	bindParams(bodyVars, def.Params, args)
	// The receiver keeps its original binding (already present in the
	// snapshot we cloned from), so `obj.field` inside the method body
	// resolves to this same instance.

	restore := ev.Env.installVars(bodyVars)
	defer restore()

	v, c, err := ev.evalBlock(def.Body)
	if err != nil {
		return nil, err
	}
	if c.kind == ctrlReturn {
		return c.value, nil
	}
	return v, nil
}

// callArrayMethod implements the built-in array operations. Arrays have no
// bracket syntax in glim (spec §4.1's punctuation set has no index
// operator); get/set/length/push cover indexing and mutation through the
// existing method-call grammar instead.
func (ev *Evaluator) callArrayMethod(line int, arr *ArrayValue, method string, args []Value) (Value, *RuntimeError) {
	switch method {
	case "length":
		if len(args) != 0 {
			return nil, newError(line, "arity-mismatch", "length() takes no arguments")
		}
		return NumberValue{float64(len(arr.Elements))}, nil

	case "push":
		if len(args) != 1 {
			return nil, newError(line, "arity-mismatch", "push() takes exactly one argument")
		}
		arr.Elements = append(arr.Elements, args[0])
		return NullValue{}, nil

	case "get":
		if len(args) != 1 {
			return nil, newError(line, "arity-mismatch", "get() takes exactly one argument")
		}
		idx, err := arrayIndex(line, arr, args[0])
		if err != nil {
			return nil, err
		}
		return arr.Elements[idx], nil

	case "set":
		if len(args) != 2 {
			return nil, newError(line, "arity-mismatch", "set() takes exactly two arguments")
		}
		idx, err := arrayIndex(line, arr, args[0])
		if err != nil {
			return nil, err
		}
		arr.Elements[idx] = args[1]
		return NullValue{}, nil

	default:
		return nil, newError(line, "undefined-method", "undefined array method %q", method)
	}
}

func arrayIndex(line int, arr *ArrayValue, v Value) (int, *RuntimeError) {
	n, ok := v.(NumberValue)
	if !ok {
		return 0, newError(line, "type-error", "array index must be a number, got %s", v.Type())
	}
	idx := int(n.V)
	if idx < 0 || idx >= len(arr.Elements) {
		return 0, newError(line, "index-out-of-range", "array index %d out of range [0, %d)", idx, len(arr.Elements))
	}
	return idx, nil
}

func cloneCells(src map[string]*Cell) map[string]*Cell {
	dst := make(map[string]*Cell, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func bindParams(vars map[string]*Cell, params []string, args []Value) {
	for i, p := range params {
		vars[p] = &Cell{Value: args[i]}
	}
}
