// Package eval implements glim's tree-walking evaluator: Value, Cell,
// Environment, and the statement/expression evaluation that walks the AST
// against an Environment, producing Values or suspending on input (spec §4.3).
package eval

import (
	"strconv"
	"strings"

	"github.com/glim-lang/glim/internal/ast"
)

// Value is the tagged-union runtime value (spec §3). The set of kinds is
// closed; the evaluator dispatches on concrete type rather than an open
// class hierarchy (spec §9).
type Value interface {
	Type() string
	String() string
}

// NumberValue is glim's only numeric kind: integer literals are promoted
// to float64 at read time (spec §3).
type NumberValue struct{ V float64 }

func (NumberValue) Type() string   { return "NUMBER" }
func (n NumberValue) String() string { return formatNumber(n.V) }

// formatNumber renders a float the way print() must: a single trailing
// ".0" for integral values, otherwise the shortest exact decimal form
// (spec §6).
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// StringValue is immutable text.
type StringValue struct{ V string }

func (StringValue) Type() string     { return "STRING" }
func (s StringValue) String() string { return s.V }

// BoolValue is a boolean.
type BoolValue struct{ V bool }

func (BoolValue) Type() string { return "BOOL" }
func (b BoolValue) String() string {
	if b.V {
		return "true"
	}
	return "false"
}

// NullValue is the null value.
type NullValue struct{}

func (NullValue) Type() string   { return "NULL" }
func (NullValue) String() string { return "null" }

// ArrayValue is an ordered, mutable sequence of Values. It is a pointer
// type so that array mutation through one binding is visible through
// every other binding that refers to the same array (spec §5's "resource
// policy": arrays are owned by the Cell that first creates them, shared
// by reference thereafter).
type ArrayValue struct {
	Elements []Value
}

func (*ArrayValue) Type() string { return "ARRAY" }
func (a *ArrayValue) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// RecordValue is a named, ordered collection of fields (spec §3). It is a
// pointer type: method bodies mutate fields through the receiver binding
// and those mutations must be visible to every other reference to the
// same instance, independent of the call-frame snapshot/restore discipline
// that governs name bindings (spec §4.4).
type RecordValue struct {
	TypeName string
	Fields   []string // declaration order
	Values   map[string]Value
}

func (*RecordValue) Type() string { return "RECORD" }
func (r *RecordValue) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f + ": " + r.Values[f].String()
	}
	return r.TypeName + " { " + strings.Join(parts, ", ") + " }"
}

// LambdaValue is a captured closure: parameter names, the body expression,
// and a frozen snapshot of the defining environment's vars (spec §3, §4.3).
type LambdaValue struct {
	Params   []string
	Body     ast.Expression
	Captured map[string]*Cell
}

func (*LambdaValue) Type() string   { return "LAMBDA" }
func (*LambdaValue) String() string { return "<lambda>" }

// equalValues implements the by-value comparison ==/!= must use for any
// two Values (spec §4.3): Records compare by type name and structural
// field equality, Arrays by length and pairwise equality, everything else
// by matching dynamic type and underlying value. Values of different
// dynamic type are simply unequal rather than a type error — unlike every
// other binary operator, == and != accept any combination of operands.
func equalValues(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.V == bv.V
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.V == bv.V
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.V == bv.V
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !equalValues(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *RecordValue:
		bv, ok := b.(*RecordValue)
		if !ok || av.TypeName != bv.TypeName || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for _, f := range av.Fields {
			if !equalValues(av.Values[f], bv.Values[f]) {
				return false
			}
		}
		return true
	case *LambdaValue:
		bv, ok := b.(*LambdaValue)
		return ok && av == bv
	default:
		return false
	}
}
