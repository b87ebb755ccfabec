package eval

import (
	"strings"
	"testing"

	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/parser"
)

// run lexes, parses, and evaluates source against a fresh Evaluator,
// collecting every print() line. Inputs are handed out in order; once they
// run out (or none were given), input() reports the input as abandoned.
func run(t *testing.T, source string, inputs ...string) ([]string, Value, *RuntimeError) {
	t.Helper()
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(l.Errors()) != 0 {
		t.Fatalf("lexer errors: %v", l.Errors())
	}
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}

	var out []string
	idx := 0
	ev := New(
		func(s string) { out = append(out, s) },
		func(line int) (string, bool) {
			if idx >= len(inputs) {
				return "", false
			}
			v := inputs[idx]
			idx++
			return v, true
		},
	)
	v, err := ev.Run(program)
	return out, v, err
}

func TestArithmeticPrecedenceAndFormatting(t *testing.T) {
	out, _, err := run(t, `print(3 + 4 * 2);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != "11.0" {
		t.Fatalf("got %v, want [11.0]", out)
	}
}

func TestDivisionByZero(t *testing.T) {
	_, _, err := run(t, `print(1 / 0);`)
	if err == nil || err.Kind != "division-by-zero" {
		t.Fatalf("expected division-by-zero error, got %v", err)
	}
}

func TestModuloByZero(t *testing.T) {
	_, _, err := run(t, `print(1 % 0);`)
	if err == nil || err.Kind != "division-by-zero" {
		t.Fatalf("expected division-by-zero error, got %v", err)
	}
}

func TestExponentRightAssociative(t *testing.T) {
	// 2 ^ (3 ^ 2) = 2 ^ 9 = 512, not (2 ^ 3) ^ 2 = 64.
	out, _, err := run(t, `print(2 ^ 3 ^ 2);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "512.0" {
		t.Fatalf("got %v, want [512.0]", out)
	}
}

func TestDeletedVariableDistinctFromUndefined(t *testing.T) {
	_, _, err := run(t, `let x = 1; delete(x); print(x);`)
	if err == nil || err.Kind != "deleted-variable" {
		t.Fatalf("expected deleted-variable error, got %v", err)
	}

	_, _, err2 := run(t, `print(neverBound);`)
	if err2 == nil || err2.Kind != "undefined-variable" {
		t.Fatalf("expected undefined-variable error, got %v", err2)
	}
}

func TestCallFrameRestoreDiscardsMutations(t *testing.T) {
	out, _, err := run(t, `
		let x = 1;
		def bump() { x = 99; return x; }
		print(bump());
		print(x);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "99.0" || out[1] != "1.0" {
		t.Fatalf("got %v, want [99.0 1.0]", out)
	}
}

func TestLambdaClosureCapturesByValueAtConstruction(t *testing.T) {
	out, _, err := run(t, `
		let x = 1;
		let f = () -> x;
		x = 2;
		print(f());
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// f captured x=1 at construction time; the later reassignment of x in
	// the outer frame does not affect what f() sees.
	if out[0] != "1.0" {
		t.Fatalf("got %v, want [1.0]", out)
	}
}

func TestZeroArgRecordConstructionAllNull(t *testing.T) {
	out, _, err := run(t, `
		struct Point { x, y }
		let p = Point();
		print(p.x);
		print(p.y);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "null" || out[1] != "null" {
		t.Fatalf("got %v, want [null null]", out)
	}
}

func TestMethodCallMutatesFieldVisibleAfterReturn(t *testing.T) {
	// The receiver stays bound under its call-site name for the body's
	// duration (spec §4.3's method-call paragraph), so the body reads and
	// writes the field through that same qualified name — "c" here, not a
	// bare "count" — exactly like any other caller of Counter would.
	out, _, err := run(t, `
		class Counter {
			count;
			def inc() { c.count = c.count + 1; }
		}
		let c = Counter(0);
		c.inc();
		c.inc();
		print(c.count);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "2.0" {
		t.Fatalf("got %v, want [2.0]", out)
	}
}

func TestFieldAccessOnMethodCallResultIsFine(t *testing.T) {
	// Field access (unlike method-call dispatch) has no receiver-rebinding
	// requirement, so its object may be any expression, including another
	// method call's result.
	out, _, err := run(t, `
		struct Point { x, y }
		let xs = {Point(1, 2)};
		print(xs.get(0).x);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "1.0" {
		t.Fatalf("got %v, want [1.0]", out)
	}
}

func TestMethodCallReceiverMustBeIdentifier(t *testing.T) {
	_, _, err := run(t, `
		struct Point { x, y }
		let xs = {Point(1, 2)};
		print(xs.get(0).length());
	`)
	if err == nil || err.Kind != "invalid-receiver" {
		t.Fatalf("expected invalid-receiver error, got %v", err)
	}
}

func TestArrayGetSetLengthPush(t *testing.T) {
	out, _, err := run(t, `
		let xs = {1, 2, 3};
		xs.push(4);
		print(xs.length());
		xs.set(0, 99);
		print(xs.get(0));
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "4.0" || out[1] != "99.0" {
		t.Fatalf("got %v, want [4.0 99.0]", out)
	}
}

func TestArrayIndexOutOfRange(t *testing.T) {
	_, _, err := run(t, `let xs = {1, 2}; print(xs.get(5));`)
	if err == nil || err.Kind != "index-out-of-range" {
		t.Fatalf("expected index-out-of-range error, got %v", err)
	}
}

func TestEqualityAcrossDifferentTypesNeverErrors(t *testing.T) {
	out, _, err := run(t, `
		print(1 == "1");
		print(null == false);
		print({1, 2} == {1, 2});
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "false" || out[1] != "false" || out[2] != "true" {
		t.Fatalf("got %v, want [false false true]", out)
	}
}

func TestInputSuspensionResumesWithSuppliedValue(t *testing.T) {
	out, _, err := run(t, `
		let name = input();
		print(name);
	`, "Ada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "Ada" {
		t.Fatalf("got %v, want [Ada]", out)
	}
}

func TestInputNumericStringParsesAsNumber(t *testing.T) {
	out, _, err := run(t, `let n = input(); print(n + 1);`, "41")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "42.0" {
		t.Fatalf("got %v, want [42.0]", out)
	}
}

func TestInputAbandonedSurfacesAsRuntimeError(t *testing.T) {
	_, _, err := run(t, `let n = input(); print(n);`)
	if err == nil || err.Kind != "input-abandoned" {
		t.Fatalf("expected input-abandoned error, got %v", err)
	}
}

func TestEmptyForBodyStillRunsUpdateAndTerminates(t *testing.T) {
	out, _, err := run(t, `
		let i = 0;
		for (; i < 3; i = i + 1) { }
		print(i);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "3.0" {
		t.Fatalf("got %v, want [3.0]", out)
	}
}

func TestEmptyProgramYieldsNull(t *testing.T) {
	_, v, err := run(t, ``)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Type() != "NULL" {
		t.Fatalf("got %v, want null", v)
	}
}

func TestTopLevelReturnEndsProgramEarly(t *testing.T) {
	out, v, err := run(t, `
		print(1);
		return 42;
		print(2);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != "1.0" {
		t.Fatalf("got %v, want only [1.0] printed before the early return", out)
	}
	if n, ok := v.(NumberValue); !ok || n.V != 42 {
		t.Fatalf("got %v, want 42.0", v)
	}
}

func TestKeywordOperatorsAreCaseInsensitive(t *testing.T) {
	out, _, err := run(t, `print(TRUE AND not FALSE);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "true" {
		t.Fatalf("got %v, want [true]", out)
	}
}

func TestUndefinedFunctionOrRecord(t *testing.T) {
	_, _, err := run(t, `print(doesNotExist());`)
	if err == nil || err.Kind != "undefined-callable" {
		t.Fatalf("expected undefined-callable error, got %v", err)
	}
}

func TestParallelBlockRunsAllStatementsBeforeCompletion(t *testing.T) {
	out, _, err := run(t, `
		parallel {
			print("a");
			print("b");
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := strings.Join(out, ",")
	if !strings.Contains(joined, "a") || !strings.Contains(joined, "b") {
		t.Fatalf("expected both worker outputs present (order unspecified), got %v", out)
	}
}

func TestHostFunctionCallableAndShadowedByScriptDef(t *testing.T) {
	l := lexer.New(`print(native(3, 4)); def native(a, b) { return 1000; } print(native(3, 4));`)
	p := parser.New(l)
	program := p.ParseProgram()

	var out []string
	ev := New(func(s string) { out = append(out, s) }, nil)
	ev.HostFuncs["native"] = func(args []Value) (Value, error) {
		a := args[0].(NumberValue).V
		b := args[1].(NumberValue).V
		return NumberValue{a + b}, nil
	}
	_, err := ev.Run(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "7.0" {
		t.Fatalf("expected host function result 7.0, got %v", out[0])
	}
	if out[1] != "1000.0" {
		t.Fatalf("expected script def to shadow host function, got %v", out[1])
	}
}

func TestShortCircuitOptIn(t *testing.T) {
	l := lexer.New(`print(false and sideEffect());`)
	p := parser.New(l)
	program := p.ParseProgram()

	called := false
	ev := New(func(string) {}, nil)
	ev.ShortCircuit = true
	ev.HostFuncs["sideEffect"] = func(args []Value) (Value, error) {
		called = true
		return BoolValue{true}, nil
	}
	_, err := ev.Run(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected short-circuit to skip the right operand")
	}
}
