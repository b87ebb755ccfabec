package host

import (
	"strings"
	"sync"

	"github.com/glim-lang/glim/internal/ast"
	"github.com/glim-lang/glim/internal/errors"
	"github.com/glim-lang/glim/internal/eval"
	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/parser"
)

// Status is a StepResult's outcome (spec §6).
type Status string

const (
	Complete      Status = "Complete"
	InputRequired Status = "InputRequired"
	RuntimeError  Status = "RuntimeError"
)

// StepResult is returned from every Run/SupplyInput call (spec §6).
type StepResult struct {
	Output  []string
	Status  Status
	Line    int
	Message string
}

// Session is one suspendable evaluation of a parsed program. The
// evaluator runs on its own goroutine for the lifetime of the session;
// "suspending" on input() is simply that goroutine blocking on a channel
// read, so no re-execution or explicit continuation state is needed — the
// Go call stack of the evaluator goroutine is the continuation (spec §5).
type Session struct {
	program *ast.Program
	source  string
	file    string

	evaluator *eval.Evaluator

	reportCh chan StepResult // evaluator goroutine -> Run/SupplyInput caller
	supplyCh chan string     // Run/SupplyInput caller -> evaluator goroutine

	mu      sync.Mutex
	started bool
	done    bool
	output  []string
}

// NewSession lexes and parses source, returning the first static error
// encountered (if any) instead of a Session.
func (e *Engine) NewSession(source string) (*Session, *errors.CompilerError) {
	return e.newSession(source, "")
}

// NewSessionFile is NewSession with a file name attached to error output.
func (e *Engine) NewSessionFile(source, file string) (*Session, *errors.CompilerError) {
	return e.newSession(source, file)
}

func (e *Engine) newSession(source, file string) (*Session, *errors.CompilerError) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		return nil, errors.FromLexErrors(lexErrs, source, file)[0]
	}
	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		return nil, errors.FromParseErrors(parseErrs, source, file)[0]
	}

	s := &Session{
		program:  program,
		source:   source,
		file:     file,
		// reportCh is buffered by one so the evaluator goroutine's final send
		// (Complete or RuntimeError) never blocks forever if Dispose already
		// walked away without reading it.
		reportCh: make(chan StepResult, 1),
		supplyCh: make(chan string),
	}

	ev := eval.New(s.appendOutput, s.requestInput)
	ev.ShortCircuit = e.shortCircuit
	for name, fn := range e.hostFuncs {
		ev.HostFuncs[name] = fn
	}
	s.evaluator = ev
	return s, nil
}

// NewSession is the package-level convenience constructor using a default
// Engine, matching spec §6's literal signature.
func NewSession(source string) (*Session, *errors.CompilerError) {
	return NewEngine().NewSession(source)
}

func (s *Session) appendOutput(line string) {
	s.mu.Lock()
	s.output = append(s.output, line)
	s.mu.Unlock()
}

func (s *Session) drainOutput() []string {
	s.mu.Lock()
	out := s.output
	s.output = nil
	s.mu.Unlock()
	return out
}

// requestInput is the evaluator's InputFunc: it reports InputRequired to
// whichever goroutine is blocked on reportCh, then blocks itself on
// supplyCh until SupplyInput provides a value or the session is disposed.
func (s *Session) requestInput(line int) (string, bool) {
	s.reportCh <- StepResult{Output: s.drainOutput(), Status: InputRequired, Line: line}
	v, ok := <-s.supplyCh
	return v, ok
}

// Run starts the evaluator goroutine on first call and blocks until the
// program completes, hits a runtime error, or suspends on input().
// Subsequent calls after completion just report Complete again.
func (s *Session) Run() StepResult {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return StepResult{Status: Complete}
	}
	alreadyStarted := s.started
	s.started = true
	s.mu.Unlock()

	if !alreadyStarted {
		go s.runEvaluator()
	}
	return <-s.reportCh
}

func (s *Session) runEvaluator() {
	_, runErr := s.evaluator.Run(s.program)

	s.mu.Lock()
	s.done = true
	s.mu.Unlock()

	if runErr != nil {
		s.reportCh <- StepResult{Output: s.drainOutput(), Status: RuntimeError, Line: runErr.Line, Message: runErr.Message}
		return
	}
	s.reportCh <- StepResult{Output: s.drainOutput(), Status: Complete}
}

// SupplyInput resumes a session suspended on InputRequired, then blocks for
// the next StepResult exactly like Run.
func (s *Session) SupplyInput(value string) StepResult {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done {
		return StepResult{Status: Complete}
	}

	s.supplyCh <- value
	return <-s.reportCh
}

// Dispose abandons the session. If the evaluator goroutine is blocked
// waiting for input, closing supplyCh wakes it with ok=false, which the
// evaluator surfaces as an input-abandoned runtime error that this
// session never reports anywhere further (the caller has already stopped
// listening).
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	if s.started {
		close(s.supplyCh)
	}
}

// Output returns the printed output not yet handed out in a StepResult,
// joined with newlines. Every Run/SupplyInput result drains the buffer, so
// lines already returned there are not included.
func (s *Session) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.output, "\n")
}
