package eval

import "github.com/glim-lang/glim/internal/ast"

// Cell holds one variable binding. Cells are never mutated in place: every
// assignment or delete installs a fresh *Cell under the bound name. That
// invariant is what makes a shallow map copy behave as a true value-copied
// snapshot (spec §3, §9's design note) — a snapshot taken before a call can
// never be disturbed by anything the call body does afterward, because the
// body never writes through a Cell pointer the snapshot also holds; it only
// ever replaces map entries in its own (cloned) vars map.
type Cell struct {
	Value   Value
	Deleted bool
}

// LookupStatus distinguishes "never bound" from "bound then deleted" so the
// evaluator can produce spec §7's two distinct runtime-error messages.
type LookupStatus int

const (
	Found LookupStatus = iota
	Undefined
	WasDeleted
)

// Environment is the flat (vars, funcs, records) triple spec §4.4 calls
// for — deliberately not a lexically chained scope stack. A call frame
// snapshots and restores `vars` wholesale; funcs and records are write-once
// at declaration time and read-only afterward, so they need no such
// discipline.
type Environment struct {
	vars    map[string]*Cell
	Funcs   map[string]*ast.FuncDecl // qualified as "Type.method" for methods
	Records map[string][]string      // type name -> declared field order
}

// NewEnvironment returns an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{
		vars:    make(map[string]*Cell),
		Funcs:   make(map[string]*ast.FuncDecl),
		Records: make(map[string][]string),
	}
}

// Lookup resolves name against vars, reporting whether it was never bound,
// bound then deleted, or live.
func (e *Environment) Lookup(name string) (Value, LookupStatus) {
	c, ok := e.vars[name]
	if !ok {
		return nil, Undefined
	}
	if c.Deleted {
		return nil, WasDeleted
	}
	return c.Value, Found
}

// Assign installs a fresh, non-deleted Cell for name, discarding any
// previous deleted-flag (spec §4.4: "re-assignment clears the flag").
func (e *Environment) Assign(name string, v Value) {
	e.vars[name] = &Cell{Value: v}
}

// Delete marks name's Cell as deleted. It replaces the map entry with a new
// Cell rather than flipping a flag on the existing one, preserving the
// invariant that Cells are never mutated after creation.
func (e *Environment) Delete(name string) {
	e.vars[name] = &Cell{Deleted: true}
}

// Snapshot returns a shallow copy of vars: a new map with the same Cell
// pointers. Because Cells are immutable after creation, this copy is
// effectively a value-copied snapshot — mutations made through the live
// map after this point never touch the cells the snapshot's map entries
// point to.
func (e *Environment) Snapshot() map[string]*Cell {
	snap := make(map[string]*Cell, len(e.vars))
	for k, v := range e.vars {
		snap[k] = v
	}
	return snap
}

// installVars swaps in m as the live vars map, returning a closure that
// restores the previous map — the call-frame discipline spec §4.4 and §9
// describe (a call's rebindings land in its own map and vanish on return;
// field changes made through a shared *RecordValue or *ArrayValue stay
// visible, since those values are not copied).
func (e *Environment) installVars(m map[string]*Cell) (restore func()) {
	saved := e.vars
	e.vars = m
	return func() { e.vars = saved }
}
