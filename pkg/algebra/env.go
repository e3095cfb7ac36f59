package algebra

import "github.com/atomgraph/webalgebra/pkg/rdfio"

// Scope is one lexical frame of variable bindings.
type Scope map[string]any

// Env carries the evaluation state threaded through a workflow: a stack of
// lexical scopes and an optional current row. Evaluation is single-threaded,
// so Env does no locking.
type Env struct {
	scopes []Scope
	row    rdfio.Row
	hasRow bool
}

// NewEnv returns an environment with a single empty root scope and no
// current row.
func NewEnv() *Env {
	return &Env{scopes: []Scope{{}}}
}

// Depth returns the number of scopes on the stack.
func (e *Env) Depth() int { return len(e.scopes) }

// PushScope pushes a fresh innermost scope and returns the function that
// pops it. The pop must run even when evaluation inside the scope fails.
func (e *Env) PushScope() func() {
	e.scopes = append(e.scopes, Scope{})
	return func() {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// Define binds name in the innermost scope, overwriting any previous
// binding there. Bindings in outer scopes are shadowed, not modified.
func (e *Env) Define(name string, value any) {
	e.scopes[len(e.scopes)-1][name] = value
}

// Lookup resolves name against the scope stack, innermost first.
func (e *Env) Lookup(name string) (any, error) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, nil
		}
	}
	return nil, &MissingBindingError{Name: name, Scope: "stack"}
}

// SwapRow installs r as the current row and returns the function that
// restores the previous row (or the no-row state). The restore must run
// even when evaluation under the row fails.
func (e *Env) SwapRow(r rdfio.Row) func() {
	prev, had := e.row, e.hasRow
	e.row, e.hasRow = r, true
	return func() {
		e.row, e.hasRow = prev, had
	}
}

// Row returns the current row, if any.
func (e *Env) Row() (rdfio.Row, bool) {
	return e.row, e.hasRow
}

// Column resolves name against the current row.
func (e *Env) Column(name string) (any, error) {
	if e.hasRow {
		if b, ok := e.row[name]; ok {
			return b, nil
		}
	}
	return nil, &MissingBindingError{Name: name, Scope: "row"}
}
