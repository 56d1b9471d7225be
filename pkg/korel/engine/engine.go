package engine

import "io"

// Engine is the public, programmatic interface to a symbolic reasoning
// engine instance. Callers define symbols, assert facts and variables,
// define rules, and invoke one of the two inference drivers. All operations
// on a single Engine must be serialized externally; Engine performs no
// internal locking (see §5 of the specification).
type Engine struct {
	kb *KnowledgeBase
}

// New returns an empty Engine, ready for symbol, fact, and rule definition.
func New() *Engine {
	return &Engine{kb: NewKnowledgeBase()}
}

// SetDebug toggles the engine's debug flag. When true, each recursive
// evaluation step, each fact match attempt, and each comparison emits a
// one-line diagnostic to the writer passed to SetDebugOutput (os.Stderr if
// none was set). This output is informational only, never part of the
// contract (§6).
func (e *Engine) SetDebug(on bool) {
	e.kb.debug = on
}

// SetDebugOutput directs debug diagnostics to w instead of the default
// os.Stderr. Passing nil restores the default.
func (e *Engine) SetDebugOutput(w io.Writer) {
	e.kb.debugWriter = w
}

// SetRecorder attaches an optional Recorder. It observes rule firings during
// ForwardChainingSaturate and every fact appended to the knowledge base,
// whether by AssertFact or by either forward-chaining driver. Pass nil to
// detach. The
// engine's own semantics are unaffected by whether a recorder is attached.
func (e *Engine) SetRecorder(r Recorder) {
	e.kb.recorder = r
}

// DefineSymbol registers a symbol with the given name and type tag. It
// panics (wrapping ErrSymbolAlreadyDefined) if a symbol with name already
// exists — this is a fatal usage error, not a logical outcome.
func (e *Engine) DefineSymbol(name, typeTag string) Symbol {
	return e.kb.symbols.define(name, typeTag)
}

// HasSymbol reports whether name has been defined.
func (e *Engine) HasSymbol(name string) bool {
	return e.kb.symbols.has(name)
}

// LookupSymbol returns the symbol registered under name, if any.
func (e *Engine) LookupSymbol(name string) (Symbol, bool) {
	return e.kb.symbols.lookup(name)
}

// AssertVariable inserts or overwrites name's binding with value. Last
// write wins.
func (e *Engine) AssertVariable(name string, value Value) {
	e.kb.bindings[name] = value
	e.kb.debugf("variable %s bound to %s", name, value)
}

// LookupVariable returns the value bound to name, if any.
func (e *Engine) LookupVariable(name string) (Value, bool) {
	v, ok := e.kb.bindings[name]
	return v, ok
}

// AssertFact appends (symbol, value) to the knowledge base unconditionally.
// Duplicate suppression is applied only during rule firing, not here — a
// caller may introduce duplicate facts directly.
func (e *Engine) AssertFact(symbol Symbol, value Value) {
	e.kb.addFact(Fact{Symbol: symbol, Value: value})
}

// Facts returns a copy of the current fact sequence, in insertion order.
func (e *Engine) Facts() []Fact {
	out := make([]Fact, len(e.kb.facts))
	copy(out, e.kb.facts)
	return out
}

// DefineRule appends a rule to the engine's rule sequence. Rules fire in
// definition order and are never mutated.
func (e *Engine) DefineRule(premise LogicalExpression, conclusion Fact) {
	e.kb.rules = append(e.kb.rules, Rule{Premise: premise, Conclusion: conclusion})
}

// Rules returns a copy of the current rule sequence, in definition order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.kb.rules))
	copy(out, e.kb.rules)
	return out
}

// ForwardChainingSimple runs a single pass of forward chaining: every rule
// whose premise is currently true (boolean mode only — no binding
// extension) has its conclusion staged, and all staged conclusions are
// appended once, after the pass. It is not a fixpoint; see
// ForwardChainingSaturate for that.
func (e *Engine) ForwardChainingSimple() {
	e.kb.forwardChainingSimple()
}

// ForwardChainingSaturate runs forward chaining to fixpoint: it repeatedly
// evaluates every rule's premise (extending the engine's variable bindings
// with whatever the evaluator discovers) and appends newly derived
// conclusions, stopping when a full pass adds nothing new. Running it twice
// in a row is a no-op the second time.
func (e *Engine) ForwardChainingSaturate() {
	e.kb.forwardChainingSaturate()
}

// BackwardChainingQuery reports whether goal is provable: either directly
// present (by value; see DESIGN.md) or derivable through a cycle-guarded
// recursive search over rules whose conclusion matches it.
func (e *Engine) BackwardChainingQuery(goal Fact) bool {
	return e.kb.prove(goal)
}
