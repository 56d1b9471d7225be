package engine

// forwardChainingSimple runs a single pass over the rules in definition
// order: for each rule whose premise evaluates true (boolean mode, against
// the engine's current bindings), the conclusion is staged if not already
// present. All staged conclusions are appended after the pass — this is a
// single step, not a fixpoint; see §4.7 and §9 of the specification for why
// both drivers are kept.
func (kb *KnowledgeBase) forwardChainingSimple() {
	var staged []Fact
	for _, rule := range kb.rules {
		kb.debugf("evaluating rule premise for conclusion %s=%s", rule.Conclusion.Symbol.Name, rule.Conclusion.Value)
		if isTrue(kb, rule.Premise) && !containsFact(kb.facts, rule.Conclusion) {
			staged = append(staged, rule.Conclusion)
		}
	}
	for _, f := range staged {
		if !containsFact(kb.facts, f) {
			kb.addFact(f)
		}
	}
}

// forwardChainingSaturate iterates rules to fixpoint: each iteration
// evaluates every rule's premise via the full evaluator (so variable
// bindings discovered during evaluation are merged into the engine's
// binding map), stages conclusions, and appends any conclusion not already
// present. Iteration stops when a pass adds no new facts. Termination is
// guaranteed because the fact sequence only grows, duplicates are
// suppressed, and the value/symbol universe is finite.
func (kb *KnowledgeBase) forwardChainingSaturate() {
	for {
		progress := false
		var staged []Fact

		for _, rule := range kb.rules {
			bindings, ok := evaluate(kb, rule.Premise, kb.bindings, false, nil)
			if !ok {
				continue
			}
			for k, v := range bindings {
				kb.bindings[k] = v
			}
			staged = append(staged, rule.Conclusion)
			if kb.recorder != nil {
				kb.recorder.RuleFired(rule, rule.Conclusion)
			}
		}

		for _, f := range staged {
			if !containsFact(kb.facts, f) {
				kb.addFact(f)
				progress = true
			}
		}

		if !progress {
			return
		}
	}
}

// addFact appends f to the fact sequence unconditionally (used both by
// AssertFact and by the forward chainers once they have already checked for
// duplicates) and notifies the recorder, if any.
func (kb *KnowledgeBase) addFact(f Fact) {
	kb.facts = append(kb.facts, f)
	if kb.recorder != nil {
		kb.recorder.FactAsserted(f)
	}
}
