// Package ruleconfig loads a declarative YAML description of symbols,
// facts, and rules and applies it to an engine.Engine. It is the "textual
// rule language" the core engine's specification places out of scope
// (§1): it is a caller of the public interface, never a dependency of
// pkg/korel/engine.
package ruleconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/korel-rules/pkg/korel/engine"
)

// Document is the top-level shape of a rule configuration file.
type Document struct {
	Symbols []SymbolConfig `yaml:"symbols"`
	Facts   []FactConfig   `yaml:"facts"`
	Rules   []RuleConfig   `yaml:"rules"`
}

// SymbolConfig declares one symbol.
type SymbolConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FactConfig declares one ground fact.
type FactConfig struct {
	Symbol string      `yaml:"symbol"`
	Value  ValueConfig `yaml:"value"`
}

// RuleConfig declares one rule.
type RuleConfig struct {
	Premise    ExprConfig `yaml:"premise"`
	Conclusion FactConfig `yaml:"conclusion"`
}

// ValueConfig is a YAML-friendly encoding of engine.Value: exactly one of
// its fields should be set.
type ValueConfig struct {
	Integer *int32   `yaml:"integer,omitempty"`
	Float   *float64 `yaml:"float,omitempty"`
	Boolean *bool    `yaml:"boolean,omitempty"`
	Text    *string  `yaml:"text,omitempty"`
}

// ToValue converts a ValueConfig to an engine.Value.
func (v ValueConfig) ToValue() (engine.Value, error) {
	switch {
	case v.Integer != nil:
		return engine.IntegerValue(*v.Integer), nil
	case v.Float != nil:
		return engine.FloatValue(*v.Float), nil
	case v.Boolean != nil:
		return engine.BooleanValue(*v.Boolean), nil
	case v.Text != nil:
		return engine.TextValue(*v.Text), nil
	default:
		return nil, fmt.Errorf("ruleconfig: value has no variant set")
	}
}

// ComparableConfig is a YAML-friendly encoding of engine.ComparableValue:
// exactly one of its fields should be set.
type ComparableConfig struct {
	Direct   *ValueConfig `yaml:"direct,omitempty"`
	BySymbol *string      `yaml:"by_symbol,omitempty"`
	ByName   *string      `yaml:"by_name,omitempty"`
}

// ToComparableValue converts a ComparableConfig to an engine.ComparableValue,
// resolving by_symbol names against resolved.
func (c ComparableConfig) ToComparableValue(resolved map[string]engine.Symbol) (engine.ComparableValue, error) {
	switch {
	case c.Direct != nil:
		v, err := c.Direct.ToValue()
		if err != nil {
			return nil, err
		}
		return engine.Direct{Value: v}, nil
	case c.BySymbol != nil:
		sym, ok := resolved[*c.BySymbol]
		if !ok {
			return nil, fmt.Errorf("ruleconfig: by_symbol references undeclared symbol %q", *c.BySymbol)
		}
		return engine.BySymbol{Symbol: sym}, nil
	case c.ByName != nil:
		return engine.ByName{Name: *c.ByName}, nil
	default:
		return nil, fmt.Errorf("ruleconfig: comparable value has no variant set")
	}
}

// ExprConfig is a YAML-friendly encoding of engine.LogicalExpression. Nodes
// nest via the And/Or/Not fields; leaves are AtomicFact or one of the six
// comparison fields.
type ExprConfig struct {
	And []ExprConfig `yaml:"and,omitempty"`
	Or  []ExprConfig `yaml:"or,omitempty"`
	Not *ExprConfig  `yaml:"not,omitempty"`

	AtomicFact *FactConfig `yaml:"atomic_fact,omitempty"`

	GreaterThan          *BinaryComparisonConfig `yaml:"greater_than,omitempty"`
	LessThan             *BinaryComparisonConfig `yaml:"less_than,omitempty"`
	EqualTo              *BinaryComparisonConfig `yaml:"equal_to,omitempty"`
	NotEqualTo           *BinaryComparisonConfig `yaml:"not_equal_to,omitempty"`
	GreaterThanOrEqualTo *BinaryComparisonConfig `yaml:"greater_than_or_equal_to,omitempty"`
	LessThanOrEqualTo    *BinaryComparisonConfig `yaml:"less_than_or_equal_to,omitempty"`
}

// BinaryComparisonConfig is the shared shape of the six relational
// comparison nodes.
type BinaryComparisonConfig struct {
	Left  ComparableConfig `yaml:"left"`
	Right ComparableConfig `yaml:"right"`
}

// Load reads and parses a rule configuration file from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ruleconfig: read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ruleconfig: parse %s: %w", path, err)
	}
	return &doc, nil
}

// Apply defines every symbol, fact, and rule in doc against e, in document
// order. It converts the engine's fatal panic for a duplicate symbol
// definition into an error, and reports references to undeclared symbols
// as errors of its own, since a
// misconfigured rule file is the caller's input-validation problem, not a
// library-internal invariant violation.
func Apply(e *engine.Engine, doc *Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if panicErr, ok := r.(error); ok {
				err = fmt.Errorf("ruleconfig: apply: %w", panicErr)
				return
			}
			panic(r)
		}
	}()

	symbols := make(map[string]engine.Symbol, len(doc.Symbols))
	for _, s := range doc.Symbols {
		symbols[s.Name] = e.DefineSymbol(s.Name, s.Type)
	}

	for _, f := range doc.Facts {
		sym, ok := symbols[f.Symbol]
		if !ok {
			return fmt.Errorf("ruleconfig: fact references undeclared symbol %q", f.Symbol)
		}
		val, err := f.Value.ToValue()
		if err != nil {
			return err
		}
		e.AssertFact(sym, val)
	}

	for _, r := range doc.Rules {
		premise, err := buildExpression(r.Premise, symbols)
		if err != nil {
			return err
		}
		concSym, ok := symbols[r.Conclusion.Symbol]
		if !ok {
			return fmt.Errorf("ruleconfig: rule conclusion references undeclared symbol %q", r.Conclusion.Symbol)
		}
		concVal, err := r.Conclusion.Value.ToValue()
		if err != nil {
			return err
		}
		e.DefineRule(premise, engine.Fact{Symbol: concSym, Value: concVal})
	}

	return nil
}

func buildExpression(cfg ExprConfig, symbols map[string]engine.Symbol) (engine.LogicalExpression, error) {
	switch {
	case cfg.And != nil:
		children, err := buildExpressions(cfg.And, symbols)
		if err != nil {
			return nil, err
		}
		return engine.And{Children: children}, nil

	case cfg.Or != nil:
		children, err := buildExpressions(cfg.Or, symbols)
		if err != nil {
			return nil, err
		}
		return engine.Or{Children: children}, nil

	case cfg.Not != nil:
		child, err := buildExpression(*cfg.Not, symbols)
		if err != nil {
			return nil, err
		}
		return engine.Not{Child: child}, nil

	case cfg.AtomicFact != nil:
		sym, ok := symbols[cfg.AtomicFact.Symbol]
		if !ok {
			return nil, fmt.Errorf("ruleconfig: atomic_fact references undeclared symbol %q", cfg.AtomicFact.Symbol)
		}
		val, err := cfg.AtomicFact.Value.ToValue()
		if err != nil {
			return nil, err
		}
		return engine.AtomicFactExpr{Fact: engine.Fact{Symbol: sym, Value: val}}, nil

	case cfg.GreaterThan != nil:
		return buildComparison(*cfg.GreaterThan, symbols, func(l, r engine.ComparableValue) engine.LogicalExpression {
			return engine.GreaterThan{Left: l, Right: r}
		})
	case cfg.LessThan != nil:
		return buildComparison(*cfg.LessThan, symbols, func(l, r engine.ComparableValue) engine.LogicalExpression {
			return engine.LessThan{Left: l, Right: r}
		})
	case cfg.EqualTo != nil:
		return buildComparison(*cfg.EqualTo, symbols, func(l, r engine.ComparableValue) engine.LogicalExpression {
			return engine.EqualTo{Left: l, Right: r}
		})
	case cfg.NotEqualTo != nil:
		return buildComparison(*cfg.NotEqualTo, symbols, func(l, r engine.ComparableValue) engine.LogicalExpression {
			return engine.NotEqualTo{Left: l, Right: r}
		})
	case cfg.GreaterThanOrEqualTo != nil:
		return buildComparison(*cfg.GreaterThanOrEqualTo, symbols, func(l, r engine.ComparableValue) engine.LogicalExpression {
			return engine.GreaterThanOrEqualTo{Left: l, Right: r}
		})
	case cfg.LessThanOrEqualTo != nil:
		return buildComparison(*cfg.LessThanOrEqualTo, symbols, func(l, r engine.ComparableValue) engine.LogicalExpression {
			return engine.LessThanOrEqualTo{Left: l, Right: r}
		})

	default:
		return nil, fmt.Errorf("ruleconfig: expression node has no variant set")
	}
}

func buildExpressions(cfgs []ExprConfig, symbols map[string]engine.Symbol) ([]engine.LogicalExpression, error) {
	out := make([]engine.LogicalExpression, 0, len(cfgs))
	for _, c := range cfgs {
		expr, err := buildExpression(c, symbols)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func buildComparison(cfg BinaryComparisonConfig, symbols map[string]engine.Symbol, wrap func(l, r engine.ComparableValue) engine.LogicalExpression) (engine.LogicalExpression, error) {
	left, err := cfg.Left.ToComparableValue(symbols)
	if err != nil {
		return nil, err
	}
	right, err := cfg.Right.ToComparableValue(symbols)
	if err != nil {
		return nil, err
	}
	return wrap(left, right), nil
}
