package ruleconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/korel-rules/pkg/korel/engine"
)

func TestLoadAndApplySimpleRule(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "rules.yaml")

	content := `
symbols:
  - name: Weather
    type: String
  - name: Activity
    type: String

facts:
  - symbol: Weather
    value:
      text: Sunny

rules:
  - premise:
      atomic_fact:
        symbol: Weather
        value:
          text: Sunny
    conclusion:
      symbol: Activity
      value:
        text: Outdoor
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	e := engine.New()
	if err := Apply(e, doc); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	e.ForwardChainingSaturate()

	activitySym, ok := e.LookupSymbol("Activity")
	if !ok {
		t.Fatal("expected Activity symbol to be defined")
	}
	found := false
	for _, f := range e.Facts() {
		if f.Equal(engine.Fact{Symbol: activitySym, Value: engine.TextValue("Outdoor")}) {
			found = true
		}
	}
	if !found {
		t.Error("expected Activity=Outdoor to be derived")
	}
}

func TestApplyNestedExpression(t *testing.T) {
	doc := &Document{
		Symbols: []SymbolConfig{
			{Name: "Temperature", Type: "Integer"},
			{Name: "Warm", Type: "Boolean"},
		},
		Facts: []FactConfig{
			{Symbol: "Temperature", Value: ValueConfig{Integer: int32Ptr(25)}},
		},
		Rules: []RuleConfig{
			{
				Premise: ExprConfig{
					GreaterThan: &BinaryComparisonConfig{
						Left:  ComparableConfig{BySymbol: strPtr("Temperature")},
						Right: ComparableConfig{Direct: &ValueConfig{Integer: int32Ptr(20)}},
					},
				},
				Conclusion: FactConfig{Symbol: "Warm", Value: ValueConfig{Boolean: boolPtr(true)}},
			},
		},
	}

	e := engine.New()
	if err := Apply(e, doc); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	e.ForwardChainingSaturate()

	warmSym, _ := e.LookupSymbol("Warm")
	found := false
	for _, f := range e.Facts() {
		if f.Symbol == warmSym {
			found = true
		}
	}
	if !found {
		t.Error("expected Warm to be derived from the GreaterThan premise")
	}
}

func TestApplyUndeclaredSymbolReturnsError(t *testing.T) {
	doc := &Document{
		Facts: []FactConfig{
			{Symbol: "Ghost", Value: ValueConfig{Boolean: boolPtr(true)}},
		},
	}
	e := engine.New()
	if err := Apply(e, doc); err == nil {
		t.Error("expected an error for a fact referencing an undeclared symbol")
	}
}

func TestApplyDuplicateSymbolReturnsErrorNotPanic(t *testing.T) {
	doc := &Document{
		Symbols: []SymbolConfig{
			{Name: "A", Type: "Boolean"},
			{Name: "A", Type: "Boolean"},
		},
	}
	e := engine.New()
	err := Apply(e, doc)
	if err == nil {
		t.Fatal("expected Apply to surface the duplicate-symbol panic as an error")
	}
}

func int32Ptr(v int32) *int32   { return &v }
func strPtr(v string) *string   { return &v }
func boolPtr(v bool) *bool      { return &v }
