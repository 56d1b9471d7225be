package engine

import (
	"errors"
	"testing"
)

func TestResolveToNumberDirect(t *testing.T) {
	kb := NewKnowledgeBase()

	if n := resolveToNumber(kb, Direct{Value: IntegerValue(20)}); n != 20 {
		t.Errorf("resolveToNumber(Direct Integer) = %v, want 20", n)
	}
	if n := resolveToNumber(kb, Direct{Value: FloatValue(20.5)}); n != 20.5 {
		t.Errorf("resolveToNumber(Direct Float) = %v, want 20.5", n)
	}
}

func TestResolveToNumberDirectUnsupportedPanics(t *testing.T) {
	kb := NewKnowledgeBase()

	defer expectFatal(t, ErrUnsupportedValueType)
	resolveToNumber(kb, Direct{Value: TextValue("hot")})
}

func TestResolveToNumberBySymbol(t *testing.T) {
	kb := NewKnowledgeBase()
	temperature := kb.symbols.define("Temperature", "Integer")
	kb.addFact(Fact{Symbol: temperature, Value: IntegerValue(25)})

	if n := resolveToNumber(kb, BySymbol{Symbol: temperature}); n != 25 {
		t.Errorf("resolveToNumber(BySymbol) = %v, want 25", n)
	}
}

func TestResolveToNumberBySymbolMissingFactPanics(t *testing.T) {
	kb := NewKnowledgeBase()
	temperature := kb.symbols.define("Temperature", "Integer")

	defer expectFatal(t, ErrSymbolNotFound)
	resolveToNumber(kb, BySymbol{Symbol: temperature})
}

func TestResolveToNumberByName(t *testing.T) {
	kb := NewKnowledgeBase()
	temperature := kb.symbols.define("Temperature", "Integer")
	kb.addFact(Fact{Symbol: temperature, Value: IntegerValue(30)})

	if n := resolveToNumber(kb, ByName{Name: "Temperature"}); n != 30 {
		t.Errorf("resolveToNumber(ByName) = %v, want 30", n)
	}
}

func TestResolveToNumberByNameUndefinedPanics(t *testing.T) {
	kb := NewKnowledgeBase()

	defer expectFatal(t, ErrSymbolNotFound)
	resolveToNumber(kb, ByName{Name: "InvalidSymbol"})
}

// expectFatal recovers a panic and asserts it wraps sentinel.
func expectFatal(t *testing.T, sentinel error) {
	t.Helper()
	r := recover()
	if r == nil {
		t.Fatal("expected a fatal panic, got none")
	}
	err, ok := r.(error)
	if !ok {
		t.Fatalf("panic value %v is not an error", r)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("panic error %v does not wrap %v", err, sentinel)
	}
}
