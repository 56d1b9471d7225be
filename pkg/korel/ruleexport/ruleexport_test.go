package ruleexport

import (
	"context"
	"strings"
	"testing"

	"github.com/cognicore/korel-rules/pkg/korel/engine"
)

type bufWriter struct {
	content string
}

func (w *bufWriter) WriteRules(ctx context.Context, content string) error {
	w.content = content
	return nil
}

func buildSampleEngine() *engine.Engine {
	e := engine.New()
	weather := e.DefineSymbol("Weather", "String")
	activity := e.DefineSymbol("Activity", "String")
	e.AssertFact(weather, engine.TextValue("Sunny"))
	e.DefineRule(
		engine.AtomicFactExpr{Fact: engine.Fact{Symbol: weather, Value: engine.TextValue("Sunny")}},
		engine.Fact{Symbol: activity, Value: engine.TextValue("Outdoor")},
	)
	return e
}

func TestRenderIncludesFactsAndRules(t *testing.T) {
	e := buildSampleEngine()
	out := Render(e)

	if !strings.Contains(out, "fact(Weather, Sunny)") {
		t.Errorf("expected rendered fact, got:\n%s", out)
	}
	if !strings.Contains(out, "rule(Activity)") {
		t.Errorf("expected rendered rule, got:\n%s", out)
	}
	if !strings.Contains(out, "Weather=Sunny") {
		t.Errorf("expected rendered premise, got:\n%s", out)
	}
}

func TestRenderComparisonOperators(t *testing.T) {
	e := engine.New()
	temp := e.DefineSymbol("Temperature", "Integer")
	warm := e.DefineSymbol("Warm", "Boolean")
	e.AssertFact(temp, engine.IntegerValue(25))
	e.DefineRule(
		engine.GreaterThan{Left: engine.BySymbol{Symbol: temp}, Right: engine.Direct{Value: engine.IntegerValue(20)}},
		engine.Fact{Symbol: warm, Value: engine.BooleanValue(true)},
	)

	out := Render(e)
	if !strings.Contains(out, "Temperature > 20") {
		t.Errorf("expected rendered comparison, got:\n%s", out)
	}
}

func TestExporterCallsWriter(t *testing.T) {
	e := buildSampleEngine()
	w := &bufWriter{}
	x := &Exporter{Writer: w}

	if err := x.Export(context.Background(), e); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if w.content == "" {
		t.Error("expected writer to receive rendered content")
	}
}

func TestExporterNilWriterReturnsError(t *testing.T) {
	x := &Exporter{}
	if err := x.Export(context.Background(), buildSampleEngine()); err == nil {
		t.Error("expected an error for a nil Writer")
	}
}
