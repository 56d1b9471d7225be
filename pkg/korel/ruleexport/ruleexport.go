// Package ruleexport renders an engine's facts and rules as readable text
// for diagnostics. The output is a fact(...)/rule(...) listing, not a
// ruleconfig document, and cannot be loaded back. It is a caller of the public engine interface,
// never a dependency of pkg/korel/engine.
package ruleexport

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/korel-rules/pkg/korel/engine"
)

// Writer persists rendered rule text to a destination (file, stdout, DB).
type Writer interface {
	WriteRules(ctx context.Context, content string) error
}

// Exporter renders an engine's facts and rules through a Writer.
type Exporter struct {
	Writer Writer
}

// Export renders every fact and rule known to e and passes the result to
// the configured Writer.
func (x *Exporter) Export(ctx context.Context, e *engine.Engine) error {
	if x.Writer == nil {
		return fmt.Errorf("rule exporter: nil writer")
	}
	return x.Writer.WriteRules(ctx, Render(e))
}

// Render formats an engine's facts and rules as a flat, human-readable
// listing, one statement per line.
func Render(e *engine.Engine) string {
	var b strings.Builder

	for _, f := range e.Facts() {
		fmt.Fprintf(&b, "fact(%s, %s).\n", sanitize(f.Symbol.Name), sanitize(f.Value.String()))
	}

	for _, r := range e.Rules() {
		fmt.Fprintf(&b, "rule(%s) :- %s.\n", sanitize(r.Conclusion.Symbol.Name), renderExpression(r.Premise))
	}

	return b.String()
}

func renderExpression(expr engine.LogicalExpression) string {
	switch e := expr.(type) {
	case engine.And:
		return joinChildren(e.Children, " & ")
	case engine.Or:
		return joinChildren(e.Children, " | ")
	case engine.Not:
		return "!(" + renderExpression(e.Child) + ")"
	case engine.AtomicFactExpr:
		return fmt.Sprintf("%s=%s", sanitize(e.Fact.Symbol.Name), sanitize(e.Fact.Value.String()))
	case engine.GreaterThan:
		return renderComparison(e.Left, ">", e.Right)
	case engine.LessThan:
		return renderComparison(e.Left, "<", e.Right)
	case engine.EqualTo:
		return renderComparison(e.Left, "==", e.Right)
	case engine.NotEqualTo:
		return renderComparison(e.Left, "!=", e.Right)
	case engine.GreaterThanOrEqualTo:
		return renderComparison(e.Left, ">=", e.Right)
	case engine.LessThanOrEqualTo:
		return renderComparison(e.Left, "<=", e.Right)
	default:
		return "?"
	}
}

func renderComparison(left engine.ComparableValue, op string, right engine.ComparableValue) string {
	return fmt.Sprintf("%s %s %s", renderComparable(left), op, renderComparable(right))
}

func renderComparable(cv engine.ComparableValue) string {
	switch c := cv.(type) {
	case engine.Direct:
		return sanitize(c.Value.String())
	case engine.BySymbol:
		return sanitize(c.Symbol.Name)
	case engine.ByName:
		return "$" + sanitize(c.Name)
	default:
		return "?"
	}
}

func joinChildren(children []engine.LogicalExpression, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = "(" + renderExpression(c) + ")"
	}
	return strings.Join(parts, sep)
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, "(", "_")
}
