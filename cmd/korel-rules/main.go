// Command korel-rules loads a rule configuration file, runs forward or
// backward chaining against it, and prints the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/cognicore/korel-rules/pkg/korel/engine"
	"github.com/cognicore/korel-rules/pkg/korel/ruleaudit"
	"github.com/cognicore/korel-rules/pkg/korel/ruleconfig"
	"github.com/cognicore/korel-rules/pkg/korel/ruleexport"
)

func main() {
	var (
		rulesPath     = flag.String("rules", "", "Rule configuration YAML file (required)")
		auditDBPath   = flag.String("audit-db", "", "Optional SQLite path to record fired rules and asserted facts")
		mode          = flag.String("mode", "saturate", "Forward-chaining mode: \"simple\" or \"saturate\"")
		querySymbol   = flag.String("query-symbol", "", "Run a backward-chaining query instead of forward chaining: symbol name")
		queryText     = flag.String("query-value", "", "Text value to pair with --query-symbol")
		fetchFactsURL = flag.String("fetch-facts-url", "", "Optional URL to scrape <data-fact> tags from as extra facts")
		debug         = flag.Bool("debug", false, "Enable engine debug tracing to stderr")
	)
	flag.Parse()

	if *rulesPath == "" {
		log.Fatal("--rules required")
	}

	ctx := context.Background()

	doc, err := ruleconfig.Load(*rulesPath)
	if err != nil {
		log.Fatal(err)
	}

	e := engine.New()
	e.SetDebug(*debug)

	var store *ruleaudit.Store
	if *auditDBPath != "" {
		store, err = ruleaudit.Open(ctx, *auditDBPath)
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
		e.SetRecorder(store)
	}

	if err := ruleconfig.Apply(e, doc); err != nil {
		log.Fatal(err)
	}

	if *fetchFactsURL != "" {
		if err := applyScrapedFacts(ctx, e, *fetchFactsURL); err != nil {
			log.Fatal(err)
		}
	}

	if *querySymbol != "" {
		sym, ok := e.LookupSymbol(*querySymbol)
		if !ok {
			log.Fatalf("unknown symbol %q", *querySymbol)
		}
		goal := engine.Fact{Symbol: sym, Value: engine.TextValue(*queryText)}
		fmt.Println(e.BackwardChainingQuery(goal))
		return
	}

	switch *mode {
	case "simple":
		e.ForwardChainingSimple()
	case "saturate":
		e.ForwardChainingSaturate()
	default:
		log.Fatalf("unknown --mode %q, want \"simple\" or \"saturate\"", *mode)
	}

	fmt.Print(ruleexport.Render(e))
}

// applyScrapedFacts fetches url and asserts a text fact for every
// <data-fact symbol="..." value="..."> tag found in the page whose symbol
// is already defined, a toy alternate fact source alongside the rule
// configuration file. Tags with a missing or unknown symbol are skipped.
func applyScrapedFacts(ctx context.Context, e *engine.Engine, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch facts: %w", err)
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return fmt.Errorf("fetch facts: parse html: %w", err)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "data-fact" {
			var symbolName, value string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "symbol":
					symbolName = attr.Val
				case "value":
					value = attr.Val
				}
			}
			if symbolName != "" {
				if sym, ok := e.LookupSymbol(symbolName); ok {
					e.AssertFact(sym, engine.TextValue(strings.TrimSpace(value)))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return nil
}
