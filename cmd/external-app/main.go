package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Victor-armando18/menu-customizer/pkg/engine"
)

func main() {
	productPath := flag.String("product", "data/catalog/margherita.yaml", "product definition (.json, .yaml)")
	selectionPath := flag.String("selection", "data/selections/margherita.yaml", "selection snapshot (.json, .yaml)")
	rulesDir := flag.String("rules", "data/rules", "rule pack directory")
	version := flag.String("version", "v1", "rule pack version, empty to skip merchant rules")
	asJSON := flag.Bool("json", false, "print the report as JSON")
	flag.Parse()

	product, err := engine.LoadProduct(*productPath)
	if err != nil {
		fail(err)
	}
	snap, err := engine.LoadSelection(*selectionPath)
	if err != nil {
		fail(err)
	}

	report, err := engine.Diagnose(context.Background(), product, snap, engine.Options{
		RulesDir:     *rulesDir,
		RulesVersion: *version,
	})
	if err != nil {
		fail(err)
	}

	if *asJSON {
		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))
		return
	}
	displaySummary(product, report)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func displaySummary(p *engine.Product, r *engine.Report) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("   MENU CUSTOMIZER - %s\n", strings.ToUpper(p.Name))
	fmt.Println(strings.Repeat("=", 60))

	fmt.Println("\n[1. EXECUTION LOG]")
	for _, step := range r.Quote.ExecutionLog {
		fmt.Printf("   [%-12s] %-20s %-14s %s\n", strings.ToUpper(string(step.Phase)), step.RuleID, step.Action, step.Amount.StringFixed(2))
	}

	fmt.Println("\n[2. INGREDIENT TIER]")
	tier := r.Quote.Ingredients
	fmt.Printf("   free: %d  paid: %d  cost: %s\n", tier.FreeCount, tier.PaidCount, tier.TotalCost.StringFixed(2))
	for _, il := range tier.Breakdown {
		fmt.Printf("   - %-16s x%d (free %d, paid %d @ %s)\n", il.Name, il.Quantity, il.FreeQuantity, il.PaidQuantity, il.UnitPrice.StringFixed(2))
	}

	fmt.Println("\n[3. VIOLATIONS]")
	if len(r.Violations) == 0 {
		fmt.Println("   none")
	}
	for _, v := range r.Violations {
		fmt.Printf("   [%s] %s\n", v.RuleID, v.Message)
	}
	for k, v := range r.Annotations {
		fmt.Printf("   note %s = %v\n", k, v)
	}

	fmt.Println("\n[4. ORDER LINE]")
	if r.Line == nil {
		fmt.Printf("   not assembled: %s\n", r.AssembleErr)
	} else {
		line, _ := json.MarshalIndent(r.Line, "   ", "  ")
		fmt.Println("   " + string(line))
	}

	fmt.Println("\n[5. SUMMARY]")
	fmt.Printf("   Unit price:  %s\n", r.Quote.UnitPrice.StringFixed(2))
	fmt.Printf("   Quantity:    %d\n", r.Quote.Quantity)
	fmt.Printf("   Total:       %s\n", r.Quote.Total.StringFixed(2))
	fmt.Printf("   Rules:       %s\n", r.RulesVersion)
	fmt.Println(strings.Repeat("=", 60))
}
