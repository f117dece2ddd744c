// Command recipefmt prints amounts and times the way recipe cards show them.
//
//	recipefmt -q 0.75 -unit cup -servings 8 -original 4
//	recipefmt -q 2 -unit cups -metric
//	recipefmt -duration PT1H30M
//	recipefmt -file recipe.json -servings 2 -metric
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pageza/recipebox/backend/internal/display"
	"github.com/pageza/recipebox/backend/internal/measure"
	"github.com/pageza/recipebox/backend/internal/model"
)

type options struct {
	quantity string
	unit     string
	name     string
	servings int
	original int
	metric   bool
	duration string
	file     string
}

func main() {
	var o options
	flag.StringVar(&o.quantity, "q", "", "Quantity to format (decimal)")
	flag.StringVar(&o.unit, "unit", "", "Unit of the quantity")
	flag.StringVar(&o.name, "name", "", "Ingredient name")
	flag.IntVar(&o.servings, "servings", 0, "Servings to scale to")
	flag.IntVar(&o.original, "original", measure.DefaultServings, "Servings the quantity is written for")
	flag.BoolVar(&o.metric, "metric", false, "Convert to metric")
	flag.StringVar(&o.duration, "duration", "", "ISO 8601 duration to spell out")
	flag.StringVar(&o.file, "file", "", "Recipe JSON file to render")
	flag.Parse()

	if err := run(o, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "recipefmt:", err)
		os.Exit(1)
	}
}

func run(o options, out io.Writer) error {
	switch {
	case o.file != "":
		return renderFile(o, out)
	case o.duration != "":
		_, err := fmt.Fprintln(out, measure.FormatDuration(o.duration))
		return err
	case o.quantity != "":
		var q float64
		if _, err := fmt.Sscan(o.quantity, &q); err != nil {
			return fmt.Errorf("invalid quantity %q", o.quantity)
		}
		factor := 1.0
		if o.servings > 0 {
			factor = measure.ScaleFactor(o.servings, o.original)
		}
		line := display.Line(o.name, &q, o.unit, "", factor, o.metric)
		_, err := fmt.Fprintln(out, line.Text)
		return err
	default:
		return errors.New("one of -q, -duration or -file is required")
	}
}

func renderFile(o options, out io.Writer) error {
	data, err := os.ReadFile(o.file)
	if err != nil {
		return err
	}
	var r model.Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("failed to parse %s: %w", o.file, err)
	}

	view := display.Assemble(&r, display.Options{Servings: o.servings, Metric: o.metric})
	fmt.Fprintf(out, "%s (serves %d)\n", view.Name, view.Servings)
	for _, t := range []struct{ label, value string }{
		{"Prep", view.PrepTime}, {"Cook", view.CookTime}, {"Total", view.TotalTime},
	} {
		if t.value != "" {
			fmt.Fprintf(out, "%s: %s\n", t.label, t.value)
		}
	}
	fmt.Fprintln(out)
	for _, line := range view.Ingredients {
		fmt.Fprintf(out, "- %s\n", line.Text)
	}
	if len(view.Instructions) > 0 {
		fmt.Fprintln(out)
	}
	for _, step := range view.Instructions {
		fmt.Fprintf(out, "%d. %s\n", step.Number, step.Text)
	}
	return nil
}
