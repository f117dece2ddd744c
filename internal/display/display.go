// Package display assembles the read-only view of a recipe: ingredient
// amounts scaled to the requested servings and unit system, times spelled
// out in words.
package display

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/measure"
	"github.com/pageza/recipebox/backend/internal/model"
)

// Options selects how a recipe is rendered. Servings of zero keeps the
// recipe's own yield.
type Options struct {
	Servings int  `json:"servings"`
	Metric   bool `json:"metric"`
}

type View struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	SourceURL        string           `json:"source_url"`
	SourceType       string           `json:"source_type"`
	Servings         int              `json:"servings"`
	OriginalServings int              `json:"original_servings"`
	Metric           bool             `json:"metric"`
	PrepTime         string           `json:"prep_time,omitempty"`
	CookTime         string           `json:"cook_time,omitempty"`
	TotalTime        string           `json:"total_time,omitempty"`
	Category         string           `json:"category,omitempty"`
	Cuisine          string           `json:"cuisine,omitempty"`
	Calories         *int             `json:"calories,omitempty"`
	MainImageURL     string           `json:"main_image_url,omitempty"`
	CardColor        string           `json:"card_color,omitempty"`
	Tags             []string         `json:"tags"`
	Ingredients      []IngredientLine `json:"ingredients"`
	Instructions     []Step           `json:"instructions"`
}

// IngredientLine is one rendered ingredient. Quantity and Unit are the
// converted values; Amount is Quantity as a cook reads it.
type IngredientLine struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit,omitempty"`
	Amount   string   `json:"amount"`
	Notes    string   `json:"notes,omitempty"`
	Text     string   `json:"text"`
}

type Step struct {
	Number  int    `json:"step_number"`
	Section string `json:"section_name,omitempty"`
	Text    string `json:"description"`
}

// Assemble renders r for opts. r is not modified.
func Assemble(r *model.Recipe, opts Options) View {
	original := measure.ParseServings(r.Servings)
	servings := opts.Servings
	if servings <= 0 {
		servings = original
	}
	factor := measure.ScaleFactor(servings, original)

	v := View{
		ID:               r.ID,
		Name:             r.Name,
		SourceURL:        r.SourceURL,
		SourceType:       r.SourceType,
		Servings:         servings,
		OriginalServings: original,
		Metric:           opts.Metric,
		PrepTime:         measure.FormatDuration(r.PrepTime),
		CookTime:         measure.FormatDuration(r.CookTime),
		TotalTime:        measure.FormatDuration(r.TotalTime),
		Category:         r.Category,
		Cuisine:          r.Cuisine,
		Calories:         r.Calories,
		MainImageURL:     r.MainImageURL,
		CardColor:        r.CardColor,
		Tags:             append([]string{}, r.Tags...),
		Ingredients:      make([]IngredientLine, 0, len(r.Ingredients)),
		Instructions:     make([]Step, 0, len(r.Instructions)),
	}

	ings := append([]model.RecipeIngredient(nil), r.Ingredients...)
	sort.SliceStable(ings, func(i, j int) bool { return ings[i].Position < ings[j].Position })
	for _, ri := range ings {
		v.Ingredients = append(v.Ingredients, Line(ri.Ingredient.Name, ri.Quantity, ri.Unit, ri.Notes, factor, opts.Metric))
	}

	steps := append([]model.Instruction(nil), r.Instructions...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].StepNumber < steps[j].StepNumber })
	for _, s := range steps {
		v.Instructions = append(v.Instructions, Step{Number: s.StepNumber, Section: s.SectionName, Text: s.Description})
	}
	return v
}

// Line scales, converts and formats a single ingredient.
func Line(name string, quantity *float64, unit, notes string, factor float64, metric bool) IngredientLine {
	m := measure.Convert(measure.Measurement{Quantity: measure.Scale(quantity, factor), Unit: unit}, metric)
	amount := measure.FormatQuantity(m.Quantity)

	var text string
	if amount == measure.Unspecified {
		text = name + ", " + measure.Unspecified
	} else {
		text = strings.Join(nonEmpty(amount, m.Unit, name), " ")
	}

	return IngredientLine{
		Name:     name,
		Quantity: m.Quantity,
		Unit:     m.Unit,
		Amount:   amount,
		Notes:    notes,
		Text:     text,
	}
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
