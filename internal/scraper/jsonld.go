package scraper

import (
	"encoding/json"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/pageza/recipebox/backend/internal/measure"
	"github.com/pageza/recipebox/backend/internal/types"
)

var (
	isoPeriod  = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)
	leadingInt = regexp.MustCompile(`\d+`)
	lineBreaks = regexp.MustCompile(`\r?\n`)
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
)

// findRecipe returns the first Recipe node in a JSON-LD script. Scripts may
// hold one node, a list of nodes or an @graph.
func findRecipe(script string) map[string]interface{} {
	var doc interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(script)), &doc); err != nil {
		return nil
	}
	return searchRecipe(doc)
}

func searchRecipe(v interface{}) map[string]interface{} {
	switch n := v.(type) {
	case []interface{}:
		for _, item := range n {
			if r := searchRecipe(item); r != nil {
				return r
			}
		}
	case map[string]interface{}:
		if isType(n["@type"], "Recipe") {
			return n
		}
		if graph, ok := n["@graph"]; ok {
			return searchRecipe(graph)
		}
	}
	return nil
}

func isType(v interface{}, want string) bool {
	for _, t := range stringList(v) {
		if t == want {
			return true
		}
	}
	return false
}

func fromJSONLD(pageURL string, n map[string]interface{}) *types.RecipeRequest {
	r := &types.RecipeRequest{
		Name:      clean(first(n["name"])),
		SourceURL: pageURL,
		PrepTime:  duration(n["prepTime"]),
		CookTime:  duration(n["cookTime"]),
		TotalTime: duration(n["totalTime"]),
		Servings:  clean(first(n["recipeYield"])),
		Category:  clean(first(n["recipeCategory"])),
		Cuisine:   clean(first(n["recipeCuisine"])),
		Tags:      keywords(n["keywords"]),
	}
	if r.Name == "" {
		r.Name = untitled
	}
	if nut, ok := n["nutrition"].(map[string]interface{}); ok {
		if m := leadingInt.FindString(first(nut["calories"])); m != "" {
			if cal, err := strconv.Atoi(m); err == nil {
				r.Calories = &cal
			}
		}
	}
	for _, line := range stringList(n["recipeIngredient"]) {
		if line = clean(line); line != "" {
			r.IngredientLines = append(r.IngredientLines, line)
		}
	}
	r.Instructions = instructions(n["recipeInstructions"], "")
	return r
}

// instructions flattens text, HowToStep and HowToSection entries in order.
// Steps inside a section carry the section's name.
func instructions(v interface{}, section string) []types.InstructionInput {
	var out []types.InstructionInput
	add := func(text string) {
		for _, line := range lineBreaks.Split(text, -1) {
			if line = clean(line); line != "" {
				out = append(out, types.InstructionInput{
					StepNumber:  len(out) + 1,
					SectionName: section,
					Description: line,
				})
			}
		}
	}

	switch n := v.(type) {
	case string:
		add(n)
	case []interface{}:
		for _, item := range n {
			for _, step := range instructions(item, section) {
				step.StepNumber = len(out) + 1
				out = append(out, step)
			}
		}
	case map[string]interface{}:
		if isType(n["@type"], "HowToSection") {
			return instructions(n["itemListElement"], clean(first(n["name"])))
		}
		text := first(n["text"])
		if text == "" {
			text = first(n["name"])
		}
		add(text)
	}
	return out
}

// duration normalises an ISO-8601 period such as "P0DT1H30M" or "PT90M" to
// the PT form the display layer reads. Unreadable values are dropped.
func duration(v interface{}) string {
	m := isoPeriod.FindStringSubmatch(strings.TrimSpace(first(v)))
	if m == nil {
		return ""
	}
	num := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	minutes := num(m[1])*24*60 + num(m[2])*60 + num(m[3])
	return measure.ISODuration(minutes)
}

func keywords(v interface{}) []string {
	var raw []string
	if s, ok := v.(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = stringList(v)
	}
	var out []string
	for _, k := range raw {
		if k = clean(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// imageURLs accepts a URL, an ImageObject or a list of either.
func imageURLs(v interface{}) []string {
	switch n := v.(type) {
	case string:
		if n = strings.TrimSpace(n); n != "" {
			return []string{n}
		}
	case map[string]interface{}:
		return imageURLs(n["url"])
	case []interface{}:
		var out []string
		for _, item := range n {
			out = append(out, imageURLs(item)...)
		}
		return out
	}
	return nil
}

// stringList reads a string or a list of strings and numbers.
func stringList(v interface{}) []string {
	switch n := v.(type) {
	case string:
		return []string{n}
	case float64:
		return []string{strconv.FormatFloat(n, 'f', -1, 64)}
	case []interface{}:
		out := make([]string, 0, len(n))
		for _, item := range n {
			out = append(out, stringList(item)...)
		}
		return out
	}
	return nil
}

func first(v interface{}) string {
	if s := stringList(v); len(s) > 0 {
		return s[0]
	}
	return ""
}

func clean(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(htmlTag.ReplaceAllString(s, " "))), " ")
}
