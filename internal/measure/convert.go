package measure

import (
	"math"
	"strings"
)

// Measurement is a quantity with its unit. An empty Unit means the
// ingredient is counted rather than measured.
type Measurement struct {
	Quantity *float64
	Unit     string
}

type toMetricFactor struct {
	factor float64
	unit   string
}

var imperialToMetric = map[string]toMetricFactor{
	"cup":         {240, "ml"},
	"cups":        {240, "ml"},
	"fl oz":       {29.5735, "ml"},
	"fluid ounce": {29.5735, "ml"},
	"oz":          {28.35, "g"},
	"ounce":       {28.35, "g"},
	"ounces":      {28.35, "g"},
	"lb":          {453.592, "g"},
	"lbs":         {453.592, "g"},
	"pound":       {453.592, "g"},
	"pounds":      {453.592, "g"},
	"tsp":         {4.929, "ml"},
	"teaspoon":    {4.929, "ml"},
	"tbsp":        {14.79, "ml"},
	"tablespoon":  {14.79, "ml"},
}

// threshold converts quantities at or above min by dividing by divisor.
type threshold struct {
	min     float64
	divisor float64
	unit    string
}

// Checked in order; the first threshold the input reaches wins.
var (
	millilitreSteps = []threshold{
		{236, 236.588, "cups"},
		{14, 14.79, "tbsp"},
		{4, 4.929, "tsp"},
	}
	gramSteps = []threshold{
		{450, 453.592, "lbs"},
		{28, 28.35, "oz"},
	}
)

var metricSteps = map[string][]threshold{
	"ml":    millilitreSteps,
	"g":     gramSteps,
	"gram":  gramSteps,
	"grams": gramSteps,
}

// Convert moves m between the imperial and metric systems. Units it does not
// recognise, nil quantities and empty units come back unchanged.
func Convert(m Measurement, toMetric bool) Measurement {
	if m.Quantity == nil || m.Unit == "" {
		return m
	}
	key := strings.ToLower(strings.TrimSpace(m.Unit))
	q := *m.Quantity

	if toMetric {
		f, ok := imperialToMetric[key]
		if !ok {
			return m
		}
		return converted(q*f.factor, f.unit)
	}

	for _, step := range metricSteps[key] {
		if q >= step.min {
			return converted(q/step.divisor, step.unit)
		}
	}
	return m
}

func converted(q float64, unit string) Measurement {
	if q != math.Trunc(q) {
		q = roundTo(q, 2)
	}
	return Measurement{Quantity: &q, Unit: unit}
}

// roundTo rounds half away from zero.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
