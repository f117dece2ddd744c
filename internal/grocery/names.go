package grocery

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// OtherCategory is assigned when no keyword matches.
const OtherCategory = "Other"

var redundantPrefixes = []string{
	"canned", "fresh", "frozen", "dried", "chopped", "diced", "minced",
	"sliced", "shredded", "grated", "crushed", "ground", "whole", "raw",
	"cooked", "roasted", "grilled", "baked", "fried", "steamed", "boiled",
	"organic", "natural", "pure", "plain", "unsalted", "salted", "unsweetened",
	"sweetened", "light", "low-fat", "fat-free", "reduced-fat", "full-fat",
	"boneless", "skinless", "bone-in", "skin-on", "lean", "extra-lean",
	"thick-cut", "thin-sliced", "large", "medium", "small", "extra-large",
	"warm", "cold", "hot", "room temperature", "melted", "softened",
}

var pantryStaples = []string{
	"salt", "pepper", "black pepper", "white pepper", "sugar", "flour",
	"olive oil", "vegetable oil", "cooking oil", "butter", "garlic",
	"onion powder", "garlic powder", "paprika", "cumin", "oregano",
	"basil", "thyme", "rosemary", "cinnamon", "nutmeg", "bay leaf",
	"red pepper flake", "cayenne", "chili powder", "curry powder",
	"italian seasoning", "vanilla extract", "vanilla", "baking powder",
	"baking soda", "cornstarch", "soy sauce", "vinegar", "honey",
	"breadcrumb", "breadcrumbs", "panko",
}

var smallMeasures = map[string]bool{
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"tbsp": true, "tablespoon": true, "tablespoons": true,
	"pinch": true, "dash": true,
}

type categoryKeywords struct {
	name     string
	keywords []string
}

// Categories are matched in this order, so "Produce" claims "pepper" before
// "Pantry" sees it.
var categories = []categoryKeywords{
	{"Produce", []string{
		"lettuce", "tomato", "onion", "garlic", "pepper", "carrot", "celery",
		"broccoli", "spinach", "kale", "cucumber", "zucchini", "squash",
		"potato", "sweet potato", "mushroom", "avocado", "lemon", "lime",
		"orange", "apple", "banana", "berry", "strawberry", "blueberry",
		"grape", "mango", "pineapple", "melon", "watermelon", "peach",
		"pear", "plum", "cherry", "ginger", "cilantro", "parsley", "basil",
		"mint", "dill", "rosemary", "thyme", "scallion", "leek", "shallot",
		"cabbage", "corn", "peas", "beans", "asparagus", "artichoke",
		"eggplant", "beet", "radish", "turnip", "spring onion", "green onion",
	}},
	{"Dairy", []string{
		"milk", "cream", "butter", "cheese", "yogurt", "sour cream",
		"cream cheese", "cottage cheese", "ricotta", "mozzarella",
		"parmesan", "cheddar", "feta", "goat cheese", "brie", "swiss",
		"half and half", "whipping cream", "heavy cream", "buttermilk",
	}},
	{"Meat & Seafood", []string{
		"chicken", "beef", "pork", "lamb", "turkey", "duck", "veal",
		"bacon", "ham", "sausage", "ground beef", "steak", "roast",
		"salmon", "tuna", "shrimp", "crab", "lobster", "fish", "cod",
		"tilapia", "halibut", "scallop", "mussel", "clam", "oyster",
		"anchovy", "sardine", "trout", "sea bass", "prawn",
	}},
	{"Bakery & Bread", []string{
		"bread", "baguette", "roll", "bun", "croissant", "bagel",
		"tortilla", "pita", "naan", "flatbread", "english muffin",
		"breadcrumb", "panko", "crouton",
	}},
	{"Pantry", []string{
		"flour", "sugar", "salt", "pepper", "oil", "olive oil", "vegetable oil",
		"vinegar", "soy sauce", "honey", "maple syrup", "vanilla",
		"baking powder", "baking soda", "yeast", "cornstarch", "cocoa",
		"chocolate", "rice", "pasta", "noodle", "oat", "cereal",
		"canned", "broth", "stock", "tomato paste", "tomato sauce",
		"beans", "lentil", "chickpea", "peanut butter", "jam", "jelly",
		"mustard", "ketchup", "mayonnaise", "hot sauce", "worcestershire",
		"sesame oil", "fish sauce", "oyster sauce", "hoisin", "sriracha",
		"cumin", "paprika", "cinnamon", "oregano", "basil", "thyme",
		"nutmeg", "clove", "cardamom", "turmeric", "curry", "chili",
		"bay leaf", "red pepper flake", "cayenne", "garlic powder",
		"onion powder", "italian seasoning", "taco seasoning",
	}},
	{"Frozen", []string{
		"frozen", "ice cream", "frozen vegetable", "frozen fruit",
		"frozen pizza", "frozen meal",
	}},
	{"Beverages", []string{
		"water", "juice", "soda", "coffee", "tea", "wine", "beer",
		"sparkling", "coconut water", "almond milk", "oat milk", "soy milk",
	}},
	{"Eggs", []string{"egg", "eggs"}},
}

// Categorize returns the store aisle an ingredient belongs to.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.name
			}
		}
	}
	return OtherCategory
}

// CleanName strips preparation words such as "fresh" or "diced" from the
// front of an ingredient name and capitalises what is left. A unit
// mentioning cans also drops "canned", so "canned tuna" bought by the can
// becomes "Tuna".
func CleanName(name, unit string) string {
	cleaned := strings.TrimSpace(name)

	prefixes := redundantPrefixes
	lowerUnit := strings.ToLower(unit)
	if strings.Contains(lowerUnit, "can") {
		prefixes = append(append([]string{}, prefixes...), "canned", "cans")
	}
	if strings.Contains(lowerUnit, "frozen") {
		prefixes = append(append([]string{}, prefixes...), "frozen")
	}

	for _, p := range prefixes {
		if rest, ok := cutWord(cleaned, p); ok {
			cleaned = rest
		}
	}

	if cleaned == "" {
		return cleaned
	}
	r, size := utf8.DecodeRuneInString(cleaned)
	return string(unicode.ToUpper(r)) + cleaned[size:]
}

// cutWord removes prefix from s when it is followed by whitespace.
func cutWord(s, prefix string) (string, bool) {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	if len(t) <= len(prefix) || !strings.EqualFold(t[:len(prefix)], prefix) {
		return s, false
	}
	rest := t[len(prefix):]
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if len(trimmed) == len(rest) {
		return s, false
	}
	return strings.TrimSpace(trimmed), true
}

// IsPantryStaple reports whether most kitchens already stock the ingredient.
func IsPantryStaple(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range pantryStaples {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// IsToTaste reports whether an ingredient should be listed without an
// amount: it has none, or it is a staple used by the spoonful or pinch.
func IsToTaste(quantity *float64, unit, name string) bool {
	if quantity == nil || *quantity == 0 {
		return true
	}
	if IsPantryStaple(name) && smallMeasures[strings.ToLower(unit)] && *quantity <= 2 {
		return true
	}
	return false
}
