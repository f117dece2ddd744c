package nutrition

import "strings"

// Food is the nutrient content of 100 g of a food. Sodium is in milligrams,
// calories in kcal and everything else in grams.
type Food struct {
	Description string
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	Fiber       float64
	Sugar       float64
	Sodium      float64
}

func (f Food) per100g() Nutrients {
	return Nutrients{
		Calories: f.Calories,
		Protein:  f.Protein,
		Carbs:    f.Carbs,
		Fat:      f.Fat,
		Fiber:    f.Fiber,
		Sugar:    f.Sugar,
		Sodium:   f.Sodium,
	}
}

type namedFood struct {
	name string
	food Food
}

// Partial matches take the first entry in this order.
var commonFoods = []namedFood{
	{"egg", Food{"Egg, whole, raw", 143, 12.6, 0.7, 9.5, 0, 0.4, 142}},
	{"eggs", Food{"Egg, whole, raw", 143, 12.6, 0.7, 9.5, 0, 0.4, 142}},
	{"butter", Food{"Butter, salted", 717, 0.9, 0.1, 81.1, 0, 0.1, 643}},
	{"salt", Food{"Salt, table", 0, 0, 0, 0, 0, 0, 38758}},
	{"sugar", Food{"Sugar, granulated", 387, 0, 100, 0, 0, 100, 1}},
	{"flour", Food{"Flour, all-purpose", 364, 10.3, 76.3, 1, 2.7, 0.3, 2}},
	{"all-purpose flour", Food{"Flour, all-purpose", 364, 10.3, 76.3, 1, 2.7, 0.3, 2}},
	{"milk", Food{"Milk, whole", 61, 3.2, 4.8, 3.3, 0, 5, 43}},
	{"whole milk", Food{"Milk, whole", 61, 3.2, 4.8, 3.3, 0, 5, 43}},
	{"olive oil", Food{"Oil, olive", 884, 0, 0, 100, 0, 0, 2}},
	{"vegetable oil", Food{"Oil, vegetable", 884, 0, 0, 100, 0, 0, 0}},
	{"oil", Food{"Oil, vegetable", 884, 0, 0, 100, 0, 0, 0}},
	{"chicken breast", Food{"Chicken breast, raw", 120, 22.5, 0, 2.6, 0, 0, 74}},
	{"chicken", Food{"Chicken, raw", 215, 18.6, 0, 15.1, 0, 0, 70}},
	{"beef", Food{"Beef, ground, raw", 254, 17.2, 0, 20, 0, 0, 66}},
	{"ground beef", Food{"Beef, ground, raw", 254, 17.2, 0, 20, 0, 0, 66}},
	{"pork", Food{"Pork, raw", 242, 17, 0, 19, 0, 0, 62}},
	{"salmon", Food{"Salmon, raw", 208, 20.4, 0, 13.4, 0, 0, 59}},
	{"tuna", Food{"Tuna, canned in water", 116, 25.5, 0, 0.8, 0, 0, 338}},
	{"canned tuna", Food{"Tuna, canned in water", 116, 25.5, 0, 0.8, 0, 0, 338}},
	{"rice", Food{"Rice, white, cooked", 130, 2.7, 28.2, 0.3, 0.4, 0, 1}},
	{"white rice", Food{"Rice, white, cooked", 130, 2.7, 28.2, 0.3, 0.4, 0, 1}},
	{"pasta", Food{"Pasta, cooked", 131, 5, 25, 1.1, 1.8, 0.6, 1}},
	{"potato", Food{"Potato, raw", 77, 2, 17.5, 0.1, 2.2, 0.8, 6}},
	{"potatoes", Food{"Potato, raw", 77, 2, 17.5, 0.1, 2.2, 0.8, 6}},
	{"onion", Food{"Onion, raw", 40, 1.1, 9.3, 0.1, 1.7, 4.2, 4}},
	{"onions", Food{"Onion, raw", 40, 1.1, 9.3, 0.1, 1.7, 4.2, 4}},
	{"spring onion", Food{"Onion, spring/scallion", 32, 1.8, 7.3, 0.2, 2.6, 2.3, 16}},
	{"spring onions", Food{"Onion, spring/scallion", 32, 1.8, 7.3, 0.2, 2.6, 2.3, 16}},
	{"garlic", Food{"Garlic, raw", 149, 6.4, 33.1, 0.5, 2.1, 1, 17}},
	{"tomato", Food{"Tomato, raw", 18, 0.9, 3.9, 0.2, 1.2, 2.6, 5}},
	{"tomatoes", Food{"Tomato, raw", 18, 0.9, 3.9, 0.2, 1.2, 2.6, 5}},
	{"carrot", Food{"Carrot, raw", 41, 0.9, 9.6, 0.2, 2.8, 4.7, 69}},
	{"carrots", Food{"Carrot, raw", 41, 0.9, 9.6, 0.2, 2.8, 4.7, 69}},
	{"celery", Food{"Celery, raw", 14, 0.7, 3, 0.2, 1.6, 1.3, 80}},
	{"broccoli", Food{"Broccoli, raw", 34, 2.8, 7, 0.4, 2.6, 1.7, 33}},
	{"spinach", Food{"Spinach, raw", 23, 2.9, 3.6, 0.4, 2.2, 0.4, 79}},
	{"lettuce", Food{"Lettuce, raw", 15, 1.4, 2.9, 0.2, 1.3, 0.8, 28}},
	{"cheese", Food{"Cheese, cheddar", 403, 22.9, 3.4, 33.3, 0, 0.5, 653}},
	{"cheddar", Food{"Cheese, cheddar", 403, 22.9, 3.4, 33.3, 0, 0.5, 653}},
	{"parmesan", Food{"Cheese, parmesan", 431, 38.5, 4.1, 28.6, 0, 0.9, 1529}},
	{"mozzarella", Food{"Cheese, mozzarella", 280, 27.5, 3.1, 17.1, 0, 1, 627}},
	{"cream cheese", Food{"Cream cheese", 342, 5.9, 4.1, 34.2, 0, 3.8, 321}},
	{"sour cream", Food{"Sour cream", 193, 2.4, 4.6, 19.4, 0, 3.5, 53}},
	{"yogurt", Food{"Yogurt, plain", 61, 3.5, 4.7, 3.3, 0, 4.7, 46}},
	{"cream", Food{"Cream, heavy", 340, 2.1, 2.8, 36.1, 0, 2.9, 27}},
	{"heavy cream", Food{"Cream, heavy", 340, 2.1, 2.8, 36.1, 0, 2.9, 27}},
	{"mayonnaise", Food{"Mayonnaise", 680, 1, 0.6, 75, 0, 0.6, 635}},
	{"mustard", Food{"Mustard, prepared", 66, 4.4, 5.8, 4, 3.3, 2.2, 1135}},
	{"ketchup", Food{"Ketchup", 101, 1, 27.4, 0.1, 0.3, 21.3, 907}},
	{"soy sauce", Food{"Soy sauce", 53, 8.1, 4.9, 0, 0.8, 0.4, 5493}},
	{"honey", Food{"Honey", 304, 0.3, 82.4, 0, 0.2, 82.1, 4}},
	{"maple syrup", Food{"Maple syrup", 260, 0, 67, 0.1, 0, 60.5, 12}},
	{"vanilla extract", Food{"Vanilla extract", 288, 0.1, 12.7, 0.1, 0, 12.7, 9}},
	{"vanilla", Food{"Vanilla extract", 288, 0.1, 12.7, 0.1, 0, 12.7, 9}},
	{"baking powder", Food{"Baking powder", 53, 0, 27.7, 0, 0.2, 0, 10600}},
	{"baking soda", Food{"Baking soda", 0, 0, 0, 0, 0, 0, 27360}},
	{"yeast", Food{"Yeast, baker's", 325, 40.4, 41.2, 7.6, 26.9, 0, 51}},
	{"breadcrumbs", Food{"Breadcrumbs, dry", 395, 13.4, 72, 5.3, 4.5, 6.2, 732}},
	{"bread crumbs", Food{"Breadcrumbs, dry", 395, 13.4, 72, 5.3, 4.5, 6.2, 732}},
	{"bread", Food{"Bread, white", 265, 9.4, 49, 3.2, 2.7, 5, 491}},
	{"lemon", Food{"Lemon, raw", 29, 1.1, 9.3, 0.3, 2.8, 2.5, 2}},
	{"lemon juice", Food{"Lemon juice", 22, 0.4, 6.9, 0.2, 0.3, 2.5, 1}},
	{"lemon zest", Food{"Lemon peel", 47, 1.5, 16, 0.3, 10.6, 4.2, 6}},
	{"lime", Food{"Lime, raw", 30, 0.7, 10.5, 0.2, 2.8, 1.7, 2}},
	{"orange", Food{"Orange, raw", 47, 0.9, 11.8, 0.1, 2.4, 9.4, 0}},
	{"apple", Food{"Apple, raw", 52, 0.3, 13.8, 0.2, 2.4, 10.4, 1}},
	{"banana", Food{"Banana, raw", 89, 1.1, 22.8, 0.3, 2.6, 12.2, 1}},
	{"chocolate chips", Food{"Chocolate chips, semisweet", 479, 4.2, 63.1, 29.7, 5.9, 54.5, 10}},
	{"chocolate", Food{"Chocolate, dark", 546, 5.5, 59.4, 32.4, 7, 47.9, 6}},
	{"cocoa", Food{"Cocoa powder", 228, 19.6, 57.9, 13.7, 37, 1.8, 21}},
	{"cocoa powder", Food{"Cocoa powder", 228, 19.6, 57.9, 13.7, 37, 1.8, 21}},
	{"brown sugar", Food{"Sugar, brown", 380, 0.1, 98.1, 0, 0, 97, 28}},
	{"white sugar", Food{"Sugar, granulated", 387, 0, 100, 0, 0, 100, 1}},
	{"powdered sugar", Food{"Sugar, powdered", 389, 0, 99.8, 0, 0, 97.8, 2}},
	{"walnuts", Food{"Walnuts", 654, 15.2, 13.7, 65.2, 6.7, 2.6, 2}},
	{"almonds", Food{"Almonds", 579, 21.2, 21.6, 49.9, 12.5, 4.4, 1}},
	{"peanuts", Food{"Peanuts", 567, 25.8, 16.1, 49.2, 8.5, 4.7, 18}},
	{"tofu", Food{"Tofu, firm", 144, 15.6, 2.8, 8.7, 1.9, 0.6, 14}},
	{"bacon", Food{"Bacon, cooked", 541, 37, 1.4, 42, 0, 0, 1717}},
	{"ham", Food{"Ham, sliced", 145, 20.9, 1.5, 5.5, 0, 0, 1203}},
	{"sausage", Food{"Sausage, pork", 339, 19.4, 0, 28.4, 0, 0, 749}},
	{"shrimp", Food{"Shrimp, raw", 85, 20.1, 0.2, 0.5, 0, 0, 119}},
	{"crab", Food{"Crab, cooked", 97, 19.4, 0, 1.5, 0, 0, 395}},
	{"lobster", Food{"Lobster, cooked", 89, 19, 0.5, 0.9, 0, 0, 486}},
	{"parsley", Food{"Parsley, fresh", 36, 3, 6.3, 0.8, 3.3, 0.9, 56}},
	{"cilantro", Food{"Cilantro, fresh", 23, 2.1, 3.7, 0.5, 2.8, 0.9, 46}},
	{"basil", Food{"Basil, fresh", 23, 3.2, 2.7, 0.6, 1.6, 0.3, 4}},
	{"oregano", Food{"Oregano, dried", 265, 9, 68.9, 4.3, 42.5, 4.1, 25}},
	{"thyme", Food{"Thyme, dried", 276, 9.1, 63.9, 7.4, 37, 1.7, 55}},
	{"rosemary", Food{"Rosemary, dried", 331, 4.9, 64.1, 15.2, 42.6, 0, 50}},
	{"dill", Food{"Dill, fresh", 43, 3.5, 7, 1.1, 2.1, 0, 61}},
	{"fresh dill", Food{"Dill, fresh", 43, 3.5, 7, 1.1, 2.1, 0, 61}},
	{"paprika", Food{"Paprika", 282, 14.1, 53.9, 13, 34.9, 10.3, 68}},
	{"sweet paprika", Food{"Paprika", 282, 14.1, 53.9, 13, 34.9, 10.3, 68}},
	{"cumin", Food{"Cumin, ground", 375, 17.8, 44.2, 22.3, 10.5, 2.3, 168}},
	{"cinnamon", Food{"Cinnamon, ground", 247, 4, 80.6, 1.2, 53.1, 2.2, 10}},
	{"ginger", Food{"Ginger, ground", 335, 9, 71.6, 4.2, 14.1, 3.4, 27}},
	{"black pepper", Food{"Pepper, black", 251, 10.4, 63.9, 3.3, 25.3, 0.6, 20}},
	{"pepper", Food{"Pepper, black", 251, 10.4, 63.9, 3.3, 25.3, 0.6, 20}},
	{"chili powder", Food{"Chili powder", 282, 13.5, 49.7, 14.3, 34.8, 7.2, 2867}},
	{"cayenne", Food{"Cayenne pepper", 318, 12, 56.6, 17.3, 27.2, 10.3, 30}},
	{"pickle", Food{"Pickles, dill", 11, 0.3, 2.3, 0.2, 1.2, 1.1, 1208}},
	{"pickled cucumber", Food{"Pickles, dill", 11, 0.3, 2.3, 0.2, 1.2, 1.1, 1208}},
	{"cucumber", Food{"Cucumber, raw", 15, 0.7, 3.6, 0.1, 0.5, 1.7, 2}},
	{"bell pepper", Food{"Bell pepper, raw", 26, 1, 6, 0.3, 2.1, 4.2, 4}},
	{"mushroom", Food{"Mushrooms, raw", 22, 3.1, 3.3, 0.3, 1, 2, 5}},
	{"mushrooms", Food{"Mushrooms, raw", 22, 3.1, 3.3, 0.3, 1, 2, 5}},
	{"zucchini", Food{"Zucchini, raw", 17, 1.2, 3.1, 0.3, 1, 2.5, 8}},
	{"eggplant", Food{"Eggplant, raw", 25, 1, 5.9, 0.2, 3, 3.5, 2}},
	{"avocado", Food{"Avocado, raw", 160, 2, 8.5, 14.7, 6.7, 0.7, 7}},
	{"corn", Food{"Corn, sweet, raw", 86, 3.3, 19, 1.4, 2.7, 6.3, 15}},
	{"peas", Food{"Peas, green, raw", 81, 5.4, 14.5, 0.4, 5.7, 5.7, 5}},
	{"green beans", Food{"Green beans, raw", 31, 1.8, 7, 0.1, 2.7, 3.3, 6}},
	{"cabbage", Food{"Cabbage, raw", 25, 1.3, 5.8, 0.1, 2.5, 3.2, 18}},
	{"cauliflower", Food{"Cauliflower, raw", 25, 1.9, 5, 0.3, 2, 1.9, 30}},
	{"asparagus", Food{"Asparagus, raw", 20, 2.2, 3.9, 0.1, 2.1, 1.9, 2}},
	{"kale", Food{"Kale, raw", 35, 2.9, 4.4, 1.5, 4.1, 0.8, 53}},
	{"sweet potato", Food{"Sweet potato, raw", 86, 1.6, 20.1, 0.1, 3, 4.2, 55}},
	{"gnocchi", Food{"Gnocchi, potato", 133, 3, 27, 1, 1.5, 0.5, 300}},
	{"coconut milk", Food{"Coconut milk, canned", 197, 2, 3.3, 21.3, 0, 2.8, 18}},
	{"coconut oil", Food{"Oil, coconut", 892, 0, 0, 99.1, 0, 0, 0}},
	{"sesame oil", Food{"Oil, sesame", 884, 0, 0, 100, 0, 0, 0}},
	{"fish sauce", Food{"Fish sauce", 35, 5.1, 3.6, 0, 0, 3.6, 7851}},
	{"worcestershire sauce", Food{"Worcestershire sauce", 78, 0, 19.5, 0, 0, 10, 980}},
	{"hot sauce", Food{"Hot sauce", 11, 0.5, 2.4, 0.4, 0.5, 1.3, 2643}},
	{"teriyaki sauce", Food{"Teriyaki sauce", 89, 5.9, 15.6, 0, 0.1, 14.1, 3833}},
	{"vinegar", Food{"Vinegar, distilled", 18, 0, 0.04, 0, 0, 0.04, 2}},
	{"balsamic vinegar", Food{"Vinegar, balsamic", 88, 0.5, 17, 0, 0, 14.95, 23}},
	{"red wine vinegar", Food{"Vinegar, red wine", 19, 0, 0.3, 0, 0, 0, 8}},
	{"apple cider vinegar", Food{"Vinegar, apple cider", 21, 0, 0.9, 0, 0, 0.4, 5}},
	{"wine", Food{"Wine, red", 83, 0.1, 2.6, 0, 0, 0.6, 4}},
	{"red wine", Food{"Wine, red", 83, 0.1, 2.6, 0, 0, 0.6, 4}},
	{"white wine", Food{"Wine, white", 82, 0.1, 2.6, 0, 0, 1, 5}},
	{"beer", Food{"Beer", 43, 0.5, 3.6, 0, 0, 0, 4}},
	{"chicken broth", Food{"Chicken broth", 4, 0.5, 0.3, 0.1, 0, 0.3, 343}},
	{"beef broth", Food{"Beef broth", 8, 1.1, 0.1, 0.3, 0, 0.1, 372}},
	{"vegetable broth", Food{"Vegetable broth", 6, 0.2, 1.1, 0.1, 0, 0.7, 295}},
	{"stock", Food{"Stock, chicken", 4, 0.5, 0.3, 0.1, 0, 0.3, 343}},
	{"tomato paste", Food{"Tomato paste", 82, 4.3, 18.9, 0.5, 4.1, 12.2, 98}},
	{"tomato sauce", Food{"Tomato sauce", 29, 1.3, 6.3, 0.2, 1.5, 4.6, 577}},
	{"crushed tomatoes", Food{"Tomatoes, crushed, canned", 32, 1.6, 7.3, 0.3, 1.9, 4, 132}},
	{"diced tomatoes", Food{"Tomatoes, diced, canned", 17, 0.8, 4, 0.1, 0.9, 2.5, 143}},
	{"coconut", Food{"Coconut, shredded", 660, 6.9, 23.7, 64.5, 16.3, 7.4, 37}},
	{"peanut butter", Food{"Peanut butter", 588, 25.1, 19.6, 50.4, 6, 9.2, 426}},
	{"almond butter", Food{"Almond butter", 614, 21, 18.8, 55.5, 10.3, 4.4, 7}},
	{"jam", Food{"Jam/preserves", 278, 0.4, 68.9, 0.1, 1.1, 48.5, 32}},
	{"jelly", Food{"Jelly", 267, 0.1, 69.8, 0, 0.3, 54.3, 25}},
	{"oats", Food{"Oats, rolled", 379, 13.2, 67.7, 6.5, 10.1, 0, 6}},
	{"oatmeal", Food{"Oatmeal, cooked", 68, 2.4, 12, 1.4, 1.7, 0.5, 49}},
	{"cornstarch", Food{"Cornstarch", 381, 0.3, 91.3, 0.1, 0.9, 0, 9}},
	{"cornmeal", Food{"Cornmeal", 370, 8.1, 79, 3.6, 7.3, 0.6, 7}},
	{"tortilla", Food{"Tortilla, flour", 312, 8.3, 51, 8, 3.5, 3, 617}},
	{"tortillas", Food{"Tortilla, flour", 312, 8.3, 51, 8, 3.5, 3, 617}},
	{"noodles", Food{"Noodles, egg", 138, 4.5, 25, 2.1, 1.2, 0.3, 5}},
	{"ramen", Food{"Ramen noodles", 436, 10, 62, 17, 2, 1, 1820}},
	{"spaghetti", Food{"Spaghetti, cooked", 131, 5, 25, 1.1, 1.8, 0.6, 1}},
}

var foodsByName = func() map[string]Food {
	m := make(map[string]Food, len(commonFoods))
	for _, f := range commonFoods {
		m[f.name] = f.food
	}
	return m
}()

// Lookup finds a food by exact name, then by the first table entry that
// contains name or is contained in it.
func Lookup(name string) (Food, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return Food{}, false
	}
	if f, ok := foodsByName[q]; ok {
		return f, true
	}
	for _, f := range commonFoods {
		if strings.Contains(q, f.name) || strings.Contains(f.name, q) {
			return f.food, true
		}
	}
	return Food{}, false
}
