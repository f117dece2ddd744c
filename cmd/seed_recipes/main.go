package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

func qty(v float64) *float64 { return &v }

var sampleRecipes = []types.RecipeRequest{
	{
		Name:        "Classic Buttermilk Pancakes",
		SourceURL:   "https://www.youtube.com/watch?v=ZpQ9qc4MaXA",
		PrepMinutes: 10,
		CookMinutes: 20,
		Servings:    "4 servings",
		Category:    "Breakfast",
		Cuisine:     "American",
		Tags:        []string{"sweet", "weekend"},
		IngredientLines: []string{
			"2 cups all-purpose flour",
			"2 Tbsp. sugar",
			"1 1/2 tsp baking powder",
			"1/2 tsp salt",
			"2 cups buttermilk",
			"2 large eggs",
			"3 tablespoons butter, melted",
		},
		Instructions: []types.InstructionInput{
			{Description: "Whisk the dry ingredients in a large bowl.", SectionName: "Batter"},
			{Description: "Stir in buttermilk, eggs and melted butter until just combined.", SectionName: "Batter"},
			{Description: "Cook 1/4 cup portions on a hot griddle until bubbles form, then flip."},
		},
	},
	{
		Name:        "Weeknight Chicken Chili",
		SourceURL:   "https://www.seriouseats.com/weeknight-chicken-chili",
		PrepMinutes: 15,
		CookMinutes: 45,
		Servings:    "6",
		Category:    "Dinner",
		Cuisine:     "Tex-Mex",
		Tags:        []string{"spicy", "one-pot"},
		Ingredients: []types.IngredientInput{
			{Name: "chicken breast", Quantity: qty(1.5), Unit: "lb"},
			{Name: "kidney beans", Quantity: qty(2), Unit: "can"},
			{Name: "diced tomatoes", Quantity: qty(28), Unit: "oz"},
			{Name: "chicken broth", Quantity: qty(2), Unit: "cups"},
			{Name: "chili powder", Quantity: qty(2), Unit: "tbsp"},
			{Name: "salt"},
		},
		Instructions: []types.InstructionInput{
			{Description: "Brown the chicken in a heavy pot."},
			{Description: "Add everything else and simmer for 40 minutes."},
		},
	},
	{
		Name:      "Tomato Basil Pasta",
		SourceURL: "https://www.tiktok.com/@kitchen/video/7301234567890",
		TotalTime: "PT25M",
		Servings:  "2",
		Category:  "Dinner",
		Cuisine:   "Italian",
		IngredientLines: []string{
			"8 oz spaghetti",
			"2 cups cherry tomatoes, halved",
			"¼ cup olive oil",
			"2 cloves garlic",
			"fresh basil",
		},
		Instructions: []types.InstructionInput{
			{Description: "Boil the pasta."},
			{Description: "Blister the tomatoes and garlic in oil, toss with pasta and basil."},
		},
	},
}

func main() {
	reset := flag.Bool("reset", false, "Purge the trash before seeding")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.For("seed")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	recipes := service.NewRecipeService(db)
	if *reset {
		n, err := recipes.PurgeTrash(ctx, 0)
		if err != nil {
			log.Fatalf("Failed to purge trash: %v", err)
		}
		log.Infof("Purged %d recipes from trash", n)
	}

	for i := range sampleRecipes {
		r, err := recipes.CreateRecipe(ctx, &sampleRecipes[i])
		if err != nil {
			log.WithError(err).Errorf("Failed to seed %q", sampleRecipes[i].Name)
			continue
		}
		log.Infof("Seeded recipe %s (%s)", r.Name, r.ID)
	}
}
