package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// Deps are the stores and services the routes are served from. Redis may be
// nil, which disables rate limits and display caching.
type Deps struct {
	DB          *gorm.DB
	Redis       *redis.Client
	CORSOrigins []string

	Auth      *service.AuthService
	Recipes   *service.RecipeService
	Groceries *service.GroceryService
	Usage     *service.UsageService
	Display   *service.DisplayService
	Images    *service.ImageService
	Importer  *service.ImportService
}

// SetupRouter configures the application routes
func SetupRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = service.MaxImageSize + 1<<20

	router.Use(
		middleware.RequestLogger(logger.For("http")),
		middleware.ErrorHandler(),
		middleware.CORS(d.CORSOrigins),
	)

	health := api.NewHealthHandler(d.DB, d.Redis)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	recipeHandler := api.NewRecipeHandler(d.Recipes, d.Display, d.Images)
	groceryHandler := api.NewGroceryHandler(d.Groceries)
	adminHandler := api.NewAdminHandler(d.Auth, d.Usage, d.Recipes)
	importHandler := api.NewImportHandler(d.Importer)

	apiKey := middleware.APIKey(d.Auth)
	limiters := []*middleware.RateLimiter{
		middleware.NewRecipeImportRateLimiter(d.Redis),
		middleware.NewGroceryWriteRateLimiter(d.Redis),
		middleware.NewItemToggleRateLimiter(d.Redis),
		middleware.NewItemUpdateRateLimiter(d.Redis),
		middleware.NewDeleteRateLimiter(d.Redis),
	}
	importLimit := limiters[0].Middleware()
	groceryWrite := limiters[1].Middleware()
	toggleLimit := limiters[2].Middleware()
	updateLimit := limiters[3].Middleware()
	deleteLimit := limiters[4].Middleware()

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/rate-limits", middleware.Quota(limiters...))

	recipes := v1.Group("/recipes")
	{
		recipes.GET("", recipeHandler.ListRecipes)
		recipes.POST("", apiKey, importLimit, recipeHandler.CreateRecipe)
		recipes.POST("/import", apiKey, importLimit, importHandler.ImportRecipe)
		recipes.GET("/trash", recipeHandler.ListTrash)
		recipes.DELETE("/trash", apiKey, recipeHandler.PurgeTrash)
		recipes.GET("/:id", recipeHandler.GetRecipe)
		recipes.GET("/:id/display", recipeHandler.DisplayRecipe)
		recipes.GET("/:id/nutrition", recipeHandler.RecipeNutrition)
		recipes.PUT("/:id", apiKey, recipeHandler.UpdateRecipe)
		recipes.DELETE("/:id", apiKey, recipeHandler.DeleteRecipe)
		recipes.POST("/:id/restore", apiKey, recipeHandler.RestoreRecipe)
		recipes.POST("/:id/image", apiKey, recipeHandler.UploadImage)
	}

	lists := v1.Group("/grocery-lists")
	{
		lists.GET("", groceryHandler.ListLists)
		lists.POST("", apiKey, groceryWrite, groceryHandler.CreateList)
		lists.PATCH("/items/:item_id/toggle", apiKey, toggleLimit, groceryHandler.ToggleItem)
		lists.PATCH("/items/:item_id", apiKey, updateLimit, groceryHandler.UpdateItem)
		lists.GET("/:id", groceryHandler.GetList)
		lists.GET("/:id/instacart", groceryHandler.Instacart)
		lists.POST("/:id/recipes", apiKey, groceryWrite, groceryHandler.AddRecipe)
		lists.DELETE("/:id/recipes/:recipe_id", apiKey, groceryWrite, groceryHandler.RemoveRecipe)
		lists.DELETE("/:id", apiKey, deleteLimit, groceryHandler.DeleteList)
	}

	admin := v1.Group("/admin")
	admin.POST("/token", adminHandler.IssueToken)
	protected := admin.Group("")
	protected.Use(middleware.AuthMiddleware(d.Auth))
	{
		protected.GET("/llm-metrics", adminHandler.LLMMetrics)
		protected.GET("/llm-metrics/summary", adminHandler.LLMSummary)
		protected.GET("/stats", adminHandler.Stats)
		protected.POST("/llm-usage", adminHandler.RecordUsage)
	}

	return router
}
