package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/scraper"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

const testAPIKey = "kitchen-key"

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	deps   router.Deps
}

func setupAPI(t *testing.T) *testAPI {
	return setupAPIWithImages(t, service.NewImageService(nil))
}

func setupAPIWithImages(t *testing.T, images *service.ImageService) *testAPI {
	db := testhelpers.SetupSQLiteDB(t)
	auth, err := service.NewAuthService("test-secret", testAPIKey)
	require.NoError(t, err)

	recipes := service.NewRecipeService(db)
	deps := router.Deps{
		DB:          db,
		CORSOrigins: []string{"http://localhost:5173"},
		Auth:        auth,
		Recipes:     recipes,
		Groceries:   service.NewGroceryService(db),
		Usage:       service.NewUsageService(db),
		Display:     service.NewDisplayService(nil, time.Minute),
		Images:      images,
		Importer:    service.NewImportService(scraper.New(nil), recipes),
	}
	return &testAPI{t: t, router: router.SetupRouter(deps), deps: deps}
}

// do sends body as JSON and decodes the JSON response into a map.
func (a *testAPI) do(method, path string, body interface{}, headers map[string]string) (int, map[string]interface{}) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func withKey() map[string]string {
	return map[string]string{middleware.APIKeyHeader: testAPIKey}
}

func (a *testAPI) createRecipe(body map[string]interface{}) string {
	a.t.Helper()
	status, resp := a.do(http.MethodPost, "/api/v1/recipes", body, withKey())
	require.Equal(a.t, http.StatusCreated, status, resp)
	return resp["recipe"].(map[string]interface{})["id"].(string)
}

func TestHealth(t *testing.T) {
	a := setupAPI(t)
	for _, path := range []string{"/health", "/api/health"} {
		status, resp := a.do(http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "healthy", resp["status"])
		require.Equal(t, "disabled", resp["redis"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	a := setupAPI(t)
	a.createRecipe(map[string]interface{}{"name": "Toast", "source_url": "https://example.com/toast"})
	status, _ := a.do(http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), nil, nil)
	require.Equal(t, http.StatusNotFound, status)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `recipes_imported_total{source_type="web"}`)
	assert.Contains(t, body, `api_errors_total{endpoint="/api/v1/recipes/:id",error_type="Not Found"}`)
	assert.Contains(t, body, "active_recipes_total 1")
	assert.Contains(t, body, "recipe_processing_seconds_bucket")
}

func TestRateLimitQuota(t *testing.T) {
	a := setupAPI(t)
	status, resp := a.do(http.MethodGet, "/api/v1/rate-limits", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, resp["enforced"])

	limits := resp["rate_limits"].(map[string]interface{})
	assert.Len(t, limits, 5)
	imports := limits["recipe_import"].(map[string]interface{})
	assert.EqualValues(t, 10, imports["limit"])
	assert.EqualValues(t, 10, imports["remaining"])
}
