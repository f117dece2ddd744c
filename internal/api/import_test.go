package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tacoPage = `<html><head>
<meta property="og:image" content="%[1]s/tacos.jpg">
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Recipe","name":"Fish Tacos",
 "recipeYield":"4 servings","prepTime":"PT15M","cookTime":"PT10M",
 "recipeIngredient":["1 lb white fish","8 corn tortillas","1 cup cabbage, shredded","2"],
 "recipeInstructions":[{"@type":"HowToStep","text":"Season the fish."},{"@type":"HowToStep","text":"Grill and serve."}]}
</script></head><body></body></html>`

func recipePageServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/tacos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, tacoPage, srv.URL)
	})
	mux.HandleFunc("/tacos.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestImportRecipe(t *testing.T) {
	a := setupAPI(t)
	pages := recipePageServer(t)

	status, resp := a.do(http.MethodPost, "/api/v1/recipes/import", map[string]string{"url": pages.URL + "/tacos"}, withKey())
	require.Equal(t, http.StatusCreated, status, resp)

	recipe := resp["recipe"].(map[string]interface{})
	assert.Equal(t, "Fish Tacos", recipe["name"])
	assert.Equal(t, pages.URL+"/tacos", recipe["source_url"])
	assert.Equal(t, pages.URL+"/tacos.jpg", recipe["main_image_url"])
	assert.Equal(t, "4 servings", recipe["servings"])
	assert.Len(t, recipe["ingredients"], 3)
	assert.Len(t, recipe["instructions"], 2)

	status, resp = a.do(http.MethodGet, "/api/v1/recipes", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, resp["count"])
}

func TestImportRecipeErrors(t *testing.T) {
	a := setupAPI(t)
	pages := recipePageServer(t)

	tests := []struct {
		name    string
		body    map[string]string
		headers map[string]string
		want    int
	}{
		{"missing key", map[string]string{"url": pages.URL + "/tacos"}, nil, http.StatusUnauthorized},
		{"missing url", map[string]string{}, withKey(), http.StatusBadRequest},
		{"relative url", map[string]string{"url": "/tacos"}, withKey(), http.StatusBadRequest},
		{"video link", map[string]string{"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}, withKey(), http.StatusBadRequest},
		{"page not found", map[string]string{"url": pages.URL + "/nope"}, withKey(), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := a.do(http.MethodPost, "/api/v1/recipes/import", tt.body, tt.headers)
			assert.Equal(t, tt.want, status, resp)
			assert.NotEmpty(t, resp["error"])
		})
	}
}
