package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

func soupRecipe() map[string]interface{} {
	return map[string]interface{}{
		"name":         "Tomato Soup",
		"source_url":   "https://www.youtube.com/watch?v=dQw4w9WgXcQ&si=abc",
		"prep_minutes": 10,
		"cook_minutes": 30,
		"servings":     "4",
		"category":     "Lunch",
		"ingredients": []map[string]interface{}{
			{"name": "tomatoes", "quantity": 2, "unit": "lb"},
			{"name": "cream", "quantity": 0.5, "unit": "cup"},
		},
		"ingredient_lines": []string{"1 tsp salt"},
		"instructions": []map[string]interface{}{
			{"description": "Roast the tomatoes."},
			{"description": "Blend with cream."},
		},
	}
}

func TestRecipeCRUD(t *testing.T) {
	a := setupAPI(t)

	status, _ := a.do(http.MethodPost, "/api/v1/recipes", soupRecipe(), nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	id := a.createRecipe(soupRecipe())

	status, resp := a.do(http.MethodGet, "/api/v1/recipes", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, resp["count"])

	status, resp = a.do(http.MethodGet, "/api/v1/recipes?source_type=web", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, resp["count"])

	status, resp = a.do(http.MethodGet, "/api/v1/recipes/"+id, nil, nil)
	require.Equal(t, http.StatusOK, status)
	recipe := resp["recipe"].(map[string]interface{})
	assert.Equal(t, "Tomato Soup", recipe["name"])
	assert.Equal(t, "youtube", recipe["source_type"])
	assert.Equal(t, "PT40M", recipe["total_time"])

	update := soupRecipe()
	update["name"] = "Roasted Tomato Soup"
	status, resp = a.do(http.MethodPut, "/api/v1/recipes/"+id, update, withKey())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Roasted Tomato Soup", resp["recipe"].(map[string]interface{})["name"])

	status, resp = a.do(http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "recipe not found", resp["error"])

	status, _ = a.do(http.MethodGet, "/api/v1/recipes/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateRecipeRejectsInvalid(t *testing.T) {
	a := setupAPI(t)

	status, resp := a.do(http.MethodPost, "/api/v1/recipes", map[string]interface{}{"name": "No url"}, withKey())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid request", resp["error"])

	bad := soupRecipe()
	bad["source_url"] = "ftp://example.com/soup"
	status, resp = a.do(http.MethodPost, "/api/v1/recipes", bad, withKey())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp["error"], "invalid recipe")
}

func TestDisplayRecipe(t *testing.T) {
	a := setupAPI(t)
	id := a.createRecipe(soupRecipe())

	status, resp := a.do(http.MethodGet, "/api/v1/recipes/"+id+"/display?servings=8", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 8, resp["servings"])
	assert.EqualValues(t, 4, resp["original_servings"])
	assert.Equal(t, "10 minutes", resp["prep_time"])
	assert.Equal(t, "40 minutes", resp["total_time"])

	lines := resp["ingredients"].([]interface{})
	require.Len(t, lines, 3)
	assert.Equal(t, "4 lb tomatoes", lines[0].(map[string]interface{})["text"])
	assert.Equal(t, "1 cup cream", lines[1].(map[string]interface{})["text"])
	assert.Equal(t, "2 tsp salt", lines[2].(map[string]interface{})["text"])

	status, resp = a.do(http.MethodGet, "/api/v1/recipes/"+id+"/display?metric=true", nil, nil)
	require.Equal(t, http.StatusOK, status)
	lines = resp["ingredients"].([]interface{})
	assert.Equal(t, "g", lines[0].(map[string]interface{})["unit"])
	assert.Equal(t, "120 ml cream", lines[1].(map[string]interface{})["text"])

	status, _ = a.do(http.MethodGet, "/api/v1/recipes/"+id+"/display?servings=500", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(http.MethodGet, "/api/v1/recipes/"+uuid.NewString()+"/display", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRecipeNutrition(t *testing.T) {
	a := setupAPI(t)
	id := a.createRecipe(soupRecipe())

	status, resp := a.do(http.MethodGet, "/api/v1/recipes/"+id+"/nutrition", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Tomato Soup", resp["recipe_name"])

	report := resp["nutrition"].(map[string]interface{})
	assert.EqualValues(t, 4, report["servings"])
	assert.EqualValues(t, 3, report["ingredients_analyzed"])
	assert.Empty(t, report["ingredients_missing"])
	assert.InDelta(t, 565.5, report["total"].(map[string]interface{})["calories"], 0.051)
	assert.InDelta(t, 141.4, report["per_serving"].(map[string]interface{})["calories"], 0.051)
	assert.Len(t, report["breakdown"], 3)

	status, _ = a.do(http.MethodGet, "/api/v1/recipes/"+uuid.NewString()+"/nutrition", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTrashEndpoints(t *testing.T) {
	a := setupAPI(t)
	first := a.createRecipe(soupRecipe())
	second := a.createRecipe(soupRecipe())

	status, _ := a.do(http.MethodDelete, "/api/v1/recipes/"+first, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	for _, id := range []string{first, second} {
		status, _ = a.do(http.MethodDelete, "/api/v1/recipes/"+id, nil, withKey())
		require.Equal(t, http.StatusOK, status)
	}

	status, resp := a.do(http.MethodGet, "/api/v1/recipes/trash", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, resp["count"])

	status, resp = a.do(http.MethodPost, "/api/v1/recipes/"+first+"/restore", nil, withKey())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, first, resp["recipe"].(map[string]interface{})["id"])

	status, resp = a.do(http.MethodDelete, "/api/v1/recipes/trash", nil, withKey())
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, resp["purged"])

	status, resp = a.do(http.MethodGet, "/api/v1/recipes", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, resp["count"])
}

type fakeUploader struct {
	keys []string
}

func (f *fakeUploader) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.keys = append(f.keys, *params.Key)
	return &s3.PutObjectOutput{}, nil
}

func imageRequest(t *testing.T, path, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(middleware.APIKeyHeader, testAPIKey)
	return req
}

func TestUploadImage(t *testing.T) {
	uploader := &fakeUploader{}
	images := service.NewImageService(&config.S3Config{BucketName: "photos", Region: "eu-west-1"}).WithUploader(uploader)
	a := setupAPIWithImages(t, images)
	id := a.createRecipe(soupRecipe())
	path := "/api/v1/recipes/" + id + "/image"

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, imageRequest(t, path, "soup.png", "image/png", []byte("png-bytes")))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["image_url"], "https://photos.s3.eu-west-1.amazonaws.com/recipes/"+id+"/")
	require.Len(t, uploader.keys, 1)

	status, body := a.do(http.MethodGet, "/api/v1/recipes/"+id, nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, resp["image_url"], body["recipe"].(map[string]interface{})["main_image_url"])

	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, imageRequest(t, path, "notes.txt", "text/plain", []byte("hi")))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, imageRequest(t, "/api/v1/recipes/"+uuid.NewString()+"/image", "soup.png", "image/png", []byte("x")))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadImageWithoutStorage(t *testing.T) {
	a := setupAPI(t)
	id := a.createRecipe(soupRecipe())

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, imageRequest(t, "/api/v1/recipes/"+id+"/image", "soup.png", "image/png", []byte("x")))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "image storage is not configured")
}
