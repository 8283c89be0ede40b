package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chef-bonbon/internal/core/ai/cache"
	coreRecipe "chef-bonbon/internal/core/recipe"
	"chef-bonbon/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator 上游替身，依提示詞內容回覆意圖或食譜
type fakeGenerator struct {
	calls  int
	intent string
	recipe string
	err    error
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if strings.Contains(prompt, "classifying user intent") {
		return f.intent, nil
	}
	return f.recipe, nil
}

func newTestRouter(t *testing.T, ai coreRecipe.TextGenerator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recipeStore := cache.NewStore(50, 10*time.Minute)
	intentStore := cache.NewStore(50, 10*time.Minute)
	t.Cleanup(func() { recipeStore.Close() })
	t.Cleanup(func() { intentStore.Close() })

	svc := coreRecipe.NewService(ai, coreRecipe.NewIntentClassifier(ai, intentStore), recipeStore, nil)
	handler := NewHandler(svc)

	router := gin.New()
	router.POST("/recipes", handler.HandleGenerateRecipe)
	return router
}

func postRecipes(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleGenerateRecipeSuccess(t *testing.T) {
	ai := &fakeGenerator{recipe: "Recipe Name: Pancakes"}
	router := newTestRouter(t, ai)

	w := postRecipes(t, router,
		`{"ingredients":["egg","flour","milk","butter"],"cookingMethod":"pan-fry","type":"food"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "food", body["recipeType"])
	assert.Equal(t, "Recipe Name: Pancakes", body["recipe"])
	_, present := body["needsCookingMethod"]
	assert.False(t, present)
}

func TestHandleGenerateRecipeNegotiatesCookingMethod(t *testing.T) {
	ai := &fakeGenerator{intent: "food"}
	router := newTestRouter(t, ai)

	w := postRecipes(t, router, `{"ingredients":["egg","flour","milk","butter"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "food", body["recipeType"])
	assert.Equal(t, true, body["needsCookingMethod"])
	_, present := body["recipe"]
	assert.False(t, present)
}

func TestHandleGenerateRecipeValidationError(t *testing.T) {
	ai := &fakeGenerator{}
	router := newTestRouter(t, ai)

	w := postRecipes(t, router, `{"ingredients":["egg","flour"],"type":"food"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Please provide at least 4 ingredients to get a high-quality recipe.", body["error"])
	assert.Equal(t, 0, ai.calls)
}

func TestHandleGenerateRecipeInvalidType(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{})

	w := postRecipes(t, router, `{"ingredients":["egg","flour","milk","butter"],"type":"dessert"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Recipe type must be food or drink", body["error"])
}

func TestHandleGenerateRecipeMalformedBody(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{})

	w := postRecipes(t, router, `{"ingredients": not-json`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid request format", body["error"])
}

func TestHandleGenerateRecipeUpstreamFailureHidesDetails(t *testing.T) {
	ai := &fakeGenerator{err: common.NewUpstreamFailure(common.FailureUpstreamAuth,
		"anthropic api key is missing", nil)}
	router := newTestRouter(t, ai)

	w := postRecipes(t, router,
		`{"ingredients":["egg","flour","milk","butter"],"cookingMethod":"bake","type":"food"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	// 上游細節不出現在回應裡
	assert.Equal(t, common.GenericUpstreamMessage, body["error"])
	assert.NotContains(t, w.Body.String(), "api key")
}

func TestHandleGenerateRecipeEchoesRequestID(t *testing.T) {
	ai := &fakeGenerator{recipe: "Recipe Name: Pancakes"}
	router := newTestRouter(t, ai)

	req := httptest.NewRequest(http.MethodPost, "/recipes",
		bytes.NewBufferString(`{"ingredients":["egg","flour","milk","butter"],"cookingMethod":"bake","type":"food"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// 沒帶 X-Request-ID 時伺服器補發一個
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
