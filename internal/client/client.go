package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"chef-bonbon/internal/core/ai/cache"
	"chef-bonbon/internal/core/recipe"
	"chef-bonbon/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// 鏡像快取與伺服器端同一套參數，但生命週期獨立、內容不共享
const (
	mirrorCacheSize = 50
	mirrorCacheTTL  = 10 * time.Minute
)

// ErrFetchFailed 拿不到伺服器錯誤訊息時的固定回覆
var ErrFetchFailed = errors.New("Failed to fetch recipe")

// Client 食譜服務的請求門面
// 自帶一份僅供參考的鏡像快取，省掉同一個瀏覽階段內的重複往返；
// 快取內容不具權威性，過期就重新要
type Client struct {
	http    *resty.Client
	cache   *cache.Store
	stages  []Stage
	onStage func(string)

	mu  sync.Mutex
	rng *rand.Rand
}

// Option 客戶端選項
type Option func(*Client)

// WithStageListener 註冊載入階段訊息回調
func WithStageListener(fn func(string)) Option {
	return func(c *Client) {
		c.onStage = fn
	}
}

// WithStages 覆寫載入階段腳本（測試用短間隔）
func WithStages(stages []Stage) Option {
	return func(c *Client) {
		c.stages = stages
	}
}

// WithRand 注入隨機數來源，讓對白選擇可重現
func WithRand(rng *rand.Rand) Option {
	return func(c *Client) {
		c.rng = rng
	}
}

// WithTimeout 覆寫 HTTP 超時
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// New 創建請求門面
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(65*time.Second).
			SetHeader("Content-Type", "application/json"),
		cache:  cache.NewStore(mirrorCacheSize, mirrorCacheTTL),
		stages: DefaultStages(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody 伺服器的錯誤回應格式
type errorBody struct {
	Error string `json:"error"`
}

// RequestRecipe 請求一份食譜
// 鏡像快取命中就不出網路；未命中時打 POST /recipes，
// 載入階段訊息在呼叫期間照表推進，任何出口都會取消計時器
func (c *Client) RequestRecipe(ctx context.Context, ingredients []string, cookingMethod, recipeType string) (*recipe.Result, error) {
	key := recipe.CacheKey(ingredients, cookingMethod, recipe.RecipeType(recipeType))

	if cached, ok := c.cache.Get(key); ok {
		var result recipe.Result
		if err := common.ParseJSON(cached, &result); err == nil {
			return &result, nil
		}
		// 解析不了就當未命中，照常走網路
	}

	narrator := StartNarrator(c.stages, c.onStage)
	defer narrator.Cancel()

	body := recipe.Request{
		Ingredients:   ingredients,
		CookingMethod: cookingMethod,
		Type:          recipeType,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", common.GenerateUUID()).
		SetBody(&body).
		Post("/recipes")

	if err != nil {
		// 網路層失敗不往外丟原始例外
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if resp.StatusCode() != http.StatusOK {
		// 伺服器給了錯誤訊息就原樣轉達
		var eb errorBody
		if err := common.ParseJSONBytes(resp.Body(), &eb); err == nil && eb.Error != "" {
			return nil, errors.New(eb.Error)
		}
		return nil, ErrFetchFailed
	}

	var result recipe.Result
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, ErrFetchFailed
	}

	// 只快取完整結果；等待補烹飪方式的半套回應不值得記
	if !result.NeedsCookingMethod && result.Recipe != "" {
		if data, err := common.ToJSON(&result); err == nil {
			c.cache.Put(key, data)
		}
	}

	return &result, nil
}

// Greeting 取一句隨機的主廚開場白
func (c *Client) Greeting(userName string) string {
	c.mu.Lock()
	dialog := chefDialogs[c.rng.Intn(len(chefDialogs))]
	c.mu.Unlock()
	return PersonalizeDialog(dialog, userName)
}
