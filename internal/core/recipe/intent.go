package recipe

import (
	"context"
	"fmt"
	"strings"

	"chef-bonbon/internal/core/ai/cache"
	"chef-bonbon/internal/pkg/common"

	"go.uber.org/zap"
)

// TextGenerator 上游文字生成介面
// anthropic.Client 實作此介面；測試時換成可計數的替身
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// IntentClassifier 意圖分類服務
// 判斷一組食材是要做吃的還是喝的，結果走自己的快取
type IntentClassifier struct {
	ai    TextGenerator
	cache *cache.Store
}

// NewIntentClassifier 創建意圖分類服務
func NewIntentClassifier(ai TextGenerator, store *cache.Store) *IntentClassifier {
	return &IntentClassifier{
		ai:    ai,
		cache: store,
	}
}

// Classify 分類食材意圖
// 上游必須回傳 food 或 drink 其中之一，其他內容一律視為格式錯誤，
// 絕不默默猜一個預設值
func (c *IntentClassifier) Classify(ctx context.Context, ingredients []string) (RecipeType, error) {
	key := IntentKey(ingredients)

	if cached, ok := c.cache.Get(key); ok {
		common.LogCacheHit("intent", key)
		return RecipeType(cached), nil
	}
	common.LogCacheMiss("intent", key)

	answer, err := c.ai.GenerateText(ctx, buildIntentPrompt(ingredients))
	if err != nil {
		return "", err
	}

	intent := strings.ToLower(strings.TrimSpace(answer))
	if intent != string(TypeFood) && intent != string(TypeDrink) {
		common.LogError("意圖分類回應不在允許集合內",
			zap.String("answer", answer),
		)
		return "", common.NewUpstreamFailure(common.FailureUpstreamMalformed,
			fmt.Sprintf("invalid intent response: %q", strings.TrimSpace(answer)), nil)
	}

	c.cache.Put(key, intent)
	return RecipeType(intent), nil
}
