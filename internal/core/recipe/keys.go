package recipe

import (
	"sort"
	"strings"
)

// normalizeIngredients 小寫、去除前後空白並按字典序排序
// 輸入順序與大小寫不影響結果，同一組食材必得同一個鍵
func normalizeIngredients(ingredients []string) []string {
	normalized := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(ing)))
	}
	sort.Strings(normalized)
	return normalized
}

// CacheKey 計算食譜快取鍵
// 缺少的 method / recipeType 以空字串編碼；真實值經過 trim 後不可能為空，
// 所以不會跟名叫 "none" 之類的烹飪方式撞鍵
func CacheKey(ingredients []string, cookingMethod string, recipeType RecipeType) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(normalizeIngredients(ingredients), ","))
	sb.WriteString("|m:")
	sb.WriteString(strings.ToLower(strings.TrimSpace(cookingMethod)))
	sb.WriteString("|t:")
	sb.WriteString(string(recipeType))
	return sb.String()
}

// IntentKey 計算意圖快取鍵
// 意圖只看食材本身，烹飪方式與類型無關
func IntentKey(ingredients []string) string {
	return strings.Join(normalizeIngredients(ingredients), "|")
}
