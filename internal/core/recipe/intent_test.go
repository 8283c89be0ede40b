package recipe

import (
	"context"
	"testing"
	"time"

	"chef-bonbon/internal/core/ai/cache"
	"chef-bonbon/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator 可計數的上游替身
type fakeGenerator struct {
	calls    int
	response string
	err      error
}

func (f *fakeGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newIntentStore(t *testing.T) *cache.Store {
	t.Helper()
	store := cache.NewStore(50, 10*time.Minute)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestClassifyFood(t *testing.T) {
	ai := &fakeGenerator{response: "food"}
	classifier := NewIntentClassifier(ai, newIntentStore(t))

	got, err := classifier.Classify(context.Background(), []string{"egg", "flour", "milk", "butter"})
	require.NoError(t, err)
	assert.Equal(t, TypeFood, got)
	assert.Equal(t, 1, ai.calls)
}

func TestClassifyNormalizesAnswer(t *testing.T) {
	// 上游帶空白或大小寫差異仍然接受
	ai := &fakeGenerator{response: "  Drink\n"}
	classifier := NewIntentClassifier(ai, newIntentStore(t))

	got, err := classifier.Classify(context.Background(), []string{"gin", "lime", "soda water", "mint"})
	require.NoError(t, err)
	assert.Equal(t, TypeDrink, got)
}

func TestClassifyCacheHitSkipsUpstream(t *testing.T) {
	ai := &fakeGenerator{response: "drink"}
	classifier := NewIntentClassifier(ai, newIntentStore(t))
	ctx := context.Background()

	_, err := classifier.Classify(ctx, []string{"gin", "lime", "soda water", "mint"})
	require.NoError(t, err)

	// 同一組食材換個順序，第二次必須走快取
	got, err := classifier.Classify(ctx, []string{"mint", "soda water", "lime", "gin"})
	require.NoError(t, err)
	assert.Equal(t, TypeDrink, got)
	assert.Equal(t, 1, ai.calls)
}

func TestClassifyRejectsUnexpectedAnswer(t *testing.T) {
	ai := &fakeGenerator{response: "I think these make a lovely soup"}
	classifier := NewIntentClassifier(ai, newIntentStore(t))

	_, err := classifier.Classify(context.Background(), []string{"egg", "flour", "milk", "butter"})
	require.Error(t, err)

	failure, ok := common.AsGenerationFailure(err)
	require.True(t, ok)
	assert.Equal(t, common.FailureUpstreamMalformed, failure.Kind)
}

func TestClassifyDoesNotCacheFailures(t *testing.T) {
	ai := &fakeGenerator{response: "maybe"}
	store := newIntentStore(t)
	classifier := NewIntentClassifier(ai, store)
	ctx := context.Background()
	ingredients := []string{"egg", "flour", "milk", "butter"}

	_, err := classifier.Classify(ctx, ingredients)
	require.Error(t, err)

	// 修好上游後重試要真的再問一次
	ai.response = "food"
	got, err := classifier.Classify(ctx, ingredients)
	require.NoError(t, err)
	assert.Equal(t, TypeFood, got)
	assert.Equal(t, 2, ai.calls)
}
