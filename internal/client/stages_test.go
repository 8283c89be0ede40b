package client

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stageRecorder 收集敘事訊息的併發安全替身
type stageRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *stageRecorder) record(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *stageRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func TestNarratorFiresStagesInOrder(t *testing.T) {
	rec := &stageRecorder{}
	stages := []Stage{
		{Message: "Understanding ingredients...", At: 0},
		{Message: "Composing recipe...", At: 10 * time.Millisecond},
		{Message: "Final touches...", At: 30 * time.Millisecond},
	}

	n := StartNarrator(stages, rec.record)
	defer n.Cancel()

	// 偏移為零的階段同步送出
	assert.Equal(t, []string{"Understanding ingredients..."}, rec.snapshot())

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 3
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{
		"Understanding ingredients...",
		"Composing recipe...",
		"Final touches...",
	}, rec.snapshot())
}

func TestNarratorCancelStopsPendingStages(t *testing.T) {
	rec := &stageRecorder{}
	stages := []Stage{
		{Message: "Understanding ingredients...", At: 0},
		{Message: "Composing recipe...", At: 50 * time.Millisecond},
	}

	n := StartNarrator(stages, rec.record)
	n.Cancel()
	// 重複取消無害
	n.Cancel()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"Understanding ingredients..."}, rec.snapshot())
}

func TestNarratorNilListener(t *testing.T) {
	n := StartNarrator(DefaultStages(), nil)
	n.Cancel()
}

func TestDefaultStagesSchedule(t *testing.T) {
	stages := DefaultStages()
	require.Len(t, stages, 4)
	assert.Equal(t, "Understanding ingredients...", stages[0].Message)
	assert.Equal(t, time.Duration(0), stages[0].At)
	assert.Equal(t, "Composing recipe...", stages[1].Message)
	assert.Equal(t, 1600*time.Millisecond, stages[1].At)
	assert.Equal(t, "Final touches...", stages[2].Message)
	assert.Equal(t, 3800*time.Millisecond, stages[2].At)
	assert.Equal(t, "Almost ready...", stages[3].Message)
	assert.Equal(t, 5800*time.Millisecond, stages[3].At)
}
