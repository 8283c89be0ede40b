package client

import (
	"sync"
	"time"
)

// Stage 載入階段訊息與其相對開始時間的偏移
type Stage struct {
	Message string
	At      time.Duration
}

// DefaultStages 原版 UI 的四段載入敘事
func DefaultStages() []Stage {
	return []Stage{
		{Message: "Understanding ingredients...", At: 0},
		{Message: "Composing recipe...", At: 1600 * time.Millisecond},
		{Message: "Final touches...", At: 3800 * time.Millisecond},
		{Message: "Almost ready...", At: 5800 * time.Millisecond},
	}
}

// Narrator 依時間表推送載入訊息的小狀態機
// 計時器獨立於底層請求排程，所以完成或出錯時必須 Cancel，
// 否則會對早已收場的請求繼續報進度
type Narrator struct {
	mu        sync.Mutex
	timers    []*time.Timer
	cancelled bool
}

// StartNarrator 啟動階段敘事
// 偏移為零的階段立即送出，其餘按表定時；onStage 為 nil 時不做任何事
func StartNarrator(stages []Stage, onStage func(string)) *Narrator {
	n := &Narrator{}
	if onStage == nil {
		return n
	}

	for _, stage := range stages {
		if stage.At <= 0 {
			onStage(stage.Message)
			continue
		}

		msg := stage.Message
		timer := time.AfterFunc(stage.At, func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if n.cancelled {
				return
			}
			onStage(msg)
		})
		n.timers = append(n.timers, timer)
	}

	return n
}

// Cancel 停止所有未觸發的階段訊息
// 成功、失敗、放棄，每條出路都要走到這裡；重複呼叫無害
func (n *Narrator) Cancel() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cancelled {
		return
	}
	n.cancelled = true

	for _, t := range n.timers {
		t.Stop()
	}
	n.timers = nil
}
