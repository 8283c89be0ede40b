package common

import (
	"errors"
	"net/http"
)

// FailureKind 生成失敗的分類
type FailureKind string

const (
	// FailureValidation 請求內容不合法（食材數量、類型錯誤）
	FailureValidation FailureKind = "VALIDATION_ERROR"
	// FailureUpstreamAuth 上游憑證缺失或被拒絕
	FailureUpstreamAuth FailureKind = "UPSTREAM_AUTH_ERROR"
	// FailureUpstreamRateOrServer 上游回傳非成功狀態（非認證錯誤）
	FailureUpstreamRateOrServer FailureKind = "UPSTREAM_RATE_OR_SERVER_ERROR"
	// FailureUpstreamMalformed 上游成功回應缺少預期的文字內容
	FailureUpstreamMalformed FailureKind = "UPSTREAM_MALFORMED_RESPONSE"
	// FailureTimeout 上游在限時內沒有回應
	FailureTimeout FailureKind = "UPSTREAM_TIMEOUT"
)

// GenericUpstreamMessage 對使用者顯示的通用上游錯誤訊息
// 細節只記錄在伺服器端日誌，不外洩
const GenericUpstreamMessage = "Something went wrong with the chef."

// GenerationFailure 定義生成流程的分類錯誤
type GenerationFailure struct {
	Kind    FailureKind // 錯誤分類
	Message string      // 錯誤信息
	Status  int         // HTTP 狀態碼
	Err     error       // 原始錯誤
}

func (e *GenerationFailure) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *GenerationFailure) Unwrap() error {
	return e.Err
}

// UserMessage 回傳可以直接給瀏覽器端的訊息
// 驗證錯誤原樣呈現，其餘一律使用通用訊息
func (e *GenerationFailure) UserMessage() string {
	if e.Kind == FailureValidation {
		return e.Message
	}
	return GenericUpstreamMessage
}

// Retryable 判斷是否屬於可重試的暫時性錯誤
func (e *GenerationFailure) Retryable() bool {
	return e.Kind == FailureUpstreamRateOrServer || e.Kind == FailureTimeout
}

// NewValidationFailure 創建驗證錯誤
func NewValidationFailure(message string) *GenerationFailure {
	return &GenerationFailure{
		Kind:    FailureValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewUpstreamFailure 創建上游錯誤
func NewUpstreamFailure(kind FailureKind, message string, err error) *GenerationFailure {
	return &GenerationFailure{
		Kind:    kind,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// AsGenerationFailure 取出錯誤鏈中的 GenerationFailure
func AsGenerationFailure(err error) (*GenerationFailure, bool) {
	var failure *GenerationFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	failure, ok := AsGenerationFailure(err)
	return ok && failure.Kind == FailureValidation
}
