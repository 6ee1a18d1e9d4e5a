package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse は全てのエラーレスポンスで共通のボディ。
type ErrorResponse struct {
	// Error はエラーメッセージ。
	Error string `json:"error"`
	// Timestamp はレスポンス生成時刻（エポックミリ秒）。
	Timestamp int64 `json:"timestamp"`
}

// NewErrorResponse は現在時刻を付与したErrorResponseを生成する。
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message, Timestamp: time.Now().UnixMilli()}
}

// AbortWithError はエラーボディを書き込み、後続のハンドラを実行せずに処理を終える。
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, NewErrorResponse(message))
}
