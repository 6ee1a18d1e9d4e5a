package translator

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/darija-translator/internal/account"
	"github.com/nao1215/darija-translator/internal/gemini"
	"github.com/nao1215/darija-translator/pkg/middleware"
)

// healthStatus はヘルスチェックで返すステータス文言。
const healthStatus = "Translation service is running"

// handleTranslate は英語テキストをダリジャ語に翻訳するハンドラを返す。
func (s *Server) handleTranslate() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := middleware.GetRequestID(c)
		identity, _ := middleware.GetIdentity(c)

		var req TranslateRequest
		// 空のボディはテキスト未指定として扱い、検証はゲートウェイに任せる
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			middleware.AbortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}

		log.Printf("翻訳リクエスト: request_id=%s, user=%s, length=%d", requestID, identity.Username, len(req.Text))

		translated, err := s.translator.Translate(c.Request.Context(), req.Text)
		if err != nil {
			var validationErr *gemini.ValidationError
			if errors.As(err, &validationErr) {
				middleware.AbortWithError(c, http.StatusBadRequest, validationErr.Error())
				return
			}
			log.Printf("翻訳に失敗: request_id=%s, kind=%s, error=%v", requestID, errorKind(err), err)
			middleware.AbortWithError(c, http.StatusInternalServerError, "Translation service error: "+err.Error())
			return
		}

		c.JSON(http.StatusOK, TranslationResponse{
			OriginalText:   req.Text,
			TranslatedText: translated,
			SourceLanguage: gemini.SourceLanguage,
			TargetLanguage: gemini.TargetLanguage,
			Timestamp:      nowMillis(),
		})
	}
}

// handleCurrentUser は認証済みユーザーの情報を返すハンドラを返す。
// 管理者かどうかは認証時点のロールで判定する。
func (s *Server) handleCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.GetIdentity(c)
		if !ok {
			middleware.AbortUnauthorized(c, middleware.ReasonMissingHeader)
			return
		}

		c.JSON(http.StatusOK, UserInfoResponse{
			Username:  identity.Username,
			Admin:     identity.HasRole(account.RoleAdmin),
			Timestamp: nowMillis(),
		})
	}
}

// handleHealth はヘルスチェックのハンドラを返す。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    healthStatus,
			Timestamp: nowMillis(),
		})
	}
}

// errorKind はゲートウェイのエラー種別をログ用の名前で返す。
func errorKind(err error) string {
	var (
		upstreamErr  *gemini.UpstreamError
		parseErr     *gemini.ParseError
		transportErr *gemini.TransportError
	)
	switch {
	case errors.As(err, &upstreamErr):
		return "upstream"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &transportErr):
		return "transport"
	default:
		return "unknown"
	}
}
